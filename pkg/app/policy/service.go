package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 5 * time.Minute

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=policy_service_mock.go --case=underscore --with-expecter
type Service interface {
	// Get returns the effective policy of a scope, Default() when none was stored.
	Get(ctx context.Context, s scope.Scope) (domain.Policy, error)
	Update(ctx context.Context, s scope.Scope, update domain.Update) (domain.Policy, error)
	// InvalidateLocation drops every cached policy under an installation location.
	InvalidateLocation(ctx context.Context, locationKey string) error
}

type cachedPolicy struct {
	Moderating  bool    `json:"moderating"`
	Rules       int     `json:"rules"`
	Threshold   float64 `json:"threshold"`
	Action      int     `json:"action"`
	Reaction    string  `json:"reaction,omitempty"`
	Explanation int     `json:"explanation"`
}

func toCached(p domain.Policy) cachedPolicy {
	c := cachedPolicy{
		Moderating:  p.Moderating,
		Rules:       int(p.Rules),
		Threshold:   p.Threshold,
		Action:      p.Action.Code(),
		Explanation: int(p.Explanation),
	}
	if r, ok := p.Action.(domain.Reaction); ok {
		c.Reaction = r.Emoji
	}
	return c
}

func (c cachedPolicy) policy() (domain.Policy, error) {
	action, err := domain.ActionFromCode(c.Action, c.Reaction)
	if err != nil {
		return domain.Policy{}, err
	}
	p := domain.Policy{
		Moderating:  c.Moderating,
		Rules:       domain.Rules(c.Rules),
		Threshold:   c.Threshold,
		Action:      action,
		Explanation: domain.Explanation(c.Explanation),
	}
	return p, p.Validate()
}

type service struct {
	logger *logrus.Logger
	repo   domain.Repository
	cache  cache.Client
	ttl    time.Duration
	sf     singleflight.Group
}

func NewService(logger *logrus.Logger, repo domain.Repository, c cache.Client, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &service{
		logger: logger,
		repo:   repo,
		cache:  c,
		ttl:    ttl,
	}
}

func cacheKey(s scope.Scope) string {
	return fmt.Sprintf(cache.PolicyKeyPattern, s.Location().Key(), s.Key())
}

func (s *service) Get(ctx context.Context, sc scope.Scope) (domain.Policy, error) {
	key := cacheKey(sc)

	var cached cachedPolicy
	err := s.cache.GetJSON(ctx, key, &cached)
	if err == nil {
		p, convErr := cached.policy()
		if convErr == nil {
			return p, nil
		}
		err = convErr
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WithError(err).WithField("scope", sc.String()).Warn("policy cache read failed")
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.load(ctx, sc, key)
	})
	if err != nil {
		return domain.Policy{}, err
	}
	return v.(domain.Policy), nil
}

func (s *service) load(ctx context.Context, sc scope.Scope, key string) (domain.Policy, error) {
	stored, err := s.repo.Get(ctx, sc)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("failed to load policy: %w", err)
	}
	p := domain.Default()
	if stored != nil {
		p = *stored
	}
	if err := s.cache.SetJSON(ctx, key, toCached(p), s.ttl); err != nil {
		s.logger.WithError(err).WithField("scope", sc.String()).Warn("policy cache write failed")
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, update domain.Update) (domain.Policy, error) {
	if err := update.Validate(); err != nil {
		return domain.Policy{}, err
	}
	if err := s.repo.Upsert(ctx, sc, update); err != nil {
		return domain.Policy{}, fmt.Errorf("failed to update policy: %w", err)
	}

	key := cacheKey(sc)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WithError(err).WithField("scope", sc.String()).Warn("policy cache invalidation failed")
	}

	s.logger.WithFields(logrus.Fields{
		"scope":   sc.String(),
		"columns": update.Columns(),
	}).Info("policy updated")
	return s.load(ctx, sc, key)
}

func (s *service) InvalidateLocation(ctx context.Context, locationKey string) error {
	if err := s.cache.DeleteMatching(ctx, fmt.Sprintf(cache.PolicyKeyPattern, locationKey, "*")); err != nil {
		return fmt.Errorf("failed to invalidate cached policies: %w", err)
	}
	return nil
}
