package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/app/policy"
	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	domain "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/infra/exporter"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/NeuralTrust/TrustMod/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

type Request struct {
	Client platform.Client
	Event  message.Event
	Thread *int64
	Source domain.Source
}

//go:generate mockery --name=Moderator --dir=. --output=./mocks --filename=moderator_mock.go --case=underscore --with-expecter
type Moderator interface {
	Moderate(ctx context.Context, req Request) (domain.Status, error)
}

type moderator struct {
	logger   *logrus.Logger
	policies policy.Service
	ledger   domain.Repository
	engine   Engine
	executor Executor
	exporter exporter.Exporter
	now      func() time.Time
}

func NewModerator(
	logger *logrus.Logger,
	policies policy.Service,
	ledger domain.Repository,
	engine Engine,
	executor Executor,
	decisionExporter exporter.Exporter,
) Moderator {
	if decisionExporter == nil {
		decisionExporter = exporter.NewNoop()
	}
	return &moderator{
		logger:   logger,
		policies: policies,
		ledger:   ledger,
		engine:   engine,
		executor: executor,
		exporter: decisionExporter,
		now:      time.Now,
	}
}

func (m *moderator) Moderate(ctx context.Context, req Request) (domain.Status, error) {
	if req.Source == "" {
		req.Source = domain.SourceAutomated
	}
	status, err := m.moderate(ctx, req)
	prometheus.EvaluationsTotal.WithLabelValues(string(status), string(req.Source)).Inc()
	return status, err
}

func (m *moderator) moderate(ctx context.Context, req Request) (domain.Status, error) {
	s := req.Client.Scope()
	msg := req.Event.Message
	log := m.logger.WithFields(logrus.Fields{
		"scope":      s.String(),
		"message_id": msg.ID,
		"source":     req.Source,
	})

	p, err := m.policies.Get(ctx, s)
	if err != nil {
		log.WithError(err).Error("failed to load policy, skipping message")
		return domain.StatusSkipped, nil
	}

	// avoids paying for classification when the decision already exists
	if _, found, err := m.ledger.LoadReason(ctx, s, msg.ID); err != nil {
		log.WithError(err).Warn("ledger lookup failed")
	} else if found {
		log.Debug("message already moderated")
		return domain.StatusAlreadyModerated, nil
	}

	result := m.engine.Evaluate(ctx, EvaluateRequest{
		Client: req.Client,
		Event:  req.Event,
		Policy: p,
		Thread: req.Thread,
	})
	if result.Status != domain.StatusModerated || result.Moderated == nil {
		return result.Status, nil
	}

	inserted, err := m.ledger.Record(ctx, *result.Moderated, req.Source)
	if err != nil {
		return domain.StatusModerated, fmt.Errorf("failed to record moderation event: %w", err)
	}
	if !inserted {
		log.Info("moderation event recorded concurrently, not applying consequence again")
		return domain.StatusAlreadyModerated, nil
	}

	log.WithFields(logrus.Fields{
		"check":  result.Moderated.Check,
		"sender": result.Moderated.SenderID,
	}).Info("message moderated")

	if err := m.executor.Apply(ctx, req.Client, p, result.Moderated, req.Thread); err != nil {
		log.WithError(err).Warn("moderation consequence not fully applied")
	}

	decision := exporter.NewDecision(result.Moderated, req.Source, p.Action.String(), m.now())
	if err := m.exporter.Export(ctx, decision); err != nil {
		log.WithError(err).Warn("failed to export moderation decision")
	}
	return domain.StatusModerated, nil
}
