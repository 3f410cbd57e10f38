package moderation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	domain "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/infra/classifier"
	"github.com/NeuralTrust/TrustMod/pkg/infra/interpreter"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/NeuralTrust/TrustMod/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultRulesReason explains a rules violation the interpreter gave no reason for.
const DefaultRulesReason = "Message breaks the chat rules"

type EvaluateRequest struct {
	Client platform.Client
	Event  message.Event
	Policy policy.Policy
	// Thread is the root message index when the message was posted in a thread.
	Thread *int64
}

//go:generate mockery --name=Engine --dir=. --output=./mocks --filename=engine_mock.go --case=underscore --with-expecter
type Engine interface {
	Evaluate(ctx context.Context, req EvaluateRequest) domain.Result
}

type EngineConfig struct {
	BotID            string
	ImageURLTemplate string
}

type engine struct {
	logger      *logrus.Logger
	classifier  classifier.Client
	interpreter interpreter.Interpreter
	cfg         EngineConfig
}

func NewEngine(
	logger *logrus.Logger,
	classifierClient classifier.Client,
	ruleInterpreter interpreter.Interpreter,
	cfg EngineConfig,
) Engine {
	if cfg.ImageURLTemplate == "" {
		cfg.ImageURLTemplate = message.DefaultImageURLTemplate
	}
	return &engine{
		logger:      logger,
		classifier:  classifierClient,
		interpreter: ruleInterpreter,
		cfg:         cfg,
	}
}

// Evaluate never returns an error: classifier failures count as no violation.
func (e *engine) Evaluate(ctx context.Context, req EvaluateRequest) domain.Result {
	msg := req.Event.Message
	s := req.Client.Scope()
	log := e.logger.WithFields(logrus.Fields{
		"scope":      s.String(),
		"message_id": msg.ID,
	})

	if !req.Policy.Moderating {
		log.Debug("moderation paused, skipping message")
		return domain.Skipped()
	}
	if e.cfg.BotID != "" && msg.Sender == e.cfg.BotID {
		log.Debug("message sent by the bot, skipping")
		return domain.Skipped()
	}
	content, ok := message.Extract(msg.Content, e.cfg.ImageURLTemplate)
	if !ok {
		log.WithField("kind", msg.Content.Kind).Debug("unsupported content, skipping")
		return domain.Skipped()
	}

	flag := func(reason string, check domain.Check) domain.Result {
		prometheus.ViolationsTotal.WithLabelValues(string(check)).Inc()
		return domain.Flagged(domain.Moderated{
			Reason:       reason,
			Check:        check,
			Scope:        s,
			MessageID:    msg.ID,
			EventIndex:   req.Event.EventIndex,
			MessageIndex: msg.Index,
			SenderID:     msg.Sender,
		})
	}

	if req.Policy.Rules.IncludesGeneral() && content.HasText {
		if violations := e.generalCheck(ctx, log, content, req.Policy.Threshold); len(violations) > 0 {
			return flag(domain.SummariseViolations(violations), domain.CheckGeneral)
		}
	}

	if req.Policy.Rules.IncludesChat() {
		rules := e.gatherRules(ctx, log, req.Client)
		if len(rules) == 0 {
			log.Debug("no chat rules configured")
			return domain.NotModerated()
		}
		if reason, broken := e.rulesCheck(ctx, log, rules, content, req.Thread != nil); broken {
			return flag(reason, domain.CheckRules)
		}
	}

	return domain.NotModerated()
}

func (e *engine) generalCheck(
	ctx context.Context,
	log *logrus.Entry,
	content message.Extracted,
	threshold float64,
) []domain.CategoryViolation {
	start := time.Now()
	scores, err := e.classifier.ScoreCategories(ctx, classifier.Input{
		Text:     content.Text,
		ImageURL: content.ImageURL,
	})
	prometheus.CheckLatency.WithLabelValues(string(domain.CheckGeneral)).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		prometheus.ClassifierFailuresTotal.WithLabelValues(string(domain.CheckGeneral)).Inc()
		log.WithError(err).Warn("category classification failed, treating as not moderated")
		return nil
	}
	return classifier.Breaking(scores, threshold)
}

func (e *engine) rulesCheck(
	ctx context.Context,
	log *logrus.Entry,
	rules []string,
	content message.Extracted,
	inThread bool,
) (string, bool) {
	start := time.Now()
	verdict, err := e.interpreter.Interpret(ctx, interpreter.Request{
		Rules:    rules,
		Text:     content.Text,
		HasText:  content.HasText,
		Hint:     content.Hint,
		InThread: inThread,
	})
	prometheus.CheckLatency.WithLabelValues(string(domain.CheckRules)).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		prometheus.ClassifierFailuresTotal.WithLabelValues(string(domain.CheckRules)).Inc()
		if errors.Is(err, interpreter.ErrMalformedResponse) {
			log.WithError(err).Warn("rule interpretation returned malformed output, allowing message")
		} else {
			log.WithError(err).Warn("rule interpretation failed, treating as not moderated")
		}
		return "", false
	}
	if verdict.Allowed {
		return "", false
	}
	reason := strings.TrimSpace(verdict.Reason)
	if reason == "" {
		reason = DefaultRulesReason
	}
	return reason, true
}

// gatherRules returns the enabled, non-empty rule texts that apply to the
// client's scope, community rules first.
func (e *engine) gatherRules(ctx context.Context, log *logrus.Entry, client platform.Client) []string {
	s := client.Scope()
	if !s.IsChat() {
		return nil
	}

	var communityRules, chatRules string
	g, gctx := errgroup.WithContext(ctx)
	if community, ok := s.ParentCommunity(); ok {
		g.Go(func() error {
			summary, err := client.CommunitySummary(gctx, community)
			if err != nil {
				log.WithError(err).Warn("failed to load community rules")
				return nil
			}
			if summary.Rules.Enabled {
				communityRules = strings.TrimSpace(summary.Rules.Text)
			}
			return nil
		})
	}
	g.Go(func() error {
		summary, err := client.ChatSummary(gctx)
		if err != nil {
			log.WithError(err).Warn("failed to load chat rules")
			return nil
		}
		if summary.Kind != platform.ChatKindDirect && summary.Rules.Enabled {
			chatRules = strings.TrimSpace(summary.Rules.Text)
		}
		return nil
	})
	_ = g.Wait()

	var rules []string
	for _, r := range []string{communityRules, chatRules} {
		if r != "" {
			rules = append(rules, r)
		}
	}
	return rules
}
