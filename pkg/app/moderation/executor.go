package moderation

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/NeuralTrust/TrustMod/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	stepExplanation = "explanation"
	stepAction      = "action"
)

//go:generate mockery --name=Executor --dir=. --output=./mocks --filename=executor_mock.go --case=underscore --with-expecter
type Executor interface {
	// Apply runs the explanation step then the action step. A failing step
	// does not prevent the other; the returned error joins both failures.
	Apply(ctx context.Context, client platform.Client, p policy.Policy, m *domain.Moderated, thread *int64) error
}

type executor struct {
	logger *logrus.Logger
}

func NewExecutor(logger *logrus.Logger) Executor {
	return &executor{logger: logger}
}

func (x *executor) Apply(
	ctx context.Context,
	client platform.Client,
	p policy.Policy,
	m *domain.Moderated,
	thread *int64,
) error {
	log := x.logger.WithFields(logrus.Fields{
		"scope":      m.Scope.String(),
		"message_id": m.MessageID,
	})

	explErr := x.explain(ctx, client, p.Explanation, m, thread)
	if explErr != nil {
		prometheus.ConsequenceFailuresTotal.WithLabelValues(stepExplanation).Inc()
		log.WithError(explErr).Error("failed to send moderation explanation")
	}

	actErr := x.act(ctx, client, p.Action, m, thread)
	if actErr != nil {
		prometheus.ConsequenceFailuresTotal.WithLabelValues(stepAction).Inc()
		log.WithError(actErr).Error("failed to apply moderation action")
	} else {
		log.WithField("action", p.Action.String()).Info("moderation action applied")
	}

	return errors.Join(explErr, actErr)
}

func (x *executor) explain(
	ctx context.Context,
	client platform.Client,
	explanation policy.Explanation,
	m *domain.Moderated,
	thread *int64,
) error {
	eventIndex := m.EventIndex
	switch explanation {
	case policy.ExplanationQuoteReply:
		return client.SendMessage(ctx, platform.OutgoingMessage{
			Text:      m.Reason,
			RepliesTo: &eventIndex,
			Thread:    thread,
			Finalised: true,
		})
	case policy.ExplanationThreadReply:
		msg := platform.OutgoingMessage{
			Text:      m.Reason,
			Finalised: true,
		}
		if thread != nil {
			msg.RepliesTo = &eventIndex
			msg.Thread = thread
		} else {
			root := m.MessageIndex
			msg.Thread = &root
		}
		return client.SendMessage(ctx, msg)
	}
	return nil
}

func (x *executor) act(
	ctx context.Context,
	client platform.Client,
	action policy.Action,
	m *domain.Moderated,
	thread *int64,
) error {
	switch a := action.(type) {
	case policy.Reaction:
		emoji := a.Emoji
		if emoji == "" {
			emoji = policy.DefaultReaction
		}
		return client.AddReaction(ctx, m.MessageID, emoji, thread)
	case policy.Deletion:
		return client.DeleteMessages(ctx, []string{m.MessageID}, thread)
	}
	return fmt.Errorf("unsupported action %T", action)
}
