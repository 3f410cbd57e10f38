package exporter

import (
	"context"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/google/uuid"
)

// Decision is the record published for every applied moderation.
type Decision struct {
	ID           string    `json:"id"`
	Scope        string    `json:"scope"`
	MessageID    string    `json:"message_id"`
	SenderID     string    `json:"sender_id"`
	EventIndex   int64     `json:"event_index"`
	MessageIndex int64     `json:"message_index"`
	Check        string    `json:"check"`
	Source       string    `json:"source"`
	Reason       string    `json:"reason"`
	Action       string    `json:"action"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewDecision(m *moderation.Moderated, source moderation.Source, action string, now time.Time) Decision {
	return Decision{
		ID:           uuid.NewString(),
		Scope:        m.Scope.Key(),
		MessageID:    m.MessageID,
		SenderID:     m.SenderID,
		EventIndex:   m.EventIndex,
		MessageIndex: m.MessageIndex,
		Check:        string(m.Check),
		Source:       string(source),
		Reason:       m.Reason,
		Action:       action,
		Timestamp:    now.UTC(),
	}
}

//go:generate mockery --name=Exporter --dir=. --output=./mocks --filename=exporter_mock.go --case=underscore --with-expecter
type Exporter interface {
	Export(ctx context.Context, d Decision) error
	Close()
}

type noop struct{}

// NewNoop returns an Exporter that drops every decision.
func NewNoop() Exporter {
	return noop{}
}

func (noop) Export(context.Context, Decision) error { return nil }

func (noop) Close() {}
