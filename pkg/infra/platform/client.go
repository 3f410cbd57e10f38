package platform

import (
	"context"
	"errors"

	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
)

var ErrPlatform = errors.New("platform request failed")

const (
	ChatKindGroup   = "group_chat"
	ChatKindChannel = "channel"
	ChatKindDirect  = "direct_chat"
)

type ChatRules struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
}

type ChatSummary struct {
	Kind     string    `json:"kind"`
	Name     string    `json:"name,omitempty"`
	IsPublic bool      `json:"is_public"`
	Rules    ChatRules `json:"rules"`
}

// IsPublicGroup reports whether the bot may operate in the chat.
func (s *ChatSummary) IsPublicGroup() bool {
	return s != nil && (s.Kind == ChatKindGroup || s.Kind == ChatKindChannel) && s.IsPublic
}

type CommunitySummary struct {
	Name     string    `json:"name,omitempty"`
	IsPublic bool      `json:"is_public"`
	Rules    ChatRules `json:"rules"`
}

// EventsWindow selects the events around a message.
type EventsWindow struct {
	MidPointMessageIndex int64 `json:"mid_point_message_index"`
	MaxMessages          int   `json:"max_messages"`
	MaxEvents            int   `json:"max_events"`
}

type OutgoingMessage struct {
	Text               string `json:"text"`
	RepliesTo          *int64 `json:"replies_to,omitempty"`
	Thread             *int64 `json:"thread,omitempty"`
	Finalised          bool   `json:"finalised"`
	BlockLevelMarkdown bool   `json:"block_level_markdown,omitempty"`
}

// Client talks to the platform on behalf of the bot, bound to one scope.
//
//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Scope() scope.Scope
	ChatSummary(ctx context.Context) (*ChatSummary, error)
	CommunitySummary(ctx context.Context, community scope.Scope) (*CommunitySummary, error)
	ChatEvents(ctx context.Context, window EventsWindow, thread *int64) ([]message.TimelineEvent, error)
	SendMessage(ctx context.Context, msg OutgoingMessage) error
	AddReaction(ctx context.Context, messageID, reaction string, thread *int64) error
	DeleteMessages(ctx context.Context, messageIDs []string, thread *int64) error
}
