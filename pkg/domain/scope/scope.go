package scope

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidScope = errors.New("invalid scope")

type Kind string

const (
	KindGroupChat  Kind = "group_chat"
	KindChannel    Kind = "channel"
	KindDirectChat Kind = "direct_chat"
	KindCommunity  Kind = "community"
)

// Scope identifies where a policy or a moderation decision applies. Two scopes
// are the same scope iff their keys are equal.
type Scope struct {
	Kind        Kind   `json:"kind"`
	ChatID      string `json:"chat_id,omitempty"`
	CommunityID string `json:"community_id,omitempty"`
	ChannelID   string `json:"channel_id,omitempty"`
}

func GroupChat(chatID string) Scope {
	return Scope{Kind: KindGroupChat, ChatID: chatID}
}

func DirectChat(chatID string) Scope {
	return Scope{Kind: KindDirectChat, ChatID: chatID}
}

func Channel(communityID, channelID string) Scope {
	return Scope{Kind: KindChannel, CommunityID: communityID, ChannelID: channelID}
}

func Community(communityID string) Scope {
	return Scope{Kind: KindCommunity, CommunityID: communityID}
}

func (s Scope) Validate() error {
	switch s.Kind {
	case KindGroupChat, KindDirectChat:
		if s.ChatID == "" {
			return fmt.Errorf("%w: %s requires a chat id", ErrInvalidScope, s.Kind)
		}
	case KindChannel:
		if s.CommunityID == "" || s.ChannelID == "" {
			return fmt.Errorf("%w: channel requires community and channel ids", ErrInvalidScope)
		}
	case KindCommunity:
		if s.CommunityID == "" {
			return fmt.Errorf("%w: community requires a community id", ErrInvalidScope)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidScope, s.Kind)
	}
	return nil
}

// canonical drops the fields that do not belong to the scope kind.
func (s Scope) canonical() Scope {
	switch s.Kind {
	case KindGroupChat, KindDirectChat:
		return Scope{Kind: s.Kind, ChatID: s.ChatID}
	case KindChannel:
		return Scope{Kind: s.Kind, CommunityID: s.CommunityID, ChannelID: s.ChannelID}
	case KindCommunity:
		return Scope{Kind: s.Kind, CommunityID: s.CommunityID}
	}
	return s
}

// Key is the canonical storage encoding: base64url of the JSON form.
func (s Scope) Key() string {
	raw, err := json.Marshal(s.canonical())
	if err != nil {
		// a struct of strings always marshals
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func (s Scope) Equal(other Scope) bool {
	return s.Key() == other.Key()
}

func (s Scope) String() string {
	switch s.Kind {
	case KindChannel:
		return fmt.Sprintf("channel:%s/%s", s.CommunityID, s.ChannelID)
	case KindCommunity:
		return fmt.Sprintf("community:%s", s.CommunityID)
	default:
		return fmt.Sprintf("%s:%s", s.Kind, s.ChatID)
	}
}

func (s Scope) IsChannel() bool { return s.Kind == KindChannel }

// IsChat reports whether messages can be posted to the scope.
func (s Scope) IsChat() bool {
	return s.Kind == KindGroupChat || s.Kind == KindChannel || s.Kind == KindDirectChat
}

// Location returns the scope the bot is installed in: the community for
// channels, the chat itself otherwise.
func (s Scope) Location() Scope {
	if s.Kind == KindChannel {
		return Community(s.CommunityID)
	}
	return s.canonical()
}

// ParentCommunity returns the community of a channel.
func (s Scope) ParentCommunity() (Scope, bool) {
	if s.Kind != KindChannel {
		return Scope{}, false
	}
	return Community(s.CommunityID), true
}

func ParseKey(key string) (Scope, error) {
	raw, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return Scope{}, fmt.Errorf("%w: %v", ErrInvalidScope, err)
	}
	var s Scope
	if err := json.Unmarshal(raw, &s); err != nil {
		return Scope{}, fmt.Errorf("%w: %v", ErrInvalidScope, err)
	}
	if err := s.Validate(); err != nil {
		return Scope{}, err
	}
	return s.canonical(), nil
}
