package policy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRules       = errors.New("rules must be 0, 1 or 2")
	ErrInvalidAction      = errors.New("action must be 0 or 1")
	ErrInvalidExplanation = errors.New("explanation must be 0, 1 or 2")
	ErrInvalidThreshold   = errors.New("threshold must be between 0 and 1")
	ErrEmptyReaction      = errors.New("reaction must not be empty")
)

const (
	DefaultReaction  = "💩"
	DefaultThreshold = 0.8
)

// Rules selects which checks run. The numeric values are exposed through
// bot commands and must not be renumbered.
type Rules int

const (
	RulesGeneral Rules = iota
	RulesChat
	RulesGeneralAndChat
)

func (r Rules) Valid() bool {
	return r >= RulesGeneral && r <= RulesGeneralAndChat
}

func (r Rules) IncludesGeneral() bool { return r == RulesGeneral || r == RulesGeneralAndChat }

func (r Rules) IncludesChat() bool { return r == RulesChat || r == RulesGeneralAndChat }

func (r Rules) String() string {
	switch r {
	case RulesGeneral:
		return "general"
	case RulesChat:
		return "chat"
	case RulesGeneralAndChat:
		return "general and chat"
	}
	return fmt.Sprintf("rules(%d)", int(r))
}

func RulesFromCode(code int) (Rules, error) {
	r := Rules(code)
	if !r.Valid() {
		return 0, ErrInvalidRules
	}
	return r, nil
}

type Explanation int

const (
	ExplanationNone Explanation = iota
	ExplanationQuoteReply
	ExplanationThreadReply
)

func (e Explanation) Valid() bool {
	return e >= ExplanationNone && e <= ExplanationThreadReply
}

func (e Explanation) String() string {
	switch e {
	case ExplanationNone:
		return "none"
	case ExplanationQuoteReply:
		return "quote reply"
	case ExplanationThreadReply:
		return "thread reply"
	}
	return fmt.Sprintf("explanation(%d)", int(e))
}

func ExplanationFromCode(code int) (Explanation, error) {
	e := Explanation(code)
	if !e.Valid() {
		return 0, ErrInvalidExplanation
	}
	return e, nil
}

const (
	ActionCodeReaction = 0
	ActionCodeDeletion = 1
)

// Action is the consequence applied to a moderated message. It is either a
// Reaction or a Deletion.
type Action interface {
	Code() int
	String() string
	isAction()
}

type Reaction struct {
	Emoji string
}

func (Reaction) Code() int { return ActionCodeReaction }

func (r Reaction) String() string { return "react with " + r.Emoji }

func (Reaction) isAction() {}

type Deletion struct{}

func (Deletion) Code() int { return ActionCodeDeletion }

func (Deletion) String() string { return "delete the message" }

func (Deletion) isAction() {}

// ActionFromCode decodes the command encoding. An empty emoji falls back to
// the default reaction.
func ActionFromCode(code int, emoji string) (Action, error) {
	switch code {
	case ActionCodeReaction:
		emoji = strings.TrimSpace(emoji)
		if emoji == "" {
			emoji = DefaultReaction
		}
		return Reaction{Emoji: emoji}, nil
	case ActionCodeDeletion:
		return Deletion{}, nil
	}
	return nil, ErrInvalidAction
}

type Policy struct {
	Moderating  bool
	Rules       Rules
	Threshold   float64
	Action      Action
	Explanation Explanation
}

func Default() Policy {
	return Policy{
		Moderating:  true,
		Rules:       RulesGeneral,
		Threshold:   DefaultThreshold,
		Action:      Reaction{Emoji: DefaultReaction},
		Explanation: ExplanationNone,
	}
}

func (p Policy) Validate() error {
	if !p.Rules.Valid() {
		return ErrInvalidRules
	}
	if !p.Explanation.Valid() {
		return ErrInvalidExplanation
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return ErrInvalidThreshold
	}
	switch a := p.Action.(type) {
	case Reaction:
		if a.Emoji == "" {
			return ErrEmptyReaction
		}
	case Deletion:
	default:
		return ErrInvalidAction
	}
	return nil
}

func (p Policy) Apply(u Update) Policy {
	if u.Moderating != nil {
		p.Moderating = *u.Moderating
	}
	if u.Rules != nil {
		p.Rules = *u.Rules
	}
	if u.Threshold != nil {
		p.Threshold = *u.Threshold
	}
	if u.Action != nil {
		p.Action = u.Action
	}
	if u.Explanation != nil {
		p.Explanation = *u.Explanation
	}
	return p
}

func (p Policy) Describe() string {
	state := "active"
	if !p.Moderating {
		state = "paused"
	}
	action := "none"
	if p.Action != nil {
		action = p.Action.String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Moderation is **%s** in this chat\n", state)
	fmt.Fprintf(&sb, "- Rules: %s\n", p.Rules)
	fmt.Fprintf(&sb, "- Threshold: %.2f\n", p.Threshold)
	fmt.Fprintf(&sb, "- Action: %s\n", action)
	fmt.Fprintf(&sb, "- Explanation: %s", p.Explanation)
	return sb.String()
}

// Update is a partial policy change. Nil fields are left untouched.
type Update struct {
	Moderating  *bool
	Rules       *Rules
	Threshold   *float64
	Action      Action
	Explanation *Explanation
}

func (u Update) Empty() bool {
	return u.Moderating == nil && u.Rules == nil && u.Threshold == nil && u.Action == nil && u.Explanation == nil
}

func (u Update) Validate() error {
	if u.Rules != nil && !u.Rules.Valid() {
		return ErrInvalidRules
	}
	if u.Explanation != nil && !u.Explanation.Valid() {
		return ErrInvalidExplanation
	}
	if u.Threshold != nil && (*u.Threshold < 0 || *u.Threshold > 1) {
		return ErrInvalidThreshold
	}
	if u.Action != nil {
		if r, ok := u.Action.(Reaction); ok && r.Emoji == "" {
			return ErrEmptyReaction
		}
	}
	return nil
}
