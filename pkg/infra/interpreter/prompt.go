package interpreter

import (
	"fmt"
	"strings"
)

const SystemPrompt = `
You are a rule-based chat moderation assistant.

Your job is to decide whether a message should be allowed, based solely on:
- The provided chat rules
- The message type (text, image, video, etc.)
- The context (chat or thread)
- The message content

Instructions:
- Only enforce what's *explicitly* in the rules.
- Do not interpret, assume, or generalise.
- Do not apply moral, ethical, or safety judgements unless clearly stated in a rule.
- If a rule doesn't apply directly, allow the message.

Examples:
- If rules ban dog content, but the message doesn't mention dogs, allow it.
- If the message is abusive, but no rule bans abuse, allow it.
- If media is banned in chat, but this is an image in a thread, allow it.

When in doubt, allow the message.

Output format (JSON):
{
  "allowed": true | false,
  "reason": "short explanation of your decision"
}
`

const (
	contextThread = "Thread (not chat)"
	contextChat   = "Chat (not thread)"
)

// UserMessage renders the per-message prompt. Absent text renders as an
// empty content line.
func UserMessage(req Request) string {
	ctxLine := contextChat
	if req.InThread {
		ctxLine = contextThread
	}
	content := ""
	if req.HasText {
		content = req.Text
	}
	return fmt.Sprintf(
		"\nChat moderation rules: %s\nMessage: \n- Type: %s\n- Context: %s\n- Content: %s\n",
		strings.Join(req.Rules, "\n\n"),
		req.Hint,
		ctxLine,
		content,
	)
}
