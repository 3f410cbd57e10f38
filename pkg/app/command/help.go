package command

import "strings"

var helpLines = []string{
	"`/help`: Display this summary of commands",
	"`/pause`: Pauses moderation in this chat",
	"`/resume`: Resumes moderation in this chat",
	"`/status`: Display current configuration in this chat",
	"`/rules`: Configure rules applied",
	"`/action`: Configure action taken when rules are broken",
	"`/explanation`: Configure if and how the bot explains decisions",
	"`/threshold`: Configure to threshold for general rules",
	"`/explain`: Explain the reason for moderation on a single message",
	"`/top_offenders`: Find out who the persistent offenders are in your chat",
	"`/report`: Report a message for moderation",
}

func HelpText() string {
	return strings.Join(helpLines, "\n")
}
