package command

type Permissions struct {
	Chat      []string `json:"chat"`
	Community []string `json:"community"`
	Message   []string `json:"message"`
}

type IntegerChoice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type IntegerParam struct {
	MinValue int             `json:"min_value"`
	MaxValue int             `json:"max_value"`
	Choices  []IntegerChoice `json:"choices"`
}

type DecimalParam struct {
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`
}

type StringParam struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	MultiLine bool `json:"multi_line"`
}

// ParamType carries exactly one of its fields.
type ParamType struct {
	IntegerParam *IntegerParam `json:"IntegerParam,omitempty"`
	DecimalParam *DecimalParam `json:"DecimalParam,omitempty"`
	StringParam  *StringParam  `json:"StringParam,omitempty"`
}

type Param struct {
	Name        string    `json:"name"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
	Placeholder string    `json:"placeholder"`
	ParamType   ParamType `json:"param_type"`
}

type Definition struct {
	Name        string      `json:"name"`
	DefaultRole string      `json:"default_role"`
	Description string      `json:"description"`
	Permissions Permissions `json:"permissions"`
	Params      []Param     `json:"params"`
}

type AutonomousConfig struct {
	Permissions Permissions `json:"permissions"`
}

type Subscriptions struct {
	Community []string `json:"community"`
	Chat      []string `json:"chat"`
}

type BotDefinition struct {
	Description          string           `json:"description"`
	AutonomousConfig     AutonomousConfig `json:"autonomous_config"`
	DefaultSubscriptions Subscriptions    `json:"default_subscriptions"`
	Commands             []Definition     `json:"commands"`
}

const botDescription = "This bot will perform automated moderation in your community. \n\n" +
	"It can be configured to apply general purpose moderation according to [OpenAI's standard content classifications](https://platform.openai.com/docs/guides/moderation#content-classifications) " +
	"and also to account for the specific rules in your groups and communities. \n\n" +
	"If a message is found to violate the rules, you can configure the bot to either delete the message immediately or just add the reaction of your choice to the message. " +
	"This is useful so that you can get a feel for how the bot behaves before you allow it to start deleting messages.\n\n" +
	"Note that this bot uses third party moderation and completion APIs for classification. " +
	"This means that message data will be sent to those providers so you should only trust this bot to the extent that you trust them."

func readSummary() Permissions {
	return Permissions{Chat: []string{"ReadChatSummary"}, Community: []string{}, Message: []string{}}
}

func noPermissions() Permissions {
	return Permissions{Chat: []string{}, Community: []string{}, Message: []string{}}
}

// Schema is served to the platform when the bot is registered. Command names
// must match the dispatcher.
func Schema() BotDefinition {
	return BotDefinition{
		Description: botDescription,
		AutonomousConfig: AutonomousConfig{
			Permissions: Permissions{
				Chat:      []string{"ReactToMessages", "ReadMessages", "ReadChatSummary", "DeleteMessages"},
				Community: []string{"ReadCommunitySummary"},
				Message:   []string{"Text"},
			},
		},
		DefaultSubscriptions: Subscriptions{Community: []string{}, Chat: []string{"Message"}},
		Commands: []Definition{
			{Name: "resume", DefaultRole: "Owner", Description: "Resume moderation in this chat", Permissions: readSummary(), Params: []Param{}},
			{Name: "pause", DefaultRole: "Owner", Description: "Pause moderation in this chat", Permissions: readSummary(), Params: []Param{}},
			{Name: "status", DefaultRole: "Owner", Description: "Display current configuration in this chat", Permissions: readSummary(), Params: []Param{}},
			{
				Name:        "rules",
				DefaultRole: "Owner",
				Description: "Configure rules applied",
				Permissions: readSummary(),
				Params: []Param{{
					Name:        "rules",
					Required:    true,
					Description: "The rules used to moderate messages",
					Placeholder: "Select the rules to use to moderate messages in this chat",
					ParamType: ParamType{IntegerParam: &IntegerParam{MinValue: 0, MaxValue: 2, Choices: []IntegerChoice{
						{Name: "General rules", Value: 0},
						{Name: "Chat rules", Value: 1},
						{Name: "General rules and chat rules", Value: 2},
					}}},
				}},
			},
			{
				Name:        "explanation",
				DefaultRole: "Owner",
				Description: "Configure if and how the bot explains decisions",
				Permissions: readSummary(),
				Params: []Param{{
					Name:        "explanation",
					Required:    true,
					Description: "Define if and how the bot should explain its decisions",
					Placeholder: "What action should the bot take to explain its decisions",
					ParamType: ParamType{IntegerParam: &IntegerParam{MinValue: 0, MaxValue: 2, Choices: []IntegerChoice{
						{Name: "No explanation", Value: 0},
						{Name: "Quote reply to the moderated message", Value: 1},
						{Name: "Thread reply to the moderated message", Value: 2},
					}}},
				}},
			},
			{
				Name:        "action",
				DefaultRole: "Owner",
				Description: "Configure action taken when rules are broken",
				Permissions: readSummary(),
				Params: []Param{
					{
						Name:        "action",
						Required:    true,
						Description: "What action to take when a message breaks the rules",
						Placeholder: "Specify what action to take when a message breaks the rules",
						ParamType: ParamType{IntegerParam: &IntegerParam{MinValue: 0, MaxValue: 1, Choices: []IntegerChoice{
							{Name: "Add a special reaction to the message", Value: 0},
							{Name: "Delete the message", Value: 1},
						}}},
					},
					{
						Name:        "reaction",
						Description: "The reaction to add to a message that breaks the rules",
						Placeholder: "Specify which emoji to react with to a message that breaks the rules",
						ParamType:   ParamType{StringParam: &StringParam{MinLength: 1, MaxLength: 500}},
					},
				},
			},
			{
				Name:        "threshold",
				DefaultRole: "Owner",
				Description: "Configure to threshold for general rules",
				Permissions: readSummary(),
				Params: []Param{{
					Name:     "threshold",
					Required: true,
					Description: "This is the category threshold above which a message will be considered unacceptable. " +
						"It should be a value between 0 and 1 with 0 being the most strict and 1 being the most permissive.",
					Placeholder: "Enter a threshold value. 0.8 is probably a good default.",
					ParamType:   ParamType{DecimalParam: &DecimalParam{MinValue: 0, MaxValue: 1}},
				}},
			},
			{
				Name:        "explain",
				DefaultRole: "Participant",
				Description: "Explain the reason for moderation on a single message",
				Permissions: readSummary(),
				Params: []Param{{
					Name:        "message_id",
					Required:    true,
					Description: "The message ID of the message that was moderated",
					Placeholder: "Enter the message ID of the message that was moderated",
					ParamType:   ParamType{StringParam: &StringParam{MinLength: 0, MaxLength: 100}},
				}},
			},
			{Name: "help", DefaultRole: "Participant", Description: "Display a summary of commands", Permissions: noPermissions(), Params: []Param{}},
			{Name: "top_offenders", DefaultRole: "Participant", Description: "Find out who the persistent offenders are in your chat", Permissions: readSummary(), Params: []Param{}},
			{
				Name:        "report",
				DefaultRole: "Participant",
				Description: "Report a message for moderation",
				Permissions: readSummary(),
				Params: []Param{{
					Name:        "message_url",
					Required:    true,
					Description: "The url of the message you want to report",
					Placeholder: "Use 'Copy message url' on the message and paste it here",
					ParamType:   ParamType{StringParam: &StringParam{MinLength: 1, MaxLength: 500}},
				}},
			},
		},
	}
}
