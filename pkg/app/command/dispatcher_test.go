package command

import (
	"context"
	"errors"
	"io"
	"testing"

	policyMocks "github.com/NeuralTrust/TrustMod/pkg/app/policy/mocks"
	"github.com/NeuralTrust/TrustMod/pkg/app/report"
	reportMocks "github.com/NeuralTrust/TrustMod/pkg/app/report/mocks"
	domainModeration "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	moderationMocks "github.com/NeuralTrust/TrustMod/pkg/domain/moderation/mocks"
	domainPolicy "github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	platformMocks "github.com/NeuralTrust/TrustMod/pkg/infra/platform/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var chat = scope.GroupChat("chat-1")

type fixture struct {
	policies   *policyMocks.Service
	ledger     *moderationMocks.Repository
	reporter   *reportMocks.Reporter
	client     *platformMocks.Client
	dispatcher Dispatcher
}

func newFixture(t *testing.T) *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	f := &fixture{
		policies: policyMocks.NewService(t),
		ledger:   moderationMocks.NewRepository(t),
		reporter: reportMocks.NewReporter(t),
		client:   platformMocks.NewClient(t),
	}
	f.dispatcher = NewDispatcher(logger, f.policies, f.ledger, f.reporter)
	return f
}

func (f *fixture) chatIs(kind string, public bool) {
	f.client.On("ChatSummary", mock.Anything).Return(&platform.ChatSummary{Kind: kind, IsPublic: public}, nil)
}

func claimsFor(name string, args map[string]interface{}) *jwt.CommandClaims {
	return &jwt.CommandClaims{
		Scope:   chat,
		Command: jwt.Command{Name: name, Args: args, Initiator: "alice"},
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	_, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("launch", nil))

	assert.ErrorIs(t, err, ErrCommandNotFound)
}

func TestExecute_Help(t *testing.T) {
	f := newFixture(t)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("help", nil))

	require.NoError(t, err)
	assert.True(t, resp.Ephemeral)
	assert.True(t, resp.BlockLevelMarkdown)
	assert.Contains(t, resp.Text, "`/pause`: Pauses moderation in this chat")
	assert.Contains(t, resp.Text, "`/explain`: Explain the reason for moderation on a single message")
}

func TestExecute_PolicyCommandsRequirePublicChat(t *testing.T) {
	for _, name := range []string{"pause", "resume", "status", "rules", "action", "threshold", "explanation"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.chatIs(platform.ChatKindGroup, false)

			resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor(name, nil))

			require.NoError(t, err)
			assert.Equal(t, report.ReplyPrivateChat, resp.Text)
		})
	}
}

func TestExecute_DirectChatIsNotPublic(t *testing.T) {
	f := newFixture(t)
	f.chatIs(platform.ChatKindDirect, true)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("status", nil))

	require.NoError(t, err)
	assert.Equal(t, report.ReplyPrivateChat, resp.Text)
}

func TestExecute_PauseAndResume(t *testing.T) {
	f := newFixture(t)
	f.chatIs(platform.ChatKindGroup, true)
	off, on := false, true
	f.policies.On("Update", mock.Anything, chat, domainPolicy.Update{Moderating: &off}).Return(domainPolicy.Default(), nil).Once()
	f.policies.On("Update", mock.Anything, chat, domainPolicy.Update{Moderating: &on}).Return(domainPolicy.Default(), nil).Once()

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("pause", nil))
	require.NoError(t, err)
	assert.Equal(t, ReplyPaused, resp.Text)

	resp, err = f.dispatcher.Execute(context.Background(), f.client, claimsFor("resume", nil))
	require.NoError(t, err)
	assert.Equal(t, ReplyResumed, resp.Text)
}

func TestExecute_Status(t *testing.T) {
	f := newFixture(t)
	f.chatIs(platform.ChatKindChannel, true)
	f.policies.On("Get", mock.Anything, chat).Return(domainPolicy.Default(), nil)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("status", nil))

	require.NoError(t, err)
	assert.Equal(t, domainPolicy.Default().Describe(), resp.Text)
}

func TestExecute_Rules(t *testing.T) {
	f := newFixture(t)
	f.chatIs(platform.ChatKindGroup, true)
	rules := domainPolicy.RulesGeneralAndChat
	updated := domainPolicy.Default()
	updated.Rules = rules
	f.policies.On("Update", mock.Anything, chat, domainPolicy.Update{Rules: &rules}).Return(updated, nil)

	// numbers arrive as float64 after JSON decoding
	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("rules", map[string]interface{}{"rules": float64(2)}))

	require.NoError(t, err)
	assert.Contains(t, resp.Text, "- Rules: general and chat")
}

func TestExecute_InvalidArgumentsAreReplies(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{name: "rules", args: map[string]interface{}{"rules": 7}, want: "Rules must be 0, 1 or 2"},
		{name: "rules", args: nil, want: "The rules argument is required"},
		{name: "action", args: map[string]interface{}{"action": 3}, want: "Action must be 0 or 1"},
		{name: "explanation", args: map[string]interface{}{"explanation": "9"}, want: "Explanation must be 0, 1 or 2"},
		{name: "threshold", args: map[string]interface{}{}, want: "The threshold argument is required"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f := newFixture(t)
			f.chatIs(platform.ChatKindGroup, true)

			resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor(tt.name, tt.args))

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Text)
		})
	}
}

func TestExecute_ThresholdOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.chatIs(platform.ChatKindGroup, true)
	f.policies.On("Update", mock.Anything, chat, mock.Anything).Return(domainPolicy.Policy{}, domainPolicy.ErrInvalidThreshold)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("threshold", map[string]interface{}{"threshold": 1.5}))

	require.NoError(t, err)
	assert.Equal(t, "Threshold must be between 0 and 1", resp.Text)
}

func TestExecute_ActionWithReaction(t *testing.T) {
	f := newFixture(t)
	f.chatIs(platform.ChatKindGroup, true)
	updated := domainPolicy.Default()
	updated.Action = domainPolicy.Reaction{Emoji: "🚫"}
	f.policies.On("Update", mock.Anything, chat, domainPolicy.Update{Action: domainPolicy.Reaction{Emoji: "🚫"}}).Return(updated, nil)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("action", map[string]interface{}{"action": 0, "reaction": "🚫"}))

	require.NoError(t, err)
	assert.Contains(t, resp.Text, "- Action: react with 🚫")
}

func TestExecute_UpdateFailure(t *testing.T) {
	f := newFixture(t)
	f.chatIs(platform.ChatKindGroup, true)
	f.policies.On("Update", mock.Anything, chat, mock.Anything).Return(domainPolicy.Policy{}, errors.New("db down"))

	_, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("pause", nil))

	assert.EqualError(t, err, "db down")
}

func TestExecute_Explain(t *testing.T) {
	f := newFixture(t)
	f.ledger.On("LoadReason", mock.Anything, chat, "42").Return("Message flagged", true, nil)
	f.ledger.On("LoadReason", mock.Anything, chat, "43").Return("", false, nil)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("explain", map[string]interface{}{"message_id": "42"}))
	require.NoError(t, err)
	assert.Equal(t, "Message flagged", resp.Text)

	resp, err = f.dispatcher.Execute(context.Background(), f.client, claimsFor("explain", map[string]interface{}{"message_id": 43}))
	require.NoError(t, err)
	assert.Equal(t, ReplyNoExplanation, resp.Text)

	resp, err = f.dispatcher.Execute(context.Background(), f.client, claimsFor("explain", nil))
	require.NoError(t, err)
	assert.Equal(t, ReplyMissingMsgID, resp.Text)
}

func TestExecute_TopOffenders(t *testing.T) {
	f := newFixture(t)
	f.ledger.On("TopOffenders", mock.Anything, chat, domainModeration.DefaultTopOffendersLimit).Return([]domainModeration.Offender{
		{SenderID: "bob", Count: 3},
		{SenderID: "carol", Count: 1},
	}, nil)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("top_offenders", nil))

	require.NoError(t, err)
	assert.Equal(t, "@UserId(bob)  **3**\n@UserId(carol)  **1**", resp.Text)
}

func TestExecute_TopOffendersEmpty(t *testing.T) {
	f := newFixture(t)
	f.ledger.On("TopOffenders", mock.Anything, chat, domainModeration.DefaultTopOffendersLimit).Return([]domainModeration.Offender{}, nil)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("top_offenders", nil))

	require.NoError(t, err)
	assert.Equal(t, ReplyNoOffenders, resp.Text)
}

func TestExecute_Report(t *testing.T) {
	f := newFixture(t)
	url := "https://oc.app/chats/group/chat-1/12"
	f.reporter.On("Report", mock.Anything, report.Request{
		CommandClient: f.client,
		Initiator:     "alice",
		MessageURL:    url,
	}).Return(report.ReplyReported, nil)

	resp, err := f.dispatcher.Execute(context.Background(), f.client, claimsFor("report", map[string]interface{}{"message_url": " " + url}))

	require.NoError(t, err)
	assert.Equal(t, report.ReplyReported, resp.Text)
	assert.True(t, resp.Ephemeral)
}
