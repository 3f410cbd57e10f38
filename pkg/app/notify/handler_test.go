package notify

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/NeuralTrust/TrustMod/pkg/app/moderation"
	moderationMocks "github.com/NeuralTrust/TrustMod/pkg/app/moderation/mocks"
	policyMocks "github.com/NeuralTrust/TrustMod/pkg/app/policy/mocks"
	domainErrors "github.com/NeuralTrust/TrustMod/pkg/domain/errors"
	"github.com/NeuralTrust/TrustMod/pkg/domain/installation"
	installationMocks "github.com/NeuralTrust/TrustMod/pkg/domain/installation/mocks"
	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	domainModeration "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	platformMocks "github.com/NeuralTrust/TrustMod/pkg/infra/platform/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const botID = "bot-1"

type fixture struct {
	installations *installationMocks.Repository
	policies      *policyMocks.Service
	factory       *platformMocks.Factory
	moderator     *moderationMocks.Moderator
	handler       Handler
}

func newFixture(t *testing.T) *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	f := &fixture{
		installations: installationMocks.NewRepository(t),
		policies:      policyMocks.NewService(t),
		factory:       platformMocks.NewFactory(t),
		moderator:     moderationMocks.NewModerator(t),
	}
	f.handler = NewHandler(logger, f.installations, f.policies, f.factory, f.moderator, botID)
	return f
}

func chatEvent(chat scope.Scope, initiatedBy string) *jwt.NotificationClaims {
	return &jwt.NotificationClaims{
		Kind:        jwt.NotificationBotChatEvent,
		Chat:        &chat,
		InitiatedBy: initiatedBy,
		Event: &message.TimelineEvent{
			Index: 7,
			Kind:  message.TimelineKindMessage,
			Message: &message.Message{
				ID:      "msg-1",
				Index:   3,
				Sender:  initiatedBy,
				Content: message.Content{Kind: message.KindText, Text: "hello"},
			},
		},
	}
}

func TestHandle_Installed(t *testing.T) {
	f := newFixture(t)
	channel := scope.Channel("comm-1", "chan-1")
	f.installations.On("Save", mock.Anything, mock.MatchedBy(func(i *installation.Installation) bool {
		return i.Location == scope.Community("comm-1").Key() && i.APIGateway == "https://gw"
	})).Return(nil)

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{
		Kind:                         jwt.NotificationBotInstalled,
		Location:                     &channel,
		APIGateway:                   "https://gw",
		GrantedAutonomousPermissions: installation.Permissions{Chat: 15},
	})

	require.NoError(t, err)
}

func TestHandle_InstalledWithoutGateway(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{
		Kind:     jwt.NotificationBotInstalled,
		Location: &chat,
	})

	assert.Error(t, err)
	f.installations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestHandle_Uninstalled(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")
	f.installations.On("Delete", mock.Anything, chat.Key()).Return(nil)
	f.policies.On("InvalidateLocation", mock.Anything, chat.Key()).Return(nil).Once()

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{
		Kind:     jwt.NotificationBotUninstalled,
		Location: &chat,
	})

	require.NoError(t, err)
}

func TestHandle_UninstalledChannelInvalidatesCommunity(t *testing.T) {
	f := newFixture(t)
	channel := scope.Channel("com", "chan")
	community := scope.Community("com").Key()
	f.installations.On("Delete", mock.Anything, community).Return(nil)
	f.policies.On("InvalidateLocation", mock.Anything, community).Return(nil).Once()

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{
		Kind:     jwt.NotificationBotUninstalled,
		Location: &channel,
	})

	require.NoError(t, err)
}

func TestHandle_UninstalledTwiceSucceeds(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")
	f.installations.On("Delete", mock.Anything, chat.Key()).
		Return(domainErrors.NewNotFoundError("installation", chat.Key()))
	f.policies.On("InvalidateLocation", mock.Anything, chat.Key()).Return(nil).Once()

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{
		Kind:     jwt.NotificationBotUninstalled,
		Location: &chat,
	})

	require.NoError(t, err)
}

func TestHandle_UninstalledDeleteFailure(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")
	f.installations.On("Delete", mock.Anything, chat.Key()).Return(errors.New("db down"))

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{
		Kind:     jwt.NotificationBotUninstalled,
		Location: &chat,
	})

	assert.EqualError(t, err, "failed to delete installation: db down")
	f.policies.AssertNotCalled(t, "InvalidateLocation", mock.Anything, mock.Anything)
}

func TestHandle_UninstalledCacheFailure(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")
	f.installations.On("Delete", mock.Anything, chat.Key()).Return(nil)
	f.policies.On("InvalidateLocation", mock.Anything, chat.Key()).
		Return(errors.New("failed to invalidate cached policies: connection refused"))

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{
		Kind:     jwt.NotificationBotUninstalled,
		Location: &chat,
	})

	assert.EqualError(t, err, "failed to invalidate cached policies: connection refused")
}

func TestHandle_MissingLocation(t *testing.T) {
	f := newFixture(t)

	err := f.handler.Handle(context.Background(), &jwt.NotificationClaims{Kind: jwt.NotificationBotUninstalled})

	assert.ErrorIs(t, err, ErrMissingLocation)
}

func TestHandle_ChatEventModerates(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")
	client := platformMocks.NewClient(t)
	f.installations.On("Get", mock.Anything, chat.Key()).
		Return(&installation.Installation{Location: chat.Key(), APIGateway: "https://gw"}, nil)
	f.factory.On("ForInstallation", chat, "https://gw").Return(client)
	f.moderator.On("Moderate", mock.Anything, mock.MatchedBy(func(req moderation.Request) bool {
		return req.Client == client &&
			req.Event.EventIndex == 7 &&
			req.Event.Message.ID == "msg-1" &&
			req.Source == domainModeration.SourceAutomated
	})).Return(domainModeration.StatusNotModerated, nil)

	err := f.handler.Handle(context.Background(), chatEvent(chat, "alice"))

	require.NoError(t, err)
}

func TestHandle_ChatEventUsesNotifiedGateway(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")
	client := platformMocks.NewClient(t)
	claims := chatEvent(chat, "alice")
	claims.APIGateway = "https://other-gw"
	f.factory.On("ForInstallation", chat, "https://other-gw").Return(client)
	f.moderator.On("Moderate", mock.Anything, mock.Anything).Return(domainModeration.StatusModerated, nil)

	require.NoError(t, f.handler.Handle(context.Background(), claims))
	f.installations.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestHandle_ChatEventFromBotIsIgnored(t *testing.T) {
	f := newFixture(t)

	err := f.handler.Handle(context.Background(), chatEvent(scope.GroupChat("chat-1"), botID))

	require.NoError(t, err)
	f.moderator.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
}

func TestHandle_ChatEventWithoutMessageIsIgnored(t *testing.T) {
	f := newFixture(t)
	claims := chatEvent(scope.GroupChat("chat-1"), "alice")
	claims.Event = &message.TimelineEvent{Index: 8, Kind: "participant_joined"}

	require.NoError(t, f.handler.Handle(context.Background(), claims))
}

func TestHandle_ChatEventNotInstalled(t *testing.T) {
	f := newFixture(t)
	chat := scope.GroupChat("chat-1")
	f.installations.On("Get", mock.Anything, chat.Key()).Return(nil, domainErrors.NewNotFoundError("installation", chat.Key()))

	err := f.handler.Handle(context.Background(), chatEvent(chat, "alice"))

	require.Error(t, err)
	assert.True(t, domainErrors.IsNotFoundError(err))
}

func TestHandle_UnknownKindIsIgnored(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.handler.Handle(context.Background(), &jwt.NotificationClaims{Kind: "bot_upgraded"}))
}
