package moderation

import (
	"context"
	"errors"
	"testing"

	policyMocks "github.com/NeuralTrust/TrustMod/pkg/app/policy/mocks"
	domain "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	ledgerMocks "github.com/NeuralTrust/TrustMod/pkg/domain/moderation/mocks"
	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/classifier"
	classifierMocks "github.com/NeuralTrust/TrustMod/pkg/infra/classifier/mocks"
	"github.com/NeuralTrust/TrustMod/pkg/infra/exporter"
	exporterMocks "github.com/NeuralTrust/TrustMod/pkg/infra/exporter/mocks"
	interpreterMocks "github.com/NeuralTrust/TrustMod/pkg/infra/interpreter/mocks"
	platformMocks "github.com/NeuralTrust/TrustMod/pkg/infra/platform/mocks"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type moderatorFixture struct {
	policies   *policyMocks.Service
	ledger     *ledgerMocks.Repository
	classifier *classifierMocks.Client
	client     *platformMocks.Client
	exporter   *exporterMocks.Exporter
	moderator  Moderator
}

func newModeratorFixture(t *testing.T) *moderatorFixture {
	f := &moderatorFixture{
		policies:   policyMocks.NewService(t),
		ledger:     ledgerMocks.NewRepository(t),
		classifier: classifierMocks.NewClient(t),
		client:     platformMocks.NewClient(t),
		exporter:   exporterMocks.NewExporter(t),
	}
	f.client.On("Scope").Return(scope.GroupChat("chat-1")).Maybe()
	engine := NewEngine(newTestLogger(), f.classifier, interpreterMocks.NewInterpreter(t), EngineConfig{BotID: botID})
	f.moderator = NewModerator(newTestLogger(), f.policies, f.ledger, engine, NewExecutor(newTestLogger()), f.exporter)
	return f
}

func TestModerate_AppliesConsequenceOnce(t *testing.T) {
	f := newModeratorFixture(t)
	chat := scope.GroupChat("chat-1")

	f.policies.On("Get", mock.Anything, chat).Return(policy.Default(), nil)
	f.ledger.On("LoadReason", mock.Anything, chat, "msg-1").Return("", false, nil).Once()
	f.classifier.On("ScoreCategories", mock.Anything, mock.Anything).Return(classifier.Scores{"harassment": 0.9}, nil).Once()
	f.ledger.On("Record", mock.Anything, mock.MatchedBy(func(m domain.Moderated) bool {
		return m.MessageID == "msg-1" && m.SenderID == "alice" && m.Check == domain.CheckGeneral
	}), domain.SourceAutomated).Return(true, nil).Once()
	f.client.On("AddReaction", mock.Anything, "msg-1", policy.DefaultReaction, (*int64)(nil)).Return(nil).Once()
	f.exporter.On("Export", mock.Anything, mock.MatchedBy(func(d exporter.Decision) bool {
		return d.MessageID == "msg-1" && d.Source == "automated" && d.Action == "react with 💩"
	})).Return(nil).Once()

	status, err := f.moderator.Moderate(context.Background(), Request{
		Client: f.client,
		Event:  textEvent("alice", "you idiot"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusModerated, status)
}

func TestModerate_ReportOnModeratedMessage(t *testing.T) {
	f := newModeratorFixture(t)
	chat := scope.GroupChat("chat-1")

	f.policies.On("Get", mock.Anything, chat).Return(policy.Default(), nil)
	f.ledger.On("LoadReason", mock.Anything, chat, "msg-1").Return("earlier reason", true, nil).Once()

	status, err := f.moderator.Moderate(context.Background(), Request{
		Client: f.client,
		Event:  textEvent("alice", "you idiot"),
		Source: domain.SourceReport,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAlreadyModerated, status)
	f.classifier.AssertNumberOfCalls(t, "ScoreCategories", 0)
	f.client.AssertNotCalled(t, "AddReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.client.AssertNotCalled(t, "DeleteMessages", mock.Anything, mock.Anything, mock.Anything)
}

func TestModerate_ConflictOnRecordIsAlreadyModerated(t *testing.T) {
	f := newModeratorFixture(t)

	f.policies.On("Get", mock.Anything, mock.Anything).Return(policy.Default(), nil)
	f.ledger.On("LoadReason", mock.Anything, mock.Anything, "msg-1").Return("", false, nil)
	f.classifier.On("ScoreCategories", mock.Anything, mock.Anything).Return(classifier.Scores{"hate": 0.99}, nil)
	f.ledger.On("Record", mock.Anything, mock.Anything, domain.SourceReport).Return(false, nil).Once()

	status, err := f.moderator.Moderate(context.Background(), Request{
		Client: f.client,
		Event:  textEvent("alice", "hateful"),
		Source: domain.SourceReport,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAlreadyModerated, status)
	f.client.AssertNotCalled(t, "AddReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestModerate_PolicyFailureSkips(t *testing.T) {
	f := newModeratorFixture(t)
	f.policies.On("Get", mock.Anything, mock.Anything).Return(policy.Policy{}, errors.New("db down"))

	status, err := f.moderator.Moderate(context.Background(), Request{Client: f.client, Event: textEvent("alice", "x")})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSkipped, status)
}

func TestModerate_NotModerated(t *testing.T) {
	f := newModeratorFixture(t)
	f.policies.On("Get", mock.Anything, mock.Anything).Return(policy.Default(), nil)
	f.ledger.On("LoadReason", mock.Anything, mock.Anything, "msg-1").Return("", false, nil)
	f.classifier.On("ScoreCategories", mock.Anything, mock.Anything).Return(classifier.Scores{"hate": 0.01}, nil)

	status, err := f.moderator.Moderate(context.Background(), Request{Client: f.client, Event: textEvent("alice", "hello")})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotModerated, status)
	f.ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestModerate_RecordErrorIsReturned(t *testing.T) {
	f := newModeratorFixture(t)
	f.policies.On("Get", mock.Anything, mock.Anything).Return(policy.Default(), nil)
	f.ledger.On("LoadReason", mock.Anything, mock.Anything, "msg-1").Return("", false, nil)
	f.classifier.On("ScoreCategories", mock.Anything, mock.Anything).Return(classifier.Scores{"hate": 0.99}, nil)
	f.ledger.On("Record", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("db down"))

	_, err := f.moderator.Moderate(context.Background(), Request{Client: f.client, Event: textEvent("alice", "hateful")})

	assert.EqualError(t, err, "failed to record moderation event: db down")
	f.client.AssertNotCalled(t, "AddReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModerate_ExportFailureIsNotFatal(t *testing.T) {
	f := newModeratorFixture(t)
	f.policies.On("Get", mock.Anything, mock.Anything).Return(policy.Default(), nil)
	f.ledger.On("LoadReason", mock.Anything, mock.Anything, "msg-1").Return("", false, nil)
	f.classifier.On("ScoreCategories", mock.Anything, mock.Anything).Return(classifier.Scores{"hate": 0.99}, nil)
	f.ledger.On("Record", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.client.On("AddReaction", mock.Anything, "msg-1", policy.DefaultReaction, (*int64)(nil)).Return(errors.New("forbidden"))
	f.exporter.On("Export", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	status, err := f.moderator.Moderate(context.Background(), Request{Client: f.client, Event: textEvent("alice", "hateful")})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusModerated, status)
}

func TestModerate_LogsPartiallyAppliedConsequence(t *testing.T) {
	f := newModeratorFixture(t)
	logger, hook := test.NewNullLogger()
	engine := NewEngine(newTestLogger(), f.classifier, interpreterMocks.NewInterpreter(t), EngineConfig{BotID: botID})
	moderator := NewModerator(logger, f.policies, f.ledger, engine, NewExecutor(newTestLogger()), f.exporter)

	f.policies.On("Get", mock.Anything, mock.Anything).Return(policy.Default(), nil)
	f.ledger.On("LoadReason", mock.Anything, mock.Anything, "msg-1").Return("", false, nil)
	f.classifier.On("ScoreCategories", mock.Anything, mock.Anything).Return(classifier.Scores{"hate": 0.99}, nil)
	f.ledger.On("Record", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.client.On("AddReaction", mock.Anything, "msg-1", policy.DefaultReaction, (*int64)(nil)).Return(errors.New("forbidden"))
	f.exporter.On("Export", mock.Anything, mock.Anything).Return(nil)

	status, err := moderator.Moderate(context.Background(), Request{Client: f.client, Event: textEvent("alice", "hateful")})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusModerated, status)
	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "moderation consequence not fully applied" {
			warned = true
			assert.ErrorContains(t, entry.Data[logrus.ErrorKey].(error), "forbidden")
		}
	}
	assert.True(t, warned)
}
