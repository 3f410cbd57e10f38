package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	m := &Client{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Client) Scope() scope.Scope {
	args := m.Called()
	s, _ := args.Get(0).(scope.Scope)
	return s
}

func (m *Client) ChatSummary(ctx context.Context) (*platform.ChatSummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*platform.ChatSummary)
	return s, args.Error(1)
}

func (m *Client) CommunitySummary(ctx context.Context, community scope.Scope) (*platform.CommunitySummary, error) {
	args := m.Called(ctx, community)
	s, _ := args.Get(0).(*platform.CommunitySummary)
	return s, args.Error(1)
}

func (m *Client) ChatEvents(ctx context.Context, window platform.EventsWindow, thread *int64) ([]message.TimelineEvent, error) {
	args := m.Called(ctx, window, thread)
	events, _ := args.Get(0).([]message.TimelineEvent)
	return events, args.Error(1)
}

func (m *Client) SendMessage(ctx context.Context, msg platform.OutgoingMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *Client) AddReaction(ctx context.Context, messageID, reaction string, thread *int64) error {
	return m.Called(ctx, messageID, reaction, thread).Error(0)
}

func (m *Client) DeleteMessages(ctx context.Context, messageIDs []string, thread *int64) error {
	return m.Called(ctx, messageIDs, thread).Error(0)
}
