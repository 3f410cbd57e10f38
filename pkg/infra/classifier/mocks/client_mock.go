package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/infra/classifier"
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

func (m *Client) ScoreCategories(ctx context.Context, input classifier.Input) (classifier.Scores, error) {
	args := m.Called(ctx, input)
	scores, _ := args.Get(0).(classifier.Scores)
	return scores, args.Error(1)
}
