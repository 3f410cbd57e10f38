package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/infra/providers"
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

func (m *Client) Ask(ctx context.Context, config *providers.Config, prompt string) (*providers.CompletionResponse, error) {
	ret := m.Called(ctx, config, prompt)
	var r0 *providers.CompletionResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*providers.CompletionResponse)
	}
	return r0, ret.Error(1)
}
