package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/app/command"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/stretchr/testify/mock"
)

type Dispatcher struct {
	mock.Mock
}

func NewDispatcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *Dispatcher {
	m := &Dispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Dispatcher) Execute(ctx context.Context, client platform.Client, claims *jwt.CommandClaims) (command.Response, error) {
	args := m.Called(ctx, client, claims)
	r, _ := args.Get(0).(command.Response)
	return r, args.Error(1)
}
