package mocks

import (
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/stretchr/testify/mock"
)

type Factory struct {
	mock.Mock
}

func NewFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *Factory {
	m := &Factory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Factory) ForCommand(claims *jwt.CommandClaims) platform.Client {
	c, _ := m.Called(claims).Get(0).(platform.Client)
	return c
}

func (m *Factory) ForInstallation(s scope.Scope, apiGateway string) platform.Client {
	c, _ := m.Called(s, apiGateway).Get(0).(platform.Client)
	return c
}
