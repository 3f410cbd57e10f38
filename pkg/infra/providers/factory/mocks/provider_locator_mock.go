package mocks

import (
	"github.com/NeuralTrust/TrustMod/pkg/infra/providers"
	"github.com/stretchr/testify/mock"
)

type ProviderLocator struct {
	mock.Mock
}

func NewProviderLocator(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProviderLocator {
	m := &ProviderLocator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProviderLocator) Get(provider string) (providers.Client, error) {
	args := m.Called(provider)
	c, _ := args.Get(0).(providers.Client)
	return c, args.Error(1)
}
