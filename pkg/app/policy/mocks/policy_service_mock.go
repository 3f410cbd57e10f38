package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	m := &Service{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Service) Get(ctx context.Context, s scope.Scope) (policy.Policy, error) {
	args := m.Called(ctx, s)
	p, _ := args.Get(0).(policy.Policy)
	return p, args.Error(1)
}

func (m *Service) Update(ctx context.Context, s scope.Scope, update policy.Update) (policy.Policy, error) {
	args := m.Called(ctx, s, update)
	p, _ := args.Get(0).(policy.Policy)
	return p, args.Error(1)
}

func (m *Service) InvalidateLocation(ctx context.Context, locationKey string) error {
	return m.Called(ctx, locationKey).Error(0)
}
