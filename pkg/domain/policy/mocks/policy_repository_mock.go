package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func NewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *Repository {
	m := &Repository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Repository) Get(ctx context.Context, s scope.Scope) (*policy.Policy, error) {
	args := m.Called(ctx, s)
	p, _ := args.Get(0).(*policy.Policy)
	return p, args.Error(1)
}

func (m *Repository) Upsert(ctx context.Context, s scope.Scope, update policy.Update) error {
	return m.Called(ctx, s, update).Error(0)
}
