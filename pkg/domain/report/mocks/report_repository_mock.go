package mocks

import (
	"context"

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

func (m *Repository) HasUserReported(ctx context.Context, s scope.Scope, messageID, userID string) (bool, error) {
	args := m.Called(ctx, s, messageID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) Record(ctx context.Context, s scope.Scope, messageID, userID string) (bool, error) {
	args := m.Called(ctx, s, messageID, userID)
	return args.Bool(0), args.Error(1)
}
