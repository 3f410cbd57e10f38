package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
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

func (m *Repository) Record(ctx context.Context, mod moderation.Moderated, source moderation.Source) (bool, error) {
	args := m.Called(ctx, mod, source)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) LoadReason(ctx context.Context, s scope.Scope, messageID string) (string, bool, error) {
	args := m.Called(ctx, s, messageID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Repository) TopOffenders(ctx context.Context, s scope.Scope, limit int) ([]moderation.Offender, error) {
	args := m.Called(ctx, s, limit)
	o, _ := args.Get(0).([]moderation.Offender)
	return o, args.Error(1)
}
