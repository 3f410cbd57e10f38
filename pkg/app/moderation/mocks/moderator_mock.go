package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/app/moderation"
	domain "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type Moderator struct {
	mock.Mock
}

func NewModerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Moderator {
	m := &Moderator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Moderator) Moderate(ctx context.Context, req moderation.Request) (domain.Status, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(domain.Status)
	return s, args.Error(1)
}
