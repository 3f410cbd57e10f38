package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/stretchr/testify/mock"
)

type Handler struct {
	mock.Mock
}

func NewHandler(t interface {
	mock.TestingT
	Cleanup(func())
}) *Handler {
	m := &Handler{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Handler) Handle(ctx context.Context, claims *jwt.NotificationClaims) error {
	return m.Called(ctx, claims).Error(0)
}
