package mocks

import (
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/stretchr/testify/mock"
)

type Verifier struct {
	mock.Mock
}

func NewVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Verifier {
	m := &Verifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Verifier) VerifyCommand(tokenString string) (*jwt.CommandClaims, error) {
	args := m.Called(tokenString)
	c, _ := args.Get(0).(*jwt.CommandClaims)
	return c, args.Error(1)
}

func (m *Verifier) VerifyNotification(tokenString string) (*jwt.NotificationClaims, error) {
	args := m.Called(tokenString)
	c, _ := args.Get(0).(*jwt.NotificationClaims)
	return c, args.Error(1)
}
