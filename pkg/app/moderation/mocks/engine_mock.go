package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/app/moderation"
	domain "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type Engine struct {
	mock.Mock
}

func NewEngine(t interface {
	mock.TestingT
	Cleanup(func())
}) *Engine {
	m := &Engine{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Engine) Evaluate(ctx context.Context, req moderation.EvaluateRequest) domain.Result {
	r, _ := m.Called(ctx, req).Get(0).(domain.Result)
	return r
}
