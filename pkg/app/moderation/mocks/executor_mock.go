package mocks

import (
	"context"

	domain "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/stretchr/testify/mock"
)

type Executor struct {
	mock.Mock
}

func NewExecutor(t interface {
	mock.TestingT
	Cleanup(func())
}) *Executor {
	m := &Executor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Executor) Apply(ctx context.Context, client platform.Client, p policy.Policy, mod *domain.Moderated, thread *int64) error {
	return m.Called(ctx, client, p, mod, thread).Error(0)
}
