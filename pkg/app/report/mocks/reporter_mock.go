package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/app/report"
	"github.com/stretchr/testify/mock"
)

type Reporter struct {
	mock.Mock
}

func NewReporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *Reporter {
	m := &Reporter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Reporter) Report(ctx context.Context, req report.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
