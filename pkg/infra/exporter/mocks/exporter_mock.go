package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/infra/exporter"
	"github.com/stretchr/testify/mock"
)

type Exporter struct {
	mock.Mock
}

func NewExporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *Exporter {
	m := &Exporter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Exporter) Export(ctx context.Context, d exporter.Decision) error {
	return m.Called(ctx, d).Error(0)
}

func (m *Exporter) Close() {
	m.Called()
}
