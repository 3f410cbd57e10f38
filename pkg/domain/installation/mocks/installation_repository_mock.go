package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/installation"
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

func (m *Repository) Save(ctx context.Context, i *installation.Installation) error {
	return m.Called(ctx, i).Error(0)
}

func (m *Repository) Get(ctx context.Context, location string) (*installation.Installation, error) {
	args := m.Called(ctx, location)
	i, _ := args.Get(0).(*installation.Installation)
	return i, args.Error(1)
}

func (m *Repository) Delete(ctx context.Context, location string) error {
	return m.Called(ctx, location).Error(0)
}
