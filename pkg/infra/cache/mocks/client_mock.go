package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	m := &Client{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Client) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *Client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *Client) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *Client) DeleteMatching(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}

func (m *Client) GetJSON(ctx context.Context, key string, out interface{}) error {
	return m.Called(ctx, key, out).Error(0)
}

func (m *Client) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *Client) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Client) Close() error {
	return m.Called().Error(0)
}
