package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/infra/interpreter"
	"github.com/stretchr/testify/mock"
)

type Interpreter struct {
	mock.Mock
}

func NewInterpreter(t interface {
	mock.TestingT
	Cleanup(func())
}) *Interpreter {
	m := &Interpreter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Interpreter) Interpret(ctx context.Context, req interpreter.Request) (interpreter.Verdict, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(interpreter.Verdict)
	return v, args.Error(1)
}
