package policy

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=policy_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Get returns nil when no policy was ever written for the scope.
	Get(ctx context.Context, s scope.Scope) (*Policy, error)
	Upsert(ctx context.Context, s scope.Scope, update Update) error
}
