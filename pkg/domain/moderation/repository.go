package moderation

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
)

const DefaultTopOffendersLimit = 10

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=moderation_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Record stores the decision unless one already exists for the same
	// scope and message. inserted is false when the record was already there.
	Record(ctx context.Context, m Moderated, source Source) (inserted bool, err error)
	LoadReason(ctx context.Context, s scope.Scope, messageID string) (reason string, found bool, err error)
	TopOffenders(ctx context.Context, s scope.Scope, limit int) ([]Offender, error)
}
