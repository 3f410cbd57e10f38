package classifier

import (
	"context"
	"errors"
	"sort"

	"github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
)

// ErrClassificationFailed wraps every transport, status or decoding failure
// of the category endpoint.
var ErrClassificationFailed = errors.New("classification failed")

type Input struct {
	Text     string
	ImageURL string
}

// Scores maps a category name to a score in [0,1].
type Scores map[string]float64

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	ScoreCategories(ctx context.Context, input Input) (Scores, error)
}

// Breaking returns the categories whose score reaches the threshold, highest
// score first. The boundary is inclusive.
func Breaking(scores Scores, threshold float64) []moderation.CategoryViolation {
	var out []moderation.CategoryViolation
	for category, score := range scores {
		if score >= threshold {
			out = append(out, moderation.CategoryViolation{Category: category, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Category < out[j].Category
	})
	return out
}
