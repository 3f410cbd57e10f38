package classifier

import (
	"testing"

	"github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
)

func TestBreaking_InclusiveBoundary(t *testing.T) {
	scores := Scores{"harassment": 0.8, "violence": 0.79999, "hate": 0.95}

	got := Breaking(scores, 0.8)

	assert.Equal(t, []moderation.CategoryViolation{
		{Category: "hate", Score: 0.95},
		{Category: "harassment", Score: 0.8},
	}, got)
}

func TestBreaking_TiesSortedByName(t *testing.T) {
	got := Breaking(Scores{"b": 0.9, "a": 0.9}, 0.5)

	assert.Equal(t, "a", got[0].Category)
	assert.Equal(t, "b", got[1].Category)
}

func TestBreaking_NoneAndZeroThreshold(t *testing.T) {
	assert.Empty(t, Breaking(Scores{"hate": 0.1}, 0.8))
	assert.Len(t, Breaking(Scores{"hate": 0, "sexual": 0}, 0), 2)
	assert.Empty(t, Breaking(Scores{"hate": 0.99}, 1))
}
