package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarketplaceScoreFallsBackToAverage(t *testing.T) {
	assert.Equal(t, 90, ComputeMarketplaceScore(f64(4.5), ReviewRubric{}, nil))
	assert.Equal(t, 100, ComputeMarketplaceScore(f64(7), ReviewRubric{}, nil))
	assert.Equal(t, 0, ComputeMarketplaceScore(nil, ReviewRubric{}, nil))
	assert.Equal(t, 0, ComputeMarketplaceScore(f64(math.NaN()), ReviewRubric{}, nil))
}

func TestMarketplaceScoreUsesDefaultRubricWeights(t *testing.T) {
	rubric := ReviewRubric{Usability: f64(5), Support: f64(4), Value: f64(3), Features: f64(4)}
	// mean 4.0 -> 80
	assert.Equal(t, 80, ComputeMarketplaceScore(f64(1), rubric, nil))
}

func TestMarketplaceScoreMissingDimensionCountsAsZero(t *testing.T) {
	rubric := ReviewRubric{Usability: f64(4)}
	assert.Equal(t, 20, ComputeMarketplaceScore(nil, rubric, nil))
}

func TestMarketplaceScoreNormalizesCustomWeights(t *testing.T) {
	rubric := ReviewRubric{Usability: f64(5), Support: f64(1), Value: f64(1), Features: f64(1)}
	weights := &RubricWeights{Usability: f64(3), Support: f64(1), Value: f64(0), Features: f64(0)}
	// (5*3 + 1*1) / 4 = 4.0
	assert.Equal(t, 80, ComputeMarketplaceScore(nil, rubric, weights))
}

func TestMarketplaceScoreInvalidWeightTotalUsesDefaults(t *testing.T) {
	rubric := ReviewRubric{Usability: f64(5), Support: f64(3), Value: f64(3), Features: f64(5)}
	zero := &RubricWeights{Usability: f64(0), Support: f64(0), Value: f64(0), Features: f64(0)}
	assert.Equal(t, 80, ComputeMarketplaceScore(nil, rubric, zero))
}
