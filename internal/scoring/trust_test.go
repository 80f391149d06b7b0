package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func TestComputeTrustScoreNoSignals(t *testing.T) {
	_, ok := ComputeTrustScore(RatingSummary{}, TrustMetrics{})
	assert.False(t, ok)

	// A count without an average carries no rating signal.
	_, ok = ComputeTrustScore(RatingSummary{Count: intp(12)}, TrustMetrics{})
	assert.False(t, ok)
}

func TestComputeTrustScoreRatingOnlyHighVolume(t *testing.T) {
	score, ok := ComputeTrustScore(RatingSummary{Average: f64(4), Count: intp(100)}, TrustMetrics{})
	require.True(t, ok)
	assert.InDelta(t, 80.0, score, 1e-9)
}

func TestComputeTrustScoreZeroCountAndFastResponse(t *testing.T) {
	score, ok := ComputeTrustScore(
		RatingSummary{Average: f64(5), Count: intp(0)},
		TrustMetrics{ResponseTimeHours: f64(2)},
	)
	require.True(t, ok)
	// (85*0.60 + 90*0.15) / 0.75
	assert.InDelta(t, 86.0, score, 1e-9)
}

func TestComputeTrustScoreUnknownCountUsesNeutralFactor(t *testing.T) {
	score, ok := ComputeTrustScore(RatingSummary{Average: f64(5)}, TrustMetrics{})
	require.True(t, ok)
	assert.InDelta(t, 85.0, score, 1e-9)
}

func TestComputeTrustScoreSingleMetricIsItsOwnScore(t *testing.T) {
	score, ok := ComputeTrustScore(RatingSummary{}, TrustMetrics{ResponseTimeHours: f64(30)})
	require.True(t, ok)
	assert.InDelta(t, 55.0, score, 1e-9)
}

func TestResponseTimeBands(t *testing.T) {
	cases := []struct {
		hours float64
		want  float64
	}{
		{0, 100}, {1, 100}, {1.01, 90}, {4, 90}, {12, 80}, {24, 70},
		{72, 55}, {168, 40}, {168.5, 25}, {1000, 25},
	}
	for _, tc := range cases {
		score, ok := ComputeTrustScore(RatingSummary{}, TrustMetrics{ResponseTimeHours: f64(tc.hours)})
		require.True(t, ok)
		assert.InDelta(t, tc.want, score, 1e-9, "hours=%v", tc.hours)
	}
}

func TestReviewRecencyBands(t *testing.T) {
	cases := []struct {
		days float64
		want float64
	}{
		{0, 100}, {7, 100}, {8, 85}, {30, 85}, {90, 70}, {180, 55}, {365, 40}, {366, 30}, {4000, 30},
	}
	for _, tc := range cases {
		score, ok := ComputeTrustScore(RatingSummary{}, TrustMetrics{ReviewRecencyDays: f64(tc.days)})
		require.True(t, ok)
		assert.InDelta(t, tc.want, score, 1e-9, "days=%v", tc.days)
	}
}

func TestVerifiedRatioAcceptsFractionOrPercentage(t *testing.T) {
	fraction, ok := ComputeTrustScore(RatingSummary{}, TrustMetrics{VerifiedRatio: f64(0.8)})
	require.True(t, ok)
	percent, ok := ComputeTrustScore(RatingSummary{}, TrustMetrics{VerifiedRatio: f64(80)})
	require.True(t, ok)

	assert.InDelta(t, 80.0, fraction, 1e-9)
	assert.InDelta(t, fraction, percent, 1e-9)

	capped, ok := ComputeTrustScore(RatingSummary{}, TrustMetrics{VerifiedRatio: f64(250)})
	require.True(t, ok)
	assert.InDelta(t, 100.0, capped, 1e-9)
}

func TestMalformedInputsAreTreatedAsAbsent(t *testing.T) {
	_, ok := ComputeTrustScore(
		RatingSummary{Average: f64(math.NaN()), Count: intp(-3)},
		TrustMetrics{
			ResponseTimeHours: f64(math.Inf(1)),
			VerifiedRatio:     f64(-0.5),
			ReviewRecencyDays: f64(math.NaN()),
		},
	)
	assert.False(t, ok)

	score, ok := ComputeTrustScore(
		RatingSummary{Average: f64(math.NaN())},
		TrustMetrics{ResponseTimeHours: f64(3)},
	)
	require.True(t, ok)
	assert.InDelta(t, 90.0, score, 1e-9)
}

func TestRatingAverageIsClamped(t *testing.T) {
	high, ok := ComputeTrustScore(RatingSummary{Average: f64(9), Count: intp(1000)}, TrustMetrics{})
	require.True(t, ok)
	assert.InDelta(t, 100.0, high, 1e-9)

	low, ok := ComputeTrustScore(RatingSummary{Average: f64(-2), Count: intp(1000)}, TrustMetrics{})
	require.True(t, ok)
	assert.InDelta(t, 0.0, low, 1e-9)
}

func TestTrustScoreMonotonicInRatingAverage(t *testing.T) {
	metrics := TrustMetrics{ResponseTimeHours: f64(10), VerifiedRatio: f64(0.4)}
	prev := -1.0
	for avg := 0.0; avg <= 5.0; avg += 0.25 {
		score, ok := ComputeTrustScore(RatingSummary{Average: f64(avg), Count: intp(20)}, metrics)
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, prev, "avg=%v", avg)
		prev = score
	}
}

func TestTrustScoreMonotonicInRatingCount(t *testing.T) {
	prev := -1.0
	for _, n := range []int{1, 2, 5, 10, 50, 99, 100, 1000} {
		score, ok := ComputeTrustScore(RatingSummary{Average: f64(4.5), Count: intp(n)}, TrustMetrics{})
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, prev, "count=%d", n)
		prev = score
	}
}

func TestTrustScoreAlwaysWithinBounds(t *testing.T) {
	for _, avg := range []float64{0, 2.5, 5} {
		for _, hours := range []float64{0, 50, 500} {
			for _, ratio := range []float64{0, 0.5, 100} {
				for _, days := range []float64{0, 100, 1000} {
					score, ok := ComputeTrustScore(
						RatingSummary{Average: f64(avg), Count: intp(3)},
						TrustMetrics{ResponseTimeHours: f64(hours), VerifiedRatio: f64(ratio), ReviewRecencyDays: f64(days)},
					)
					require.True(t, ok)
					assert.GreaterOrEqual(t, score, 0.0)
					assert.LessOrEqual(t, score, 100.0)
				}
			}
		}
	}
}

func TestExplainTrustScoreRenormalizesWeights(t *testing.T) {
	b := ExplainTrustScore(
		RatingSummary{Average: f64(5), Count: intp(0)},
		TrustMetrics{ResponseTimeHours: f64(2)},
	)
	require.True(t, b.Scored)
	require.Len(t, b.Components, 2)

	assert.Equal(t, ComponentRating, b.Components[0].Name)
	assert.InDelta(t, 85.0, b.Components[0].Score, 1e-9)
	assert.InDelta(t, 68.0, b.Components[0].Contribution, 1e-9)
	assert.Equal(t, ComponentResponseTime, b.Components[1].Name)
	assert.InDelta(t, 18.0, b.Components[1].Contribution, 1e-9)
}
