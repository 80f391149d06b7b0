// Package scoring computes vendor trust scores and editorial rubric scores.
// Every function is pure and safe for concurrent use.
package scoring

import (
	"math"
)

// TrustMetrics are the optional operational signals collected per vendor.
// A nil field means the signal is unknown.
type TrustMetrics struct {
	ResponseTimeHours *float64 `json:"responseTimeHours,omitempty" yaml:"responseTimeHours,omitempty"`
	// VerifiedRatio accepts a fraction (0..1) or a percentage (>1..100).
	VerifiedRatio     *float64 `json:"verifiedRatio,omitempty" yaml:"verifiedRatio,omitempty"`
	ReviewRecencyDays *float64 `json:"reviewRecencyDays,omitempty" yaml:"reviewRecencyDays,omitempty"`
}

// RatingSummary is the review aggregate for a vendor. Average is on a 0-5 scale.
type RatingSummary struct {
	Average *float64 `json:"average,omitempty" yaml:"average,omitempty"`
	Count   *int     `json:"count,omitempty" yaml:"count,omitempty"`
}

// Trust component names.
const (
	ComponentRating        = "rating"
	ComponentResponseTime  = "responseTime"
	ComponentVerifiedRatio = "verifiedRatio"
	ComponentReviewRecency = "reviewRecency"
)

const (
	weightRating        = 0.60
	weightResponseTime  = 0.15
	weightVerifiedRatio = 0.15
	weightReviewRecency = 0.10

	unknownCountFactor = 0.85
)

type band struct {
	upTo  float64
	score float64
}

var responseTimeBands = []band{
	{1, 100},
	{4, 90},
	{12, 80},
	{24, 70},
	{72, 55},
	{168, 40},
}

const responseTimeFloor = 25

var reviewRecencyBands = []band{
	{7, 100},
	{30, 85},
	{90, 70},
	{180, 55},
	{365, 40},
}

const reviewRecencyFloor = 30

// TrustComponent is one present signal and its share of the final score.
type TrustComponent struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// TrustBreakdown is the auditable form of a trust score.
type TrustBreakdown struct {
	Scored     bool             `json:"scored"`
	Score      float64          `json:"score"`
	Components []TrustComponent `json:"components"`
}

// ComputeTrustScore returns a 0-100 score, or false when no signal is present.
func ComputeTrustScore(rating RatingSummary, metrics TrustMetrics) (float64, bool) {
	b := ExplainTrustScore(rating, metrics)
	return b.Score, b.Scored
}

// ExplainTrustScore computes the trust score and keeps every component used.
// Weights are renormalized over the components that are present.
func ExplainTrustScore(rating RatingSummary, metrics TrustMetrics) TrustBreakdown {
	components := make([]TrustComponent, 0, 4)

	if s, ok := ratingComponent(rating); ok {
		components = append(components, TrustComponent{Name: ComponentRating, Score: s, Weight: weightRating})
	}
	if h, ok := nonNegative(metrics.ResponseTimeHours); ok {
		components = append(components, TrustComponent{Name: ComponentResponseTime, Score: bandScore(h, responseTimeBands, responseTimeFloor), Weight: weightResponseTime})
	}
	if s, ok := verifiedComponent(metrics.VerifiedRatio); ok {
		components = append(components, TrustComponent{Name: ComponentVerifiedRatio, Score: s, Weight: weightVerifiedRatio})
	}
	if d, ok := nonNegative(metrics.ReviewRecencyDays); ok {
		components = append(components, TrustComponent{Name: ComponentReviewRecency, Score: bandScore(d, reviewRecencyBands, reviewRecencyFloor), Weight: weightReviewRecency})
	}

	if len(components) == 0 {
		return TrustBreakdown{Components: components}
	}

	var weightSum float64
	for _, c := range components {
		weightSum += c.Weight
	}
	var total float64
	for i := range components {
		components[i].Contribution = components[i].Score * components[i].Weight / weightSum
		total += components[i].Contribution
	}

	return TrustBreakdown{
		Scored:     true,
		Score:      clamp(total, 0, 100),
		Components: components,
	}
}

func ratingComponent(rating RatingSummary) (float64, bool) {
	avg, ok := finite(rating.Average)
	if !ok {
		return 0, false
	}
	base := clamp(avg/5*100, 0, 100)

	factor := unknownCountFactor
	if rating.Count != nil && *rating.Count > 0 {
		volume := clamp(math.Log10(float64(*rating.Count)+1)/2, 0, 1)
		factor = 0.7 + 0.3*volume
	}
	return base * factor, true
}

func verifiedComponent(v *float64) (float64, bool) {
	ratio, ok := nonNegative(v)
	if !ok {
		return 0, false
	}
	if ratio > 1 {
		ratio = ratio / 100
	}
	return clamp(ratio, 0, 1) * 100, true
}

func bandScore(v float64, bands []band, floor float64) float64 {
	for _, b := range bands {
		if v <= b.upTo {
			return b.score
		}
	}
	return floor
}

func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

func nonNegative(v *float64) (float64, bool) {
	f, ok := finite(v)
	if !ok || f < 0 {
		return 0, false
	}
	return f, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
