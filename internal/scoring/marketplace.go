package scoring

import "math"

// ReviewRubric holds the per-dimension review averages on a 0-5 scale.
type ReviewRubric struct {
	Usability *float64 `json:"usability,omitempty" yaml:"usability,omitempty"`
	Support   *float64 `json:"support,omitempty" yaml:"support,omitempty"`
	Value     *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Features  *float64 `json:"features,omitempty" yaml:"features,omitempty"`
}

func (r ReviewRubric) empty() bool {
	return r.Usability == nil && r.Support == nil && r.Value == nil && r.Features == nil
}

// RubricWeights weights the review rubric dimensions. Nil fields take the
// default of 0.25.
type RubricWeights struct {
	Usability *float64 `json:"usability,omitempty" yaml:"usability,omitempty"`
	Support   *float64 `json:"support,omitempty" yaml:"support,omitempty"`
	Value     *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Features  *float64 `json:"features,omitempty" yaml:"features,omitempty"`
}

const defaultRubricWeight = 0.25

type resolvedWeights struct {
	usability, support, value, features float64
}

func normalizeRubricWeights(w *RubricWeights) resolvedWeights {
	defaults := resolvedWeights{defaultRubricWeight, defaultRubricWeight, defaultRubricWeight, defaultRubricWeight}
	if w == nil {
		return defaults
	}
	pick := func(v *float64) float64 {
		if v == nil {
			return defaultRubricWeight
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return 0
		}
		return *v
	}
	r := resolvedWeights{pick(w.Usability), pick(w.Support), pick(w.Value), pick(w.Features)}
	total := r.usability + r.support + r.value + r.features
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return defaults
	}
	return resolvedWeights{r.usability / total, r.support / total, r.value / total, r.features / total}
}

// ComputeMarketplaceScore converts review data into a 0-100 headline score.
// The weighted rubric is used when any dimension is present, otherwise the
// plain average rating.
func ComputeMarketplaceScore(average *float64, rubric ReviewRubric, weights *RubricWeights) int {
	var source float64
	if !rubric.empty() {
		w := normalizeRubricWeights(weights)
		source = rubricValue(rubric.Usability)*w.usability +
			rubricValue(rubric.Support)*w.support +
			rubricValue(rubric.Value)*w.value +
			rubricValue(rubric.Features)*w.features
	} else if avg, ok := finite(average); ok {
		source = clamp(avg, 0, 5)
	}
	return int(math.Round(source * 20))
}

func rubricValue(v *float64) float64 {
	f, ok := finite(v)
	if !ok {
		return 0
	}
	return clamp(f, 0, 5)
}
