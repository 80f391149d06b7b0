package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategoryWeightsSumToOne(t *testing.T) {
	var sum float64
	seen := map[CategoryKey]bool{}
	for _, c := range DefaultCategories() {
		sum += c.Weight
		assert.False(t, seen[c.Key], "duplicate category %s", c.Key)
		seen[c.Key] = true
	}
	assert.Len(t, seen, 9)
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDefaultCategoriesReturnsCopy(t *testing.T) {
	cats := DefaultCategories()
	cats[0].Weight = 99
	assert.InDelta(t, 0.25, DefaultCategories()[0].Weight, 1e-9)
}

func TestParseBoost(t *testing.T) {
	for _, v := range []float64{1.0, 1.2, 1.5} {
		b, err := ParseBoost(v)
		require.NoError(t, err)
		assert.True(t, b.Valid())
	}
	for _, v := range []float64{0, 1.1, 2, -1.5} {
		_, err := ParseBoost(v)
		assert.Error(t, err, "boost %v", v)
	}
}

func TestSecurityScenario(t *testing.T) {
	features := []Feature{
		{ID: "a", Category: CategorySecurity, Score: 8, Boost: BoostStandout},
		{ID: "b", Category: CategorySecurity, Score: 4, Boost: BoostNone},
	}
	assert.InDelta(t, 8.0, CategoryScore(features, CategorySecurity), 1e-9)
	assert.InDelta(t, 2.0, OverallScore(features, DefaultCategories()), 1e-9)
}

func TestCategoryScoreRoundsToTwoDecimals(t *testing.T) {
	features := []Feature{
		{Category: CategoryData, Score: 7, Boost: BoostStrong},
		{Category: CategoryData, Score: 5, Boost: BoostNone},
		{Category: CategoryData, Score: 3, Boost: BoostNone},
	}
	// (8.4 + 5 + 3) / 3 = 5.4666...
	assert.InDelta(t, 5.47, CategoryScore(features, CategoryData), 1e-9)
}

func TestEmptyFeatureSetScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, CategoryScore(nil, CategorySecurity))
	assert.Equal(t, 0.0, OverallScore(nil, DefaultCategories()))

	eval := Evaluate(nil, DefaultCategories())
	assert.Equal(t, 0.0, eval.Overall)
	assert.Len(t, eval.Categories, 9)
	for key, v := range eval.Categories {
		assert.Equal(t, 0.0, v, "category %s", key)
	}
	assert.Empty(t, eval.Warnings)
}

func TestEmptyCategoryContributesNothingRegardlessOfWeight(t *testing.T) {
	features := []Feature{{Category: CategoryUsability, Score: 6, Boost: BoostNone}}
	cats := DefaultCategories()
	base := OverallScore(features, cats)

	for i := range cats {
		if cats[i].Key == CategorySecurity {
			cats[i].Weight = 10
		}
	}
	assert.Equal(t, base, OverallScore(features, cats))
}

func TestOverallScoreIgnoresCategoryOrder(t *testing.T) {
	features := []Feature{
		{Category: CategorySecurity, Score: 9, Boost: BoostStrong},
		{Category: CategoryAI, Score: 4, Boost: BoostNone},
		{Category: CategoryMarketing, Score: 7, Boost: BoostStandout},
		{Category: CategoryInfra, Score: 2, Boost: BoostNone},
	}
	cats := DefaultCategories()
	reversed := make([]Category, len(cats))
	for i, c := range cats {
		reversed[len(cats)-1-i] = c
	}
	assert.InDelta(t, OverallScore(features, cats), OverallScore(features, reversed), 1e-9)
}

func TestOverallScoreIsMonotonic(t *testing.T) {
	cats := DefaultCategories()
	base := []Feature{
		{ID: "x", Category: CategorySecurity, Score: 3, Boost: BoostNone},
		{ID: "y", Category: CategorySecurity, Score: 6, Boost: BoostStrong},
		{ID: "z", Category: CategoryComm, Score: 5, Boost: BoostNone},
	}
	for idx := range base {
		prevCat := CategoryScore(base, base[idx].Category)
		prevOverall := OverallScore(base, cats)
		for score := base[idx].Score + 1; score <= MaxFeatureScore; score++ {
			next := append([]Feature(nil), base...)
			next[idx].Score = score
			cat := CategoryScore(next, next[idx].Category)
			overall := OverallScore(next, cats)
			assert.GreaterOrEqual(t, cat, prevCat)
			assert.GreaterOrEqual(t, overall, prevOverall)
			prevCat, prevOverall = cat, overall
		}

		prevOverall = -1
		for _, boost := range Boosts() {
			next := append([]Feature(nil), base...)
			next[idx].Boost = boost
			overall := OverallScore(next, cats)
			assert.GreaterOrEqual(t, overall, prevOverall)
			prevOverall = overall
		}
	}
}

func TestOverallScoreIsNotClamped(t *testing.T) {
	var features []Feature
	for _, c := range DefaultCategories() {
		features = append(features, Feature{Category: c.Key, Score: 10, Boost: BoostStandout})
	}
	assert.InDelta(t, 15.0, OverallScore(features, DefaultCategories()), 1e-9)
}

func TestUnknownCategoryIsIgnoredWithWarning(t *testing.T) {
	features := []Feature{
		{ID: "known", Category: CategoryAI, Score: 10, Boost: BoostNone},
		{ID: "mystery", Category: "blockchain", Score: 10, Boost: BoostStandout},
	}
	eval := Evaluate(features, DefaultCategories())
	assert.InDelta(t, 1.0, eval.Overall, 1e-9)
	require.Len(t, eval.Warnings, 1)
	assert.Equal(t, "mystery", eval.Warnings[0].FeatureID)
	assert.Equal(t, "category", eval.Warnings[0].Field)
}

func TestInvalidFeatureFailsClosedWithoutBlankingTheVendor(t *testing.T) {
	features := []Feature{
		{ID: "ok", Category: CategorySecurity, Score: 6, Boost: BoostNone},
		{ID: "bad-score", Category: CategorySecurity, Score: -4, Boost: BoostNone},
		{ID: "bad-boost", Category: CategorySecurity, Score: 5, Boost: Boost(3)},
		{ID: "too-high", Category: CategorySecurity, Score: 42, Boost: BoostNone},
	}
	eval := Evaluate(features, DefaultCategories())

	// (6 + 1 + 5 + 10) / 4
	assert.InDelta(t, 5.5, eval.Categories[CategorySecurity], 1e-9)
	require.Len(t, eval.Warnings, 3)
	assert.Equal(t, Warning{FeatureID: "bad-score", Field: "score", Message: "score -4 out of range, using 1"}, eval.Warnings[0])
	assert.Equal(t, "bad-boost", eval.Warnings[1].FeatureID)
	assert.Equal(t, "boost", eval.Warnings[1].Field)
	assert.Equal(t, "too-high", eval.Warnings[2].FeatureID)
}

func TestTopFeatures(t *testing.T) {
	rank := func(v int) *int { return &v }
	features := []Feature{
		{ID: "a", TopFeatureRank: rank(3)},
		{ID: "b"},
		{ID: "c", TopFeatureRank: rank(1)},
		{ID: "d", TopFeatureRank: rank(2)},
		{ID: "e", TopFeatureRank: rank(2)},
	}
	top := TopFeatures(features)
	ids := make([]string, 0, len(top))
	for _, f := range top {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"c", "d", "e", "a"}, ids)
	assert.Empty(t, TopFeatures([]Feature{{ID: "unranked"}}))
}
