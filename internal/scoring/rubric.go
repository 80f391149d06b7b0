package scoring

import (
	"fmt"
	"math"
	"sort"
)

// CategoryKey identifies a rubric category.
type CategoryKey string

const (
	CategorySecurity     CategoryKey = "security"
	CategoryAutomation   CategoryKey = "automation"
	CategoryIntegrations CategoryKey = "integrations"
	CategoryAI           CategoryKey = "ai"
	CategoryComm         CategoryKey = "comm"
	CategoryData         CategoryKey = "data"
	CategoryMarketing    CategoryKey = "marketing"
	CategoryInfra        CategoryKey = "infra"
	CategoryUsability    CategoryKey = "usability"
)

// Category is one weighted rubric dimension.
type Category struct {
	Key         CategoryKey `json:"key" yaml:"key"`
	Label       string      `json:"label" yaml:"label"`
	Description string      `json:"description" yaml:"description"`
	Weight      float64     `json:"weight" yaml:"weight"`
}

var defaultCategories = []Category{
	{CategorySecurity, "Security & Compliance", "Data protection, access control, audit trails and regulatory compliance.", 0.25},
	{CategoryAutomation, "Automation & Workflows", "Task automation, workflow builders and process orchestration.", 0.20},
	{CategoryIntegrations, "Integrations & APIs", "Aggregator, lender and CRM connectivity and open APIs.", 0.15},
	{CategoryAI, "AI & Intelligence", "Document extraction, recommendations and AI assistance.", 0.10},
	{CategoryComm, "Comm & Collaboration", "Client messaging, team collaboration and portals.", 0.10},
	{CategoryData, "Data & Reporting", "Dashboards, pipeline reporting and data export.", 0.10},
	{CategoryMarketing, "Marketing Channels", "Campaigns, lead capture and referral tooling.", 0.05},
	{CategoryInfra, "Platform & Infra", "Hosting, uptime, scalability and platform reliability.", 0.025},
	{CategoryUsability, "Usability", "Onboarding, interface quality and ease of use.", 0.025},
}

// DefaultCategories returns a copy of the shipped category configuration.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// LookupCategory reports whether key is one of the shipped categories.
func LookupCategory(key CategoryKey) (Category, bool) {
	for _, c := range defaultCategories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Boost is the native-capability multiplier applied to a feature score.
type Boost float64

const (
	BoostNone     Boost = 1.0
	BoostStrong   Boost = 1.2
	BoostStandout Boost = 1.5
)

// Boosts lists the allowed boost values.
func Boosts() []Boost {
	return []Boost{BoostNone, BoostStrong, BoostStandout}
}

func (b Boost) Valid() bool {
	return b == BoostNone || b == BoostStrong || b == BoostStandout
}

// ParseBoost accepts only the allowed boost values.
func ParseBoost(v float64) (Boost, error) {
	b := Boost(v)
	if !b.Valid() {
		return 0, fmt.Errorf("boost must be one of 1.0, 1.2 or 1.5: %v", v)
	}
	return b, nil
}

const (
	MinFeatureScore = 1
	MaxFeatureScore = 10
)

// Feature is the scoring view of an assessed feature.
type Feature struct {
	ID             string      `json:"id" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	Category       CategoryKey `json:"category" yaml:"category"`
	Score          int         `json:"score" yaml:"score"`
	Boost          Boost       `json:"boost" yaml:"boost"`
	TopFeatureRank *int        `json:"topFeatureRank,omitempty" yaml:"topFeatureRank,omitempty"`
}

// Warning reports a value that was corrected before aggregation.
type Warning struct {
	FeatureID string `json:"featureId"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// Evaluation holds every score derived from a feature set.
type Evaluation struct {
	Overall    float64                 `json:"overall"`
	Categories map[CategoryKey]float64 `json:"categories"`
	Warnings   []Warning               `json:"warnings,omitempty"`
}

// Sanitize clamps the score to 1..10 and resets an unknown boost to 1.0.
func Sanitize(f Feature) (Feature, []Warning) {
	var warnings []Warning
	if f.Score < MinFeatureScore || f.Score > MaxFeatureScore {
		clamped := f.Score
		if clamped < MinFeatureScore {
			clamped = MinFeatureScore
		} else {
			clamped = MaxFeatureScore
		}
		warnings = append(warnings, Warning{
			FeatureID: f.ID,
			Field:     "score",
			Message:   fmt.Sprintf("score %d out of range, using %d", f.Score, clamped),
		})
		f.Score = clamped
	}
	if !f.Boost.Valid() {
		warnings = append(warnings, Warning{
			FeatureID: f.ID,
			Field:     "boost",
			Message:   fmt.Sprintf("boost %v not allowed, using 1.0", float64(f.Boost)),
		})
		f.Boost = BoostNone
	}
	return f, warnings
}

// CategoryScore is the mean boosted score of the features in key, rounded
// to two decimals. An empty category scores 0.
func CategoryScore(features []Feature, key CategoryKey) float64 {
	var sum float64
	var n int
	for _, f := range features {
		if f.Category != key {
			continue
		}
		clean, _ := Sanitize(f)
		sum += float64(clean.Score) * float64(clean.Boost)
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// CategoryScores computes CategoryScore for every configured category.
func CategoryScores(features []Feature, categories []Category) map[CategoryKey]float64 {
	out := make(map[CategoryKey]float64, len(categories))
	for _, c := range categories {
		out[c.Key] = CategoryScore(features, c.Key)
	}
	return out
}

// OverallScore is the weighted sum of category scores, rounded to two
// decimals. Features in unconfigured categories are ignored. The result is
// not clamped and can exceed 10 when boosts apply.
func OverallScore(features []Feature, categories []Category) float64 {
	var total float64
	for _, c := range categories {
		total += CategoryScore(features, c.Key) * c.Weight
	}
	return round2(total)
}

// Evaluate computes category and overall scores and collects warnings for
// every corrected feature.
func Evaluate(features []Feature, categories []Category) Evaluation {
	var warnings []Warning
	for _, f := range features {
		_, w := Sanitize(f)
		warnings = append(warnings, w...)
		if _, ok := lookupIn(categories, f.Category); !ok {
			warnings = append(warnings, Warning{
				FeatureID: f.ID,
				Field:     "category",
				Message:   fmt.Sprintf("category %q is not configured and is ignored", f.Category),
			})
		}
	}
	return Evaluation{
		Overall:    OverallScore(features, categories),
		Categories: CategoryScores(features, categories),
		Warnings:   warnings,
	}
}

// TopFeatures returns the ranked features ordered by ascending rank.
// Features without a rank are left out.
func TopFeatures(features []Feature) []Feature {
	out := make([]Feature, 0, len(features))
	for _, f := range features {
		if f.TopFeatureRank != nil {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].TopFeatureRank < *out[j].TopFeatureRank
	})
	return out
}

func lookupIn(categories []Category, key CategoryKey) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
