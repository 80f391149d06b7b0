package domain

import (
	"math"
	"sort"
	"time"

	"github.com/brokertools/marketplace/api/internal/scoring"
)

// Publish section keys as stored on assessments.
const (
	SectionCategorise = "categorise"
	SectionMapping    = "mapping"
	SectionFeatures   = "features"
	SectionScores     = "scores"
)

// Listing is the public-facing view of a vendor.
type Listing struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Slug         string                `json:"slug,omitempty"`
	Tagline      string                `json:"tagline,omitempty"`
	WebsiteURL   string                `json:"websiteUrl,omitempty"`
	Categories   []string              `json:"categories,omitempty"`
	Rating       scoring.RatingSummary `json:"rating"`
	Rubric       scoring.ReviewRubric  `json:"rubric"`
	TrustMetrics scoring.TrustMetrics  `json:"trustMetrics"`
	TrustScore   *float64              `json:"trustScore"`
	MarketScore  int                   `json:"marketScore"`
	Profile      *Profile              `json:"profile,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// Profile is the editorial assessment filtered by its published sections.
type Profile struct {
	OverallScore    *float64           `json:"overallScore,omitempty"`
	CategoryScores  map[string]float64 `json:"categoryScores,omitempty"`
	SelectedBadges  []string           `json:"selectedBadges"`
	ServiceAreas    []string           `json:"serviceAreas"`
	PricingEntry    string             `json:"pricingEntry,omitempty"`
	Alternatives    []string           `json:"alternatives,omitempty"`
	FAQs            []FAQ              `json:"faqs,omitempty"`
	LinkedResources []LinkedResource   `json:"linkedResources,omitempty"`
	FeatureMap      []PublicFeature    `json:"featureMap,omitempty"`
	TopFeatures     []PublicFeature    `json:"topFeatures,omitempty"`
	AuditInProgress bool               `json:"auditInProgress"`
	Sections        map[string]bool    `json:"publishedSections"`
}

// NewListing builds the listing for v as of now. Review recency is derived
// from the last review date when the metric itself is unknown.
func NewListing(v Vendor, now time.Time) Listing {
	metrics := v.TrustMetrics
	if metrics.ReviewRecencyDays == nil && v.Stats.LastReviewedAt != nil {
		days := math.Max(0, now.Sub(*v.Stats.LastReviewedAt).Hours()/24)
		metrics.ReviewRecencyDays = &days
	}
	rating := scoring.RatingSummary{Average: v.Stats.AvgRating, Count: v.Stats.ReviewCount}

	l := Listing{
		ID:           v.ID,
		Name:         v.Name,
		Slug:         v.Slug,
		Tagline:      v.Tagline,
		WebsiteURL:   v.WebsiteURL,
		Rating:       rating,
		Rubric:       v.Stats.Rubric,
		TrustMetrics: metrics,
		MarketScore:  scoring.ComputeMarketplaceScore(v.Stats.AvgRating, v.Stats.Rubric, nil),
		CreatedAt:    v.CreatedAt,
	}
	if score, ok := scoring.ComputeTrustScore(rating, metrics); ok {
		l.TrustScore = &score
	}
	if v.Assessment != nil {
		l.Profile = newProfile(*v.Assessment)
		if l.Profile.Sections[SectionCategorise] {
			l.Categories = append([]string(nil), v.Categories...)
		}
	} else {
		l.Categories = append([]string(nil), v.Categories...)
	}
	return l
}

func newProfile(a AssessmentSnapshot) *Profile {
	sections := make(map[string]bool, len(a.PublishedSections))
	for k, v := range a.PublishedSections {
		sections[k] = v
	}
	p := &Profile{
		SelectedBadges:  nonNil(a.SelectedBadges),
		ServiceAreas:    nonNil(a.ServiceAreas),
		PricingEntry:    a.PricingEntry,
		Alternatives:    append([]string(nil), a.Alternatives...),
		FAQs:            append([]FAQ(nil), a.FAQs...),
		LinkedResources: append([]LinkedResource(nil), a.LinkedResources...),
		AuditInProgress: a.AuditInProgress,
		Sections:        sections,
	}
	if sections[SectionScores] {
		overall := a.OverallScore
		p.OverallScore = &overall
		p.CategoryScores = make(map[string]float64, len(a.CategoryScores))
		for k, v := range a.CategoryScores {
			p.CategoryScores[k] = v
		}
	}
	if sections[SectionMapping] {
		p.FeatureMap = append([]PublicFeature(nil), a.Features...)
	}
	if sections[SectionFeatures] {
		p.TopFeatures = topFeatures(a.Features)
	}
	return p
}

func topFeatures(features []PublicFeature) []PublicFeature {
	out := make([]PublicFeature, 0, len(features))
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

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}
