package domain

import (
	"time"

	"github.com/brokertools/marketplace/api/internal/scoring"
)

type AssessmentStage string

const (
	StageDraft AssessmentStage = "draft"
	StageFinal AssessmentStage = "final"
)

// FeatureAssessment is one editor-scored capability. It has no identity
// outside its Assessment.
type FeatureAssessment struct {
	ID             string
	Name           string
	Category       scoring.CategoryKey
	Score          int
	Boost          scoring.Boost
	PublicNote     string
	PrivateNote    string
	TopFeatureRank *int
}

func (f FeatureAssessment) ScoringFeature() scoring.Feature {
	return scoring.Feature{
		ID:             f.ID,
		Name:           f.Name,
		Category:       f.Category,
		Score:          f.Score,
		Boost:          f.Boost,
		TopFeatureRank: f.TopFeatureRank,
	}
}

type FAQ struct {
	Question string
	Answer   string
}

type LinkedResource struct {
	Title string
	URL   URL
}

// Assessment is the editorial record for one application, keyed by
// ApplicationID. OverallScore and CategoryScores are snapshots taken on
// every save.
type Assessment struct {
	ApplicationID     string
	Stage             AssessmentStage
	Features          []FeatureAssessment
	SelectedBadges    BadgeList
	ServiceAreas      RegionList
	PricingEntry      string
	Alternatives      []string
	FAQs              []FAQ
	LinkedResources   []LinkedResource
	PublishedSections PublishedSections
	AuditInProgress   bool
	OverallScore      float64
	CategoryScores    map[scoring.CategoryKey]float64
	FinalizedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a Assessment) Final() bool {
	return a.Stage == StageFinal
}

// Reopened reports a record that was finalized once and is being edited again.
func (a Assessment) Reopened() bool {
	return a.Stage == StageDraft && a.FinalizedAt != nil
}

func (a Assessment) ScoringFeatures() []scoring.Feature {
	out := make([]scoring.Feature, 0, len(a.Features))
	for _, f := range a.Features {
		out = append(out, f.ScoringFeature())
	}
	return out
}

// TopFeatures returns ranked features in ascending rank order.
func (a Assessment) TopFeatures() []FeatureAssessment {
	byID := make(map[string]FeatureAssessment, len(a.Features))
	for _, f := range a.Features {
		byID[f.ID] = f
	}
	ranked := scoring.TopFeatures(a.ScoringFeatures())
	out := make([]FeatureAssessment, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, byID[r.ID])
	}
	return out
}

// Clone returns a deep copy.
func (a Assessment) Clone() Assessment {
	out := a
	out.Features = cloneFeatures(a.Features)
	out.SelectedBadges = append(BadgeList(nil), a.SelectedBadges...)
	out.ServiceAreas = append(RegionList(nil), a.ServiceAreas...)
	out.Alternatives = append([]string(nil), a.Alternatives...)
	out.FAQs = append([]FAQ(nil), a.FAQs...)
	out.LinkedResources = append([]LinkedResource(nil), a.LinkedResources...)
	out.PublishedSections = a.PublishedSections.Clone()
	if a.CategoryScores != nil {
		out.CategoryScores = make(map[scoring.CategoryKey]float64, len(a.CategoryScores))
		for k, v := range a.CategoryScores {
			out.CategoryScores[k] = v
		}
	}
	if a.FinalizedAt != nil {
		t := *a.FinalizedAt
		out.FinalizedAt = &t
	}
	return out
}

func cloneFeatures(in []FeatureAssessment) []FeatureAssessment {
	if in == nil {
		return nil
	}
	out := make([]FeatureAssessment, len(in))
	for i, f := range in {
		out[i] = f
		if f.TopFeatureRank != nil {
			r := *f.TopFeatureRank
			out[i].TopFeatureRank = &r
		}
	}
	return out
}
