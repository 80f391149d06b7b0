package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/brokertools/marketplace/api/internal/scoring"
)

const (
	seedFeatureScore      = 5
	seedIntegrationsScore = 7

	IntegrationsFeatureID   = "f-integrations"
	IntegrationsFeatureName = "Core Integrations Hub"
	seedPrivateNote         = "Pre-populated from vendor application."
)

// AssessmentContent is the editor-controlled part of an Assessment.
type AssessmentContent struct {
	Features          []FeatureAssessment
	SelectedBadges    BadgeList
	ServiceAreas      RegionList
	PricingEntry      string
	Alternatives      []string
	FAQs              []FAQ
	LinkedResources   []LinkedResource
	PublishedSections PublishedSections
	AuditInProgress   bool
}

// Seed builds the first draft for an application from its self-reported
// features and integrations. Every self-reported feature starts in the
// automation category; integrations collapse into one feature.
func Seed(app Application, categories []scoring.Category, now time.Time) Assessment {
	features := make([]FeatureAssessment, 0, len(app.Features)+1)
	for i, name := range app.Features {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		features = append(features, FeatureAssessment{
			ID:       fmt.Sprintf("f-%d", i),
			Name:     name,
			Category: scoring.CategoryAutomation,
			Score:    seedFeatureScore,
			Boost:    scoring.BoostNone,
		})
	}

	integrations := nonEmpty(app.Integrations)
	if len(integrations) > 0 {
		features = append(features, FeatureAssessment{
			ID:          IntegrationsFeatureID,
			Name:        IntegrationsFeatureName,
			Category:    scoring.CategoryIntegrations,
			Score:       seedIntegrationsScore,
			Boost:       scoring.BoostStrong,
			PublicNote:  "Integrates with " + strings.Join(integrations, ", "),
			PrivateNote: seedPrivateNote,
		})
	}

	record := Assessment{
		ApplicationID:     app.ID,
		Stage:             StageDraft,
		Features:          features,
		ServiceAreas:      RegionList{RegionGlobal},
		PricingEntry:      app.PricingEntry,
		Alternatives:      nonEmpty(app.Alternatives),
		PublishedSections: DefaultPublishedSections(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	snapshotScores(&record, categories)
	return record
}

// ApplyDraft returns a new draft record holding content. Scores are
// recomputed from scratch. A previously finalized record re-enters draft
// and keeps its FinalizedAt. prev is not modified.
func ApplyDraft(prev *Assessment, applicationID string, content AssessmentContent, categories []scoring.Category, now time.Time) (Assessment, []scoring.Warning) {
	record := Assessment{
		ApplicationID:     applicationID,
		Stage:             StageDraft,
		Features:          cloneFeatures(content.Features),
		SelectedBadges:    append(BadgeList(nil), content.SelectedBadges...),
		ServiceAreas:      append(RegionList(nil), content.ServiceAreas...),
		PricingEntry:      content.PricingEntry,
		Alternatives:      append([]string(nil), content.Alternatives...),
		FAQs:              append([]FAQ(nil), content.FAQs...),
		LinkedResources:   append([]LinkedResource(nil), content.LinkedResources...),
		PublishedSections: content.PublishedSections.Clone(),
		AuditInProgress:   content.AuditInProgress,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if len(record.ServiceAreas) == 0 {
		record.ServiceAreas = RegionList{RegionGlobal}
	}
	if record.PublishedSections == nil {
		record.PublishedSections = DefaultPublishedSections()
	}
	if prev != nil {
		record.CreatedAt = prev.CreatedAt
		if prev.FinalizedAt != nil {
			t := *prev.FinalizedAt
			record.FinalizedAt = &t
		}
	}

	var warnings []scoring.Warning
	for i, f := range record.Features {
		clean, w := scoring.Sanitize(f.ScoringFeature())
		record.Features[i].Score = clean.Score
		record.Features[i].Boost = clean.Boost
		warnings = append(warnings, w...)
	}
	warnings = append(warnings, snapshotScores(&record, categories)...)
	return record, warnings
}

// MarkFinal returns a copy of record in the final stage. The first
// finalization time is preserved across repeated calls.
func MarkFinal(record Assessment, now time.Time) Assessment {
	out := record.Clone()
	out.Stage = StageFinal
	if out.FinalizedAt == nil {
		t := now
		out.FinalizedAt = &t
	}
	out.UpdatedAt = now
	return out
}

func snapshotScores(record *Assessment, categories []scoring.Category) []scoring.Warning {
	eval := scoring.Evaluate(record.ScoringFeatures(), categories)
	record.OverallScore = eval.Overall
	record.CategoryScores = eval.Categories
	return eval.Warnings
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
