package mongo

import (
	"fmt"
	"time"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	publicdomain "github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

func buildAssessmentDocument(a *admindomain.Assessment) AssessmentDocument {
	features := make([]FeatureDocument, 0, len(a.Features))
	for _, f := range a.Features {
		features = append(features, FeatureDocument{
			ID:             f.ID,
			Name:           f.Name,
			Category:       string(f.Category),
			Score:          f.Score,
			Boost:          float64(f.Boost),
			PublicNote:     f.PublicNote,
			PrivateNote:    f.PrivateNote,
			TopFeatureRank: f.TopFeatureRank,
		})
	}
	faqs := make([]FAQDocument, 0, len(a.FAQs))
	for _, q := range a.FAQs {
		faqs = append(faqs, FAQDocument{Question: q.Question, Answer: q.Answer})
	}
	resources := make([]LinkedResourceDocument, 0, len(a.LinkedResources))
	for _, r := range a.LinkedResources {
		resources = append(resources, LinkedResourceDocument{Title: r.Title, URL: r.URL.String()})
	}
	categoryScores := make(map[string]float64, len(a.CategoryScores))
	for k, v := range a.CategoryScores {
		categoryScores[string(k)] = v
	}
	return AssessmentDocument{
		ApplicationID:     a.ApplicationID,
		Stage:             string(a.Stage),
		Features:          features,
		SelectedBadges:    a.SelectedBadges.Strings(),
		ServiceAreas:      a.ServiceAreas.Strings(),
		PricingEntry:      a.PricingEntry,
		Alternatives:      append([]string{}, a.Alternatives...),
		FAQs:              faqs,
		LinkedResources:   resources,
		PublishedSections: a.PublishedSections.StringMap(),
		AuditInProgress:   a.AuditInProgress,
		OverallScore:      a.OverallScore,
		CategoryScores:    categoryScores,
		FinalizedAt:       a.FinalizedAt,
		CreatedAt:         a.CreatedAt.UTC(),
		UpdatedAt:         a.UpdatedAt.UTC(),
	}
}

// mapAssessment rebuilds the admin aggregate, validating stored vocabularies.
func mapAssessment(doc AssessmentDocument) (admindomain.Assessment, error) {
	badges, err := admindomain.NewBadgeList(doc.SelectedBadges)
	if err != nil {
		return admindomain.Assessment{}, err
	}
	regions, err := admindomain.NewRegionList(doc.ServiceAreas)
	if err != nil {
		return admindomain.Assessment{}, err
	}
	sections, err := admindomain.NewPublishedSections(doc.PublishedSections)
	if err != nil {
		return admindomain.Assessment{}, err
	}

	var features []admindomain.FeatureAssessment
	if doc.Features != nil {
		features = make([]admindomain.FeatureAssessment, 0, len(doc.Features))
	}
	for _, f := range doc.Features {
		boost, err := scoring.ParseBoost(f.Boost)
		if err != nil {
			return admindomain.Assessment{}, fmt.Errorf("feature %s: %w", f.ID, err)
		}
		features = append(features, admindomain.FeatureAssessment{
			ID:             f.ID,
			Name:           f.Name,
			Category:       scoring.CategoryKey(f.Category),
			Score:          f.Score,
			Boost:          boost,
			PublicNote:     f.PublicNote,
			PrivateNote:    f.PrivateNote,
			TopFeatureRank: f.TopFeatureRank,
		})
	}

	var faqs []admindomain.FAQ
	for _, q := range doc.FAQs {
		faqs = append(faqs, admindomain.FAQ{Question: q.Question, Answer: q.Answer})
	}
	var resources []admindomain.LinkedResource
	for _, r := range doc.LinkedResources {
		u, err := admindomain.NewURL(r.URL)
		if err != nil {
			return admindomain.Assessment{}, err
		}
		resources = append(resources, admindomain.LinkedResource{Title: r.Title, URL: u})
	}
	categoryScores := make(map[scoring.CategoryKey]float64, len(doc.CategoryScores))
	for k, v := range doc.CategoryScores {
		categoryScores[scoring.CategoryKey(k)] = v
	}
	var alternatives []string
	if len(doc.Alternatives) > 0 {
		alternatives = append(alternatives, doc.Alternatives...)
	}

	var finalizedAt *time.Time
	if doc.FinalizedAt != nil {
		t := doc.FinalizedAt.UTC()
		finalizedAt = &t
	}

	return admindomain.Assessment{
		ApplicationID:     doc.ApplicationID,
		Stage:             admindomain.AssessmentStage(doc.Stage),
		Features:          features,
		SelectedBadges:    badges,
		ServiceAreas:      regions,
		PricingEntry:      doc.PricingEntry,
		Alternatives:      alternatives,
		FAQs:              faqs,
		LinkedResources:   resources,
		PublishedSections: sections,
		AuditInProgress:   doc.AuditInProgress,
		OverallScore:      doc.OverallScore,
		CategoryScores:    categoryScores,
		FinalizedAt:       finalizedAt,
		CreatedAt:         doc.CreatedAt.UTC(),
		UpdatedAt:         doc.UpdatedAt.UTC(),
	}, nil
}

// mapSnapshot converts a stored assessment into the public read model.
// Private notes are dropped here.
func mapSnapshot(doc AssessmentDocument) *publicdomain.AssessmentSnapshot {
	features := make([]publicdomain.PublicFeature, 0, len(doc.Features))
	for _, f := range doc.Features {
		features = append(features, publicdomain.PublicFeature{
			Name:           f.Name,
			Category:       f.Category,
			Score:          f.Score,
			Boost:          f.Boost,
			PublicNote:     f.PublicNote,
			TopFeatureRank: f.TopFeatureRank,
		})
	}
	faqs := make([]publicdomain.FAQ, 0, len(doc.FAQs))
	for _, q := range doc.FAQs {
		faqs = append(faqs, publicdomain.FAQ{Question: q.Question, Answer: q.Answer})
	}
	resources := make([]publicdomain.LinkedResource, 0, len(doc.LinkedResources))
	for _, r := range doc.LinkedResources {
		resources = append(resources, publicdomain.LinkedResource{Title: r.Title, URL: r.URL})
	}
	return &publicdomain.AssessmentSnapshot{
		Stage:             doc.Stage,
		OverallScore:      doc.OverallScore,
		CategoryScores:    doc.CategoryScores,
		SelectedBadges:    doc.SelectedBadges,
		PublishedSections: doc.PublishedSections,
		ServiceAreas:      doc.ServiceAreas,
		PricingEntry:      doc.PricingEntry,
		Alternatives:      doc.Alternatives,
		FAQs:              faqs,
		LinkedResources:   resources,
		Features:          features,
		AuditInProgress:   doc.AuditInProgress,
		UpdatedAt:         doc.UpdatedAt,
	}
}

func mapApplication(doc ApplicationDocument) (admindomain.Application, error) {
	status, err := admindomain.NewApplicationStatus(doc.Status)
	if err != nil {
		return admindomain.Application{}, err
	}
	website, err := admindomain.NewURL(doc.WebsiteURL)
	if err != nil {
		return admindomain.Application{}, err
	}
	return admindomain.Application{
		ID:           doc.ID.Hex(),
		CompanyName:  doc.CompanyName,
		Slug:         doc.Slug,
		Tagline:      doc.Tagline,
		WebsiteURL:   website,
		ContactEmail: doc.ContactEmail,
		Features:     append([]string{}, doc.Features...),
		Integrations: append([]string{}, doc.Integrations...),
		Categories:   append([]string{}, doc.Categories...),
		PricingEntry: doc.PricingEntry,
		Alternatives: append([]string{}, doc.Alternatives...),
		Status:       status,
		RejectReason: doc.RejectReason,
		CreatedAt:    derefTime(doc.CreatedAt),
		UpdatedAt:    derefTime(doc.UpdatedAt),
	}, nil
}

func mapVendor(doc ApplicationDocument) publicdomain.Vendor {
	return publicdomain.Vendor{
		ID:         doc.ID.Hex(),
		Name:       doc.CompanyName,
		Slug:       doc.Slug,
		Tagline:    doc.Tagline,
		WebsiteURL: doc.WebsiteURL,
		Categories: append([]string{}, doc.Categories...),
		Stats: publicdomain.VendorStats{
			ReviewCount: doc.Stats.ReviewCount,
			AvgRating:   doc.Stats.AvgRating,
			Rubric: scoring.ReviewRubric{
				Usability: doc.Stats.Rubric.Usability,
				Support:   doc.Stats.Rubric.Support,
				Value:     doc.Stats.Rubric.Value,
				Features:  doc.Stats.Rubric.Features,
			},
			LastReviewedAt: doc.Stats.LastReviewedAt,
		},
		TrustMetrics: scoring.TrustMetrics{
			ResponseTimeHours: doc.TrustMetrics.ResponseTimeHours,
			VerifiedRatio:     doc.TrustMetrics.VerifiedRatio,
			ReviewRecencyDays: doc.TrustMetrics.ReviewRecencyDays,
		},
		CreatedAt: derefTime(doc.CreatedAt),
		UpdatedAt: derefTime(doc.UpdatedAt),
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func buildApplicationDocument(app admindomain.Application, stats publicdomain.VendorStats, metrics scoring.TrustMetrics) ApplicationDocument {
	created := app.CreatedAt.UTC()
	updated := app.UpdatedAt.UTC()
	return ApplicationDocument{
		CompanyName:  app.CompanyName,
		Slug:         app.Slug,
		Tagline:      app.Tagline,
		WebsiteURL:   app.WebsiteURL.String(),
		ContactEmail: app.ContactEmail,
		Features:     app.Features,
		Integrations: app.Integrations,
		Categories:   app.Categories,
		PricingEntry: app.PricingEntry,
		Alternatives: app.Alternatives,
		Status:       app.Status.String(),
		RejectReason: app.RejectReason,
		Stats: VendorStatsDocument{
			ReviewCount: stats.ReviewCount,
			AvgRating:   stats.AvgRating,
			Rubric: RubricDocument{
				Usability: stats.Rubric.Usability,
				Support:   stats.Rubric.Support,
				Value:     stats.Rubric.Value,
				Features:  stats.Rubric.Features,
			},
			LastReviewedAt: stats.LastReviewedAt,
		},
		TrustMetrics: TrustMetricsDocument{
			ResponseTimeHours: metrics.ResponseTimeHours,
			VerifiedRatio:     metrics.VerifiedRatio,
			ReviewRecencyDays: metrics.ReviewRecencyDays,
		},
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}
