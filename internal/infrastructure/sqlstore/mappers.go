package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	publicdomain "github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

func encodeJSON(v any) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeJSON(raw datatypes.JSON, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func decodeStrings(raw datatypes.JSON) ([]string, error) {
	var out []string
	if err := decodeJSON(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func buildAssessmentRow(a *admindomain.Assessment) (AssessmentRow, error) {
	body := assessmentBody{
		Features:          make([]featurePayload, 0, len(a.Features)),
		SelectedBadges:    a.SelectedBadges.Strings(),
		ServiceAreas:      a.ServiceAreas.Strings(),
		PricingEntry:      a.PricingEntry,
		Alternatives:      a.Alternatives,
		PublishedSections: a.PublishedSections.StringMap(),
		AuditInProgress:   a.AuditInProgress,
		CategoryScores:    make(map[string]float64, len(a.CategoryScores)),
	}
	for _, f := range a.Features {
		body.Features = append(body.Features, featurePayload{
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
	for _, q := range a.FAQs {
		body.FAQs = append(body.FAQs, faqPayload{Question: q.Question, Answer: q.Answer})
	}
	for _, r := range a.LinkedResources {
		body.LinkedResources = append(body.LinkedResources, resourcePayload{Title: r.Title, URL: r.URL.String()})
	}
	for k, v := range a.CategoryScores {
		body.CategoryScores[string(k)] = v
	}
	encoded, err := encodeJSON(body)
	if err != nil {
		return AssessmentRow{}, err
	}
	return AssessmentRow{
		ApplicationID: a.ApplicationID,
		Stage:         string(a.Stage),
		Body:          encoded,
		OverallScore:  a.OverallScore,
		FinalizedAt:   a.FinalizedAt,
		CreatedAt:     a.CreatedAt.UTC(),
		UpdatedAt:     a.UpdatedAt.UTC(),
	}, nil
}

func mapAssessment(row AssessmentRow) (admindomain.Assessment, error) {
	var body assessmentBody
	if err := decodeJSON(row.Body, &body); err != nil {
		return admindomain.Assessment{}, fmt.Errorf("assessment %s: %w", row.ApplicationID, err)
	}
	badges, err := admindomain.NewBadgeList(body.SelectedBadges)
	if err != nil {
		return admindomain.Assessment{}, err
	}
	regions, err := admindomain.NewRegionList(body.ServiceAreas)
	if err != nil {
		return admindomain.Assessment{}, err
	}
	sections, err := admindomain.NewPublishedSections(body.PublishedSections)
	if err != nil {
		return admindomain.Assessment{}, err
	}

	features := make([]admindomain.FeatureAssessment, 0, len(body.Features))
	for _, f := range body.Features {
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
	for _, q := range body.FAQs {
		faqs = append(faqs, admindomain.FAQ{Question: q.Question, Answer: q.Answer})
	}
	var resources []admindomain.LinkedResource
	for _, r := range body.LinkedResources {
		u, err := admindomain.NewURL(r.URL)
		if err != nil {
			return admindomain.Assessment{}, err
		}
		resources = append(resources, admindomain.LinkedResource{Title: r.Title, URL: u})
	}
	categoryScores := make(map[scoring.CategoryKey]float64, len(body.CategoryScores))
	for k, v := range body.CategoryScores {
		categoryScores[scoring.CategoryKey(k)] = v
	}

	return admindomain.Assessment{
		ApplicationID:     row.ApplicationID,
		Stage:             admindomain.AssessmentStage(row.Stage),
		Features:          features,
		SelectedBadges:    badges,
		ServiceAreas:      regions,
		PricingEntry:      body.PricingEntry,
		Alternatives:      body.Alternatives,
		FAQs:              faqs,
		LinkedResources:   resources,
		PublishedSections: sections,
		AuditInProgress:   body.AuditInProgress,
		OverallScore:      row.OverallScore,
		CategoryScores:    categoryScores,
		FinalizedAt:       utcPtr(row.FinalizedAt),
		CreatedAt:         row.CreatedAt.UTC(),
		UpdatedAt:         row.UpdatedAt.UTC(),
	}, nil
}

// mapSnapshot builds the public read model. Private notes are not copied.
func mapSnapshot(row AssessmentRow) (*publicdomain.AssessmentSnapshot, error) {
	var body assessmentBody
	if err := decodeJSON(row.Body, &body); err != nil {
		return nil, fmt.Errorf("assessment %s: %w", row.ApplicationID, err)
	}
	features := make([]publicdomain.PublicFeature, 0, len(body.Features))
	for _, f := range body.Features {
		features = append(features, publicdomain.PublicFeature{
			Name:           f.Name,
			Category:       f.Category,
			Score:          f.Score,
			Boost:          f.Boost,
			PublicNote:     f.PublicNote,
			TopFeatureRank: f.TopFeatureRank,
		})
	}
	faqs := make([]publicdomain.FAQ, 0, len(body.FAQs))
	for _, q := range body.FAQs {
		faqs = append(faqs, publicdomain.FAQ{Question: q.Question, Answer: q.Answer})
	}
	resources := make([]publicdomain.LinkedResource, 0, len(body.LinkedResources))
	for _, r := range body.LinkedResources {
		resources = append(resources, publicdomain.LinkedResource{Title: r.Title, URL: r.URL})
	}
	return &publicdomain.AssessmentSnapshot{
		Stage:             row.Stage,
		OverallScore:      row.OverallScore,
		CategoryScores:    body.CategoryScores,
		SelectedBadges:    body.SelectedBadges,
		PublishedSections: body.PublishedSections,
		ServiceAreas:      body.ServiceAreas,
		PricingEntry:      body.PricingEntry,
		Alternatives:      body.Alternatives,
		FAQs:              faqs,
		LinkedResources:   resources,
		Features:          features,
		AuditInProgress:   body.AuditInProgress,
		UpdatedAt:         row.UpdatedAt.UTC(),
	}, nil
}

func buildApplicationRow(app admindomain.Application, stats publicdomain.VendorStats, metrics scoring.TrustMetrics) (ApplicationRow, error) {
	row := ApplicationRow{
		ID:           app.ID,
		CompanyName:  app.CompanyName,
		Slug:         app.Slug,
		Tagline:      app.Tagline,
		WebsiteURL:   app.WebsiteURL.String(),
		ContactEmail: app.ContactEmail,
		PricingEntry: app.PricingEntry,
		Status:       app.Status.String(),
		RejectReason: app.RejectReason,
		CreatedAt:    app.CreatedAt.UTC(),
		UpdatedAt:    app.UpdatedAt.UTC(),
	}
	lists := []struct {
		dst *datatypes.JSON
		src []string
	}{
		{&row.Features, app.Features},
		{&row.Integrations, app.Integrations},
		{&row.Categories, app.Categories},
		{&row.Alternatives, app.Alternatives},
	}
	for _, l := range lists {
		src := l.src
		if src == nil {
			src = []string{}
		}
		encoded, err := encodeJSON(src)
		if err != nil {
			return ApplicationRow{}, err
		}
		*l.dst = encoded
	}

	var err error
	row.Stats, err = encodeJSON(statsPayload{
		ReviewCount:    stats.ReviewCount,
		AvgRating:      stats.AvgRating,
		LastReviewedAt: stats.LastReviewedAt,
		Rubric: rubricPayload{
			Usability: stats.Rubric.Usability,
			Support:   stats.Rubric.Support,
			Value:     stats.Rubric.Value,
			Features:  stats.Rubric.Features,
		},
	})
	if err != nil {
		return ApplicationRow{}, err
	}
	row.TrustMetrics, err = encodeJSON(trustPayload{
		ResponseTimeHours: metrics.ResponseTimeHours,
		VerifiedRatio:     metrics.VerifiedRatio,
		ReviewRecencyDays: metrics.ReviewRecencyDays,
	})
	if err != nil {
		return ApplicationRow{}, err
	}
	return row, nil
}

func mapApplication(row ApplicationRow) (admindomain.Application, error) {
	status, err := admindomain.NewApplicationStatus(row.Status)
	if err != nil {
		return admindomain.Application{}, err
	}
	website, err := admindomain.NewURL(row.WebsiteURL)
	if err != nil {
		return admindomain.Application{}, err
	}
	app := admindomain.Application{
		ID:           row.ID,
		CompanyName:  row.CompanyName,
		Slug:         row.Slug,
		Tagline:      row.Tagline,
		WebsiteURL:   website,
		ContactEmail: row.ContactEmail,
		PricingEntry: row.PricingEntry,
		Status:       status,
		RejectReason: row.RejectReason,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
	if app.Features, err = decodeStrings(row.Features); err != nil {
		return admindomain.Application{}, err
	}
	if app.Integrations, err = decodeStrings(row.Integrations); err != nil {
		return admindomain.Application{}, err
	}
	if app.Categories, err = decodeStrings(row.Categories); err != nil {
		return admindomain.Application{}, err
	}
	if app.Alternatives, err = decodeStrings(row.Alternatives); err != nil {
		return admindomain.Application{}, err
	}
	return app, nil
}

func mapVendor(row ApplicationRow) (publicdomain.Vendor, error) {
	categories, err := decodeStrings(row.Categories)
	if err != nil {
		return publicdomain.Vendor{}, err
	}
	var stats statsPayload
	if err := decodeJSON(row.Stats, &stats); err != nil {
		return publicdomain.Vendor{}, err
	}
	var trust trustPayload
	if err := decodeJSON(row.TrustMetrics, &trust); err != nil {
		return publicdomain.Vendor{}, err
	}
	return publicdomain.Vendor{
		ID:         row.ID,
		Name:       row.CompanyName,
		Slug:       row.Slug,
		Tagline:    row.Tagline,
		WebsiteURL: row.WebsiteURL,
		Categories: categories,
		Stats: publicdomain.VendorStats{
			ReviewCount: stats.ReviewCount,
			AvgRating:   stats.AvgRating,
			Rubric: scoring.ReviewRubric{
				Usability: stats.Rubric.Usability,
				Support:   stats.Rubric.Support,
				Value:     stats.Rubric.Value,
				Features:  stats.Rubric.Features,
			},
			LastReviewedAt: stats.LastReviewedAt,
		},
		TrustMetrics: scoring.TrustMetrics{
			ResponseTimeHours: trust.ResponseTimeHours,
			VerifiedRatio:     trust.VerifiedRatio,
			ReviewRecencyDays: trust.ReviewRecencyDays,
		},
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
