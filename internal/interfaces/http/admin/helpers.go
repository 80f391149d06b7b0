package admin

import (
	"errors"
	"net/http"

	adminapp "github.com/brokertools/marketplace/api/internal/admin/application"
	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/interfaces/http/common"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

// writeServiceError maps application errors to HTTP statuses. The caller's
// unsaved edits stay on the client; a failed write is safe to retry.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, action, id string) {
	switch {
	case errors.Is(err, adminapp.ErrFinalizeIncomplete):
		h.logger.Error(action+" incomplete", "application_id", id, "error", err)
		common.WriteJSON(h.logger, w, http.StatusBadGateway, map[string]any{
			"error": "assessment saved as final but application status was not updated",
			"retry": true,
		})
	case errors.Is(err, adminapp.ErrInvalidInput):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, adminapp.ErrNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "application not found")
	default:
		h.logger.Error(action+" failed", "application_id", id, "error", err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, action+" failed")
	}
}

func applicationToResponse(app admindomain.Application) applicationResponse {
	return applicationResponse{
		ID:           app.ID,
		CompanyName:  app.CompanyName,
		Slug:         app.Slug,
		Tagline:      app.Tagline,
		WebsiteURL:   app.WebsiteURL.String(),
		ContactEmail: app.ContactEmail,
		Features:     nonNil(app.Features),
		Integrations: nonNil(app.Integrations),
		Categories:   nonNil(app.Categories),
		PricingEntry: app.PricingEntry,
		Alternatives: app.Alternatives,
		Status:       app.Status.String(),
		RejectReason: app.RejectReason,
		CreatedAt:    app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
	}
}

func assessmentToResponse(a admindomain.Assessment) assessmentResponse {
	features := make([]featurePayload, 0, len(a.Features))
	for _, f := range a.Features {
		features = append(features, featurePayload{
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
	top := a.TopFeatures()
	topIDs := make([]string, 0, len(top))
	for _, f := range top {
		topIDs = append(topIDs, f.ID)
	}
	faqs := make([]faqPayload, 0, len(a.FAQs))
	for _, q := range a.FAQs {
		faqs = append(faqs, faqPayload{Question: q.Question, Answer: q.Answer})
	}
	resources := make([]resourcePayload, 0, len(a.LinkedResources))
	for _, r := range a.LinkedResources {
		resources = append(resources, resourcePayload{Title: r.Title, URL: r.URL.String()})
	}
	return assessmentResponse{
		ApplicationID:     a.ApplicationID,
		Stage:             string(a.Stage),
		Reopened:          a.Reopened(),
		Features:          features,
		TopFeatures:       topIDs,
		SelectedBadges:    nonNil(a.SelectedBadges.Strings()),
		ServiceAreas:      nonNil(a.ServiceAreas.Strings()),
		PricingEntry:      a.PricingEntry,
		Alternatives:      nonNil(a.Alternatives),
		FAQs:              faqs,
		LinkedResources:   resources,
		PublishedSections: a.PublishedSections.StringMap(),
		AuditInProgress:   a.AuditInProgress,
		OverallScore:      a.OverallScore,
		CategoryScores:    categoryScoresToMap(a.CategoryScores),
		FinalizedAt:       a.FinalizedAt,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (req assessmentRequest) toCommand() adminapp.UpsertAssessmentCommand {
	cmd := adminapp.UpsertAssessmentCommand{
		SelectedBadges:    req.SelectedBadges,
		ServiceAreas:      req.ServiceAreas,
		PricingEntry:      req.PricingEntry,
		Alternatives:      req.Alternatives,
		PublishedSections: req.PublishedSections,
		AuditInProgress:   req.AuditInProgress,
	}
	for _, f := range req.Features {
		cmd.Features = append(cmd.Features, adminapp.FeatureCommand{
			ID:             f.ID,
			Name:           f.Name,
			Category:       f.Category,
			Score:          f.Score,
			Boost:          f.Boost,
			PublicNote:     f.PublicNote,
			PrivateNote:    f.PrivateNote,
			TopFeatureRank: f.TopFeatureRank,
		})
	}
	for _, q := range req.FAQs {
		cmd.FAQs = append(cmd.FAQs, adminapp.FAQCommand{Question: q.Question, Answer: q.Answer})
	}
	for _, r := range req.LinkedResources {
		cmd.LinkedResources = append(cmd.LinkedResources, adminapp.LinkedResourceCommand{Title: r.Title, URL: r.URL})
	}
	return cmd
}

func warningsToResponse(warnings []scoring.Warning) []warningResponse {
	out := make([]warningResponse, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, warningResponse{FeatureID: w.FeatureID, Field: w.Field, Message: w.Message})
	}
	return out
}

func categoryScoresToMap(scores map[scoring.CategoryKey]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[string(k)] = v
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
