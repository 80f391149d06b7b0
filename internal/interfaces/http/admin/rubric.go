package admin

import (
	"net/http"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/interfaces/http/common"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

// rubricHandler exposes the closed vocabularies the assessment editor needs.
func (h *Handler) rubricHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		categories := h.assessments.Categories()
		resp := rubricResponse{
			Categories:     make([]categoryResponse, 0, len(categories)),
			ScoreRange:     [2]int{scoring.MinFeatureScore, scoring.MaxFeatureScore},
			Sections:       admindomain.DefaultPublishedSections().StringMap(),
			ServiceRegions: make([]string, 0, len(admindomain.ServiceRegions())),
		}
		for _, c := range categories {
			resp.Categories = append(resp.Categories, categoryResponse{
				Key:         string(c.Key),
				Label:       c.Label,
				Description: c.Description,
				Weight:      c.Weight,
			})
		}
		for _, b := range scoring.Boosts() {
			resp.Boosts = append(resp.Boosts, float64(b))
		}
		for _, b := range admindomain.Badges() {
			resp.Badges = append(resp.Badges, optionResponse{Key: string(b), Label: b.Label()})
		}
		for _, region := range admindomain.ServiceRegions() {
			resp.ServiceRegions = append(resp.ServiceRegions, string(region))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}
