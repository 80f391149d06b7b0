package public

import (
	"net/http"

	"github.com/brokertools/marketplace/api/internal/interfaces/http/common"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

// trustScoreHandler evaluates ad hoc trust inputs and returns the breakdown.
func (h *Handler) trustScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req trustScoreRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		breakdown := h.listings.TrustScore(req.Rating, req.TrustMetrics)
		resp := trustScoreResponse{
			Scored:     breakdown.Scored,
			Components: breakdown.Components,
		}
		if resp.Components == nil {
			resp.Components = []scoring.TrustComponent{}
		}
		if breakdown.Scored {
			score := breakdown.Score
			resp.Score = &score
		}
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}
