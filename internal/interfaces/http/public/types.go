package public

import (
	"github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

type vendorListResponse struct {
	Items []domain.Listing `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Sort  string           `json:"sort"`
}

type trustScoreRequest struct {
	Rating       scoring.RatingSummary `json:"rating"`
	TrustMetrics scoring.TrustMetrics  `json:"trustMetrics"`
}

// trustScoreResponse reports score as null when no signal was present.
type trustScoreResponse struct {
	Score      *float64                 `json:"score"`
	Scored     bool                     `json:"scored"`
	Components []scoring.TrustComponent `json:"components"`
}
