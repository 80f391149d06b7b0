package public

import (
	"github.com/go-chi/chi/v5"

	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicapp "github.com/brokertools/marketplace/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger   *logger.Logger
	listings publicapp.ListingQueryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger   *logger.Logger
	Listings publicapp.ListingQueryService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		logger:   log.With("handler", "public"),
		listings: cfg.Listings,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/vendors", h.vendorListHandler())
	r.Get("/vendors/{id}", h.vendorDetailHandler())
	r.Post("/trust-score", h.trustScoreHandler())
}
