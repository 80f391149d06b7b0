package admin

import (
	"github.com/go-chi/chi/v5"

	adminapp "github.com/brokertools/marketplace/api/internal/admin/application"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger       *logger.Logger
	applications adminapp.ApplicationService
	assessments  adminapp.AssessmentService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger       *logger.Logger
	Applications adminapp.ApplicationService
	Assessments  adminapp.AssessmentService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		logger:       log.With("handler", "admin"),
		applications: cfg.Applications,
		assessments:  cfg.Assessments,
	}
}

// Register mounts admin routes onto router. Authentication is applied by the
// caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/auth/verify", h.authVerifyHandler())
	r.Get("/rubric", h.rubricHandler())
	r.Get("/applications", h.applicationListHandler())
	r.Get("/applications/{id}", h.applicationDetailHandler())
	r.Post("/applications/{id}/reject", h.applicationRejectHandler())
	r.Get("/applications/{id}/assessment", h.assessmentOpenHandler())
	r.Put("/applications/{id}/assessment", h.assessmentSaveHandler())
	r.Post("/applications/{id}/assessment/finalize", h.assessmentFinalizeHandler())
	r.Post("/assessments/preview", h.assessmentPreviewHandler())
}
