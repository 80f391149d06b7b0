package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/brokertools/marketplace/api/internal/admin/application"
	"github.com/brokertools/marketplace/api/internal/interfaces/http/common"
)

// assessmentOpenHandler returns the stored assessment, or an unsaved seed
// built from the application when none exists yet.
func (h *Handler) assessmentOpenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		result, err := h.assessments.Open(ctx, id)
		if err != nil {
			h.writeServiceError(w, err, "assessment open", id)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, openResponse{
			Application: applicationToResponse(*result.Application),
			Assessment:  assessmentToResponse(result.Assessment),
			Seeded:      result.Seeded,
		})
	}
}

func (h *Handler) assessmentSaveHandler() http.HandlerFunc {
	return h.assessmentWriteHandler("assessment save", h.assessments.SaveDraft)
}

func (h *Handler) assessmentFinalizeHandler() http.HandlerFunc {
	return h.assessmentWriteHandler("assessment finalize", h.assessments.Finalize)
}

type assessmentWrite func(ctx context.Context, applicationID string, cmd adminapp.UpsertAssessmentCommand) (*adminapp.SaveResult, error)

func (h *Handler) assessmentWriteHandler(action string, write assessmentWrite) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req assessmentRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		result, err := write(ctx, id, req.toCommand())
		if err != nil {
			h.writeServiceError(w, err, action, id)
			return
		}
		h.logger.Info(action, "application_id", id, "stage", string(result.Assessment.Stage), "overall", result.Assessment.OverallScore, "warnings", len(result.Warnings))
		common.WriteJSON(h.logger, w, http.StatusOK, saveResponse{
			Assessment: assessmentToResponse(result.Assessment),
			Warnings:   warningsToResponse(result.Warnings),
		})
	}
}

// assessmentPreviewHandler scores unsaved editor state.
func (h *Handler) assessmentPreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assessmentRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		eval, err := h.assessments.Preview(req.toCommand())
		if err != nil {
			h.writeServiceError(w, err, "assessment preview", "")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, previewResponse{
			OverallScore:   eval.Overall,
			CategoryScores: categoryScoresToMap(eval.Categories),
			Warnings:       warningsToResponse(eval.Warnings),
		})
	}
}
