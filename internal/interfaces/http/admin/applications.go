package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/brokertools/marketplace/api/internal/admin/application"
	"github.com/brokertools/marketplace/api/internal/interfaces/http/common"
)

func (h *Handler) applicationListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), common.DefaultPageSize)
		filter := adminapp.ApplicationFilter{
			Status:  strings.TrimSpace(query.Get("status")),
			Keyword: strings.TrimSpace(query.Get("keyword")),
		}

		apps, err := h.applications.List(ctx, filter, adminapp.Paging{Page: page, Limit: limit})
		if err != nil {
			h.writeServiceError(w, err, "application list", "")
			return
		}

		items := make([]applicationResponse, 0, len(apps))
		for _, app := range apps {
			items = append(items, applicationToResponse(app))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, applicationListResponse{Items: items})
	}
}

func (h *Handler) applicationDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		app, err := h.applications.Detail(ctx, id)
		if err != nil {
			h.writeServiceError(w, err, "application detail", id)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, applicationToResponse(*app))
	}
}

func (h *Handler) applicationRejectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req rejectRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		app, err := h.applications.Reject(ctx, id, req.Reason)
		if err != nil {
			h.writeServiceError(w, err, "application reject", id)
			return
		}
		h.logger.Info("application rejected", "application_id", id)
		common.WriteJSON(h.logger, w, http.StatusOK, applicationToResponse(*app))
	}
}
