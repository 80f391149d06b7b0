package public

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brokertools/marketplace/api/internal/interfaces/http/common"
	publicapp "github.com/brokertools/marketplace/api/internal/public/application"
	"github.com/brokertools/marketplace/api/internal/public/domain"
)

var sortKeys = map[string]struct{}{
	publicapp.SortNewest: {},
	publicapp.SortTrust:  {},
	publicapp.SortFit:    {},
	publicapp.SortMarket: {},
}

func (h *Handler) vendorListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		sortKey := strings.ToLower(strings.TrimSpace(query.Get("sort")))
		if sortKey == "" {
			sortKey = publicapp.SortNewest
		}
		if _, ok := sortKeys[sortKey]; !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, "unknown sort: "+sortKey)
			return
		}
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), common.DefaultPageSize)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		filter := publicapp.VendorFilter{
			Category: strings.TrimSpace(query.Get("category")),
			Keyword:  strings.TrimSpace(query.Get("keyword")),
		}
		listings, err := h.listings.List(ctx, filter, publicapp.Paging{Page: page, Limit: limit, Sort: sortKey})
		if err != nil {
			h.logger.Error("vendor list fetch failed", "error", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load vendors")
			return
		}
		if listings == nil {
			listings = []domain.Listing{}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, vendorListResponse{
			Items: listings,
			Page:  page,
			Limit: limit,
			Sort:  sortKey,
		})
	}
}

func (h *Handler) vendorDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.listings.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "vendor not found")
				return
			}
			h.logger.Error("vendor detail fetch failed", "vendor_id", id, "error", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load vendor")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, listing)
	}
}
