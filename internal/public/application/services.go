package application

import (
	"context"
	"errors"

	"github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

var (
	// ErrNotFound is returned when no approved vendor matches.
	ErrNotFound = errors.New("not found")
	// ErrCacheMiss is returned by ListingCache.Get for absent entries.
	ErrCacheMiss = errors.New("listing cache miss")
)

// VendorRepository is the read port for approved vendors. Implementations
// attach the stored assessment snapshot when one exists.
type VendorRepository interface {
	Find(ctx context.Context, filter VendorFilter, paging Paging) ([]domain.Vendor, error)
	FindByID(ctx context.Context, id string) (*domain.Vendor, error)
}

// ListingCache stores built listings by vendor id.
type ListingCache interface {
	Get(ctx context.Context, id string) (*domain.Listing, error)
	Set(ctx context.Context, listing domain.Listing) error
}

// VendorFilter expresses search criteria for vendors.
type VendorFilter struct {
	Category string
	Keyword  string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
	Sort  string
}

// Sort keys understood by ListingQueryService.
const (
	SortNewest = "newest"
	SortTrust  = "trust"
	SortFit    = "fit"
	SortMarket = "market"
)

// ListingQueryService describes public read use-cases.
type ListingQueryService interface {
	List(ctx context.Context, filter VendorFilter, paging Paging) ([]domain.Listing, error)
	Detail(ctx context.Context, id string) (*domain.Listing, error)
	TrustScore(rating scoring.RatingSummary, metrics scoring.TrustMetrics) scoring.TrustBreakdown
}
