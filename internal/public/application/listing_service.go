package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brokertools/marketplace/api/internal/platform/logger"
	"github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// rankedBatchSize is the repository page used while loading every
	// matching vendor for a score-ordered listing.
	rankedBatchSize = 500
	scoringWorkers  = 8
)

// listingQueryService is the concrete implementation of ListingQueryService.
type listingQueryService struct {
	repo  VendorRepository
	cache ListingCache
	now   func() time.Time
	log   *logger.Logger
}

// NewListingQueryService creates a listing query service. cache may be nil.
func NewListingQueryService(repo VendorRepository, cache ListingCache, log *logger.Logger) ListingQueryService {
	if log == nil {
		log = logger.NewNop()
	}
	return &listingQueryService{
		repo:  repo,
		cache: cache,
		now:   func() time.Time { return time.Now().UTC() },
		log:   log.With("service", "ListingQueryService"),
	}
}

func (s *listingQueryService) List(ctx context.Context, filter VendorFilter, paging Paging) ([]domain.Listing, error) {
	page, limit := normalizePaging(paging)
	sortKey := strings.ToLower(strings.TrimSpace(paging.Sort))

	if sortKey != SortTrust && sortKey != SortFit && sortKey != SortMarket {
		vendors, err := s.repo.Find(ctx, filter, Paging{Page: page, Limit: limit, Sort: SortNewest})
		if err != nil {
			return nil, err
		}
		return s.build(ctx, vendors)
	}

	vendors, err := s.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	listings, err := s.build(ctx, vendors)
	if err != nil {
		return nil, err
	}
	SortListings(listings, sortKey)

	start := (page - 1) * limit
	if start >= len(listings) {
		return []domain.Listing{}, nil
	}
	end := start + limit
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end], nil
}

func (s *listingQueryService) Detail(ctx context.Context, id string) (*domain.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("listing cache read failed", "vendor_id", id, "error", err)
		}
	}

	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	listing := domain.NewListing(*vendor, s.now())
	if s.cache != nil {
		if err := s.cache.Set(ctx, listing); err != nil {
			s.log.Warn("listing cache write failed", "vendor_id", id, "error", err)
		}
	}
	return &listing, nil
}

func (s *listingQueryService) TrustScore(rating scoring.RatingSummary, metrics scoring.TrustMetrics) scoring.TrustBreakdown {
	return scoring.ExplainTrustScore(rating, metrics)
}

// findAll loads every vendor matching filter, batch by batch.
func (s *listingQueryService) findAll(ctx context.Context, filter VendorFilter) ([]domain.Vendor, error) {
	var all []domain.Vendor
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := s.repo.Find(ctx, filter, Paging{Page: page, Limit: rankedBatchSize, Sort: SortNewest})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < rankedBatchSize {
			return all, nil
		}
	}
}

// build scores every vendor concurrently. Order is preserved.
func (s *listingQueryService) build(ctx context.Context, vendors []domain.Vendor) ([]domain.Listing, error) {
	now := s.now()
	out := make([]domain.Listing, len(vendors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoringWorkers)
	for i := range vendors {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = domain.NewListing(vendors[i], now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SortListings orders listings in place. Unscored vendors always sort after
// scored ones; ties keep the incoming order.
func SortListings(listings []domain.Listing, key string) {
	switch key {
	case SortTrust:
		sort.SliceStable(listings, func(i, j int) bool {
			return lessNullable(listings[i].TrustScore, listings[j].TrustScore)
		})
	case SortFit:
		sort.SliceStable(listings, func(i, j int) bool {
			return lessNullable(publishedOverall(listings[i]), publishedOverall(listings[j]))
		})
	case SortMarket:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].MarketScore > listings[j].MarketScore
		})
	}
}

// lessNullable orders descending with nil last.
func lessNullable(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a > *b
	}
}

func publishedOverall(l domain.Listing) *float64 {
	if l.Profile == nil {
		return nil
	}
	return l.Profile.OverallScore
}

func normalizePaging(p Paging) (int, int) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
