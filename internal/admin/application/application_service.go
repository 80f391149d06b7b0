package application

import (
	"context"
	"fmt"
	"strings"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
)

// applicationService implements ApplicationService.
type applicationService struct {
	repo        ApplicationRepository
	invalidator ListingInvalidator
	log         *logger.Logger
}

func NewApplicationService(repo ApplicationRepository, invalidator ListingInvalidator, log *logger.Logger) ApplicationService {
	if log == nil {
		log = logger.NewNop()
	}
	return &applicationService{repo: repo, invalidator: invalidator, log: log}
}

func (s *applicationService) List(ctx context.Context, filter ApplicationFilter, paging Paging) ([]admindomain.Application, error) {
	if filter.Status != "" {
		status, err := admindomain.NewApplicationStatus(filter.Status)
		if err != nil {
			return nil, invalid(err)
		}
		filter.Status = status.String()
	}
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	return s.repo.Find(ctx, filter, paging)
}

func (s *applicationService) Detail(ctx context.Context, id string) (*admindomain.Application, error) {
	trimmed, err := requireID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, trimmed)
}

// Reject marks the application rejected. An approved listing is taken down.
func (s *applicationService) Reject(ctx context.Context, id string, reason string) (*admindomain.Application, error) {
	trimmed, err := requireID(id)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reject reason is required", ErrInvalidInput)
	}
	if _, err := s.repo.FindByID(ctx, trimmed); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, trimmed, admindomain.StatusRejected, reason); err != nil {
		return nil, fmt.Errorf("reject application: %w", err)
	}
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, trimmed); err != nil {
			s.log.Warn("listing cache invalidation failed", "application_id", trimmed, "error", err)
		}
	}
	return s.repo.FindByID(ctx, trimmed)
}
