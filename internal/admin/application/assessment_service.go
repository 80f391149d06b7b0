package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

// assessmentService implements AssessmentService.
type assessmentService struct {
	assessments  AssessmentRepository
	applications ApplicationRepository
	invalidator  ListingInvalidator
	categories   []scoring.Category
	now          func() time.Time
	log          *logger.Logger
}

type AssessmentOption func(*assessmentService)

func WithClock(now func() time.Time) AssessmentOption {
	return func(s *assessmentService) { s.now = now }
}

func WithListingInvalidator(inv ListingInvalidator) AssessmentOption {
	return func(s *assessmentService) { s.invalidator = inv }
}

func WithCategories(categories []scoring.Category) AssessmentOption {
	return func(s *assessmentService) { s.categories = categories }
}

func WithLogger(log *logger.Logger) AssessmentOption {
	return func(s *assessmentService) { s.log = log }
}

func NewAssessmentService(assessments AssessmentRepository, applications ApplicationRepository, opts ...AssessmentOption) AssessmentService {
	s := &assessmentService{
		assessments:  assessments,
		applications: applications,
		categories:   scoring.DefaultCategories(),
		now:          func() time.Time { return time.Now().UTC() },
		log:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("service", "AssessmentService")
	return s
}

func (s *assessmentService) Categories() []scoring.Category {
	out := make([]scoring.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Open returns the stored assessment, or an unsaved seed built from the
// application when none exists yet.
func (s *assessmentService) Open(ctx context.Context, applicationID string) (*OpenResult, error) {
	id, err := requireID(applicationID)
	if err != nil {
		return nil, err
	}
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &OpenResult{Application: app, Assessment: *existing}, nil
	}
	s.log.Debug("seeding assessment", "application_id", id, "features", len(app.Features), "integrations", len(app.Integrations))
	return &OpenResult{
		Application: app,
		Assessment:  admindomain.Seed(*app, s.categories, s.now()),
		Seeded:      true,
	}, nil
}

// SaveDraft stores the editor state without touching the application status.
func (s *assessmentService) SaveDraft(ctx context.Context, applicationID string, cmd UpsertAssessmentCommand) (*SaveResult, error) {
	record, warnings, err := s.prepare(ctx, applicationID, cmd)
	if err != nil {
		return nil, err
	}
	if err := s.assessments.Upsert(ctx, &record); err != nil {
		return nil, fmt.Errorf("save assessment draft: %w", err)
	}
	s.log.Info("assessment draft saved", "application_id", record.ApplicationID, "overall_score", record.OverallScore, "reopened", record.Reopened())
	s.invalidate(ctx, record.ApplicationID)
	return &SaveResult{Assessment: record, Warnings: warnings}, nil
}

// Finalize stores the record as final and then approves the application.
// Both writes are overwrites, so a failed second write is repaired by
// calling Finalize again with the same input.
func (s *assessmentService) Finalize(ctx context.Context, applicationID string, cmd UpsertAssessmentCommand) (*SaveResult, error) {
	draft, warnings, err := s.prepare(ctx, applicationID, cmd)
	if err != nil {
		return nil, err
	}
	record := admindomain.MarkFinal(draft, s.now())
	if err := s.assessments.Upsert(ctx, &record); err != nil {
		return nil, fmt.Errorf("save final assessment: %w", err)
	}
	if err := s.applications.UpdateStatus(ctx, record.ApplicationID, admindomain.StatusApproved, ""); err != nil {
		s.log.Warn("application approval failed after final assessment was stored", "application_id", record.ApplicationID, "error", err)
		s.invalidate(ctx, record.ApplicationID)
		return nil, fmt.Errorf("%w: %w", ErrFinalizeIncomplete, err)
	}
	s.log.Info("assessment finalized", "application_id", record.ApplicationID, "overall_score", record.OverallScore, "badges", record.SelectedBadges.Strings())
	s.invalidate(ctx, record.ApplicationID)
	return &SaveResult{Assessment: record, Warnings: warnings}, nil
}

// Preview scores unsaved editor state.
func (s *assessmentService) Preview(cmd UpsertAssessmentCommand) (*scoring.Evaluation, error) {
	features, err := buildFeatures("", cmd.Features)
	if err != nil {
		return nil, err
	}
	view := make([]scoring.Feature, 0, len(features))
	for _, f := range features {
		view = append(view, f.ScoringFeature())
	}
	eval := scoring.Evaluate(view, s.categories)
	return &eval, nil
}

func (s *assessmentService) prepare(ctx context.Context, applicationID string, cmd UpsertAssessmentCommand) (admindomain.Assessment, []scoring.Warning, error) {
	id, err := requireID(applicationID)
	if err != nil {
		return admindomain.Assessment{}, nil, err
	}
	content, err := buildContent(id, cmd)
	if err != nil {
		return admindomain.Assessment{}, nil, err
	}
	if _, err := s.applications.FindByID(ctx, id); err != nil {
		return admindomain.Assessment{}, nil, err
	}
	prev, err := s.load(ctx, id)
	if err != nil {
		return admindomain.Assessment{}, nil, err
	}
	record, warnings := admindomain.ApplyDraft(prev, id, content, s.categories, s.now())
	return record, warnings, nil
}

func (s *assessmentService) load(ctx context.Context, id string) (*admindomain.Assessment, error) {
	existing, err := s.assessments.FindByApplicationID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}
	return existing, nil
}

func (s *assessmentService) invalidate(ctx context.Context, id string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, id); err != nil {
		s.log.Warn("listing cache invalidation failed", "application_id", id, "error", err)
	}
}

func requireID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", fmt.Errorf("%w: application id is required", ErrInvalidInput)
	}
	return trimmed, nil
}
