package application

import (
	"context"
	"errors"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

var (
	// ErrNotFound is returned by repositories when the record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput wraps every command validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFinalizeIncomplete means the assessment was stored as final but the
	// application status could not be updated. Retrying Finalize repairs it.
	ErrFinalizeIncomplete = errors.New("finalize incomplete: application status not updated")
)

// ApplicationRepository exposes admin operations on vendor applications.
type ApplicationRepository interface {
	Find(ctx context.Context, filter ApplicationFilter, paging Paging) ([]admindomain.Application, error)
	FindByID(ctx context.Context, id string) (*admindomain.Application, error)
	// UpdateStatus overwrites status and reject reason. Repeating it is harmless.
	UpdateStatus(ctx context.Context, id string, status admindomain.ApplicationStatus, reason string) error
}

// AssessmentRepository persists one assessment per application id.
type AssessmentRepository interface {
	FindByApplicationID(ctx context.Context, applicationID string) (*admindomain.Assessment, error)
	// Upsert replaces the stored record for the same application id (last write wins).
	Upsert(ctx context.Context, assessment *admindomain.Assessment) error
}

// ListingInvalidator drops cached public listings after editorial writes.
type ListingInvalidator interface {
	Invalidate(ctx context.Context, applicationID string) error
}

// ApplicationFilter expresses admin search criteria.
type ApplicationFilter struct {
	Status  string
	Keyword string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
	Sort  string
}

// ApplicationService describes admin application use-cases.
type ApplicationService interface {
	List(ctx context.Context, filter ApplicationFilter, paging Paging) ([]admindomain.Application, error)
	Detail(ctx context.Context, id string) (*admindomain.Application, error)
	Reject(ctx context.Context, id string, reason string) (*admindomain.Application, error)
}

// AssessmentService drives the editorial assessment workflow.
type AssessmentService interface {
	Open(ctx context.Context, applicationID string) (*OpenResult, error)
	SaveDraft(ctx context.Context, applicationID string, cmd UpsertAssessmentCommand) (*SaveResult, error)
	Finalize(ctx context.Context, applicationID string, cmd UpsertAssessmentCommand) (*SaveResult, error)
	Preview(cmd UpsertAssessmentCommand) (*scoring.Evaluation, error)
	Categories() []scoring.Category
}

// OpenResult is the editor's starting point for an application.
type OpenResult struct {
	Application *admindomain.Application
	Assessment  admindomain.Assessment
	// Seeded is true when no record existed and Assessment is an unsaved seed.
	Seeded bool
}

// SaveResult is the persisted record plus any values corrected while scoring.
type SaveResult struct {
	Assessment admindomain.Assessment
	Warnings   []scoring.Warning
}

// UpsertAssessmentCommand contains the full editor state for an assessment.
type UpsertAssessmentCommand struct {
	Features          []FeatureCommand
	SelectedBadges    []string
	ServiceAreas      []string
	PricingEntry      string
	Alternatives      []string
	FAQs              []FAQCommand
	LinkedResources   []LinkedResourceCommand
	PublishedSections map[string]bool
	AuditInProgress   bool
}

// FeatureCommand is one feature row. An empty ID gets a generated one.
type FeatureCommand struct {
	ID             string
	Name           string
	Category       string
	Score          int
	Boost          float64
	PublicNote     string
	PrivateNote    string
	TopFeatureRank *int
}

type FAQCommand struct {
	Question string
	Answer   string
}

type LinkedResourceCommand struct {
	Title string
	URL   string
}
