package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokertools/marketplace/api/internal/admin/application"
	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicdomain "github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

type ApplicationRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApplicationRepository(db *gorm.DB, baseLog *logger.Logger) *ApplicationRepository {
	return &ApplicationRepository{db: db, log: baseLog.With("repo", "ApplicationRepository")}
}

// Create stores a new application with its review aggregates and returns the
// assigned id.
func (r *ApplicationRepository) Create(ctx context.Context, app admindomain.Application, stats publicdomain.VendorStats, metrics scoring.TrustMetrics) (string, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}
	if app.UpdatedAt.IsZero() {
		app.UpdatedAt = app.CreatedAt
	}
	if app.Status == "" {
		app.Status = admindomain.StatusPending
	}
	row, err := buildApplicationRow(app, stats, metrics)
	if err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

func (r *ApplicationRepository) Find(ctx context.Context, filter application.ApplicationFilter, paging application.Paging) ([]admindomain.Application, error) {
	q := r.db.WithContext(ctx).Model(&ApplicationRow{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if k := strings.TrimSpace(filter.Keyword); k != "" {
		like := containsPattern(strings.ToLower(k))
		q = q.Where(`LOWER(company_name) LIKE ? ESCAPE '\' OR LOWER(slug) LIKE ? ESCAPE '\'`, like, like)
	}
	page, limit := pageWindow(paging.Page, paging.Limit)

	var rows []ApplicationRow
	if err := q.Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	apps := make([]admindomain.Application, 0, len(rows))
	for _, row := range rows {
		app, err := mapApplication(row)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*admindomain.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, application.ErrNotFound
	}
	var row ApplicationRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	app, err := mapApplication(row)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status admindomain.ApplicationStatus, reason string) error {
	result := r.db.WithContext(ctx).
		Model(&ApplicationRow{}).
		Where("id = ?", strings.TrimSpace(id)).
		Updates(map[string]interface{}{
			"status":        status.String(),
			"reject_reason": reason,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return application.ErrNotFound
	}
	r.log.Debug("application status updated", "application_id", id, "status", status.String())
	return nil
}

func pageWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 500 {
		limit = 500
	}
	return page, limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in a column. Queries using it
// must declare ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
