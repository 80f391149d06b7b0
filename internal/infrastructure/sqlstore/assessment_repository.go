package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brokertools/marketplace/api/internal/admin/application"
	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
)

type AssessmentRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepository(db *gorm.DB, baseLog *logger.Logger) *AssessmentRepository {
	return &AssessmentRepository{db: db, log: baseLog.With("repo", "AssessmentRepository")}
}

func (r *AssessmentRepository) FindByApplicationID(ctx context.Context, applicationID string) (*admindomain.Assessment, error) {
	var row AssessmentRow
	err := r.db.WithContext(ctx).Where("application_id = ?", strings.TrimSpace(applicationID)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a, err := mapAssessment(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert writes the full record keyed by application id; the last write wins.
func (r *AssessmentRepository) Upsert(ctx context.Context, assessment *admindomain.Assessment) error {
	if assessment == nil {
		return nil
	}
	row, err := buildAssessmentRow(assessment)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "application_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stage",
				"body",
				"overall_score",
				"finalized_at",
				"created_at",
				"updated_at",
			}),
		}).
		Create(&row).Error
}

func (r *AssessmentRepository) findRows(ctx context.Context, applicationIDs []string) (map[string]AssessmentRow, error) {
	out := make(map[string]AssessmentRow, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return out, nil
	}
	var rows []AssessmentRow
	if err := r.db.WithContext(ctx).Where("application_id IN ?", applicationIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ApplicationID] = row
	}
	return out, nil
}
