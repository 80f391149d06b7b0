package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	"github.com/brokertools/marketplace/api/internal/public/application"
	"github.com/brokertools/marketplace/api/internal/public/domain"
)

// VendorRepository serves approved applications as public vendors.
type VendorRepository struct {
	db          *gorm.DB
	assessments *AssessmentRepository
	log         *logger.Logger
}

func NewVendorRepository(db *gorm.DB, baseLog *logger.Logger) *VendorRepository {
	return &VendorRepository{
		db:          db,
		assessments: NewAssessmentRepository(db, baseLog),
		log:         baseLog.With("repo", "VendorRepository"),
	}
}

func (r *VendorRepository) Find(ctx context.Context, filter application.VendorFilter, paging application.Paging) ([]domain.Vendor, error) {
	q := r.db.WithContext(ctx).Model(&ApplicationRow{}).
		Where("status = ?", admindomain.StatusApproved.String())
	if c := strings.TrimSpace(filter.Category); c != "" {
		q = q.Where(`CAST(categories AS TEXT) LIKE ? ESCAPE '\'`, containsPattern(`"`+c+`"`))
	}
	if k := strings.TrimSpace(filter.Keyword); k != "" {
		like := containsPattern(strings.ToLower(k))
		q = q.Where(`LOWER(company_name) LIKE ? ESCAPE '\' OR LOWER(tagline) LIKE ? ESCAPE '\' OR LOWER(CAST(categories AS TEXT)) LIKE ? ESCAPE '\'`, like, like, like)
	}
	page, limit := pageWindow(paging.Page, paging.Limit)

	var rows []ApplicationRow
	if err := q.Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	vendors := make([]domain.Vendor, 0, len(rows))
	for _, row := range rows {
		v, err := mapVendor(row)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	if err := r.attachSnapshots(ctx, vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *VendorRepository) FindByID(ctx context.Context, id string) (*domain.Vendor, error) {
	var row ApplicationRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", strings.TrimSpace(id), admindomain.StatusApproved.String()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	v, err := mapVendor(row)
	if err != nil {
		return nil, err
	}
	vendors := []domain.Vendor{v}
	if err := r.attachSnapshots(ctx, vendors); err != nil {
		return nil, err
	}
	return &vendors[0], nil
}

func (r *VendorRepository) attachSnapshots(ctx context.Context, vendors []domain.Vendor) error {
	ids := make([]string, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}
	rows, err := r.assessments.findRows(ctx, ids)
	if err != nil {
		return err
	}
	for i := range vendors {
		row, ok := rows[vendors[i].ID]
		if !ok {
			continue
		}
		snapshot, err := mapSnapshot(row)
		if err != nil {
			return err
		}
		vendors[i].Assessment = snapshot
	}
	return nil
}
