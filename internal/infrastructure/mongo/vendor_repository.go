package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/public/application"
	"github.com/brokertools/marketplace/api/internal/public/domain"
)

// VendorRepository implements application.VendorRepository over approved
// applications and their assessments.
type VendorRepository struct {
	applications *mongo.Collection
	assessments  *AssessmentRepository
}

func NewVendorRepository(db *mongo.Database, applicationCollection, assessmentCollection string) *VendorRepository {
	return &VendorRepository{
		applications: db.Collection(applicationCollection),
		assessments:  NewAssessmentRepository(db, assessmentCollection),
	}
}

// Find returns approved vendors, newest first.
func (r *VendorRepository) Find(ctx context.Context, filter application.VendorFilter, paging application.Paging) ([]domain.Vendor, error) {
	mongoFilter := bson.M{"status": admindomain.StatusApproved.String()}
	if c := strings.TrimSpace(filter.Category); c != "" {
		mongoFilter["categories"] = c
	}
	if k := strings.TrimSpace(filter.Keyword); k != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(k), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"companyName": regex},
			bson.M{"tagline": regex},
			bson.M{"categories": regex},
		}
	}

	page, limit := pageWindow(paging.Page, paging.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.applications.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vendors := make([]domain.Vendor, 0)
	for cursor.Next(ctx) {
		var doc ApplicationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		vendors = append(vendors, mapVendor(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if err := r.attachSnapshots(ctx, vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// FindByID returns an approved vendor. Pending or rejected applications are
// reported as not found.
func (r *VendorRepository) FindByID(ctx context.Context, id string) (*domain.Vendor, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}
	var doc ApplicationDocument
	filter := bson.M{"_id": objectID, "status": admindomain.StatusApproved.String()}
	if err := r.applications.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	vendors := []domain.Vendor{mapVendor(doc)}
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
	docs, err := r.assessments.findSnapshots(ctx, ids)
	if err != nil {
		return err
	}
	for i := range vendors {
		if doc, ok := docs[vendors[i].ID]; ok {
			vendors[i].Assessment = mapSnapshot(doc)
		}
	}
	return nil
}
