package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brokertools/marketplace/api/internal/admin/application"
	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	publicdomain "github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

// ApplicationRepository is the admin Mongo adapter for vendor applications.
type ApplicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database, collection string) *ApplicationRepository {
	return &ApplicationRepository{collection: db.Collection(collection)}
}

// Create inserts a new application with its review aggregates and returns
// the assigned id.
func (r *ApplicationRepository) Create(ctx context.Context, app admindomain.Application, stats publicdomain.VendorStats, metrics scoring.TrustMetrics) (string, error) {
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
	doc := buildApplicationDocument(app, stats, metrics)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

// Find supports status filtering, keyword search and paging.
func (r *ApplicationRepository) Find(ctx context.Context, filter application.ApplicationFilter, paging application.Paging) ([]admindomain.Application, error) {
	clauses := make([]bson.M, 0, 2)
	if filter.Status != "" {
		clauses = append(clauses, bson.M{"status": filter.Status})
	}
	if filter.Keyword != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Keyword), Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"companyName": regex},
			bson.M{"slug": regex},
		}})
	}
	mongoFilter := bson.M{}
	if len(clauses) == 1 {
		mongoFilter = clauses[0]
	} else if len(clauses) > 1 {
		mongoFilter["$and"] = clauses
	}

	page, limit := pageWindow(paging.Page, paging.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	apps := make([]admindomain.Application, 0)
	for cursor.Next(ctx) {
		var doc ApplicationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		app, err := mapApplication(doc)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*admindomain.Application, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}
	var doc ApplicationDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	app, err := mapApplication(doc)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus overwrites status and reject reason; repeating it is a no-op.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status admindomain.ApplicationStatus, reason string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return application.ErrNotFound
	}
	set := bson.M{
		"status":    status.String(),
		"updatedAt": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if reason == "" {
		update["$unset"] = bson.M{"rejectReason": ""}
	} else {
		set["rejectReason"] = reason
	}
	result, err := r.collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
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
