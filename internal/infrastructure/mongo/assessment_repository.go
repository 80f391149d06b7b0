package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brokertools/marketplace/api/internal/admin/application"
	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
)

// AssessmentRepository stores one assessment document per applicationId.
type AssessmentRepository struct {
	collection *mongo.Collection
}

func NewAssessmentRepository(db *mongo.Database, collectionName string) *AssessmentRepository {
	return &AssessmentRepository{collection: db.Collection(collectionName)}
}

func (r *AssessmentRepository) FindByApplicationID(ctx context.Context, applicationID string) (*admindomain.Assessment, error) {
	var doc AssessmentDocument
	err := r.collection.FindOne(ctx, bson.M{"applicationId": strings.TrimSpace(applicationID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	assessment, err := mapAssessment(doc)
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Upsert replaces the document for the same applicationId. Concurrent writers
// overwrite each other; the last write wins.
func (r *AssessmentRepository) Upsert(ctx context.Context, assessment *admindomain.Assessment) error {
	doc := buildAssessmentDocument(assessment)
	filter := bson.M{"applicationId": doc.ApplicationID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, doc, opts)
	return err
}

// findSnapshots loads public snapshots keyed by application id.
func (r *AssessmentRepository) findSnapshots(ctx context.Context, applicationIDs []string) (map[string]AssessmentDocument, error) {
	out := make(map[string]AssessmentDocument, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return out, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"applicationId": bson.M{"$in": applicationIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var doc AssessmentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.ApplicationID] = doc
	}
	return out, cursor.Err()
}
