package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Existing
// indexes with the same definition are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database, applicationCollection, assessmentCollection string) error {
	applicationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_application_status_created"),
		},
		{
			Keys:    bson.D{{Key: "categories", Value: 1}},
			Options: options.Index().SetName("idx_application_categories"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_application_slug"),
		},
	}
	if _, err := db.Collection(applicationCollection).Indexes().CreateMany(ctx, applicationIndexes); err != nil {
		return err
	}

	if _, err := db.Collection(assessmentCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "applicationId", Value: 1}},
		Options: options.Index().SetName("uniq_assessment_application").SetUnique(true),
	}); err != nil {
		return err
	}
	return nil
}
