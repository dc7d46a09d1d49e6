// internal/repository/mongo/run_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/repository"
)

const runCollectionName = "runs"

// mongoRunRepository implements repository.RunRepository.
type mongoRunRepository struct {
	collection *mongo.Collection
}

// NewMongoRunRepository creates a new run repository.
func NewMongoRunRepository(db *mongo.Database) repository.RunRepository {
	return &mongoRunRepository{
		collection: db.Collection(runCollectionName),
	}
}

// Create inserts a new logged run.
func (r *mongoRunRepository) Create(ctx context.Context, run *domain.Run) (primitive.ObjectID, error) {
	if run.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("run requires userId")
	}
	run.ID = primitive.NewObjectID()
	run.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted run ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves the user's runs, newest first.
func (r *mongoRunRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Run, error) {
	var runs []domain.Run
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Return empty slice if no runs found (not an error).
	return runs, nil
}

// EnsureRunIndexes creates necessary indexes. Call during startup.
func EnsureRunIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: a user's runs sorted by date.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
