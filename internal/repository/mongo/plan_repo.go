// internal/repository/mongo/plan_repo.go
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

const planCollectionName = "training_plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Upsert replaces the user's plan document wholesale. A user has at most one
// plan (unique index on userId); regenerating overwrites text, flags and the
// completion set in one write.
func (r *mongoPlanRepository) Upsert(ctx context.Context, plan *domain.PlanRecord) error {
	if plan.UserID == primitive.NilObjectID || plan.PlanText == "" {
		return errors.New("plan requires userId and planText")
	}
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	if plan.CompletedDays == nil {
		plan.CompletedDays = []string{}
	}

	filter := bson.M{"userId": plan.UserID}
	update := bson.M{
		"$set": bson.M{
			"planText":         plan.PlanText,
			"generatedByModel": plan.GeneratedByModel,
			"completedDays":    plan.CompletedDays,
			"createdAt":        plan.CreatedAt,
			"updatedAt":        plan.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"userId": plan.UserID,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByUserID retrieves the user's current plan.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	var plan domain.PlanRecord
	filter := bson.M{"userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// SetCompletedDays persists the completion set for the user's plan. Each
// toggle is an independent write; the plan text is never touched here.
func (r *mongoPlanRepository) SetCompletedDays(ctx context.Context, userID primitive.ObjectID, completed []string) error {
	if completed == nil {
		completed = []string{}
	}

	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set": bson.M{
			"completedDays": completed,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One active plan per user.
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
