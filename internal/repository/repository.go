package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runbuddy/coach-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors from other failures;
// the API layer relies on this to report "couldn't save" separately from
// generation problems.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile *domain.Profile) error
}

// PlanRepository stores the single active PlanRecord per user.
type PlanRepository interface {
	// Upsert replaces the user's plan wholesale, completion set included.
	Upsert(ctx context.Context, plan *domain.PlanRecord) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error)
	// SetCompletedDays persists one toggle; it never touches the plan text.
	SetCompletedDays(ctx context.Context, userID primitive.ObjectID, completed []string) error
}

// RunRepository defines the interface for interacting with logged runs.
type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) (primitive.ObjectID, error)
	// GetByUserID returns the user's runs, newest first. limit <= 0 means all.
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Run, error)
}
