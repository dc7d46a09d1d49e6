// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanRecord is the single active weekly training plan for a user.
// PlanText is stored exactly as the generation service returned it (or as the
// fallback template produced it); the structured per-day view is derived from
// it on every read by the plan package, never stored.
//
// CompletedDays holds the day keys the user has checked off (see plan.DayKey).
// Replacing the record replaces the completion set with it; there is no merge.
type PlanRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	PlanText         string             `bson:"planText" json:"planText"`
	GeneratedByModel bool               `bson:"generatedByModel" json:"generatedByModel"` // false when the fallback template was used
	CompletedDays    []string           `bson:"completedDays" json:"completedDays"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
