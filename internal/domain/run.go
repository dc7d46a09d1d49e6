// internal/domain/run.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mood is how the runner felt about a logged run.
type Mood string

const (
	MoodHappy        Mood = "happy"
	MoodTired        Mood = "tired"
	MoodMotivated    Mood = "motivated"
	MoodChallenged   Mood = "challenged"
	MoodAccomplished Mood = "accomplished"
)

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodTired, MoodMotivated, MoodChallenged, MoodAccomplished:
		return true
	}
	return false
}

// Run is a single logged training run.
type Run struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`         // calendar day of the run (UTC midnight)
	Distance  float64            `bson:"distance" json:"distance"` // miles or km, whatever the user logs in
	Duration  int                `bson:"duration" json:"duration"` // minutes
	Mood      Mood               `bson:"mood" json:"mood"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
