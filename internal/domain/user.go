package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Experience describes how long a runner has been training.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// CoachStyle is the personality the user picked for their virtual coach.
type CoachStyle string

const (
	CoachStyleChill      CoachStyle = "chill"
	CoachStyleSerious    CoachStyle = "serious"
	CoachStyleFunny      CoachStyle = "funny"
	CoachStyleSupportive CoachStyle = "supportive"
)

// Profile holds the onboarding answers that seed plan generation and the
// coach chat persona. It is nil until the user completes onboarding.
type Profile struct {
	Age        int        `bson:"age" json:"age"`
	Experience Experience `bson:"experience" json:"experience"`
	Goal       string     `bson:"goal" json:"goal"` // e.g. "run a 5K", "marathon"
	CoachStyle CoachStyle `bson:"coachStyle" json:"coachStyle"`
	CoachName  string     `bson:"coachName" json:"coachName"`
}

// User represents a runner with an account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Set once the user completes onboarding.
	Profile *Profile `bson:"profile,omitempty" json:"profile,omitempty"`
}

// Onboarded reports whether the user has filled in their coaching profile.
func (u *User) Onboarded() bool {
	return u.Profile != nil && u.Profile.Goal != ""
}
