package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/repository"
)

var ErrInvalidProfile = errors.New("profile is missing required fields")

// ProfileService manages the onboarding profile that seeds plan generation
// and the coach persona.
type ProfileService interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) error
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

// Get returns the user with their profile (nil Profile until onboarded).
func (s *profileService) Get(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Update validates and saves the onboarding answers.
func (s *profileService) Update(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) error {
	if profile.Age <= 0 || profile.Goal == "" || profile.CoachName == "" {
		return ErrInvalidProfile
	}
	switch profile.Experience {
	case domain.ExperienceBeginner, domain.ExperienceIntermediate, domain.ExperienceAdvanced:
	default:
		return ErrInvalidProfile
	}
	switch profile.CoachStyle {
	case domain.CoachStyleChill, domain.CoachStyleSerious, domain.CoachStyleFunny, domain.CoachStyleSupportive:
	default:
		return ErrInvalidProfile
	}
	return s.userRepo.UpdateProfile(ctx, userID, &profile)
}
