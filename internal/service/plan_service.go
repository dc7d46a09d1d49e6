package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/llm"
	"runbuddy/coach-app/internal/plan"
	"runbuddy/coach-app/internal/repository"
)

var (
	ErrProfileRequired = errors.New("user has not completed onboarding")
	ErrUnknownDayKey   = errors.New("day key does not belong to the current plan")
)

// PlanService coordinates plan generation and completion tracking.
//
// Generation never fails outright: when the text-generation service errors or
// returns text the parser cannot find a single weekday in, a deterministic
// fallback week is stored instead and the record is marked
// GeneratedByModel=false. Persistence failures, by contrast, are always
// returned to the caller so the UI can tell "couldn't save" apart from
// "couldn't generate".
type PlanService interface {
	// GenerateWeeklyPlan requests a fresh plan and replaces the user's
	// PlanRecord wholesale. Any prior completion progress is discarded —
	// regeneration resets the week.
	GenerateWeeklyPlan(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error)
	// Get returns the user's current PlanRecord.
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error)
	// ToggleDay flips one day's completion state and persists it, returning
	// the new completion set.
	ToggleDay(ctx context.Context, userID primitive.ObjectID, dayKey string) ([]string, error)
}

type planService struct {
	userRepo repository.UserRepository
	planRepo repository.PlanRepository
	chat     llm.ChatClient
}

// NewPlanService creates a new instance of planService.
func NewPlanService(userRepo repository.UserRepository, planRepo repository.PlanRepository, chat llm.ChatClient) PlanService {
	return &planService{
		userRepo: userRepo,
		planRepo: planRepo,
		chat:     chat,
	}
}

// GenerateWeeklyPlan always leaves the user with a usable plan; generation
// has no terminal failure mode. Concurrent calls for the same user are not
// serialized here; the last write wins.
func (s *planService) GenerateWeeklyPlan(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Onboarded() {
		return nil, ErrProfileRequired
	}
	profile := user.Profile

	text, err := s.chat.Chat(ctx, buildPlanMessages(profile))
	generated := err == nil
	if err != nil {
		log.Printf("WARN: plan generation failed for user %s, using fallback: %v", userID.Hex(), err)
		text = FallbackPlanText(profile)
	} else if plan.Parse(text).FallbackOnly() {
		// The model answered but with nothing day-shaped; treat it like a
		// malformed response rather than storing an unusable plan.
		log.Printf("WARN: generated plan for user %s had no recognizable days, using fallback", userID.Hex())
		text = FallbackPlanText(profile)
		generated = false
	}

	record := &domain.PlanRecord{
		UserID:           userID,
		PlanText:         text,
		GeneratedByModel: generated,
		CompletedDays:    []string{},
	}
	if err := s.planRepo.Upsert(ctx, record); err != nil {
		// Persistence failure is surfaced, unlike generation failure.
		return nil, err
	}
	return record, nil
}

// Get returns the user's current plan, or repository.ErrNotFound when the
// user has never generated one.
func (s *planService) Get(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

// ToggleDay validates the key against the current parsed plan, flips it and
// persists the result. A persistence error means the toggle did not happen;
// callers should keep (or roll back to) the previous checkbox state.
func (s *planService) ToggleDay(ctx context.Context, userID primitive.ObjectID, dayKey string) ([]string, error) {
	record, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	parsed := plan.Parse(record.PlanText)
	if !plan.Contains(parsed.Keys(), dayKey) {
		return nil, ErrUnknownDayKey
	}

	updated := plan.Toggle(record.CompletedDays, dayKey)
	if err := s.planRepo.SetCompletedDays(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// buildPlanMessages builds the generation request. The instruction pins the
// "**Weekday:** activity" line format and demands all seven days because the
// parser is most reliable on that shape — though it degrades gracefully when
// the model drifts from it.
func buildPlanMessages(p *domain.Profile) []llm.Message {
	system := fmt.Sprintf(
		"You are %s, a %s running coach who writes weekly training plans.",
		p.CoachName, p.CoachStyle,
	)
	user := fmt.Sprintf(
		"Create a one-week running plan for a %d-year-old %s runner. Their goal is: %s. "+
			"Cover all 7 days of the week, Monday through Sunday, and include rest days. "+
			"Write each day on its own line in exactly this format: **Weekday:** activity. "+
			"For example: **Monday:** Easy 30 minute run.",
		p.Age, p.Experience, p.Goal,
	)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}

// FallbackPlanText is the deterministic week skeleton stored when generation
// fails. Safe generic guidance for any experience level.
func FallbackPlanText(p *domain.Profile) string {
	return fmt.Sprintf(`Welcome to training with %s!

Here's your %s level plan for: %s

Monday: Rest day
Tuesday: Easy 20-30 minute run
Wednesday: Cross training or rest
Thursday: Easy 20-30 minute run
Friday: Rest day
Saturday: Longer run (30-45 minutes)
Sunday: Rest or easy walk

Remember to listen to your body and adjust as needed!`,
		p.CoachName, p.Experience, p.Goal)
}
