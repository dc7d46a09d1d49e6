package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/llm"
	"runbuddy/coach-app/internal/plan"
	"runbuddy/coach-app/internal/repository"
)

// --- Mocks ---

type mockUserRepo struct {
	user *domain.User
	err  error
}

func (m *mockUserRepo) Create(_ context.Context, _ *domain.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errors.New("not implemented")
}
func (m *mockUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return m.user, m.err
}
func (m *mockUserRepo) GetByID(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
	return m.user, m.err
}
func (m *mockUserRepo) UpdateProfile(_ context.Context, _ primitive.ObjectID, _ *domain.Profile) error {
	return m.err
}

type mockPlanRepo struct {
	record    *domain.PlanRecord
	getErr    error
	upsertErr error
	setErr    error

	upserted     *domain.PlanRecord
	setCompleted []string
}

func (m *mockPlanRepo) Upsert(_ context.Context, p *domain.PlanRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = p
	return nil
}
func (m *mockPlanRepo) GetByUserID(_ context.Context, _ primitive.ObjectID) (*domain.PlanRecord, error) {
	return m.record, m.getErr
}
func (m *mockPlanRepo) SetCompletedDays(_ context.Context, _ primitive.ObjectID, completed []string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.setCompleted = completed
	return nil
}

type mockChat struct {
	reply string
	err   error
	got   []llm.Message
}

func (m *mockChat) Chat(_ context.Context, messages []llm.Message) (string, error) {
	m.got = messages
	return m.reply, m.err
}

func onboardedUser() *domain.User {
	return &domain.User{
		ID:    primitive.NewObjectID(),
		Name:  "Jordan",
		Email: "jordan@example.com",
		Profile: &domain.Profile{
			Age:        34,
			Experience: domain.ExperienceBeginner,
			Goal:       "run a 5K",
			CoachStyle: domain.CoachStyleChill,
			CoachName:  "Max",
		},
	}
}

const modelPlanText = `**Monday:** Easy 30 minute run
**Tuesday:** Rest day
**Wednesday:** Intervals 6x400m
**Thursday:** Easy 20 minute run
**Friday:** Rest day
**Saturday:** Long run 60 minutes
**Sunday:** Recovery walk`

// --- Tests ---

func TestGenerateWeeklyPlan_Success(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{}
	chat := &mockChat{reply: modelPlanText}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, chat)

	record, err := svc.GenerateWeeklyPlan(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan() error = %v", err)
	}

	if record.PlanText != modelPlanText {
		t.Error("plan text was not stored verbatim")
	}
	if !record.GeneratedByModel {
		t.Error("GeneratedByModel = false, want true")
	}
	if len(record.CompletedDays) != 0 {
		t.Errorf("CompletedDays = %v, want empty", record.CompletedDays)
	}
	if planRepo.upserted == nil {
		t.Fatal("plan was not persisted")
	}

	// Prompt must pin the day-header format and request the full week.
	if len(chat.got) != 2 || chat.got[0].Role != llm.RoleSystem {
		t.Fatalf("unexpected prompt shape: %v", chat.got)
	}
	instruction := chat.got[1].Content
	for _, want := range []string{"7 days", "**Weekday:** activity", "run a 5K"} {
		if !strings.Contains(instruction, want) {
			t.Errorf("instruction missing %q:\n%s", want, instruction)
		}
	}
}

func TestGenerateWeeklyPlan_TimeoutFallsBack(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{}
	chat := &mockChat{err: &llm.Error{Kind: llm.KindTimeout, Err: context.DeadlineExceeded}}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, chat)

	record, err := svc.GenerateWeeklyPlan(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan() error = %v, generation failure must not surface", err)
	}

	if record.GeneratedByModel {
		t.Error("GeneratedByModel = true, want false on fallback")
	}
	parsed := plan.Parse(record.PlanText)
	if len(parsed) != 7 {
		t.Fatalf("fallback plan parsed to %d days", len(parsed))
	}
	if parsed.FallbackOnly() {
		t.Error("fallback template should carry real activities, not synthesized ones")
	}
	if !strings.Contains(record.PlanText, "Max") {
		t.Error("fallback plan should greet with the coach name")
	}
}

func TestGenerateWeeklyPlan_HeaderlessResponseFallsBack(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{}
	chat := &mockChat{reply: "I think you should just run a lot and believe in yourself."}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, chat)

	record, err := svc.GenerateWeeklyPlan(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan() error = %v", err)
	}
	if record.GeneratedByModel {
		t.Error("GeneratedByModel = true for a headerless response, want false")
	}
	if plan.Parse(record.PlanText).FallbackOnly() {
		t.Error("stored text should be the fallback template, not the unusable reply")
	}
}

func TestGenerateWeeklyPlan_ResetsCompletion(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{
		record: &domain.PlanRecord{
			UserID:        user.ID,
			PlanText:      modelPlanText,
			CompletedDays: []string{"Monday-0", "Wednesday-2"},
		},
	}
	chat := &mockChat{reply: modelPlanText}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, chat)

	record, err := svc.GenerateWeeklyPlan(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan() error = %v", err)
	}
	if len(record.CompletedDays) != 0 {
		t.Errorf("CompletedDays = %v, want empty after regeneration", record.CompletedDays)
	}
	if len(planRepo.upserted.CompletedDays) != 0 {
		t.Errorf("persisted CompletedDays = %v, want empty", planRepo.upserted.CompletedDays)
	}
}

func TestGenerateWeeklyPlan_PersistenceErrorSurfaces(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{upsertErr: repository.ErrUpdateFailed}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, &mockChat{reply: modelPlanText})

	_, err := svc.GenerateWeeklyPlan(context.Background(), user.ID)
	if !errors.Is(err, repository.ErrUpdateFailed) {
		t.Errorf("error = %v, want persistence error surfaced", err)
	}
}

func TestGenerateWeeklyPlan_RequiresProfile(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Name: "New", Email: "new@example.com"}
	svc := NewPlanService(&mockUserRepo{user: user}, &mockPlanRepo{}, &mockChat{reply: modelPlanText})

	_, err := svc.GenerateWeeklyPlan(context.Background(), user.ID)
	if !errors.Is(err, ErrProfileRequired) {
		t.Errorf("error = %v, want ErrProfileRequired", err)
	}
}

func TestToggleDay(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{
		record: &domain.PlanRecord{UserID: user.ID, PlanText: modelPlanText, CompletedDays: []string{"Monday-0"}},
	}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, &mockChat{})

	updated, err := svc.ToggleDay(context.Background(), user.ID, "Tuesday-1")
	if err != nil {
		t.Fatalf("ToggleDay() error = %v", err)
	}
	if !plan.Contains(updated, "Tuesday-1") || !plan.Contains(updated, "Monday-0") {
		t.Errorf("updated set = %v", updated)
	}
	if len(planRepo.setCompleted) != 2 {
		t.Errorf("persisted set = %v, want 2 keys", planRepo.setCompleted)
	}

	// Toggling again removes it.
	planRepo.record.CompletedDays = updated
	updated, err = svc.ToggleDay(context.Background(), user.ID, "Tuesday-1")
	if err != nil {
		t.Fatalf("ToggleDay() error = %v", err)
	}
	if plan.Contains(updated, "Tuesday-1") {
		t.Errorf("key still present after second toggle: %v", updated)
	}
}

func TestToggleDay_UnknownKey(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{record: &domain.PlanRecord{UserID: user.ID, PlanText: modelPlanText}}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, &mockChat{})

	_, err := svc.ToggleDay(context.Background(), user.ID, "Funday-9")
	if !errors.Is(err, ErrUnknownDayKey) {
		t.Errorf("error = %v, want ErrUnknownDayKey", err)
	}
}

func TestToggleDay_PersistenceErrorSurfaces(t *testing.T) {
	user := onboardedUser()
	planRepo := &mockPlanRepo{
		record: &domain.PlanRecord{UserID: user.ID, PlanText: modelPlanText},
		setErr: repository.ErrUpdateFailed,
	}
	svc := NewPlanService(&mockUserRepo{user: user}, planRepo, &mockChat{})

	_, err := svc.ToggleDay(context.Background(), user.ID, "Monday-0")
	if !errors.Is(err, repository.ErrUpdateFailed) {
		t.Errorf("error = %v, want persistence error surfaced", err)
	}
}
