package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runbuddy/coach-app/internal/domain"
)

type mockRunRepo struct {
	runs    []domain.Run
	err     error
	created []*domain.Run
}

func (m *mockRunRepo) Create(_ context.Context, run *domain.Run) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	m.created = append(m.created, run)
	return primitive.NewObjectID(), nil
}

func (m *mockRunRepo) GetByUserID(_ context.Context, _ primitive.ObjectID, limit int64) ([]domain.Run, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && int64(len(m.runs)) > limit {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLogRun_Validation(t *testing.T) {
	svc := NewRunService(&mockRunRepo{})
	userID := primitive.NewObjectID()

	tests := []struct {
		name     string
		distance float64
		duration int
		mood     domain.Mood
	}{
		{"zero distance", 0, 30, domain.MoodHappy},
		{"negative duration", 5, -1, domain.MoodHappy},
		{"unknown mood", 5, 30, "ecstatic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.LogRun(context.Background(), userID, time.Time{}, tt.distance, tt.duration, tt.mood)
			if !errors.Is(err, ErrInvalidRun) {
				t.Errorf("error = %v, want ErrInvalidRun", err)
			}
		})
	}
}

func TestLogRun_DefaultsDateToToday(t *testing.T) {
	repo := &mockRunRepo{}
	svc := NewRunService(repo)

	run, err := svc.LogRun(context.Background(), primitive.NewObjectID(), time.Time{}, 5.2, 31, domain.MoodMotivated)
	if err != nil {
		t.Fatalf("LogRun() error = %v", err)
	}
	if run.Date.IsZero() {
		t.Error("date was not defaulted")
	}
	if h, m, s := run.Date.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("date not normalized to midnight: %v", run.Date)
	}
	if len(repo.created) != 1 {
		t.Fatalf("run was not persisted")
	}
}

func TestWeeklyStats(t *testing.T) {
	repo := &mockRunRepo{runs: []domain.Run{
		// Week of Monday 2026-08-17
		{Date: day("2026-08-18"), Distance: 5, Duration: 30},
		{Date: day("2026-08-22"), Distance: 10, Duration: 65},
		// Week of Monday 2026-08-24; the 24th itself is a Monday
		{Date: day("2026-08-24"), Distance: 3, Duration: 20},
		// Sunday still belongs to the week of its preceding Monday
		{Date: day("2026-08-30"), Distance: 12, Duration: 80},
	}}
	svc := NewRunService(repo)

	stats, err := svc.WeeklyStats(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("WeeklyStats() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d weeks, want 2: %v", len(stats), stats)
	}

	first, second := stats[0], stats[1]
	if !first.WeekStart.Equal(day("2026-08-17")) {
		t.Errorf("first week start = %v", first.WeekStart)
	}
	if first.Distance != 15 || first.Duration != 95 || first.Runs != 2 {
		t.Errorf("first week = %+v", first)
	}
	if !second.WeekStart.Equal(day("2026-08-24")) {
		t.Errorf("second week start = %v", second.WeekStart)
	}
	if second.Distance != 15 || second.Runs != 2 {
		t.Errorf("second week = %+v", second)
	}
}
