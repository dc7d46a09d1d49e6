package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/repository"
)

var ErrInvalidRun = errors.New("run requires a positive distance and duration and a known mood")

// Default number of runs shown on the dashboard.
const defaultRecentRuns = 5

// WeekStat is one week's aggregated training volume for the progress chart.
type WeekStat struct {
	WeekStart time.Time `json:"weekStart"` // Monday of the week, UTC midnight
	Distance  float64   `json:"distance"`
	Duration  int       `json:"duration"` // minutes
	Runs      int       `json:"runs"`
}

// RunService manages the run log and the progress aggregation derived from it.
type RunService interface {
	LogRun(ctx context.Context, userID primitive.ObjectID, date time.Time, distance float64, duration int, mood domain.Mood) (*domain.Run, error)
	RecentRuns(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Run, error)
	// WeeklyStats aggregates all logged runs into per-week totals, oldest
	// week first.
	WeeklyStats(ctx context.Context, userID primitive.ObjectID) ([]WeekStat, error)
}

type runService struct {
	runRepo repository.RunRepository
}

// NewRunService creates a new instance of runService.
func NewRunService(runRepo repository.RunRepository) RunService {
	return &runService{runRepo: runRepo}
}

// LogRun validates and stores a run. A zero date means "today".
func (s *runService) LogRun(ctx context.Context, userID primitive.ObjectID, date time.Time, distance float64, duration int, mood domain.Mood) (*domain.Run, error) {
	if distance <= 0 || duration <= 0 || !mood.Valid() {
		return nil, ErrInvalidRun
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	// Normalize to the calendar day so runs group cleanly by date.
	date = date.UTC().Truncate(24 * time.Hour)

	run := &domain.Run{
		UserID:   userID,
		Date:     date,
		Distance: distance,
		Duration: duration,
		Mood:     mood,
	}
	id, err := s.runRepo.Create(ctx, run)
	if err != nil {
		return nil, err
	}
	run.ID = id
	return run, nil
}

// RecentRuns returns the newest runs, defaulting to the dashboard's five.
func (s *runService) RecentRuns(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Run, error) {
	if limit <= 0 {
		limit = defaultRecentRuns
	}
	return s.runRepo.GetByUserID(ctx, userID, limit)
}

// WeeklyStats groups every logged run by its training week (Monday-based).
func (s *runService) WeeklyStats(ctx context.Context, userID primitive.ObjectID) ([]WeekStat, error) {
	runs, err := s.runRepo.GetByUserID(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	byWeek := make(map[time.Time]*WeekStat)
	for _, run := range runs {
		week := weekStart(run.Date)
		stat, ok := byWeek[week]
		if !ok {
			stat = &WeekStat{WeekStart: week}
			byWeek[week] = stat
		}
		stat.Distance += run.Distance
		stat.Duration += run.Duration
		stat.Runs++
	}

	stats := make([]WeekStat, 0, len(byWeek))
	for _, stat := range byWeek {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].WeekStart.Before(stats[j].WeekStart)
	})
	return stats, nil
}

// weekStart returns the Monday of t's week, UTC midnight. Training weeks run
// Monday through Sunday, matching the plan's canonical order.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	year, month, day := t.AddDate(0, 0, -offset).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
