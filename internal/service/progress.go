package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"habitfs/internal/database/repository"
)

const dayFormat = "2006-01-02"

// ProgressService maintains per-habit streaks and completion rates from the
// recorded completion days.
type ProgressService struct {
	Entries *repository.EntryRepo
}

// ProgressResult reports the recomputed state after marking a habit done.
type ProgressResult struct {
	Streak         int
	CompletionRate float64
	AlreadyDone    bool
}

// MarkDone records a completion for now's calendar day and recomputes the
// entry's streak and completion rate. Marking the same day twice is a no-op
// beyond reporting AlreadyDone.
func (s *ProgressService) MarkDone(ctx context.Context, id string, now time.Time) (ProgressResult, error) {
	entry, err := s.Entries.Get(ctx, id)
	if err != nil {
		return ProgressResult{}, err
	}
	if entry == nil {
		return ProgressResult{}, fmt.Errorf("entry %s not found", id)
	}
	if entry.Kind != repository.KindFile {
		return ProgressResult{}, fmt.Errorf("cannot mark a folder done")
	}

	day := now.Format(dayFormat)
	inserted, err := s.Entries.MarkDone(ctx, id, day)
	if err != nil {
		return ProgressResult{}, err
	}

	days, err := s.Entries.Completions(ctx, id)
	if err != nil {
		return ProgressResult{}, err
	}

	streak := StreakOf(days, now)
	rate := CompletionRate(len(days), entry.CreatedAt, now)
	if err := s.Entries.UpdateProgress(ctx, id, streak, rate); err != nil {
		return ProgressResult{}, err
	}
	return ProgressResult{Streak: streak, CompletionRate: rate, AlreadyDone: !inserted}, nil
}

// StreakOf counts consecutive completed days ending today. Days must be
// sorted most recent first. A run whose latest day is before today yields 0.
func StreakOf(days []string, now time.Time) int {
	expect := now.Format(dayFormat)
	streak := 0
	cursor := now
	for _, d := range days {
		if d != expect {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
		expect = cursor.Format(dayFormat)
	}
	return streak
}

// CompletionRate is completed days over calendar days since creation,
// as a percentage clamped to [0, 100].
func CompletionRate(completed int, createdAt, now time.Time) float64 {
	created := time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	total := int(today.Sub(created).Hours()/24) + 1
	if total < 1 {
		total = 1
	}
	rate := float64(completed) / float64(total) * 100
	return math.Min(100, math.Max(0, rate))
}
