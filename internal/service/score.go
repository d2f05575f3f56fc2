package service

import (
	"context"
	"fmt"
	"math"

	"achiever/internal/model"
	"achiever/internal/store"
	"achiever/internal/timeutil"
)

// Weight converts a task into its point value. Lower priority numbers are more
// urgent and worth more; avoidance tasks get a 1.5x bump because resisting a
// habit all day is harder than a one-off item.
func Weight(t model.Task) int {
	w := float64(5 - t.Priority)
	if t.IsAvoidance {
		w *= 1.5
	}
	return int(math.Round(w))
}

// ScoreService computes the weighted daily completion score and drives the
// rating update off it. The score record and the rating entry for a day are
// written in one transaction.
type ScoreService struct {
	store  store.Store
	rating *RatingService
}

func NewScoreService(st store.Store, rating *RatingService) *ScoreService {
	return &ScoreService{store: st, rating: rating}
}

// ComputeDaily recalculates the score for (owner, date), upserts the daily
// score record and applies the rating update. Safe to call repeatedly: with
// unchanged tasks it always lands on the same stored state.
func (s *ScoreService) ComputeDaily(ctx context.Context, ownerID int, date string) (*model.DailyStats, error) {
	if ownerID <= 0 {
		return nil, validationErr("missing owner")
	}
	if !timeutil.ValidDay(date) {
		return nil, validationErr("malformed date %q", date)
	}

	var stats model.DailyStats
	err := s.store.InTx(ctx, func(st store.Store) error {
		tasks, err := st.ListTasks(ctx, ownerID, date)
		if err != nil {
			return err
		}

		var totalPossible, earned, completed int
		for _, t := range tasks {
			w := Weight(t)
			totalPossible += w
			if t.Completed {
				earned += w
				completed++
			}
		}

		percentage := 0.0
		if totalPossible > 0 {
			percentage = math.Round(100*float64(earned)/float64(totalPossible)*100) / 100
		}

		if err := st.UpsertDailyScore(ctx, &model.DailyScore{
			OwnerID:             ownerID,
			Date:                date,
			TotalPossiblePoints: totalPossible,
			EarnedPoints:        earned,
			PercentageScore:     percentage,
		}); err != nil {
			return err
		}

		res, err := s.rating.ApplyDailyRating(ctx, st, ownerID, date, percentage, totalPossible)
		if err != nil {
			return err
		}

		stats = model.DailyStats{
			Date:                date,
			TotalPossiblePoints: totalPossible,
			EarnedPoints:        earned,
			PercentageScore:     percentage,
			TasksCompleted:      completed,
			TotalTasks:          len(tasks),
			PreviousRating:      res.PreviousRating,
			CurrentRating:       res.NewRating,
			RatingChange:        res.RatingChange,
			ExpectedScore:       res.ExpectedScore,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("compute daily score: %w", err)
	}
	return &stats, nil
}
