package service

import (
	"context"
	"math"

	"achiever/internal/config"
	"achiever/internal/model"
	"achiever/internal/store"
)

// RatingResult describes one daily rating update.
type RatingResult struct {
	PreviousRating int
	NewRating      int
	RatingChange   int
	ExpectedScore  float64
}

// RatingService maintains the per-user rating time series. Each entry is a
// function of the latest entry strictly before its date and that date's score,
// so recomputing a day overwrites its entry instead of compounding on it.
type RatingService struct {
	store store.Store
	cfg   config.RatingConfig
}

func NewRatingService(st store.Store, cfg config.RatingConfig) *RatingService {
	return &RatingService{store: st, cfg: cfg}
}

// ExpectedScore is the completion percentage a user at this rating should hit:
// 50% at the starting rating, +1% per 20 rating points, clamped to [20, 80].
func (s *RatingService) ExpectedScore(rating int) float64 {
	expected := 50 + float64(rating-s.cfg.Starting)/20
	return math.Max(20, math.Min(80, expected))
}

// ApplyDailyRating computes and persists the rating for (owner, date) from the
// day's percentage score. It runs against st, the caller's transactional store
// view, so the caller can commit it together with the score record.
//
// The baseline is always the entry strictly before date. Reading the entry at
// date itself would feed a recomputation its own output and inflate the rating
// on every refresh.
func (s *RatingService) ApplyDailyRating(ctx context.Context, st store.Store, ownerID int, date string, percentage float64, totalPossible int) (RatingResult, error) {
	prev := s.cfg.Starting
	entry, err := st.GetRatingBefore(ctx, ownerID, date)
	if err != nil {
		return RatingResult{}, err
	}
	if entry != nil {
		prev = entry.Rating
	}

	res := RatingResult{
		PreviousRating: prev,
		NewRating:      prev,
		ExpectedScore:  s.ExpectedScore(prev),
	}

	// A day with no assigned tasks never moves the rating.
	if totalPossible <= 0 {
		return res, nil
	}

	res.RatingChange = int(math.Round(float64(s.cfg.KFactor) * (percentage - res.ExpectedScore) / 100))
	res.NewRating = clamp(prev+res.RatingChange, s.cfg.Min, s.cfg.Max)

	if err := st.UpsertRatingEntry(ctx, &model.RatingEntry{
		OwnerID:    ownerID,
		Date:       date,
		Rating:     res.NewRating,
		DailyScore: percentage,
	}); err != nil {
		return RatingResult{}, err
	}

	// Refresh the denormalized profile rating from the head of the series, so
	// recomputing a past day cannot regress it.
	latest, err := st.LatestRating(ctx, ownerID)
	if err != nil {
		return RatingResult{}, err
	}
	if latest != nil {
		if err := st.UpdateUserRating(ctx, ownerID, latest.Rating); err != nil {
			return RatingResult{}, err
		}
	}

	return res, nil
}

// Current returns the owner's rating as of the latest history entry, or the
// starting rating when no history exists.
func (s *RatingService) Current(ctx context.Context, ownerID int) (int, error) {
	latest, err := s.store.LatestRating(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return s.cfg.Starting, nil
	}
	return latest.Rating, nil
}

// History returns up to days entries, oldest first.
func (s *RatingService) History(ctx context.Context, ownerID, days int) ([]model.RatingEntry, error) {
	if days <= 0 {
		days = 30
	}
	entries, err := s.store.ListRatingHistory(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Leaderboard ranks all users by their cached current rating.
func (s *RatingService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	users, err := s.store.ListUsersByRating(ctx)
	if err != nil {
		return nil, err
	}
	board := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		board = append(board, model.LeaderboardEntry{UserID: u.ID, Name: u.Name, Rating: u.CurrentRating})
	}
	return board, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
