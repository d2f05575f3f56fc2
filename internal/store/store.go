package store

import (
	"context"
	"errors"

	"achiever/internal/model"
)

// ErrNotFound is returned when a lookup by id resolves to no owned record.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract the engines depend on. Lookups that may
// legitimately find nothing (latest rating, streak by title) return (nil, nil)
// rather than ErrNotFound; ErrNotFound is reserved for id-addressed records.
type Store interface {
	// users
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUserRating(ctx context.Context, id, rating int) error
	ListUsersByRating(ctx context.Context) ([]model.User, error)

	// tasks
	CreateTask(ctx context.Context, t *model.Task) error
	GetTask(ctx context.Context, ownerID, id int) (*model.Task, error)
	SaveTask(ctx context.Context, t *model.Task) error
	DeleteTask(ctx context.Context, ownerID, id int) error
	DeleteTasksByTitle(ctx context.Context, ownerID int, title string) error
	ListTasks(ctx context.Context, ownerID int, date string) ([]model.Task, error)
	ListDailyTasks(ctx context.Context, ownerID int) ([]model.Task, error)

	// daily scores
	UpsertDailyScore(ctx context.Context, s *model.DailyScore) error

	// rating history
	GetRatingBefore(ctx context.Context, ownerID int, date string) (*model.RatingEntry, error)
	LatestRating(ctx context.Context, ownerID int) (*model.RatingEntry, error)
	UpsertRatingEntry(ctx context.Context, e *model.RatingEntry) error
	ListRatingHistory(ctx context.Context, ownerID, limit int) ([]model.RatingEntry, error)

	// streaks and awards
	GetStreak(ctx context.Context, ownerID int, habitTitle string) (*model.Streak, error)
	GetStreakByID(ctx context.Context, ownerID, id int) (*model.Streak, error)
	SaveStreak(ctx context.Context, s *model.Streak) error
	ListActiveStreaks(ctx context.Context, ownerID int) ([]model.Streak, error)
	InsertAward(ctx context.Context, a *model.CookieJarAward) error
	ListAwards(ctx context.Context, ownerID int) ([]model.CookieJarAward, error)

	// InTx runs fn against a transactional view of the store. The closure's
	// writes commit together or not at all.
	InTx(ctx context.Context, fn func(Store) error) error
}
