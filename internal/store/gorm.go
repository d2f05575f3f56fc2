package store

import (
	"context"
	"errors"
	"fmt"

	"achiever/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore backs the Store contract with a relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// Migrate creates or updates the schema, including the unique natural keys
// the upsert paths rely on.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.DailyScore{},
		&model.RatingEntry{},
		&model.Streak{},
		&model.CookieJarAward{},
	)
}

func (s *GormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// --- users ---

func (s *GormStore) CreateUser(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, mapErr(err, "query user")
	}
	return &u, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapErr(err, "query user")
	}
	return &u, nil
}

func (s *GormStore) UpdateUserRating(ctx context.Context, id, rating int) error {
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).Update("current_rating", rating).Error
	if err != nil {
		return fmt.Errorf("update user rating: %w", err)
	}
	return nil
}

func (s *GormStore) ListUsersByRating(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Order("current_rating DESC, name ASC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

// --- tasks ---

func (s *GormStore) CreateTask(ctx context.Context, t *model.Task) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *GormStore) GetTask(ctx context.Context, ownerID, id int) (*model.Task, error) {
	var t model.Task
	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error
	if err != nil {
		return nil, mapErr(err, "query task")
	}
	return &t, nil
}

func (s *GormStore) SaveTask(ctx context.Context, t *model.Task) error {
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteTask(ctx context.Context, ownerID, id int) error {
	res := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteTasksByTitle(ctx context.Context, ownerID int, title string) error {
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(title) = LOWER(?)", ownerID, title).
		Delete(&model.Task{}).Error
	if err != nil {
		return fmt.Errorf("delete tasks by title: %w", err)
	}
	return nil
}

func (s *GormStore) ListTasks(ctx context.Context, ownerID int, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND assigned_date = ?", ownerID, date).
		Order("priority ASC, created_at ASC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormStore) ListDailyTasks(ctx context.Context, ownerID int) ([]model.Task, error) {
	var tasks []model.Task
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_daily = ?", ownerID, true).
		Order("assigned_date ASC, created_at ASC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query daily tasks: %w", err)
	}
	return tasks, nil
}

// --- daily scores ---

func (s *GormStore) UpsertDailyScore(ctx context.Context, score *model.DailyScore) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_possible_points", "earned_points", "percentage_score",
		}),
	}).Create(score).Error
	if err != nil {
		return fmt.Errorf("upsert daily score: %w", err)
	}
	return nil
}

// --- rating history ---

func (s *GormStore) GetRatingBefore(ctx context.Context, ownerID int, date string) (*model.RatingEntry, error) {
	var e model.RatingEntry
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND date < ?", ownerID, date).
		Order("date DESC").First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query rating before %s: %w", date, err)
	}
	return &e, nil
}

func (s *GormStore) LatestRating(ctx context.Context, ownerID int) (*model.RatingEntry, error) {
	var e model.RatingEntry
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC").First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest rating: %w", err)
	}
	return &e, nil
}

func (s *GormStore) UpsertRatingEntry(ctx context.Context, e *model.RatingEntry) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "daily_score"}),
	}).Create(e).Error
	if err != nil {
		return fmt.Errorf("upsert rating entry: %w", err)
	}
	return nil
}

func (s *GormStore) ListRatingHistory(ctx context.Context, ownerID, limit int) ([]model.RatingEntry, error) {
	var entries []model.RatingEntry
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query rating history: %w", err)
	}
	return entries, nil
}

// --- streaks and awards ---

func (s *GormStore) GetStreak(ctx context.Context, ownerID int, habitTitle string) (*model.Streak, error) {
	var st model.Streak
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND habit_title = ?", ownerID, habitTitle).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query streak: %w", err)
	}
	return &st, nil
}

func (s *GormStore) GetStreakByID(ctx context.Context, ownerID, id int) (*model.Streak, error) {
	var st model.Streak
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).First(&st).Error
	if err != nil {
		return nil, mapErr(err, "query streak")
	}
	return &st, nil
}

func (s *GormStore) SaveStreak(ctx context.Context, st *model.Streak) error {
	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

func (s *GormStore) ListActiveStreaks(ctx context.Context, ownerID int) ([]model.Streak, error) {
	var streaks []model.Streak
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND active = ?", ownerID, true).
		Order("current_count DESC").Find(&streaks).Error
	if err != nil {
		return nil, fmt.Errorf("query streaks: %w", err)
	}
	return streaks, nil
}

// InsertAward is a no-op when the same (streak, milestone, date) award already
// exists, which makes retried milestone check-ins safe.
func (s *GormStore) InsertAward(ctx context.Context, a *model.CookieJarAward) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(a).Error
	if err != nil {
		return fmt.Errorf("insert award: %w", err)
	}
	return nil
}

func (s *GormStore) ListAwards(ctx context.Context, ownerID int) ([]model.CookieJarAward, error) {
	var awards []model.CookieJarAward
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("earned_date DESC, streak_days DESC").Find(&awards).Error
	if err != nil {
		return nil, fmt.Errorf("query awards: %w", err)
	}
	return awards, nil
}

func mapErr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
