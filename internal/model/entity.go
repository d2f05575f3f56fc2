package model

import "time"

type User struct {
	ID            int    `gorm:"primaryKey" json:"id"`
	Username      string `gorm:"uniqueIndex" json:"username"`
	Password      string `json:"-"`
	Name          string `json:"name"`
	CurrentRating int    `json:"current_rating"`
}

type Task struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	OwnerID      int        `gorm:"index:idx_task_owner_date" json:"owner_id"`
	Title        string     `json:"title"`
	Priority     int        `json:"priority"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	AssignedDate string     `gorm:"type:date;index:idx_task_owner_date" json:"assigned_date"`
	IsDaily      bool       `json:"is_daily"`
	IsAvoidance  bool       `json:"is_avoidance"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DailyScore is derived state, one row per (owner, date), overwritten on recompute.
type DailyScore struct {
	ID                  int     `gorm:"primaryKey" json:"id"`
	OwnerID             int     `gorm:"uniqueIndex:uk_score_owner_date" json:"owner_id"`
	Date                string  `gorm:"type:date;uniqueIndex:uk_score_owner_date" json:"date"`
	TotalPossiblePoints int     `json:"total_possible_points"`
	EarnedPoints        int     `json:"earned_points"`
	PercentageScore     float64 `json:"percentage_score"`
}

// RatingEntry rows ordered by date form the authoritative rating time series.
// Each entry derives from the latest entry strictly before its date.
type RatingEntry struct {
	ID         int     `gorm:"primaryKey" json:"id"`
	OwnerID    int     `gorm:"uniqueIndex:uk_rating_owner_date" json:"owner_id"`
	Date       string  `gorm:"type:date;uniqueIndex:uk_rating_owner_date" json:"date"`
	Rating     int     `json:"rating"`
	DailyScore float64 `json:"daily_score"`
}

type Streak struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	OwnerID      int       `gorm:"uniqueIndex:uk_streak_owner_title" json:"owner_id"`
	HabitTitle   string    `gorm:"size:255;uniqueIndex:uk_streak_owner_title" json:"habit_title"`
	CurrentCount int       `json:"current_count"`
	LongestCount int       `json:"longest_count"`
	LastCheckIn  *string   `gorm:"type:date" json:"last_check_in"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type CookieJarAward struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	OwnerID     int       `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StreakDays  int       `gorm:"uniqueIndex:uk_award_streak_days_date" json:"streak_days"`
	StreakID    *int      `gorm:"uniqueIndex:uk_award_streak_days_date" json:"streak_id"`
	EarnedDate  string    `gorm:"type:date;uniqueIndex:uk_award_streak_days_date" json:"earned_date"`
	Icon        string    `gorm:"size:16" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

func (User) TableName() string           { return "users" }
func (Task) TableName() string           { return "tasks" }
func (DailyScore) TableName() string     { return "daily_scores" }
func (RatingEntry) TableName() string    { return "rating_history" }
func (Streak) TableName() string         { return "streaks" }
func (CookieJarAward) TableName() string { return "cookie_jar" }
