package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateTaskRequest struct {
	Title        string `json:"title" binding:"required"`
	Priority     int    `json:"priority"`
	AssignedDate string `json:"assigned_date"`
	IsDaily      bool   `json:"is_daily"`
	IsAvoidance  bool   `json:"is_avoidance"`
}

// DailyStats is the combined score + rating result for one day.
type DailyStats struct {
	Date                string  `json:"date"`
	TotalPossiblePoints int     `json:"total_possible_points"`
	EarnedPoints        int     `json:"earned_points"`
	PercentageScore     float64 `json:"percentage_score"`
	TasksCompleted      int     `json:"tasks_completed"`
	TotalTasks          int     `json:"total_tasks"`
	PreviousRating      int     `json:"previous_rating"`
	CurrentRating       int     `json:"current_rating"`
	RatingChange        int     `json:"rating_change"`
	ExpectedScore       float64 `json:"expected_score"`
}

type CheckInRequest struct {
	HabitTitle string `json:"habit_title" binding:"required"`
}

type CreateAwardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CookieJar is the consolidated achievements view: earned cookies plus the
// streaks still running.
type CookieJar struct {
	Achievements  []CookieJarAward `json:"achievements"`
	ActiveStreaks []Streak         `json:"active_streaks"`
	TotalCookies  int              `json:"total_cookies"`
}

type LeaderboardEntry struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}
