// Command seed wipes the database and loads a demo user with sample tasks,
// for local development.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"achiever/internal/config"
	applog "achiever/internal/logger"
	"achiever/internal/model"
	"achiever/internal/service"
	"achiever/internal/store"
	"achiever/internal/timeutil"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	configFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg := config.Load(*configFile)
	applog.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	st := store.NewGormStore(db)
	if err := st.Migrate(); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	for _, table := range []string{"rating_history", "daily_scores", "cookie_jar", "streaks", "tasks", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			slog.Error("wipe table failed", "table", table, "err", err)
			os.Exit(1)
		}
	}
	slog.Info("cleared existing data")

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("achiever123"), bcrypt.DefaultCost)
	user := &model.User{
		Username:      "demo",
		Password:      string(hash),
		Name:          "Demo Achiever",
		CurrentRating: cfg.Rating.Starting,
	}
	if err := st.CreateUser(ctx, user); err != nil {
		slog.Error("create demo user failed", "err", err)
		os.Exit(1)
	}

	today := timeutil.DayKey(timeutil.SystemClock{}.Now(), cfg.Day.CutoffHour)
	samples := []model.CreateTaskRequest{
		{Title: "Complete morning workout", Priority: 1},
		{Title: "Review and respond to emails", Priority: 2},
		{Title: "Work on main project", Priority: 0},
		{Title: "Read for 30 minutes", Priority: 3, IsDaily: true},
		{Title: "Plan tomorrow's tasks", Priority: 4},
		{Title: "No junk food", Priority: 2, IsAvoidance: true},
	}

	tasks := service.NewTaskService(st, timeutil.SystemClock{}, cfg.Day.CutoffHour)
	for _, req := range samples {
		req.AssignedDate = today
		if _, err := tasks.Create(ctx, user.ID, req); err != nil {
			slog.Error("create sample task failed", "title", req.Title, "err", err)
			os.Exit(1)
		}
	}

	slog.Info("seed complete",
		"user", user.Username,
		"password", "achiever123",
		"tasks", len(samples),
		"date", today,
		"starting_rating", cfg.Rating.Starting,
	)
}
