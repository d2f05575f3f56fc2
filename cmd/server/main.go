package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"achiever/internal/config"
	"achiever/internal/handler"
	applog "achiever/internal/logger"
	"achiever/internal/middleware"
	"achiever/internal/service"
	"achiever/internal/store"
	"achiever/internal/timeutil"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
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

	clock := timeutil.SystemClock{}
	authSvc := service.NewAuthService(st)
	taskSvc := service.NewTaskService(st, clock, cfg.Day.CutoffHour)
	ratingSvc := service.NewRatingService(st, cfg.Rating)
	scoreSvc := service.NewScoreService(st, ratingSvc)
	streakSvc := service.NewStreakService(st, clock, cfg.Day.CutoffHour)

	secret := []byte(cfg.Auth.JWTSecret)
	authH := handler.NewAuthHandler(authSvc, secret)
	taskH := handler.NewTaskHandler(taskSvc)
	statsH := handler.NewStatsHandler(scoreSvc, ratingSvc, taskSvc)
	streakH := handler.NewStreakHandler(streakSvc)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Achiever API Running!") })
	r.POST("/api/login", authH.Login)

	api := r.Group("/api", middleware.JWTAuth(secret))
	api.GET("/tasks", taskH.List)
	api.POST("/tasks", taskH.Create)
	api.PATCH("/tasks/:id/toggle", taskH.Toggle)
	api.DELETE("/tasks/:id", taskH.Delete)

	api.GET("/stats/daily/:date", statsH.Daily)
	api.GET("/stats/rating/current", statsH.CurrentRating)
	api.GET("/stats/rating/history", statsH.RatingHistory)
	api.GET("/leaderboard", statsH.Leaderboard)

	api.GET("/streaks", streakH.List)
	api.POST("/streaks/check-in", streakH.CheckIn)
	api.POST("/streaks/:id/break", streakH.Break)
	api.GET("/cookie-jar", streakH.CookieJar)
	api.POST("/cookie-jar", streakH.AddAward)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
