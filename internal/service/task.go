package service

import (
	"context"
	"fmt"
	"strings"

	"achiever/internal/model"
	"achiever/internal/store"
	"achiever/internal/timeutil"
)

// TaskService owns task CRUD and the daily-habit materializer.
type TaskService struct {
	store      store.Store
	clock      timeutil.Clock
	cutoffHour int
}

func NewTaskService(st store.Store, clock timeutil.Clock, cutoffHour int) *TaskService {
	return &TaskService{store: st, clock: clock, cutoffHour: cutoffHour}
}

func (s *TaskService) Today() string {
	return timeutil.DayKey(s.clock.Now(), s.cutoffHour)
}

// List returns the owner's tasks for a date, materializing any due daily
// habits first so the day's list is complete before it is scored.
func (s *TaskService) List(ctx context.Context, ownerID int, date string) ([]model.Task, error) {
	if ownerID <= 0 {
		return nil, validationErr("missing owner")
	}
	if date == "" {
		date = s.Today()
	}
	if !timeutil.ValidDay(date) {
		return nil, validationErr("malformed date %q", date)
	}
	if err := s.MaterializeDailies(ctx, ownerID, date); err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasks(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// MaterializeDailies creates today's instance of every daily habit that does
// not have one yet. The most recent instance per title (case-insensitive) is
// the habit's template; deleting a habit removes all its instances, so having
// a latest instance at all means the habit is still active. Idempotent per
// (owner, date).
func (s *TaskService) MaterializeDailies(ctx context.Context, ownerID int, date string) error {
	if ownerID <= 0 {
		return validationErr("missing owner")
	}
	if !timeutil.ValidDay(date) {
		return validationErr("malformed date %q", date)
	}
	dailies, err := s.store.ListDailyTasks(ctx, ownerID)
	if err != nil {
		return err
	}

	// sorted ascending by assigned date, so the last instance per title wins
	latest := map[string]model.Task{}
	for _, t := range dailies {
		latest[strings.ToLower(t.Title)] = t
	}

	for _, tmpl := range latest {
		if tmpl.AssignedDate >= date {
			continue
		}
		inst := model.Task{
			OwnerID:      ownerID,
			Title:        tmpl.Title,
			Priority:     tmpl.Priority,
			AssignedDate: date,
			IsDaily:      true,
			IsAvoidance:  tmpl.IsAvoidance,
			CreatedAt:    s.clock.Now(),
		}
		if err := s.store.CreateTask(ctx, &inst); err != nil {
			return fmt.Errorf("materialize daily %q: %w", tmpl.Title, err)
		}
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, ownerID int, req model.CreateTaskRequest) (*model.Task, error) {
	if ownerID <= 0 {
		return nil, validationErr("missing owner")
	}
	if req.Priority < 0 || req.Priority > 4 {
		return nil, validationErr("priority %d out of range 0..4", req.Priority)
	}
	date := req.AssignedDate
	if date == "" {
		date = s.Today()
	}
	if !timeutil.ValidDay(date) {
		return nil, validationErr("malformed date %q", date)
	}

	task := &model.Task{
		OwnerID:      ownerID,
		Title:        req.Title,
		Priority:     req.Priority,
		AssignedDate: date,
		IsDaily:      req.IsDaily,
		IsAvoidance:  req.IsAvoidance,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	// Avoidance tasks get a streak row up front so the habit shows in the
	// cookie jar before the first check-in.
	if req.IsAvoidance {
		existing, err := s.store.GetStreak(ctx, ownerID, req.Title)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			streak := &model.Streak{OwnerID: ownerID, HabitTitle: req.Title, Active: true}
			if err := s.store.SaveStreak(ctx, streak); err != nil {
				return nil, err
			}
		}
	}

	return task, nil
}

// Toggle flips completion and stamps or clears the completion time.
func (s *TaskService) Toggle(ctx context.Context, ownerID, id int) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	task.Completed = !task.Completed
	if task.Completed {
		now := s.clock.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	if err := s.store.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task. Deleting a daily habit removes every materialized
// instance sharing its title, otherwise the materializer would resurrect it
// tomorrow.
func (s *TaskService) Delete(ctx context.Context, ownerID, id int) error {
	task, err := s.store.GetTask(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if task.IsDaily {
		return s.store.DeleteTasksByTitle(ctx, ownerID, task.Title)
	}
	return s.store.DeleteTask(ctx, ownerID, id)
}
