package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"achiever/internal/model"
)

// MemoryStore is an in-process Store used by tests. Single mutex, no real
// transactions: InTx just runs the closure against the same state, which is
// enough for single-goroutine test scenarios.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int

	users   map[int]*model.User
	tasks   map[int]*model.Task
	scores  map[int]*model.DailyScore
	ratings map[int]*model.RatingEntry
	streaks map[int]*model.Streak
	awards  map[int]*model.CookieJarAward
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		users:   map[int]*model.User{},
		tasks:   map[int]*model.Task{},
		scores:  map[int]*model.DailyScore{},
		ratings: map[int]*model.RatingEntry{},
		streaks: map[int]*model.Streak{},
		awards:  map[int]*model.CookieJarAward{},
	}
}

func (m *MemoryStore) id() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemoryStore) InTx(_ context.Context, fn func(Store) error) error {
	return fn(m)
}

// --- users ---

func (m *MemoryStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateUserRating(_ context.Context, id, rating int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.CurrentRating = rating
	}
	return nil
}

func (m *MemoryStore) ListUsersByRating(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []model.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CurrentRating != users[j].CurrentRating {
			return users[i].CurrentRating > users[j].CurrentRating
		}
		return users[i].Name < users[j].Name
	})
	return users, nil
}

// --- tasks ---

func (m *MemoryStore) CreateTask(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.id()
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *MemoryStore) GetTask(_ context.Context, ownerID, id int) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryStore) SaveTask(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteTask(_ context.Context, ownerID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *MemoryStore) DeleteTasksByTitle(_ context.Context, ownerID int, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tasks {
		if t.OwnerID == ownerID && strings.EqualFold(t.Title, title) {
			delete(m.tasks, id)
		}
	}
	return nil
}

func (m *MemoryStore) ListTasks(_ context.Context, ownerID int, date string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []model.Task
	for _, t := range m.tasks {
		if t.OwnerID == ownerID && t.AssignedDate == date {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (m *MemoryStore) ListDailyTasks(_ context.Context, ownerID int) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []model.Task
	for _, t := range m.tasks {
		if t.OwnerID == ownerID && t.IsDaily {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].AssignedDate != tasks[j].AssignedDate {
			return tasks[i].AssignedDate < tasks[j].AssignedDate
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

// --- daily scores ---

func (m *MemoryStore) UpsertDailyScore(_ context.Context, s *model.DailyScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.scores {
		if existing.OwnerID == s.OwnerID && existing.Date == s.Date {
			s.ID = existing.ID
			cp := *s
			m.scores[existing.ID] = &cp
			return nil
		}
	}
	s.ID = m.id()
	cp := *s
	m.scores[s.ID] = &cp
	return nil
}

// --- rating history ---

func (m *MemoryStore) GetRatingBefore(_ context.Context, ownerID int, date string) (*model.RatingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *model.RatingEntry
	for _, e := range m.ratings {
		if e.OwnerID != ownerID || e.Date >= date {
			continue
		}
		if best == nil || e.Date > best.Date {
			best = e
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (m *MemoryStore) LatestRating(_ context.Context, ownerID int) (*model.RatingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *model.RatingEntry
	for _, e := range m.ratings {
		if e.OwnerID != ownerID {
			continue
		}
		if best == nil || e.Date > best.Date {
			best = e
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (m *MemoryStore) UpsertRatingEntry(_ context.Context, e *model.RatingEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ratings {
		if existing.OwnerID == e.OwnerID && existing.Date == e.Date {
			e.ID = existing.ID
			cp := *e
			m.ratings[existing.ID] = &cp
			return nil
		}
	}
	e.ID = m.id()
	cp := *e
	m.ratings[e.ID] = &cp
	return nil
}

func (m *MemoryStore) ListRatingHistory(_ context.Context, ownerID, limit int) ([]model.RatingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []model.RatingEntry
	for _, e := range m.ratings {
		if e.OwnerID == ownerID {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// --- streaks and awards ---

func (m *MemoryStore) GetStreak(_ context.Context, ownerID int, habitTitle string) (*model.Streak, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.streaks {
		if s.OwnerID == ownerID && s.HabitTitle == habitTitle {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) GetStreakByID(_ context.Context, ownerID, id int) (*model.Streak, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.streaks[id]
	if !ok || s.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) SaveStreak(_ context.Context, s *model.Streak) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == 0 {
		s.ID = m.id()
	}
	cp := *s
	m.streaks[s.ID] = &cp
	return nil
}

func (m *MemoryStore) ListActiveStreaks(_ context.Context, ownerID int) ([]model.Streak, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var streaks []model.Streak
	for _, s := range m.streaks {
		if s.OwnerID == ownerID && s.Active {
			streaks = append(streaks, *s)
		}
	}
	sort.Slice(streaks, func(i, j int) bool { return streaks[i].CurrentCount > streaks[j].CurrentCount })
	return streaks, nil
}

func (m *MemoryStore) InsertAward(_ context.Context, a *model.CookieJarAward) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.StreakID != nil {
		for _, existing := range m.awards {
			if existing.StreakID != nil && *existing.StreakID == *a.StreakID &&
				existing.StreakDays == a.StreakDays && existing.EarnedDate == a.EarnedDate {
				return nil
			}
		}
	}
	a.ID = m.id()
	cp := *a
	m.awards[a.ID] = &cp
	return nil
}

func (m *MemoryStore) ListAwards(_ context.Context, ownerID int) ([]model.CookieJarAward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var awards []model.CookieJarAward
	for _, a := range m.awards {
		if a.OwnerID == ownerID {
			awards = append(awards, *a)
		}
	}
	sort.Slice(awards, func(i, j int) bool {
		if awards[i].EarnedDate != awards[j].EarnedDate {
			return awards[i].EarnedDate > awards[j].EarnedDate
		}
		return awards[i].StreakDays > awards[j].StreakDays
	})
	return awards, nil
}
