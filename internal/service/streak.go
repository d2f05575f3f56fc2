package service

import (
	"context"
	"fmt"

	"achiever/internal/logger"
	"achiever/internal/model"
	"achiever/internal/store"
	"achiever/internal/timeutil"
)

// Milestones are the streak lengths that drop a cookie into the jar.
var Milestones = []int{3, 7, 14, 21, 30, 60, 90, 180, 365}

func isMilestone(count int) bool {
	for _, m := range Milestones {
		if m == count {
			return true
		}
	}
	return false
}

// StreakService tracks consecutive-day avoidance check-ins. One streak row per
// (owner, habit title); breaking a streak deactivates the row and the next
// check-in restarts it as a fresh run.
type StreakService struct {
	store      store.Store
	clock      timeutil.Clock
	cutoffHour int
}

func NewStreakService(st store.Store, clock timeutil.Clock, cutoffHour int) *StreakService {
	return &StreakService{store: st, clock: clock, cutoffHour: cutoffHour}
}

// CheckIn records that the owner held the habit today. Re-checking in the same
// day is a no-op. A check-in the day after the last one extends the run; any
// larger gap restarts it at 1.
func (s *StreakService) CheckIn(ctx context.Context, ownerID int, habitTitle string) (*model.Streak, error) {
	if ownerID <= 0 {
		return nil, validationErr("missing owner")
	}
	if habitTitle == "" {
		return nil, validationErr("missing habit title")
	}

	today := timeutil.DayKey(s.clock.Now(), s.cutoffHour)
	yesterday := timeutil.PrevDay(today)

	var streak *model.Streak
	counted := false
	err := s.store.InTx(ctx, func(st store.Store) error {
		existing, err := st.GetStreak(ctx, ownerID, habitTitle)
		if err != nil {
			return err
		}
		if existing == nil {
			existing = &model.Streak{
				OwnerID:    ownerID,
				HabitTitle: habitTitle,
			}
		}

		last := ""
		if existing.LastCheckIn != nil {
			last = *existing.LastCheckIn
		}

		switch {
		case !existing.Active || last == "":
			// first check-in ever, or a restart after a break
			existing.CurrentCount = 1
			counted = true
		case last == yesterday:
			existing.CurrentCount++
			counted = true
		case last == today:
			// already checked in today
		default:
			existing.CurrentCount = 1
			counted = true
		}

		if existing.CurrentCount > existing.LongestCount {
			existing.LongestCount = existing.CurrentCount
		}
		existing.LastCheckIn = &today
		existing.Active = true

		if err := st.SaveStreak(ctx, existing); err != nil {
			return err
		}
		streak = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("check in streak: %w", err)
	}

	// The award write is deliberately outside the streak transaction. If it
	// fails the streak has still advanced; the insert dedupes on
	// (streak, days, date), so a client retry of the whole check-in heals the
	// missing cookie.
	if counted && isMilestone(streak.CurrentCount) {
		award := &model.CookieJarAward{
			OwnerID:     ownerID,
			Title:       fmt.Sprintf("%s - %d Day Streak!", habitTitle, streak.CurrentCount),
			Description: fmt.Sprintf("You maintained %q for %d consecutive days!", habitTitle, streak.CurrentCount),
			StreakDays:  streak.CurrentCount,
			StreakID:    &streak.ID,
			EarnedDate:  today,
			Icon:        "🍪",
		}
		if err := s.store.InsertAward(ctx, award); err != nil {
			logger.Error("milestone award insert failed; streak advanced without cookie",
				"owner", ownerID, "habit", habitTitle, "days", streak.CurrentCount, "err", err)
			return nil, fmt.Errorf("insert milestone award: %w", err)
		}
		logger.Info("milestone reached", "owner", ownerID, "habit", habitTitle, "days", streak.CurrentCount)
	}

	return streak, nil
}

// Break ends a streak run: count back to zero, row inactive. The longest count
// survives for the record books.
func (s *StreakService) Break(ctx context.Context, ownerID, streakID int) error {
	streak, err := s.store.GetStreakByID(ctx, ownerID, streakID)
	if err != nil {
		return err
	}
	streak.CurrentCount = 0
	streak.Active = false
	if err := s.store.SaveStreak(ctx, streak); err != nil {
		return fmt.Errorf("break streak: %w", err)
	}
	return nil
}

func (s *StreakService) ActiveStreaks(ctx context.Context, ownerID int) ([]model.Streak, error) {
	return s.store.ListActiveStreaks(ctx, ownerID)
}

// CookieJar assembles the achievements view: every earned award plus the
// streaks currently running.
func (s *StreakService) CookieJar(ctx context.Context, ownerID int) (*model.CookieJar, error) {
	awards, err := s.store.ListAwards(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	streaks, err := s.store.ListActiveStreaks(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	running := make([]model.Streak, 0, len(streaks))
	for _, st := range streaks {
		if st.CurrentCount > 0 {
			running = append(running, st)
		}
	}
	if awards == nil {
		awards = []model.CookieJarAward{}
	}
	return &model.CookieJar{
		Achievements:  awards,
		ActiveStreaks: running,
		TotalCookies:  len(awards),
	}, nil
}

// AddAward records a manual cookie, e.g. a past achievement entered by hand.
func (s *StreakService) AddAward(ctx context.Context, ownerID int, req model.CreateAwardRequest) (*model.CookieJarAward, error) {
	if ownerID <= 0 {
		return nil, validationErr("missing owner")
	}
	if req.Title == "" {
		return nil, validationErr("missing title")
	}
	icon := req.Icon
	if icon == "" {
		icon = "🍪"
	}
	award := &model.CookieJarAward{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		EarnedDate:  timeutil.DayKey(s.clock.Now(), s.cutoffHour),
		Icon:        icon,
	}
	if err := s.store.InsertAward(ctx, award); err != nil {
		return nil, err
	}
	return award, nil
}
