package service

import (
	"context"
	"testing"
	"time"

	"achiever/internal/model"
	"achiever/internal/store"
	"achiever/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCutoff = 5

func newStreakFixture() (*StreakService, *store.MemoryStore, *timeutil.FixedClock) {
	st := store.NewMemoryStore()
	clk := &timeutil.FixedClock{T: time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)}
	return NewStreakService(st, clk, testCutoff), st, clk
}

func advanceDays(clk *timeutil.FixedClock, days int) {
	clk.T = clk.T.AddDate(0, 0, days)
}

func TestCheckIn_FirstTimeStartsAtOne(t *testing.T) {
	svc, _, _ := newStreakFixture()

	s, err := svc.CheckIn(context.Background(), 1, "No junk food")
	require.NoError(t, err)

	assert.Equal(t, 1, s.CurrentCount)
	assert.Equal(t, 1, s.LongestCount)
	assert.True(t, s.Active)
	require.NotNil(t, s.LastCheckIn)
	assert.Equal(t, "2024-01-01", *s.LastCheckIn)
}

func TestCheckIn_ConsecutiveDaysIncrement(t *testing.T) {
	svc, _, clk := newStreakFixture()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		s, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		assert.Equal(t, i, s.CurrentCount)
		advanceDays(clk, 1)
	}
}

func TestCheckIn_SameDayIsIdempotent(t *testing.T) {
	svc, _, _ := newStreakFixture()
	ctx := context.Background()

	first, err := svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)
	second, err := svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)

	assert.Equal(t, first.CurrentCount, second.CurrentCount)
}

func TestCheckIn_GapResetsToOne(t *testing.T) {
	svc, _, clk := newStreakFixture()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		advanceDays(clk, 1)
	}
	advanceDays(clk, 2) // two missed days

	s, err := svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentCount)
	assert.Equal(t, 4, s.LongestCount, "longest count survives the reset")
}

func TestCheckIn_CutoffKeepsLateNightOnSameDay(t *testing.T) {
	svc, _, clk := newStreakFixture()
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)

	// 2 AM the next calendar day is still "today" under the 5 AM cutoff
	clk.T = time.Date(2024, 1, 2, 2, 0, 0, 0, time.Local)
	s, err := svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentCount)

	// 9 AM the same calendar day is the next day; the run continues
	clk.T = time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	s, err = svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)
	assert.Equal(t, 2, s.CurrentCount)
}

func TestCheckIn_MilestoneAwardsExactlyOnce(t *testing.T) {
	svc, st, clk := newStreakFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		// re-check-in the same day must not double-award
		_, err = svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		advanceDays(clk, 1)
	}

	awards, err := st.ListAwards(ctx, 1)
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, 3, awards[0].StreakDays)
	assert.Contains(t, awards[0].Title, "3 Day Streak")
}

func TestCheckIn_SevenDayRunEarnsBothMilestones(t *testing.T) {
	svc, st, clk := newStreakFixture()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		advanceDays(clk, 1)
	}

	awards, err := st.ListAwards(ctx, 1)
	require.NoError(t, err)
	require.Len(t, awards, 2)

	days := []int{awards[0].StreakDays, awards[1].StreakDays}
	assert.ElementsMatch(t, []int{3, 7}, days)
}

func TestCheckIn_MilestoneReearnedAfterReset(t *testing.T) {
	svc, st, clk := newStreakFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		advanceDays(clk, 1)
	}
	advanceDays(clk, 3) // break the run
	for i := 0; i < 3; i++ {
		_, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		advanceDays(clk, 1)
	}

	awards, err := st.ListAwards(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, awards, 2, "a rebuilt streak earns the milestone again")
}

func TestBreak_DeactivatesAndNextCheckInRestarts(t *testing.T) {
	svc, _, clk := newStreakFixture()
	ctx := context.Background()

	var id int
	for i := 0; i < 4; i++ {
		s, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		id = s.ID
		advanceDays(clk, 1)
	}

	require.NoError(t, svc.Break(ctx, 1, id))

	active, err := svc.ActiveStreaks(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, active)

	s, err := svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentCount)
	assert.Equal(t, 4, s.LongestCount)
	assert.True(t, s.Active)
}

func TestBreak_UnknownStreakIsNotFound(t *testing.T) {
	svc, _, _ := newStreakFixture()
	err := svc.Break(context.Background(), 1, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBreak_OtherOwnersStreakIsNotFound(t *testing.T) {
	svc, _, _ := newStreakFixture()
	ctx := context.Background()

	s, err := svc.CheckIn(ctx, 1, "No junk food")
	require.NoError(t, err)

	err = svc.Break(ctx, 2, s.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCookieJar_CollectsAwardsAndRunningStreaks(t *testing.T) {
	svc, _, clk := newStreakFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CheckIn(ctx, 1, "No junk food")
		require.NoError(t, err)
		advanceDays(clk, 1)
	}
	_, err := svc.CheckIn(ctx, 1, "No doomscrolling")
	require.NoError(t, err)

	jar, err := svc.CookieJar(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, jar.TotalCookies)
	require.Len(t, jar.ActiveStreaks, 2)
	assert.Equal(t, "No junk food", jar.ActiveStreaks[0].HabitTitle, "highest streak first")
}

func TestAddAward_ManualCookie(t *testing.T) {
	svc, st, _ := newStreakFixture()
	ctx := context.Background()

	award, err := svc.AddAward(ctx, 1, model.CreateAwardRequest{Title: "Ran a marathon", Description: "26.2 miles"})
	require.NoError(t, err)
	assert.Equal(t, "🍪", award.Icon)
	assert.Equal(t, "2024-01-01", award.EarnedDate)

	awards, err := st.ListAwards(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, awards, 1)
}

func TestCheckIn_RejectsBadInput(t *testing.T) {
	svc, _, _ := newStreakFixture()

	_, err := svc.CheckIn(context.Background(), 0, "No junk food")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CheckIn(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrValidation)
}
