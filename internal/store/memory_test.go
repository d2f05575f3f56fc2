package store

import (
	"context"
	"testing"

	"achiever/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertDailyScore_OneRowPerOwnerAndDate(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.UpsertDailyScore(ctx, &model.DailyScore{OwnerID: 1, Date: "2024-01-01", EarnedPoints: 3}))
	require.NoError(t, st.UpsertDailyScore(ctx, &model.DailyScore{OwnerID: 1, Date: "2024-01-01", EarnedPoints: 5}))
	require.NoError(t, st.UpsertDailyScore(ctx, &model.DailyScore{OwnerID: 2, Date: "2024-01-01", EarnedPoints: 1}))

	assert.Len(t, st.scores, 2)
}

func TestGetRatingBefore_IsStrictlyBefore(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.UpsertRatingEntry(ctx, &model.RatingEntry{OwnerID: 1, Date: "2024-01-01", Rating: 1400}))
	require.NoError(t, st.UpsertRatingEntry(ctx, &model.RatingEntry{OwnerID: 1, Date: "2024-01-02", Rating: 1410}))
	require.NoError(t, st.UpsertRatingEntry(ctx, &model.RatingEntry{OwnerID: 2, Date: "2024-01-01", Rating: 2000}))

	e, err := st.GetRatingBefore(ctx, 1, "2024-01-02")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "2024-01-01", e.Date)
	assert.Equal(t, 1400, e.Rating)

	e, err = st.GetRatingBefore(ctx, 1, "2024-01-01")
	require.NoError(t, err)
	assert.Nil(t, e, "no entry strictly before the first date")
}

func TestUpsertRatingEntry_OverwritesSameDay(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.UpsertRatingEntry(ctx, &model.RatingEntry{OwnerID: 1, Date: "2024-01-01", Rating: 1400}))
	require.NoError(t, st.UpsertRatingEntry(ctx, &model.RatingEntry{OwnerID: 1, Date: "2024-01-01", Rating: 1450}))

	latest, err := st.LatestRating(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1450, latest.Rating)
	assert.Len(t, st.ratings, 1)
}

func TestInsertAward_DedupesMilestoneRetries(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	streakID := 7

	a := &model.CookieJarAward{OwnerID: 1, StreakID: &streakID, StreakDays: 3, EarnedDate: "2024-01-03"}
	require.NoError(t, st.InsertAward(ctx, a))
	require.NoError(t, st.InsertAward(ctx, &model.CookieJarAward{OwnerID: 1, StreakID: &streakID, StreakDays: 3, EarnedDate: "2024-01-03"}))

	awards, err := st.ListAwards(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, awards, 1)

	// same milestone on a later date is a new award
	require.NoError(t, st.InsertAward(ctx, &model.CookieJarAward{OwnerID: 1, StreakID: &streakID, StreakDays: 3, EarnedDate: "2024-02-10"}))
	awards, err = st.ListAwards(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, awards, 2)
}

func TestDeleteTasksByTitle_CaseInsensitive(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.CreateTask(ctx, &model.Task{OwnerID: 1, Title: "Read Books", AssignedDate: "2024-01-01"}))
	require.NoError(t, st.CreateTask(ctx, &model.Task{OwnerID: 1, Title: "read books", AssignedDate: "2024-01-02"}))
	require.NoError(t, st.CreateTask(ctx, &model.Task{OwnerID: 1, Title: "Other", AssignedDate: "2024-01-01"}))

	require.NoError(t, st.DeleteTasksByTitle(ctx, 1, "READ BOOKS"))

	assert.Len(t, st.tasks, 1)
}
