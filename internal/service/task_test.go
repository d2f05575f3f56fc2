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

func newTaskFixture() (*TaskService, *store.MemoryStore, *timeutil.FixedClock) {
	st := store.NewMemoryStore()
	clk := &timeutil.FixedClock{T: time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)}
	return NewTaskService(st, clk, testCutoff), st, clk
}

func TestCreate_DefaultsToToday(t *testing.T) {
	svc, _, _ := newTaskFixture()

	task, err := svc.Create(context.Background(), 1, model.CreateTaskRequest{Title: "Write report", Priority: 1})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", task.AssignedDate)
	assert.False(t, task.Completed)
}

func TestCreate_RejectsPriorityOutOfRange(t *testing.T) {
	svc, _, _ := newTaskFixture()

	for _, p := range []int{-1, 5} {
		_, err := svc.Create(context.Background(), 1, model.CreateTaskRequest{Title: "x", Priority: p})
		assert.ErrorIs(t, err, ErrValidation, "priority %d", p)
	}
}

func TestCreate_AvoidanceTaskSeedsStreakRow(t *testing.T) {
	svc, st, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "No junk food", Priority: 2, IsAvoidance: true})
	require.NoError(t, err)

	streak, err := st.GetStreak(ctx, 1, "No junk food")
	require.NoError(t, err)
	require.NotNil(t, streak)
	assert.Equal(t, 0, streak.CurrentCount)
	assert.True(t, streak.Active)

	// creating another avoidance task with the same title reuses the row
	_, err = svc.Create(ctx, 1, model.CreateTaskRequest{Title: "No junk food", Priority: 2, IsAvoidance: true})
	require.NoError(t, err)
	again, err := st.GetStreak(ctx, 1, "No junk food")
	require.NoError(t, err)
	assert.Equal(t, streak.ID, again.ID)
}

func TestToggle_StampsAndClearsCompletedAt(t *testing.T) {
	svc, _, _ := newTaskFixture()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Write report", Priority: 1})
	require.NoError(t, err)

	done, err := svc.Toggle(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	undone, err := svc.Toggle(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)
}

func TestToggle_OtherOwnersTaskIsNotFound(t *testing.T) {
	svc, _, _ := newTaskFixture()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Write report", Priority: 1})
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, 2, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestList_MaterializesDailyHabits(t *testing.T) {
	svc, _, clk := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Read for 30 minutes", Priority: 3, IsDaily: true})
	require.NoError(t, err)

	clk.T = clk.T.AddDate(0, 0, 1)
	tasks, err := svc.List(ctx, 1, "")
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "2024-01-02", tasks[0].AssignedDate)
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[0].IsDaily)

	// listing again must not materialize a duplicate
	tasks, err = svc.List(ctx, 1, "2024-01-02")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestList_MaterializerSkipsCompletedFlagButKeepsPriority(t *testing.T) {
	svc, _, clk := newTaskFixture()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Read for 30 minutes", Priority: 3, IsDaily: true})
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, 1, task.ID)
	require.NoError(t, err)

	clk.T = clk.T.AddDate(0, 0, 1)
	tasks, err := svc.List(ctx, 1, "")
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, 3, tasks[0].Priority)
	assert.False(t, tasks[0].Completed, "fresh instance starts uncompleted")
}

func TestDelete_DailyHabitRemovesAllInstancesByTitle(t *testing.T) {
	svc, _, clk := newTaskFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Read for 30 minutes", Priority: 3, IsDaily: true})
	require.NoError(t, err)

	// materialize a second instance on the next day
	clk.T = clk.T.AddDate(0, 0, 1)
	tasks, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))

	// neither day has an instance left, and nothing comes back tomorrow
	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		tasks, err := svc.List(ctx, 1, date)
		require.NoError(t, err)
		assert.Empty(t, tasks, "date %s", date)
	}
	clk.T = clk.T.AddDate(0, 0, 1)
	tasks, err = svc.List(ctx, 1, "")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDelete_StandardTaskRemovesOnlyItself(t *testing.T) {
	svc, _, _ := newTaskFixture()
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Write report", Priority: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Write report", Priority: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, a.ID))

	tasks, err := svc.List(ctx, 1, "2024-01-01")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestList_OwnersAreIsolated(t *testing.T) {
	svc, _, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.CreateTaskRequest{Title: "Mine", Priority: 1})
	require.NoError(t, err)

	tasks, err := svc.List(ctx, 2, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
