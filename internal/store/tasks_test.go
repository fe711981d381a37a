package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/models"
	"eventplanner/internal/testutil"
)

func tasksWith(total, completed int) []models.Task {
	tasks := make([]models.Task, total)
	for i := 0; i < completed; i++ {
		tasks[i].Status = true
	}
	return tasks
}

func TestTaskProgress(t *testing.T) {
	tests := []struct {
		total, completed int
		want             int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 100},
		{3, 1, 33},
		{3, 2, 67},
		{8, 1, 13},
		{200, 29, 15},
		{7, 7, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TaskProgress(tasksWith(tt.total, tt.completed)), "%d of %d", tt.completed, tt.total)
	}
}

func TestFilterTasks(t *testing.T) {
	state := InitialTaskState()
	state.Tasks = []models.Task{{Title: "a", Status: true}, {Title: "b"}, {Title: "c", Status: true}}

	assert.Len(t, FilterTasks(state), 3)
	assert.Len(t, FilterTasks(ReduceTasks(state, TaskFilterSet{Status: TaskFilterCompleted})), 2)
	pending := FilterTasks(ReduceTasks(state, TaskFilterSet{Status: TaskFilterPending}))
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].Title)
}

func TestTasks_Lifecycle(t *testing.T) {
	f := newFixture(t)
	event := testutil.CreateTestEvent(t, f.db, f.user.ID)
	tasks := f.store.Tasks

	assert.Equal(t, 0, tasks.Progress())

	late := tasks.Create(f.ctx, TaskInput{Title: "Send thank-you cards", DueDate: "2025-07-01"}, event.ID, f.user.ID)
	early := tasks.Create(f.ctx, TaskInput{Title: "Book venue", DueDate: "2025-03-01"}, event.ID, f.user.ID)
	require.True(t, late.Success)
	require.True(t, early.Success)
	assert.False(t, tasks.State().Tasks[0].Status)

	require.True(t, tasks.Load(f.ctx, event.ID).Success)
	state := tasks.State()
	require.Len(t, state.Tasks, 2)
	assert.Equal(t, "Book venue", state.Tasks[0].Title, "loaded earliest due first")

	require.True(t, tasks.Toggle(f.ctx, early.ID).Success)
	assert.Equal(t, 50, tasks.Progress())

	var stored models.Task
	require.NoError(t, f.db.First(&stored, "id = ?", early.ID).Error)
	assert.True(t, stored.Status)

	require.True(t, tasks.Toggle(f.ctx, early.ID).Success)
	assert.Equal(t, 0, tasks.Progress())

	title := "Send cards"
	require.True(t, tasks.Update(f.ctx, late.ID, TaskPatch{Title: &title}).Success)
	assert.Equal(t, "Send cards", tasks.State().Tasks[1].Title)

	require.True(t, tasks.Remove(f.ctx, late.ID).Success)
	assert.Len(t, tasks.State().Tasks, 1)

	tasks.Clear()
	assert.Empty(t, tasks.State().Tasks)
}

func TestTasks_Validation(t *testing.T) {
	f := newFixture(t)

	noDue := f.store.Tasks.Create(f.ctx, TaskInput{Title: "Book venue"}, "evt", f.user.ID)
	assert.False(t, noDue.Success)
	assert.Equal(t, "VALIDATION_FAILED", noDue.Code)
	assert.Equal(t, "Due date is required", noDue.Fields["due_date"])

	badDue := f.store.Tasks.Create(f.ctx, TaskInput{Title: "Book venue", DueDate: "next week"}, "evt", f.user.ID)
	assert.Equal(t, "Please enter a valid date", badDue.Fields["due_date"])

	noTitle := f.store.Tasks.Create(f.ctx, TaskInput{Title: " ", DueDate: "2025-03-01"}, "evt", f.user.ID)
	assert.Equal(t, "Title is required", noTitle.Fields["title"])

	assert.Equal(t, 0, f.gw.callCount())
	assert.Empty(t, f.store.Tasks.State().Err)
}

func TestTasks_ToggleUnknownTask(t *testing.T) {
	f := newFixture(t)

	res := f.store.Tasks.Toggle(f.ctx, "missing")

	assert.False(t, res.Success)
	assert.Equal(t, "TASK_NOT_FOUND", res.Code)
	assert.Equal(t, 0, f.gw.callCount())
}

func TestTasks_RejectsUnknownStatusFilter(t *testing.T) {
	f := newFixture(t)
	tasks := f.store.Tasks

	res := tasks.SetStatusFilter("overdue")
	assert.False(t, res.Success)
	assert.Equal(t, "Status is not a recognised value", res.Fields["status"])
	assert.Equal(t, FilterAll, tasks.State().StatusFilter)

	assert.True(t, tasks.SetStatusFilter(TaskFilterPending).Success)
	assert.Equal(t, TaskFilterPending, tasks.State().StatusFilter)
}
