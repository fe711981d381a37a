package store

import (
	"context"
	"math"
	"slices"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
	"eventplanner/internal/validator"
)

// Task status filters.
const (
	TaskFilterPending   = "pending"
	TaskFilterCompleted = "completed"
)

// TaskState is the tasks slice: the checklist of the current event.
type TaskState struct {
	Tasks        []models.Task
	StatusFilter string
	Loading      bool
	Err          string
}

// InitialTaskState is the state of a fresh store.
func InitialTaskState() TaskState { return TaskState{StatusFilter: FilterAll} }

type (
	// TasksLoaded replaces the task list.
	TasksLoaded struct{ Tasks []models.Task }
	// TaskAdded appends a created task.
	TaskAdded struct{ Task models.Task }
	// TaskPatched merges a patch into the task with ID.
	TaskPatched struct {
		ID    string
		Patch TaskPatch
	}
	// TaskRemoved drops the task with ID.
	TaskRemoved struct{ ID string }
	// TasksCleared empties the list.
	TasksCleared struct{}
	// TaskFilterSet sets the status filter.
	TaskFilterSet struct{ Status string }
)

func (TasksLoaded) action()   {}
func (TaskAdded) action()     {}
func (TaskPatched) action()   {}
func (TaskRemoved) action()   {}
func (TasksCleared) action()  {}
func (TaskFilterSet) action() {}

// ReduceTasks applies a to s.
func ReduceTasks(s TaskState, a Action) TaskState {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
	case Failed:
		s.Err = a.Err
		s.Loading = false
	case TasksLoaded:
		s.Tasks = slices.Clone(a.Tasks)
		s.Loading = false
		s.Err = ""
	case TaskAdded:
		s.Tasks = append(slices.Clip(s.Tasks), a.Task)
	case TaskPatched:
		i := slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == a.ID })
		if i < 0 {
			return s
		}
		s.Tasks = slices.Clone(s.Tasks)
		s.Tasks[i] = a.Patch.Apply(s.Tasks[i])
	case TaskRemoved:
		s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t models.Task) bool { return t.ID == a.ID })
	case TasksCleared:
		s.Tasks = nil
	case TaskFilterSet:
		s.StatusFilter = a.Status
	}
	return s
}

// FilterTasks returns the tasks matching the status filter.
func FilterTasks(s TaskState) []models.Task {
	var want bool
	switch s.StatusFilter {
	case TaskFilterCompleted:
		want = true
	case TaskFilterPending:
		want = false
	default:
		return slices.Clone(s.Tasks)
	}
	out := make([]models.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out
}

// TaskProgress is the completed share of tasks as a rounded percentage,
// 0 for an empty list.
func TaskProgress(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// Tasks manages the checklist of the current event.
type Tasks struct {
	*slice[TaskState]
	gw gateway.Gateway
}

func newTasks(gw gateway.Gateway, emit func(Change)) *Tasks {
	return &Tasks{
		slice: newSlice(SliceTasks, InitialTaskState(), ReduceTasks, emit),
		gw:    gw,
	}
}

// State returns a copy of the slice state. Changing it does not affect
// the store.
func (t *Tasks) State() TaskState {
	s := t.snapshot()
	s.Tasks = slices.Clone(s.Tasks)
	return s
}

// Filtered returns the tasks matching the status filter.
func (t *Tasks) Filtered() []models.Task { return FilterTasks(t.snapshot()) }

// Progress returns the rounded completion percentage.
func (t *Tasks) Progress() int { return TaskProgress(t.snapshot().Tasks) }

// Load replaces the task list with the tasks of eventID, earliest due first.
func (t *Tasks) Load(ctx context.Context, eventID string) Result {
	t.dispatch(LoadStarted{})

	var tasks []models.Task
	err := t.gw.Query(ctx, models.CollectionTasks, &tasks,
		[]gateway.Filter{gateway.Eq("event_id", eventID)}, gateway.Asc("due_date"))
	if err != nil {
		return t.fail("load tasks", err)
	}

	t.dispatch(TasksLoaded{Tasks: tasks})
	return succeed("")
}

// Create adds an incomplete task.
func (t *Tasks) Create(ctx context.Context, in TaskInput, eventID, userID string) Result {
	if err := validator.Struct(in); err != nil {
		return failure(err)
	}

	task := models.Task{
		EventID: eventID,
		UserID:  userID,
		Title:   in.Title,
		DueDate: in.DueDate,
		Status:  false,
	}
	id, err := t.gw.Create(ctx, models.CollectionTasks, &task)
	if err != nil {
		return t.fail("create task", err)
	}
	task.ID, task.TaskID = id, id

	t.dispatch(TaskAdded{Task: task})
	return succeed(id)
}

// Update sends a partial update and merges it into the local record.
func (t *Tasks) Update(ctx context.Context, id string, patch TaskPatch) Result {
	if err := validator.Struct(patch); err != nil {
		return failure(err)
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return failure(apperrors.WithMessage(apperrors.ErrInvalidInput, "Nothing to update"))
	}

	if err := t.gw.Update(ctx, models.CollectionTasks, id, fields); err != nil {
		return t.fail("update task", err)
	}

	t.dispatch(TaskPatched{ID: id, Patch: patch})
	return succeed(id)
}

// Toggle flips the completion status of a loaded task.
func (t *Tasks) Toggle(ctx context.Context, id string) Result {
	state := t.snapshot()
	i := slices.IndexFunc(state.Tasks, func(task models.Task) bool { return task.ID == id })
	if i < 0 {
		return t.fail("toggle task", apperrors.ErrTaskNotFound)
	}
	status := !state.Tasks[i].Status
	return t.Update(ctx, id, TaskPatch{Status: &status})
}

// Remove deletes a task.
func (t *Tasks) Remove(ctx context.Context, id string) Result {
	if err := t.gw.Delete(ctx, models.CollectionTasks, id); err != nil {
		return t.fail("delete task", err)
	}

	t.dispatch(TaskRemoved{ID: id})
	return succeed(id)
}

// Clear empties the local task list.
func (t *Tasks) Clear() { t.dispatch(TasksCleared{}) }

// SetStatusFilter filters by completion: FilterAll, TaskFilterPending or
// TaskFilterCompleted.
func (t *Tasks) SetStatusFilter(status string) Result {
	if err := validator.Struct(taskFilterInput{Status: status}); err != nil {
		return failure(err)
	}
	t.dispatch(TaskFilterSet{Status: status})
	return succeed("")
}
