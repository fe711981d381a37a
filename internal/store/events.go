package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
	"eventplanner/internal/validator"
)

// FilterAll disables a list filter.
const FilterAll = "all"

// SortKey is the column filtered events are sorted by.
type SortKey string

const (
	SortByDate SortKey = "date"
	SortByName SortKey = "name"
)

// SortOrder is the sort direction of filtered events.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// EventState is the events slice.
type EventState struct {
	Events  []models.Event
	Current *models.Event
	Loading bool
	Err     string

	Search     string
	TypeFilter string
	SortBy     SortKey
	SortOrder  SortOrder
}

// clone copies the events, including their optional limits, so the copy
// shares no memory with s.
func (s EventState) clone() EventState {
	s.Events = slices.Clone(s.Events)
	for i := range s.Events {
		s.Events[i] = cloneEvent(s.Events[i])
	}
	if s.Current != nil {
		current := cloneEvent(*s.Current)
		s.Current = &current
	}
	return s
}

func cloneEvent(e models.Event) models.Event {
	if e.GuestLimit != nil {
		limit := *e.GuestLimit
		e.GuestLimit = &limit
	}
	if e.BudgetLimit != nil {
		limit := *e.BudgetLimit
		e.BudgetLimit = &limit
	}
	return e
}

// InitialEventState is the state of a fresh store.
func InitialEventState() EventState {
	return EventState{TypeFilter: FilterAll, SortBy: SortByDate, SortOrder: SortAsc}
}

type (
	// EventsLoaded replaces the event list.
	EventsLoaded struct{ Events []models.Event }
	// EventAdded appends a created event.
	EventAdded struct{ Event models.Event }
	// EventPatched merges a patch into the event with ID.
	EventPatched struct {
		ID    string
		Patch EventPatch
	}
	// EventRemoved drops the event with ID.
	EventRemoved struct{ ID string }
	// EventSelected makes the event with ID current; unknown IDs clear it.
	EventSelected struct{ ID string }
	// EventSearchSet sets the free-text name search.
	EventSearchSet struct{ Query string }
	// EventTypeFilterSet sets the type filter, FilterAll to disable it.
	EventTypeFilterSet struct{ Type string }
	// EventSortSet sets the sort key and direction.
	EventSortSet struct {
		Key   SortKey
		Order SortOrder
	}
)

func (EventsLoaded) action()       {}
func (EventAdded) action()         {}
func (EventPatched) action()       {}
func (EventRemoved) action()       {}
func (EventSelected) action()      {}
func (EventSearchSet) action()     {}
func (EventTypeFilterSet) action() {}
func (EventSortSet) action()       {}

// ReduceEvents applies a to s. It never modifies the slices held by s.
func ReduceEvents(s EventState, a Action) EventState {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
	case Failed:
		s.Err = a.Err
		s.Loading = false
	case EventsLoaded:
		s.Events = slices.Clone(a.Events)
		s.Loading = false
		s.Err = ""
	case EventAdded:
		s.Events = append(slices.Clip(s.Events), a.Event)
	case EventPatched:
		i := slices.IndexFunc(s.Events, func(e models.Event) bool { return e.ID == a.ID })
		if i < 0 {
			return s
		}
		s.Events = slices.Clone(s.Events)
		s.Events[i] = a.Patch.Apply(s.Events[i])
		if s.Current != nil && s.Current.ID == a.ID {
			current := s.Events[i]
			s.Current = &current
		}
	case EventRemoved:
		s.Events = slices.DeleteFunc(slices.Clone(s.Events), func(e models.Event) bool { return e.ID == a.ID })
		if s.Current != nil && s.Current.ID == a.ID {
			s.Current = nil
		}
	case EventSelected:
		s.Current = nil
		if i := slices.IndexFunc(s.Events, func(e models.Event) bool { return e.ID == a.ID }); i >= 0 {
			current := s.Events[i]
			s.Current = &current
		}
	case EventSearchSet:
		s.Search = a.Query
	case EventTypeFilterSet:
		s.TypeFilter = a.Type
	case EventSortSet:
		s.SortBy = a.Key
		s.SortOrder = a.Order
	}
	return s
}

// FilterEvents is the filtered-events view: name search, then type filter,
// then a stable sort by the configured key and direction.
func FilterEvents(s EventState) []models.Event {
	query := strings.ToLower(s.Search)
	out := make([]models.Event, 0, len(s.Events))
	for _, e := range s.Events {
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
			continue
		}
		if s.TypeFilter != "" && s.TypeFilter != FilterAll && string(e.Type) != s.TypeFilter {
			continue
		}
		out = append(out, e)
	}

	var cmp func(a, b models.Event) int
	switch s.SortBy {
	case SortByDate:
		cmp = func(a, b models.Event) int { return calendarDate(a.Date).Compare(calendarDate(b.Date)) }
	case SortByName:
		col := collate.New(language.English)
		cmp = func(a, b models.Event) int { return col.CompareString(a.Name, b.Name) }
	default:
		return out
	}
	if s.SortOrder == SortDesc {
		asc := cmp
		cmp = func(a, b models.Event) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// calendarDate parses YYYY-MM-DD. Unparseable dates sort first.
func calendarDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Events manages the signed-in user's events.
type Events struct {
	*slice[EventState]
	gw gateway.Gateway
}

func newEvents(gw gateway.Gateway, emit func(Change)) *Events {
	return &Events{
		slice: newSlice(SliceEvents, InitialEventState(), ReduceEvents, emit),
		gw:    gw,
	}
}

// State returns a copy of the slice state. Changing it does not affect
// the store.
func (e *Events) State() EventState { return e.snapshot().clone() }

// Filtered returns the filtered and sorted events.
func (e *Events) Filtered() []models.Event { return FilterEvents(e.snapshot()) }

// Load replaces the event list with the user's events, newest date first.
func (e *Events) Load(ctx context.Context, userID string) Result {
	e.dispatch(LoadStarted{})

	var events []models.Event
	err := e.gw.Query(ctx, models.CollectionEvents, &events,
		[]gateway.Filter{gateway.Eq("user_id", userID)}, gateway.Desc("date"))
	if err != nil {
		return e.fail("load events", err)
	}

	e.dispatch(EventsLoaded{Events: events})
	return succeed("")
}

// Create stores a new event and appends it without reloading.
func (e *Events) Create(ctx context.Context, in EventInput, userID string) Result {
	if err := validator.Struct(in); err != nil {
		return failure(err)
	}

	event := in.event(userID)
	id, err := e.gw.Create(ctx, models.CollectionEvents, &event)
	if err != nil {
		return e.fail("create event", err)
	}
	event.ID, event.EventID = id, id

	e.dispatch(EventAdded{Event: event})
	return succeed(id)
}

// Update sends a partial update and merges it into the local record.
func (e *Events) Update(ctx context.Context, id string, patch EventPatch) Result {
	if err := validator.Struct(patch); err != nil {
		return failure(err)
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return failure(apperrors.WithMessage(apperrors.ErrInvalidInput, "Nothing to update"))
	}

	if err := e.gw.Update(ctx, models.CollectionEvents, id, fields); err != nil {
		return e.fail("update event", err)
	}

	e.dispatch(EventPatched{ID: id, Patch: patch})
	return succeed(id)
}

// Remove deletes an event. Its guests, tasks and budget are kept.
func (e *Events) Remove(ctx context.Context, id string) Result {
	if err := e.gw.Delete(ctx, models.CollectionEvents, id); err != nil {
		return e.fail("delete event", err)
	}

	e.dispatch(EventRemoved{ID: id})
	return succeed(id)
}

// Duplicate creates a copy of event named "<name> (Copy)" owned by userID.
func (e *Events) Duplicate(ctx context.Context, event models.Event, userID string) Result {
	return e.Create(ctx, EventInput{
		Name:        event.Name + " (Copy)",
		Type:        event.Type,
		Date:        event.Date,
		Time:        event.Time,
		Location:    event.Location,
		GuestLimit:  event.GuestLimit,
		BudgetLimit: event.BudgetLimit,
	}, userID)
}

// Select makes the event with id current.
func (e *Events) Select(id string) { e.dispatch(EventSelected{ID: id}) }

// SetSearch sets the case-insensitive name search.
func (e *Events) SetSearch(query string) { e.dispatch(EventSearchSet{Query: query}) }

// SetTypeFilter filters by event type; FilterAll shows every type. Unknown
// types are rejected and the filter is left as it was.
func (e *Events) SetTypeFilter(eventType string) Result {
	if err := validator.Struct(typeFilterInput{Type: eventType}); err != nil {
		return failure(err)
	}
	e.dispatch(EventTypeFilterSet{Type: eventType})
	return succeed("")
}

// SetSort sets the sort key and direction.
func (e *Events) SetSort(key SortKey, order SortOrder) Result {
	if err := validator.Struct(sortInput{Key: key, Order: order}); err != nil {
		return failure(err)
	}
	e.dispatch(EventSortSet{Key: key, Order: order})
	return succeed("")
}
