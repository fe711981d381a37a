// Package store is the in-memory domain state of the event planner.
//
// The store is split into independent slices (events, guests, tasks,
// budget, notifications, session, settings). Each slice keeps its state in
// a plain value that only changes through a pure reducer,
// ReduceX(state, action) -> state. Intent methods validate input, call the
// Remote Data Gateway and dispatch actions describing the outcome; they
// never return Go errors and report through Result instead. Derived views
// are computed on demand from a state snapshot.
package store

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"eventplanner/internal/gateway"
	"eventplanner/internal/logger"
)

// DefaultNotificationTTL is how long a notification stays before it is
// dismissed automatically.
const DefaultNotificationTTL = 5 * time.Second

// Name identifies a slice.
type Name string

const (
	SliceEvents        Name = "events"
	SliceGuests        Name = "guests"
	SliceTasks         Name = "tasks"
	SliceBudget        Name = "budget"
	SliceNotifications Name = "notifications"
	SliceSession       Name = "session"
	SliceSettings      Name = "settings"
)

// Action describes a state transition. Concrete actions are the exported
// structs of this package.
type Action interface {
	action()
}

// LoadStarted marks a slice as loading.
type LoadStarted struct{}

// Failed records the message of a failed intent and clears loading.
type Failed struct{ Err string }

func (LoadStarted) action() {}
func (Failed) action()      {}

// Change is delivered to subscribers after every dispatched action.
type Change struct {
	Slice  Name
	Action Action
}

// Option configures a Store.
type Option func(*options)

type options struct {
	clock clockwork.Clock
	ttl   time.Duration
}

// WithClock sets the clock used for notification timestamps and expiry.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithNotificationTTL overrides DefaultNotificationTTL.
func WithNotificationTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// Store holds every slice and fans out changes to subscribers.
type Store struct {
	Events        *Events
	Guests        *Guests
	Tasks         *Tasks
	Budget        *Budgets
	Notifications *Notifications
	Session       *Session
	Settings      *Settings

	mu        sync.Mutex
	observers map[int]func(Change)
	nextObs   int
}

// New wires a store to a gateway. auth may be nil when no sign-in is needed;
// prefs defaults to in-memory preferences.
func New(gw gateway.Gateway, auth Authenticator, prefs Preferences, opts ...Option) *Store {
	o := options{clock: clockwork.NewRealClock(), ttl: DefaultNotificationTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if prefs == nil {
		prefs = NewMemoryPreferences()
	}

	s := &Store{observers: make(map[int]func(Change))}
	s.Events = newEvents(gw, s.emit)
	s.Guests = newGuests(gw, s.emit)
	s.Tasks = newTasks(gw, s.emit)
	s.Budget = newBudgets(gw, s.emit)
	s.Notifications = newNotifications(o.clock, o.ttl, s.emit)
	s.Session = newSession(auth, s.emit)
	s.Settings = newSettings(prefs, s.emit)
	return s
}

// Start subscribes to auth-state changes and loads local preferences.
func (s *Store) Start() Result {
	s.Session.Start()
	return s.Settings.Load()
}

// Close unregisters the auth-state listener and cancels pending
// notification timers.
func (s *Store) Close() {
	s.Session.Stop()
	s.Notifications.stopTimers()
}

// Subscribe registers fn to be called after every state change. The
// returned function unregisters it.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) emit(c Change) {
	s.mu.Lock()
	observers := make([]func(Change), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(c)
	}
}

// slice owns one state value and its reducer.
type slice[S any] struct {
	name   Name
	log    *zap.SugaredLogger
	reduce func(S, Action) S
	emit   func(Change)

	mu    sync.RWMutex
	state S
}

func newSlice[S any](name Name, initial S, reduce func(S, Action) S, emit func(Change)) *slice[S] {
	return &slice[S]{
		name:   name,
		log:    logger.Named("store").With("slice", string(name)),
		reduce: reduce,
		emit:   emit,
		state:  initial,
	}
}

func (s *slice[S]) dispatch(a Action) {
	s.mu.Lock()
	s.state = s.reduce(s.state, a)
	s.mu.Unlock()
	if s.emit != nil {
		s.emit(Change{Slice: s.name, Action: a})
	}
}

func (s *slice[S]) snapshot() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// fail records a remote or domain-rule failure on the slice.
func (s *slice[S]) fail(op string, err error) Result {
	res := failure(err)
	s.log.Warnw(op+" failed", "code", res.Code, "error", err)
	s.dispatch(Failed{Err: res.Error})
	return res
}
