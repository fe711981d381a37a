package store

import (
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notification is a transient message shown to the user.
type Notification struct {
	ID        int       `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationState is the notifications slice, oldest first.
type NotificationState struct {
	Items []Notification
}

type (
	// NotificationPosted appends a notification.
	NotificationPosted struct{ Notification Notification }
	// NotificationDismissed removes the notification with ID, if present.
	NotificationDismissed struct{ ID int }
	// NotificationsCleared removes every notification.
	NotificationsCleared struct{}
)

func (NotificationPosted) action()    {}
func (NotificationDismissed) action() {}
func (NotificationsCleared) action()  {}

// ReduceNotifications applies a to s. Dismissing an absent ID is a no-op.
func ReduceNotifications(s NotificationState, a Action) NotificationState {
	switch a := a.(type) {
	case NotificationPosted:
		s.Items = append(slices.Clip(s.Items), a.Notification)
	case NotificationDismissed:
		if !slices.ContainsFunc(s.Items, func(n Notification) bool { return n.ID == a.ID }) {
			return s
		}
		s.Items = slices.DeleteFunc(slices.Clone(s.Items), func(n Notification) bool { return n.ID == a.ID })
	case NotificationsCleared:
		s.Items = nil
	}
	return s
}

// Notifications holds transient messages that expire after a fixed delay.
type Notifications struct {
	*slice[NotificationState]
	clock clockwork.Clock
	ttl   time.Duration

	mu     sync.Mutex
	nextID int
	timers map[int]clockwork.Timer
}

func newNotifications(c clockwork.Clock, ttl time.Duration, emit func(Change)) *Notifications {
	return &Notifications{
		slice:  newSlice(SliceNotifications, NotificationState{}, ReduceNotifications, emit),
		clock:  c,
		ttl:    ttl,
		timers: make(map[int]clockwork.Timer),
	}
}

// State returns a copy of the slice state. Changing it does not affect
// the store.
func (n *Notifications) State() NotificationState {
	return NotificationState{Items: n.List()}
}

// List returns the active notifications, oldest first.
func (n *Notifications) List() []Notification { return slices.Clone(n.snapshot().Items) }

// Post shows a message and schedules its removal. IDs increase
// monotonically for the lifetime of the store and are never reused.
func (n *Notifications) Post(message string, kind Kind) int {
	if kind == "" {
		kind = KindInfo
	}

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.mu.Unlock()

	n.dispatch(NotificationPosted{Notification: Notification{
		ID:        id,
		Message:   message,
		Kind:      kind,
		CreatedAt: n.clock.Now(),
	}})

	timer := n.clock.AfterFunc(n.ttl, func() { n.Dismiss(id) })

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.active(id) {
		n.timers[id] = timer
	} else {
		timer.Stop()
	}
	return id
}

// Success posts a success notification.
func (n *Notifications) Success(message string) int { return n.Post(message, KindSuccess) }

// Error posts an error notification.
func (n *Notifications) Error(message string) int { return n.Post(message, KindError) }

// Warning posts a warning notification.
func (n *Notifications) Warning(message string) int { return n.Post(message, KindWarning) }

// Info posts an informational notification.
func (n *Notifications) Info(message string) int { return n.Post(message, KindInfo) }

// Report posts the outcome of an intent: its error when it failed, or
// successMessage when it succeeded and successMessage is not empty.
func (n *Notifications) Report(res Result, successMessage string) {
	switch {
	case !res.Success:
		n.Error(res.Error)
	case successMessage != "":
		n.Success(successMessage)
	}
}

// Dismiss removes a notification now. Dismissing an absent or already
// expired notification does nothing.
func (n *Notifications) Dismiss(id int) {
	n.dispatch(NotificationDismissed{ID: id})

	n.mu.Lock()
	timer := n.timers[id]
	delete(n.timers, id)
	n.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

// Clear removes every notification and cancels their timers.
func (n *Notifications) Clear() {
	n.dispatch(NotificationsCleared{})
	n.stopTimers()
}

// pendingTimers counts scheduled expiries that have not fired or been
// cancelled.
func (n *Notifications) pendingTimers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.timers)
}

func (n *Notifications) active(id int) bool {
	return slices.ContainsFunc(n.snapshot().Items, func(item Notification) bool { return item.ID == id })
}

func (n *Notifications) stopTimers() {
	n.mu.Lock()
	timers := n.timers
	n.timers = make(map[int]clockwork.Timer)
	n.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}
