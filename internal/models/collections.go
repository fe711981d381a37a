package models

// Collection names exposed by the gateway.
const (
	CollectionUsers    = "users"
	CollectionEvents   = "events"
	CollectionGuests   = "guests"
	CollectionTasks    = "tasks"
	CollectionBudgets  = "budgets"
	CollectionExpenses = "expenses"
)

// CollectionSpec describes how a collection's documents are built and
// which columns callers may filter, order and patch on.
type CollectionSpec struct {
	Name string

	// New returns a pointer to an empty document.
	New func() Document
	// NewSlice returns a pointer to an empty slice of documents.
	NewSlice func() any

	Filterable map[string]bool
	Sortable   map[string]bool
	Writable   map[string]bool
}

func set(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

var collections = map[string]CollectionSpec{
	CollectionUsers: {
		Name:       CollectionUsers,
		New:        func() Document { return &User{} },
		NewSlice:   func() any { return &[]User{} },
		Filterable: set("id", "user_id", "email", "role"),
		Sortable:   set("created_at", "email"),
		Writable:   set("first_name", "last_name"),
	},
	CollectionEvents: {
		Name:       CollectionEvents,
		New:        func() Document { return &Event{} },
		NewSlice:   func() any { return &[]Event{} },
		Filterable: set("id", "event_id", "user_id", "type"),
		Sortable:   set("date", "name", "created_at"),
		Writable:   set("name", "type", "date", "time", "location", "guest_limit", "budget_limit"),
	},
	CollectionGuests: {
		Name:       CollectionGuests,
		New:        func() Document { return &Guest{} },
		NewSlice:   func() any { return &[]Guest{} },
		Filterable: set("id", "guest_id", "event_id", "user_id", "rsvp_status"),
		Sortable:   set("last_name", "created_at"),
		Writable:   set("first_name", "last_name", "email", "rsvp_status"),
	},
	CollectionTasks: {
		Name:       CollectionTasks,
		New:        func() Document { return &Task{} },
		NewSlice:   func() any { return &[]Task{} },
		Filterable: set("id", "task_id", "event_id", "user_id", "status"),
		Sortable:   set("due_date", "created_at"),
		Writable:   set("title", "due_date", "status"),
	},
	CollectionBudgets: {
		Name:       CollectionBudgets,
		New:        func() Document { return &Budget{} },
		NewSlice:   func() any { return &[]Budget{} },
		Filterable: set("id", "budget_id", "event_id", "user_id"),
		Sortable:   set("created_at"),
		Writable:   set("total_budget", "total_spent", "remaining_budget"),
	},
	CollectionExpenses: {
		Name:       CollectionExpenses,
		New:        func() Document { return &Expense{} },
		NewSlice:   func() any { return &[]Expense{} },
		Filterable: set("id", "expense_id", "budget_id", "event_id", "user_id", "paid_status"),
		Sortable:   set("created_at", "amount"),
		Writable:   set("category", "amount", "paid_status"),
	},
}

// Lookup returns the registry entry of a named collection.
func Lookup(name string) (CollectionSpec, bool) {
	spec, ok := collections[name]
	return spec, ok
}

// All returns every gorm model that backs a collection, plus the audit log.
func All() []any {
	return []any{
		&User{},
		&Event{},
		&Guest{},
		&Task{},
		&Budget{},
		&Expense{},
		&AuditLog{},
	}
}
