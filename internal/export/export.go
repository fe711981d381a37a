// Package export renders planner records as CSV.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventplanner/internal/models"
)

// Kind names an exportable record type. It prefixes export file names.
type Kind string

const (
	KindEvents   Kind = "events"
	KindGuests   Kind = "guests"
	KindTasks    Kind = "tasks"
	KindExpenses Kind = "expenses"
)

// Column is one CSV column: a header and how to read its value.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// EventColumns are the columns of an events export.
var EventColumns = []Column[models.Event]{
	{"name", func(e models.Event) string { return e.Name }},
	{"type", func(e models.Event) string { return string(e.Type) }},
	{"date", func(e models.Event) string { return e.Date }},
	{"time", func(e models.Event) string { return e.Time }},
	{"location", func(e models.Event) string { return e.Location }},
	{"guest_limit", func(e models.Event) string { return optional(e.GuestLimit, strconv.Itoa) }},
	{"budget_limit", func(e models.Event) string { return optional(e.BudgetLimit, formatAmount) }},
	{"created_at", func(e models.Event) string { return timestamp(e.CreatedAt) }},
}

// GuestColumns are the columns of a guests export.
var GuestColumns = []Column[models.Guest]{
	{"first_name", func(g models.Guest) string { return g.FirstName }},
	{"last_name", func(g models.Guest) string { return g.LastName }},
	{"email", func(g models.Guest) string { return g.Email }},
	{"rsvp_status", func(g models.Guest) string { return string(g.RSVPStatus) }},
	{"event_id", func(g models.Guest) string { return g.EventID }},
	{"created_at", func(g models.Guest) string { return timestamp(g.CreatedAt) }},
}

// TaskColumns are the columns of a tasks export.
var TaskColumns = []Column[models.Task]{
	{"title", func(t models.Task) string { return t.Title }},
	{"due_date", func(t models.Task) string { return t.DueDate }},
	{"status", func(t models.Task) string { return strconv.FormatBool(t.Status) }},
	{"event_id", func(t models.Task) string { return t.EventID }},
	{"created_at", func(t models.Task) string { return timestamp(t.CreatedAt) }},
}

// ExpenseColumns are the columns of an expenses export.
var ExpenseColumns = []Column[models.Expense]{
	{"category", func(x models.Expense) string { return x.Category }},
	{"amount", func(x models.Expense) string { return formatAmount(x.Amount) }},
	{"paid_status", func(x models.Expense) string { return strconv.FormatBool(x.PaidStatus) }},
	{"budget_id", func(x models.Expense) string { return x.BudgetID }},
	{"event_id", func(x models.Expense) string { return x.EventID }},
	{"created_at", func(x models.Expense) string { return timestamp(x.CreatedAt) }},
}

// CSV renders a header row and one row per record, separated by "\n" with
// no trailing newline. Values containing a comma, a double quote or a
// newline are quoted with inner quotes doubled. No records renders "".
func CSV[T any](records []T, columns []Column[T]) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(c.Header))
	}
	for _, r := range records {
		b.WriteByte('\n')
		for i, c := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(c.Value(r)))
		}
	}
	return b.String()
}

// Events renders events with EventColumns.
func Events(events []models.Event) string { return CSV(events, EventColumns) }

// Guests renders guests with GuestColumns.
func Guests(guests []models.Guest) string { return CSV(guests, GuestColumns) }

// Tasks renders tasks with TaskColumns.
func Tasks(tasks []models.Task) string { return CSV(tasks, TaskColumns) }

// Expenses renders expenses with ExpenseColumns.
func Expenses(expenses []models.Expense) string { return CSV(expenses, ExpenseColumns) }

// Filename returns the export file name for kind on the UTC date of t,
// e.g. guests_2025-01-10.csv.
func Filename(kind Kind, t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", kind, t.UTC().Format(time.DateOnly))
}

func quote(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func optional[V any](v *V, format func(V) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
