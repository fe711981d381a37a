package store

import (
	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
)

// EventInput is the form data of a new event.
type EventInput struct {
	Name        string           `json:"name" validate:"notblank"`
	Type        models.EventType `json:"type" validate:"event_type"`
	Date        string           `json:"date" validate:"calendar_date"`
	Time        string           `json:"time" validate:"required,clock_time"`
	Location    string           `json:"location"`
	GuestLimit  *int             `json:"guest_limit" validate:"omitempty,gt=0"`
	BudgetLimit *float64         `json:"budget_limit" validate:"omitempty,gte=0"`
}

func (in EventInput) event(userID string) models.Event {
	return models.Event{
		UserID:      userID,
		Name:        in.Name,
		Type:        in.Type,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		GuestLimit:  in.GuestLimit,
		BudgetLimit: in.BudgetLimit,
	}
}

// EventPatch is a partial event update. Nil fields are left unchanged.
type EventPatch struct {
	Name        *string           `json:"name" validate:"omitempty,notblank"`
	Type        *models.EventType `json:"type" validate:"omitempty,event_type"`
	Date        *string           `json:"date" validate:"omitempty,calendar_date"`
	Time        *string           `json:"time" validate:"omitempty,clock_time"`
	Location    *string           `json:"location"`
	GuestLimit  *int              `json:"guest_limit" validate:"omitempty,gt=0"`
	BudgetLimit *float64          `json:"budget_limit" validate:"omitempty,gte=0"`
}

// Apply merges the patch into e.
func (p EventPatch) Apply(e models.Event) models.Event {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.GuestLimit != nil {
		limit := *p.GuestLimit
		e.GuestLimit = &limit
	}
	if p.BudgetLimit != nil {
		limit := *p.BudgetLimit
		e.BudgetLimit = &limit
	}
	return e
}

// Fields returns the patch keyed by column name.
func (p EventPatch) Fields() gateway.Patch {
	f := gateway.Patch{}
	if p.Name != nil {
		f["name"] = *p.Name
	}
	if p.Type != nil {
		f["type"] = string(*p.Type)
	}
	if p.Date != nil {
		f["date"] = *p.Date
	}
	if p.Time != nil {
		f["time"] = *p.Time
	}
	if p.Location != nil {
		f["location"] = *p.Location
	}
	if p.GuestLimit != nil {
		f["guest_limit"] = *p.GuestLimit
	}
	if p.BudgetLimit != nil {
		f["budget_limit"] = *p.BudgetLimit
	}
	return f
}

// GuestInput is the form data of a new guest. RSVPStatus defaults to Pending.
type GuestInput struct {
	FirstName  string            `json:"first_name" validate:"notblank"`
	LastName   string            `json:"last_name" validate:"notblank"`
	Email      string            `json:"email" validate:"required,email"`
	RSVPStatus models.RSVPStatus `json:"rsvp_status" validate:"omitempty,rsvp_status"`
}

// GuestPatch is a partial guest update.
type GuestPatch struct {
	FirstName  *string            `json:"first_name" validate:"omitempty,notblank"`
	LastName   *string            `json:"last_name" validate:"omitempty,notblank"`
	Email      *string            `json:"email" validate:"omitempty,email"`
	RSVPStatus *models.RSVPStatus `json:"rsvp_status" validate:"omitempty,rsvp_status"`
}

// Apply merges the patch into g.
func (p GuestPatch) Apply(g models.Guest) models.Guest {
	if p.FirstName != nil {
		g.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		g.LastName = *p.LastName
	}
	if p.Email != nil {
		g.Email = *p.Email
	}
	if p.RSVPStatus != nil {
		g.RSVPStatus = *p.RSVPStatus
	}
	return g
}

// Fields returns the patch keyed by column name.
func (p GuestPatch) Fields() gateway.Patch {
	f := gateway.Patch{}
	if p.FirstName != nil {
		f["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		f["last_name"] = *p.LastName
	}
	if p.Email != nil {
		f["email"] = *p.Email
	}
	if p.RSVPStatus != nil {
		f["rsvp_status"] = string(*p.RSVPStatus)
	}
	return f
}

// TaskInput is the form data of a new task.
type TaskInput struct {
	Title   string `json:"title" validate:"notblank"`
	DueDate string `json:"due_date" validate:"required,calendar_date"`
}

// TaskPatch is a partial task update.
type TaskPatch struct {
	Title   *string `json:"title" validate:"omitempty,notblank"`
	DueDate *string `json:"due_date" validate:"omitempty,calendar_date"`
	Status  *bool   `json:"status"`
}

// Apply merges the patch into t.
func (p TaskPatch) Apply(t models.Task) models.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// Fields returns the patch keyed by column name.
func (p TaskPatch) Fields() gateway.Patch {
	f := gateway.Patch{}
	if p.Title != nil {
		f["title"] = *p.Title
	}
	if p.DueDate != nil {
		f["due_date"] = *p.DueDate
	}
	if p.Status != nil {
		f["status"] = *p.Status
	}
	return f
}

type budgetInput struct {
	TotalBudget float64 `json:"total_budget" validate:"gt=0"`
}

// ExpenseInput is the form data of a new expense.
type ExpenseInput struct {
	Category   string  `json:"category" validate:"notblank"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	PaidStatus bool    `json:"paid_status"`
}

// ExpensePatch is a partial expense update.
type ExpensePatch struct {
	Category   *string  `json:"category" validate:"omitempty,notblank"`
	Amount     *float64 `json:"amount" validate:"omitempty,gt=0"`
	PaidStatus *bool    `json:"paid_status"`
}

// Apply merges the patch into x.
func (p ExpensePatch) Apply(x models.Expense) models.Expense {
	if p.Category != nil {
		x.Category = *p.Category
	}
	if p.Amount != nil {
		x.Amount = *p.Amount
	}
	if p.PaidStatus != nil {
		x.PaidStatus = *p.PaidStatus
	}
	return x
}

// Fields returns the patch keyed by column name.
func (p ExpensePatch) Fields() gateway.Patch {
	f := gateway.Patch{}
	if p.Category != nil {
		f["category"] = *p.Category
	}
	if p.Amount != nil {
		f["amount"] = *p.Amount
	}
	if p.PaidStatus != nil {
		f["paid_status"] = *p.PaidStatus
	}
	return f
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"notblank"`
	LastName        string `json:"last_name" validate:"notblank"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type typeFilterInput struct {
	Type string `json:"type" validate:"event_type_filter"`
}

type sortInput struct {
	Key   SortKey   `json:"sort_by" validate:"sort_key"`
	Order SortOrder `json:"sort_order" validate:"sort_order"`
}

type rsvpFilterInput struct {
	Status string `json:"filter" validate:"rsvp_filter"`
}

type taskFilterInput struct {
	Status string `json:"status" validate:"task_filter"`
}
