package models

// Owned is a document that belongs to a single user.
type Owned interface {
	Document
	OwnerID() string
	// Claim hands a client-supplied document to userID for insertion: it
	// sets the owner and clears the key and timestamps so the gateway
	// assigns fresh ones.
	Claim(userID string)
}

func (e *Event) OwnerID() string { return e.UserID }

func (e *Event) Claim(userID string) {
	e.Base, e.EventID, e.UserID = Base{}, "", userID
}

func (g *Guest) OwnerID() string { return g.UserID }

func (g *Guest) Claim(userID string) {
	g.Base, g.GuestID, g.UserID = Base{}, "", userID
}

func (t *Task) OwnerID() string { return t.UserID }

func (t *Task) Claim(userID string) {
	t.Base, t.TaskID, t.UserID = Base{}, "", userID
}

func (b *Budget) OwnerID() string { return b.UserID }

func (b *Budget) Claim(userID string) {
	b.Base, b.BudgetID, b.UserID = Base{}, "", userID
}

func (x *Expense) OwnerID() string { return x.UserID }

func (x *Expense) Claim(userID string) {
	x.Base, x.ExpenseID, x.UserID = Base{}, "", userID
}

// Parent points at a document another document is filed under.
type Parent struct {
	Collection string
	Field      string
	Label      string
	ID         string
}

// Child is an owned document that can only be created under parents
// owned by the same user.
type Child interface {
	Parents() []Parent
}

func (g *Guest) Parents() []Parent {
	return []Parent{{Collection: CollectionEvents, Field: "event_id", Label: "Event", ID: g.EventID}}
}

func (t *Task) Parents() []Parent {
	return []Parent{{Collection: CollectionEvents, Field: "event_id", Label: "Event", ID: t.EventID}}
}

func (b *Budget) Parents() []Parent {
	return []Parent{{Collection: CollectionEvents, Field: "event_id", Label: "Event", ID: b.EventID}}
}

func (x *Expense) Parents() []Parent {
	return []Parent{
		{Collection: CollectionBudgets, Field: "budget_id", Label: "Budget", ID: x.BudgetID},
		{Collection: CollectionEvents, Field: "event_id", Label: "Event", ID: x.EventID},
	}
}
