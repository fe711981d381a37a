package models

import "gorm.io/gorm"

// EventType is the kind of event being planned.
type EventType string

const (
	EventTypeBirthday    EventType = "Birthday"
	EventTypeWedding     EventType = "Wedding"
	EventTypeAnniversary EventType = "Anniversary"
	EventTypeCorporate   EventType = "Corporate Event"
	EventTypeParty       EventType = "Party"
	EventTypeOther       EventType = "Other"
)

// EventTypes lists every valid event type in display order.
var EventTypes = []EventType{
	EventTypeBirthday,
	EventTypeWedding,
	EventTypeAnniversary,
	EventTypeCorporate,
	EventTypeParty,
	EventTypeOther,
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Event is a planned occasion owned by a user. Date is a calendar date
// (YYYY-MM-DD) and Time a wall-clock time (HH:MM), both as entered.
type Event struct {
	Base
	EventID     string    `gorm:"type:uuid;index" json:"event_id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        EventType `gorm:"not null" json:"type"`
	Date        string    `gorm:"not null" json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	GuestLimit  *int      `json:"guest_limit,omitempty"`
	BudgetLimit *float64  `json:"budget_limit,omitempty"`
}

// BeforeCreate assigns the document key and echoes it into EventID.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	e.EventID = e.assignID()
	return nil
}
