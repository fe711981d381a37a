package models

import "gorm.io/gorm"

// RSVPStatus is a guest's answer to an invitation.
type RSVPStatus string

const (
	RSVPPending      RSVPStatus = "Pending"
	RSVPAttending    RSVPStatus = "Attending"
	RSVPNotAttending RSVPStatus = "Not Attending"
)

// Valid reports whether s is a known RSVP status.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPPending, RSVPAttending, RSVPNotAttending:
		return true
	}
	return false
}

// Guest is a person invited to an event. Email is unique per event,
// compared case-insensitively; the check happens before insert and is
// not enforced by the database.
type Guest struct {
	Base
	GuestID    string     `gorm:"type:uuid;index" json:"guest_id"`
	EventID    string     `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID     string     `gorm:"type:uuid;not null;index" json:"user_id"`
	FirstName  string     `gorm:"not null" json:"first_name"`
	LastName   string     `gorm:"not null" json:"last_name"`
	Email      string     `gorm:"not null" json:"email"`
	RSVPStatus RSVPStatus `gorm:"column:rsvp_status;not null;default:Pending" json:"rsvp_status"`
}

// BeforeCreate assigns the document key and echoes it into GuestID.
func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	g.GuestID = g.assignID()
	return nil
}
