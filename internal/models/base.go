package models

import (
	"time"

	"eventplanner/internal/uuid"
)

// Base contains common columns for all documents
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentID returns the key assigned by the gateway on create.
func (b *Base) DocumentID() string { return b.ID }

// assignID generates a UUIDv7 for new documents and returns it.
func (b *Base) assignID() string {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return b.ID
}

// Document is a record stored in one of the gateway collections.
type Document interface {
	DocumentID() string
}
