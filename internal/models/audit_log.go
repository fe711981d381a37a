package models

import "gorm.io/gorm"

// AuditLog records document writes made through the gateway API.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}

// BeforeCreate assigns the document key.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	a.assignID()
	return nil
}
