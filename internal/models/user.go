package models

import "gorm.io/gorm"

// Role distinguishes administrators from regular users.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered user
type User struct {
	Base
	UserID    string `gorm:"type:uuid;index" json:"user_id"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `gorm:"not null;default:user" json:"role"`
}

// BeforeCreate assigns the document key and echoes it into UserID.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.UserID = u.assignID()
	return nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
