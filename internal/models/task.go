package models

import "gorm.io/gorm"

// Task is a to-do item attached to an event. Status is true once completed.
type Task struct {
	Base
	TaskID  string `gorm:"type:uuid;index" json:"task_id"`
	EventID string `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	Title   string `gorm:"not null" json:"title"`
	DueDate string `json:"due_date"`
	Status  bool   `gorm:"not null;default:false" json:"status"`
}

// BeforeCreate assigns the document key and echoes it into TaskID.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.TaskID = t.assignID()
	return nil
}
