package models

import "gorm.io/gorm"

// Budget is the spending plan of an event. There is at most one per event.
// TotalSpent and RemainingBudget are derived from the event's expenses and
// rewritten after every expense mutation.
type Budget struct {
	Base
	BudgetID        string  `gorm:"type:uuid;index" json:"budget_id"`
	EventID         string  `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID          string  `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalBudget     float64 `gorm:"not null" json:"total_budget"`
	TotalSpent      float64 `gorm:"not null;default:0" json:"total_spent"`
	RemainingBudget float64 `gorm:"not null;default:0" json:"remaining_budget"`
}

// BeforeCreate assigns the document key and echoes it into BudgetID.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	b.BudgetID = b.assignID()
	return nil
}

// Expense is a single spend recorded against a budget.
type Expense struct {
	Base
	ExpenseID  string  `gorm:"type:uuid;index" json:"expense_id"`
	BudgetID   string  `gorm:"type:uuid;not null;index" json:"budget_id"`
	EventID    string  `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID     string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Category   string  `gorm:"not null" json:"category"`
	Amount     float64 `gorm:"not null" json:"amount"`
	PaidStatus bool    `gorm:"not null;default:false" json:"paid_status"`
}

// BeforeCreate assigns the document key and echoes it into ExpenseID.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	e.ExpenseID = e.assignID()
	return nil
}
