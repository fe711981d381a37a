package services

import (
	"context"

	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
	"eventplanner/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// DocumentServicer defines the contract for owner-scoped document access
// through the gateway API. Every operation acts only on documents owned by
// userID; documents of other users are reported as not found.
type DocumentServicer interface {
	Create(ctx context.Context, userID, collection string, payload []byte) (string, error)
	Get(ctx context.Context, userID, collection, id string) (models.Document, error)
	List(ctx context.Context, userID, collection string, filters map[string]string, order *gateway.Order) (any, error)
	Update(ctx context.Context, userID, collection, id string, patch gateway.Patch) error
	Delete(ctx context.Context, userID, collection, id string) error
}

// SystemStats are the system-wide totals shown on the admin dashboard.
type SystemStats struct {
	TotalUsers    int64   `json:"total_users"`
	TotalEvents   int64   `json:"total_events"`
	TotalGuests   int64   `json:"total_guests"`
	TotalTasks    int64   `json:"total_tasks"`
	TotalBudget   float64 `json:"total_budget"`
	TotalExpenses float64 `json:"total_expenses"`
}

// AdminServicer defines the contract for the admin dashboard.
type AdminServicer interface {
	GetStats(ctx context.Context) (*SystemStats, error)
	ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	ListEvents(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
