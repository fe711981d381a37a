package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"eventplanner/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", nextID()),
		Role:      models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates a user with the admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := CreateTestUserWithEmail(t, db, fmt.Sprintf("admin%d@test.com", nextID()))
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote test admin: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

// CreateTestEvent creates a party on 2025-06-01 owned by userID.
func CreateTestEvent(t *testing.T, db *gorm.DB, userID string) *models.Event {
	t.Helper()

	event := &models.Event{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Event %d", nextID()),
		Type:     models.EventTypeParty,
		Date:     "2025-06-01",
		Time:     "18:00",
		Location: "Town Hall",
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestGuest creates a pending guest with a unique email.
func CreateTestGuest(t *testing.T, db *gorm.DB, userID, eventID string) *models.Guest {
	t.Helper()

	n := nextID()
	guest := &models.Guest{
		UserID:     userID,
		EventID:    eventID,
		FirstName:  "Guest",
		LastName:   fmt.Sprintf("Number%d", n),
		Email:      fmt.Sprintf("guest%d@test.com", n),
		RSVPStatus: models.RSVPPending,
	}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("failed to create test guest: %v", err)
	}
	return guest
}

// CreateTestTask creates an incomplete task.
func CreateTestTask(t *testing.T, db *gorm.DB, userID, eventID string) *models.Task {
	t.Helper()

	task := &models.Task{
		UserID:  userID,
		EventID: eventID,
		Title:   fmt.Sprintf("Task %d", nextID()),
		DueDate: "2025-05-20",
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestBudget creates a budget of the given total with nothing spent.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, eventID string, total float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:          userID,
		EventID:         eventID,
		TotalBudget:     total,
		RemainingBudget: total,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates an unpaid expense. Budget totals are not touched.
func CreateTestExpense(t *testing.T, db *gorm.DB, budget *models.Budget, amount float64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:   budget.UserID,
		EventID:  budget.EventID,
		BudgetID: budget.ID,
		Category: fmt.Sprintf("Category %d", nextID()),
		Amount:   amount,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
