package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"eventplanner/internal/models"
	"eventplanner/internal/testutil"
)

// newMockGateway runs the gorm gateway against a mocked PostgreSQL connection.
func newMockGateway(t *testing.T) (Gateway, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewGormGateway(db), mock
}

func TestGormGateway_QueryWrapsDriverErrors(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectQuery(`SELECT \* FROM "guests" WHERE "event_id" = \$1 ORDER BY "id"`).
		WithArgs("evt-1").
		WillReturnError(errors.New("connection reset by peer"))

	var guests []models.Guest
	err := gw.Query(context.Background(), models.CollectionGuests, &guests, []Filter{Eq("event_id", "evt-1")}, nil)

	testutil.AssertAppError(t, err, "GATEWAY_ERROR")
	assert.ErrorContains(t, errors.Unwrap(err), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGateway_QueryOrdersByColumnThenKey(t *testing.T) {
	gw, mock := newMockGateway(t)

	rows := sqlmock.NewRows([]string{"id", "task_id", "event_id", "user_id", "title", "due_date", "status"}).
		AddRow("t1", "t1", "evt-1", "u1", "Order cake", "2025-01-02", false).
		AddRow("t2", "t2", "evt-1", "u1", "Send invites", "2025-01-05", true)
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE "event_id" = \$1 ORDER BY "due_date","id"`).
		WithArgs("evt-1").
		WillReturnRows(rows)

	var tasks []models.Task
	err := gw.Query(context.Background(), models.CollectionTasks, &tasks, []Filter{Eq("event_id", "evt-1")}, Asc("due_date"))

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Order cake", tasks[0].Title)
	assert.True(t, tasks[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGateway_UpdateNoRowsIsNotFound(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "budgets" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := gw.Update(context.Background(), models.CollectionBudgets, "b-404", Patch{"total_budget": 100.0})

	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGateway_DeleteWrapsDriverErrors(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "expenses" WHERE id = \$1`).
		WithArgs("x-1").
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := gw.Delete(context.Background(), models.CollectionExpenses, "x-1")

	testutil.AssertAppError(t, err, "GATEWAY_ERROR")
	assert.NoError(t, mock.ExpectationsWereMet())
}
