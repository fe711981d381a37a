package database

import (
	"path/filepath"
	"testing"

	"eventplanner/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestNewConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestConfig_URLs(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "planner", SSLMode: "disable"}

	if got, want := cfg.DSN(), "host=db port=5432 user=u password=p dbname=planner sslmode=disable"; got != want {
		t.Errorf("DSN: expected %q, got %q", want, got)
	}
	if got, want := cfg.MigrateURL(), "postgres://u:p@db:5432/planner?sslmode=disable"; got != want {
		t.Errorf("MigrateURL: expected %q, got %q", want, got)
	}
}

func TestManager_SQLiteAutoMigrate(t *testing.T) {
	cfg := &Config{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "planner.db")}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = m.Close() }()

	if err := m.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	for _, table := range []string{"users", "events", "guests", "tasks", "budgets", "expenses", "audit_logs"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %q after migration", table)
		}
	}
}
