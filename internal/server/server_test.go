package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"eventplanner/internal/config"
	"eventplanner/internal/logger"
	"eventplanner/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func serve(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	rec := httptest.NewRecorder()
	NewRouter(db, &config.Config{}).ServeHTTP(rec, httptest.NewRequest(method, path, http.NoBody))
	return rec
}

func TestNewRouter_PublicRoutes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode int
		contains string
	}{
		{"health", "/api/health", http.StatusOK, `"status":"ok"`},
		{"swagger document", "/swagger/doc.json", http.StatusOK, "Event Planner API"},
		{"collections need a token", "/api/v1/collections/events", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"admin needs a token", "/api/v1/admin/stats", http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodGet, tt.path)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("expected body to contain %q, got %s", tt.contains, rec.Body.String())
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID on every response")
			}
		})
	}
}
