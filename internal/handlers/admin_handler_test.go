package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"eventplanner/internal/models"
	"eventplanner/internal/pagination"
	"eventplanner/internal/services"
)

type mockAdminService struct {
	getStatsFn   func(ctx context.Context) (*services.SystemStats, error)
	listUsersFn  func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	listEventsFn func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error)
}

func (m *mockAdminService) GetStats(ctx context.Context) (*services.SystemStats, error) {
	if m.getStatsFn != nil {
		return m.getStatsFn(ctx)
	}
	return &services.SystemStats{}, nil
}

func (m *mockAdminService) ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, page)
	}
	resp := pagination.NewPageResponse[models.User](nil, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockAdminService) ListEvents(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
	if m.listEventsFn != nil {
		return m.listEventsFn(ctx, page)
	}
	resp := pagination.NewPageResponse[models.Event](nil, page.Page, page.PageSize, 0)
	return &resp, nil
}

func setupAdminRouter(handler *AdminHandler) *gin.Engine {
	r := gin.New()
	r.GET("/admin/stats", handler.GetStats)
	r.GET("/admin/users", handler.ListUsers)
	r.GET("/admin/events", handler.ListEvents)
	return r
}

func TestAdminHandler_GetStats(t *testing.T) {
	t.Run("returns totals", func(t *testing.T) {
		svc := &mockAdminService{
			getStatsFn: func(context.Context) (*services.SystemStats, error) {
				return &services.SystemStats{TotalUsers: 3, TotalEvents: 5, TotalBudget: 1250.5}, nil
			},
		}
		r := setupAdminRouter(NewAdminHandler(svc))

		rec := doRequest(r, "GET", "/admin/stats", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total_users"] != float64(3) || result["total_events"] != float64(5) || result["total_budget"] != 1250.5 {
			t.Errorf("unexpected stats %v", result)
		}
	})

	t.Run("returns 500 on unexpected errors", func(t *testing.T) {
		svc := &mockAdminService{
			getStatsFn: func(context.Context) (*services.SystemStats, error) {
				return nil, errors.New("connection reset")
			},
		}
		r := setupAdminRouter(NewAdminHandler(svc))

		rec := doRequest(r, "GET", "/admin/stats", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestAdminHandler_ListUsers(t *testing.T) {
	t.Run("applies default paging", func(t *testing.T) {
		var got pagination.PageRequest
		svc := &mockAdminService{
			listUsersFn: func(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
				got = page
				resp := pagination.NewPageResponse([]models.User{{Email: "a@b.co"}}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		r := setupAdminRouter(NewAdminHandler(svc))

		rec := doRequest(r, "GET", "/admin/users", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Page != 1 || got.PageSize != pagination.DefaultPageSize {
			t.Errorf("unexpected page request %+v", got)
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(1) || len(result["data"].([]interface{})) != 1 {
			t.Errorf("unexpected body %v", result)
		}
	})

	t.Run("rejects an oversized page", func(t *testing.T) {
		r := setupAdminRouter(NewAdminHandler(&mockAdminService{}))

		rec := doRequest(r, "GET", "/admin/users?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestAdminHandler_ListEvents(t *testing.T) {
	var got pagination.PageRequest
	svc := &mockAdminService{
		listEventsFn: func(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
			got = page
			resp := pagination.NewPageResponse([]models.Event{{Name: "Gala"}}, page.Page, page.PageSize, 41)
			return &resp, nil
		},
	}
	r := setupAdminRouter(NewAdminHandler(svc))

	rec := doRequest(r, "GET", "/admin/events?page=3&page_size=20", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Page != 3 || got.PageSize != 20 {
		t.Errorf("unexpected page request %+v", got)
	}
	if parseJSON(t, rec)["total_pages"] != float64(3) {
		t.Errorf("expected 3 pages, got %s", rec.Body.String())
	}
}
