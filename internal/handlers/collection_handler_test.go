package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
)

type mockDocumentService struct {
	createFn func(ctx context.Context, userID, collection string, payload []byte) (string, error)
	getFn    func(ctx context.Context, userID, collection, id string) (models.Document, error)
	listFn   func(ctx context.Context, userID, collection string, filters map[string]string, order *gateway.Order) (any, error)
	updateFn func(ctx context.Context, userID, collection, id string, patch gateway.Patch) error
	deleteFn func(ctx context.Context, userID, collection, id string) error
}

func (m *mockDocumentService) Create(ctx context.Context, userID, collection string, payload []byte) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, collection, payload)
	}
	return "doc-1", nil
}

func (m *mockDocumentService) Get(ctx context.Context, userID, collection, id string) (models.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, collection, id)
	}
	return &models.Event{}, nil
}

func (m *mockDocumentService) List(ctx context.Context, userID, collection string, filters map[string]string, order *gateway.Order) (any, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, collection, filters, order)
	}
	return []models.Event{}, nil
}

func (m *mockDocumentService) Update(ctx context.Context, userID, collection, id string, patch gateway.Patch) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, collection, id, patch)
	}
	return nil
}

func (m *mockDocumentService) Delete(ctx context.Context, userID, collection, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, collection, id)
	}
	return nil
}

func setupCollectionRouter(handler *CollectionHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/collections", injectUserID("u-1"))
	g.POST("/:collection", handler.Create)
	g.GET("/:collection", handler.List)
	g.GET("/:collection/:id", handler.Get)
	g.PATCH("/:collection/:id", handler.Update)
	g.DELETE("/:collection/:id", handler.Delete)
	return r
}

func TestCollectionHandler_Create(t *testing.T) {
	t.Run("returns 201 with the new key", func(t *testing.T) {
		var gotCollection, gotUser string
		var gotPayload []byte
		svc := &mockDocumentService{
			createFn: func(_ context.Context, userID, collection string, payload []byte) (string, error) {
				gotUser, gotCollection, gotPayload = userID, collection, payload
				return "evt-9", nil
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		rec := doRequest(r, "POST", "/collections/events", `{"name":"Gala"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["id"] != "evt-9" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
		if gotUser != "u-1" || gotCollection != "events" || string(gotPayload) != `{"name":"Gala"}` {
			t.Errorf("unexpected call: user=%s collection=%s payload=%s", gotUser, gotCollection, gotPayload)
		}
	})

	t.Run("passes service errors through", func(t *testing.T) {
		svc := &mockDocumentService{
			createFn: func(_ context.Context, _, collection string, _ []byte) (string, error) {
				return "", apperrors.WithMessage(apperrors.ErrUnknownCollection, "Unknown collection "+collection)
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		rec := doRequest(r, "POST", "/collections/widgets", `{}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNKNOWN_COLLECTION")
	})
}

func TestCollectionHandler_Get(t *testing.T) {
	svc := &mockDocumentService{
		getFn: func(_ context.Context, _, _, id string) (models.Document, error) {
			if id != "evt-1" {
				return nil, gateway.NotFound("events")
			}
			return &models.Event{Base: models.Base{ID: id}, Name: "Gala"}, nil
		},
	}
	r := setupCollectionRouter(NewCollectionHandler(svc))

	t.Run("wraps the document in record", func(t *testing.T) {
		rec := doRequest(r, "GET", "/collections/events/evt-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		record := parseJSON(t, rec)["record"].(map[string]interface{})
		if record["id"] != "evt-1" || record["name"] != "Gala" {
			t.Errorf("unexpected record %v", record)
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		rec := doRequest(r, "GET", "/collections/events/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCollectionHandler_List(t *testing.T) {
	t.Run("parses filters and order", func(t *testing.T) {
		var gotFilters map[string]string
		var gotOrder *gateway.Order
		svc := &mockDocumentService{
			listFn: func(_ context.Context, _, collection string, filters map[string]string, order *gateway.Order) (any, error) {
				gotFilters, gotOrder = filters, order
				return []models.Guest{{FirstName: "Ada"}}, nil
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		rec := doRequest(r, "GET", "/collections/guests?filter[event_id]=evt-1&filter[rsvp_status]=Attending&order_by=created_at&order=desc&page=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(gotFilters) != 2 || gotFilters["event_id"] != "evt-1" || gotFilters["rsvp_status"] != "Attending" {
			t.Errorf("unexpected filters %v", gotFilters)
		}
		if gotOrder == nil || gotOrder.Field != "created_at" || !gotOrder.Desc {
			t.Errorf("unexpected order %+v", gotOrder)
		}
		records := parseJSON(t, rec)["records"].([]interface{})
		if len(records) != 1 {
			t.Errorf("expected 1 record, got %d", len(records))
		}
	})

	t.Run("defaults to ascending order", func(t *testing.T) {
		var gotOrder *gateway.Order
		svc := &mockDocumentService{
			listFn: func(_ context.Context, _, _ string, _ map[string]string, order *gateway.Order) (any, error) {
				gotOrder = order
				return []models.Task{}, nil
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		doRequest(r, "GET", "/collections/tasks?order_by=due_date", "")

		if gotOrder == nil || gotOrder.Desc {
			t.Errorf("expected ascending order, got %+v", gotOrder)
		}
	})

	t.Run("no order_by means no order", func(t *testing.T) {
		called := false
		svc := &mockDocumentService{
			listFn: func(_ context.Context, _, _ string, _ map[string]string, order *gateway.Order) (any, error) {
				called = true
				if order != nil {
					t.Errorf("expected nil order, got %+v", order)
				}
				return []models.Task{}, nil
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		doRequest(r, "GET", "/collections/tasks", "")

		if !called {
			t.Fatal("expected List to be called")
		}
	})

	t.Run("rejects an unknown direction", func(t *testing.T) {
		svc := &mockDocumentService{
			listFn: func(context.Context, string, string, map[string]string, *gateway.Order) (any, error) {
				t.Fatal("List should not be called")
				return nil, nil
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		rec := doRequest(r, "GET", "/collections/tasks?order_by=due_date&order=sideways", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCollectionHandler_Update(t *testing.T) {
	t.Run("returns 204 and decodes whole numbers as int64", func(t *testing.T) {
		var gotPatch gateway.Patch
		svc := &mockDocumentService{
			updateFn: func(_ context.Context, _, collection, id string, patch gateway.Patch) error {
				if collection != "events" || id != "evt-1" {
					t.Errorf("unexpected target %s/%s", collection, id)
				}
				gotPatch = patch
				return nil
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		rec := doRequest(r, "PATCH", "/collections/events/evt-1", `{"guest_limit":40,"budget_limit":99.5,"name":"Gala"}`)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		if v, ok := gotPatch["guest_limit"].(int64); !ok || v != 40 {
			t.Errorf("expected int64 40, got %T %v", gotPatch["guest_limit"], gotPatch["guest_limit"])
		}
		if v, ok := gotPatch["budget_limit"].(float64); !ok || v != 99.5 {
			t.Errorf("expected float64 99.5, got %T %v", gotPatch["budget_limit"], gotPatch["budget_limit"])
		}
		if gotPatch["name"] != "Gala" {
			t.Errorf("expected name Gala, got %v", gotPatch["name"])
		}
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		r := setupCollectionRouter(NewCollectionHandler(&mockDocumentService{}))

		rec := doRequest(r, "PATCH", "/collections/events/evt-1", `[1,2`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCollectionHandler_Delete(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		deleted := ""
		svc := &mockDocumentService{
			deleteFn: func(_ context.Context, _, _, id string) error {
				deleted = id
				return nil
			},
		}
		r := setupCollectionRouter(NewCollectionHandler(svc))

		rec := doRequest(r, "DELETE", "/collections/tasks/t-3", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if deleted != "t-3" {
			t.Errorf("expected t-3 to be deleted, got %q", deleted)
		}
	})

	t.Run("returns 401 without a user", func(t *testing.T) {
		r := gin.New()
		r.DELETE("/collections/:collection/:id", NewCollectionHandler(&mockDocumentService{}).Delete)

		rec := doRequest(r, "DELETE", "/collections/tasks/t-3", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestFilterField(t *testing.T) {
	tests := []struct {
		key   string
		field string
		ok    bool
	}{
		{"filter[event_id]", "event_id", true},
		{"filter[]", "", false},
		{"event_id", "", false},
		{"filter[status", "", false},
	}
	for _, tt := range tests {
		field, ok := filterField(tt.key)
		if field != tt.field || ok != tt.ok {
			t.Errorf("filterField(%q) = %q, %v; want %q, %v", tt.key, field, ok, tt.field, tt.ok)
		}
	}
}
