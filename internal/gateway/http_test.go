package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventplanner/internal/models"
	"eventplanner/internal/testutil"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestHTTPGateway_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/collections/events" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Gala" {
			t.Errorf("expected name Gala, got %v", body["name"])
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": "evt-1"})
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL+"/", server.Client())
	id, err := gw.Create(context.Background(), models.CollectionEvents, &models.Event{Name: "Gala"})
	testutil.AssertNoError(t, err)
	if id != "evt-1" {
		t.Errorf("expected evt-1, got %q", id)
	}
}

func TestHTTPGateway_GetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/collections/guests/g-1":
			writeJSON(w, http.StatusOK, map[string]any{"record": map[string]any{
				"id": "g-1", "guest_id": "g-1", "first_name": "Ada", "rsvp_status": "Attending",
			}})
		case "/api/v1/collections/guests/g-2":
			writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"code": "GUEST_NOT_FOUND", "message": "Guest not found"}})
		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"code": "UNKNOWN_COLLECTION", "message": "Unknown collection"}})
		}
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL, server.Client())
	ctx := context.Background()

	var guest models.Guest
	found, err := gw.GetByID(ctx, models.CollectionGuests, "g-1", &guest)
	testutil.AssertNoError(t, err)
	if !found || guest.FirstName != "Ada" || guest.RSVPStatus != models.RSVPAttending {
		t.Errorf("unexpected guest: found=%v %+v", found, guest)
	}

	found, err = gw.GetByID(ctx, models.CollectionGuests, "g-2", &guest)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected 404 to report absence")
	}

	_, err = gw.GetByID(ctx, "parties", "p-1", &guest)
	testutil.AssertAppError(t, err, "UNKNOWN_COLLECTION")
}

func TestHTTPGateway_QueryEncodesFiltersAndOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("filter[event_id]") != "evt-1" || q.Get("filter[status]") != "true" {
			t.Errorf("unexpected filters: %v", q)
		}
		if q.Get("order_by") != "due_date" || q.Get("order") != "asc" {
			t.Errorf("unexpected order: %v", q)
		}
		writeJSON(w, http.StatusOK, map[string]any{"records": []map[string]any{
			{"id": "t1", "title": "Order cake", "status": true},
		}})
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL, server.Client())
	var tasks []models.Task
	err := gw.Query(context.Background(), models.CollectionTasks, &tasks,
		[]Filter{Eq("event_id", "evt-1"), Eq("status", true)}, Asc("due_date"))
	testutil.AssertNoError(t, err)
	if len(tasks) != 1 || tasks[0].Title != "Order cake" || !tasks[0].Status {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestHTTPGateway_ErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"structured error", http.StatusNotFound, `{"error":{"code":"EXPENSE_NOT_FOUND","message":"Expense not found"}}`, "EXPENSE_NOT_FOUND"},
		{"validation error", http.StatusBadRequest, `{"error":{"code":"VALIDATION_FAILED","message":"Please fill in all required fields","fields":{"amount":"Please enter a positive number"}}}`, "VALIDATION_FAILED"},
		{"unstructured error", http.StatusInternalServerError, `oops`, "GATEWAY_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gw := NewHTTPGateway(server.URL, server.Client())
			err := gw.Update(context.Background(), models.CollectionExpenses, "x-1", Patch{"amount": 10})
			testutil.AssertAppError(t, err, tt.wantCode)
		})
	}
}

func TestHTTPGateway_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	gw := NewHTTPGateway(url, nil)
	err := gw.Delete(context.Background(), models.CollectionTasks, "t-1")
	testutil.AssertAppError(t, err, "GATEWAY_ERROR")
}

func TestHTTPGateway_SessionAndListeners(t *testing.T) {
	var lastAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/api/v1/auth/login":
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "tok-1",
				"user":  map[string]any{"id": "u-1", "user_id": "u-1", "email": "ada@example.com"},
			})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"records": []any{}})
		}
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL, server.Client())
	ctx := context.Background()

	var seen []*models.User
	unsubscribe := gw.OnAuthStateChanged(func(u *models.User) { seen = append(seen, u) })
	if len(seen) != 1 || seen[0] != nil {
		t.Fatalf("expected immediate nil notification, got %v", seen)
	}

	user, err := gw.Login(ctx, "ada@example.com", "secret1")
	testutil.AssertNoError(t, err)
	if user.ID != "u-1" || gw.CurrentUser() == nil {
		t.Fatalf("expected signed-in user, got %+v", user)
	}
	if len(seen) != 2 || seen[1] == nil || seen[1].Email != "ada@example.com" {
		t.Fatalf("expected sign-in notification, got %v", seen)
	}

	var events []models.Event
	testutil.AssertNoError(t, gw.Query(ctx, models.CollectionEvents, &events, nil, nil))
	if lastAuth != "Bearer tok-1" {
		t.Errorf("expected bearer token, got %q", lastAuth)
	}

	testutil.AssertNoError(t, gw.Logout(ctx))
	if gw.CurrentUser() != nil || len(seen) != 3 || seen[2] != nil {
		t.Fatalf("expected sign-out notification, got %v", seen)
	}

	unsubscribe()
	unsubscribe()
	_, _ = gw.Login(ctx, "ada@example.com", "secret1")
	if len(seen) != 3 {
		t.Errorf("listener called after unsubscribe: %d notifications", len(seen))
	}
}
