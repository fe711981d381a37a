package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventplanner/internal/config"
	"eventplanner/internal/gateway"
	"eventplanner/internal/logger"
	"eventplanner/internal/server"
	"eventplanner/internal/store"
	"eventplanner/internal/testutil"
)

// adminEmail is registered with the admin role in every test app.
const adminEmail = "admin@test.com"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Server *httptest.Server
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupApp creates the gateway API over an isolated in-memory SQLite and
// serves it on a local listener.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)

	cfg := *config.Get()
	cfg.AdminEmails = []string{adminEmail}

	router := server.NewRouter(db, &cfg)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		testutil.TeardownTestDB(t, db)
	})

	return &testApp{DB: db, Router: router, Server: srv}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode returns error.code of an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an error body, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"confirm_password":%q,"first_name":"Test","last_name":"User"}`, email, password, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// createDocument posts a document and returns its key.
func (app *testApp) createDocument(t *testing.T, token, collection, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/collections/"+collection, body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create %s failed: %d %s", collection, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}

// signedInStore returns a store talking to the app over HTTP, signed in as
// a freshly registered user.
func (app *testApp) signedInStore(t *testing.T, email string) *store.Store {
	t.Helper()

	gw := gateway.NewHTTPGateway(app.Server.URL, app.Server.Client())
	st := store.New(gw, gw, nil)
	t.Cleanup(st.Close)
	st.Start()

	res := st.Session.Register(context.Background(), store.RegisterInput{
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "Store",
		LastName:        "User",
	})
	if !res.Success {
		t.Fatalf("register through store failed: %+v", res)
	}
	if !st.Session.State().Authenticated {
		t.Fatal("expected the session to be authenticated after register")
	}
	return st
}
