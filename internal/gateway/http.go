package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/models"
)

// RegisterRequest is the payload of the gateway API's registration endpoint.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// HTTPGateway talks to the gateway API over JSON. It also holds the signed-in
// user's bearer token and notifies auth-state listeners when it changes.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	token     string
	user      *models.User
	listeners map[int]func(*models.User)
	nextID    int
}

// NewHTTPGateway creates a gateway API client.
func NewHTTPGateway(baseURL string, httpClient *http.Client) *HTTPGateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		listeners:  make(map[int]func(*models.User)),
	}
}

var _ Gateway = (*HTTPGateway)(nil)

// Create posts a new document and returns its assigned key.
func (g *HTTPGateway) Create(ctx context.Context, collection string, record models.Document) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	if err := g.do(ctx, http.MethodPost, collectionPath(collection), record, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

// GetByID fetches one document. A 404 reports absence rather than an error.
func (g *HTTPGateway) GetByID(ctx context.Context, collection, id string, out models.Document) (bool, error) {
	result := struct {
		Record models.Document `json:"record"`
	}{Record: out}
	err := g.do(ctx, http.MethodGet, collectionPath(collection)+"/"+url.PathEscape(id), nil, &result)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode == http.StatusNotFound && appErr.Code != apperrors.ErrUnknownCollection.Code {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Query lists documents matching every filter.
func (g *HTTPGateway) Query(ctx context.Context, collection string, out any, filters []Filter, order *Order) error {
	params := url.Values{}
	for _, f := range filters {
		params.Add("filter["+f.Field+"]", fmt.Sprint(f.Value))
	}
	if order != nil {
		params.Set("order_by", order.Field)
		if order.Desc {
			params.Set("order", "desc")
		} else {
			params.Set("order", "asc")
		}
	}

	path := collectionPath(collection)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	result := struct {
		Records any `json:"records"`
	}{Records: out}
	return g.do(ctx, http.MethodGet, path, nil, &result)
}

// Update sends a partial update.
func (g *HTTPGateway) Update(ctx context.Context, collection, id string, patch Patch) error {
	return g.do(ctx, http.MethodPatch, collectionPath(collection)+"/"+url.PathEscape(id), patch, nil)
}

// Delete removes a document.
func (g *HTTPGateway) Delete(ctx context.Context, collection, id string) error {
	return g.do(ctx, http.MethodDelete, collectionPath(collection)+"/"+url.PathEscape(id), nil, nil)
}

// Register creates an account and signs it in.
func (g *HTTPGateway) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	return g.authenticate(ctx, "/api/v1/auth/register", req)
}

// Login signs in with email and password.
func (g *HTTPGateway) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	return g.authenticate(ctx, "/api/v1/auth/login", body)
}

// Logout forgets the bearer token. Tokens are stateless, so nothing is sent.
func (g *HTTPGateway) Logout(ctx context.Context) error {
	g.setSession("", nil)
	return nil
}

// CurrentUser returns the signed-in user, or nil.
func (g *HTTPGateway) CurrentUser() *models.User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// OnAuthStateChanged registers a listener that is called with the current
// user immediately and again on every sign-in or sign-out. The returned
// function unregisters it and may be called more than once.
func (g *HTTPGateway) OnAuthStateChanged(listener func(*models.User)) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = listener
	current := g.user
	g.mu.Unlock()

	listener(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.listeners, id)
			g.mu.Unlock()
		})
	}
}

func (g *HTTPGateway) authenticate(ctx context.Context, path string, body any) (*models.User, error) {
	var result struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := g.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	user := result.User
	g.setSession(result.Token, &user)
	return &user, nil
}

func (g *HTTPGateway) setSession(token string, user *models.User) {
	g.mu.Lock()
	g.token = token
	g.user = user
	listeners := make([]func(*models.User), 0, len(g.listeners))
	for _, l := range g.listeners {
		listeners = append(listeners, l)
	}
	g.mu.Unlock()

	for _, l := range listeners {
		l(user)
	}
}

// do performs a JSON request. Non-2xx responses are decoded into an AppError.
func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Errorf("encoding request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrGateway, fmt.Errorf("creating request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	g.mu.RLock()
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	g.mu.RUnlock()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrGateway, fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrGateway, fmt.Errorf("decoding %s %s response: %w", method, path, err))
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error apperrors.AppError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error.Code == "" {
		return apperrors.Wrap(apperrors.ErrGateway, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	appErr := payload.Error
	appErr.StatusCode = resp.StatusCode
	return &appErr
}

func collectionPath(collection string) string {
	return "/api/v1/collections/" + url.PathEscape(collection)
}
