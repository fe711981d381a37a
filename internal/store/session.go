package store

import (
	"context"
	"strings"
	"sync"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
	"eventplanner/internal/validator"
)

// Authenticator signs users in and reports auth-state changes.
// gateway.HTTPGateway implements it.
type Authenticator interface {
	Register(ctx context.Context, req gateway.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	// OnAuthStateChanged calls listener with the current user and again
	// on every change until the returned function is called.
	OnAuthStateChanged(listener func(*models.User)) (unsubscribe func())
}

var errNoAuthenticator = apperrors.WithMessage(apperrors.ErrUnauthorized, "Sign-in is not available")

// SessionState is the session slice. Loading starts true and clears once the
// authenticator has reported the initial user.
type SessionState struct {
	User          *models.User
	Authenticated bool
	Loading       bool
	Err           string
}

// AuthStateChanged records the signed-in user, or nil after sign-out.
type AuthStateChanged struct{ User *models.User }

func (AuthStateChanged) action() {}

// ReduceSession applies a to s.
func ReduceSession(s SessionState, a Action) SessionState {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
	case Failed:
		s.Err = a.Err
		s.Loading = false
	case AuthStateChanged:
		s.User = nil
		if a.User != nil {
			u := *a.User
			s.User = &u
		}
		s.Authenticated = a.User != nil
		s.Loading = false
		s.Err = ""
	}
	return s
}

// Session tracks the signed-in user through a single auth-state listener.
type Session struct {
	*slice[SessionState]
	auth Authenticator

	mu          sync.Mutex
	unsubscribe func()
}

func newSession(auth Authenticator, emit func(Change)) *Session {
	return &Session{
		slice: newSlice(SliceSession, SessionState{Loading: true}, ReduceSession, emit),
		auth:  auth,
	}
}

// State returns a copy of the slice state. Changing it does not affect
// the store.
func (s *Session) State() SessionState {
	state := s.snapshot()
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

// UserID returns the signed-in user's key, or "".
func (s *Session) UserID() string {
	if u := s.snapshot().User; u != nil {
		return u.ID
	}
	return ""
}

// Start registers the auth-state listener. Calling it again while started
// does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		return
	}
	if s.auth == nil {
		s.dispatch(AuthStateChanged{})
		s.unsubscribe = func() {}
		return
	}
	s.unsubscribe = s.auth.OnAuthStateChanged(func(u *models.User) {
		s.dispatch(AuthStateChanged{User: u})
	})
}

// Stop unregisters the auth-state listener. It is safe to call repeatedly.
func (s *Session) Stop() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Register creates an account and signs it in.
func (s *Session) Register(ctx context.Context, in RegisterInput) Result {
	if err := validator.Struct(in); err != nil {
		return failure(err)
	}
	if s.auth == nil {
		return s.fail("register", errNoAuthenticator)
	}

	s.dispatch(LoadStarted{})
	user, err := s.auth.Register(ctx, gateway.RegisterRequest{
		Email:           strings.TrimSpace(in.Email),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
	})
	if err != nil {
		return s.fail("register", err)
	}

	s.dispatch(AuthStateChanged{User: user})
	return succeed(user.ID)
}

// Login signs in with email and password.
func (s *Session) Login(ctx context.Context, email, password string) Result {
	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := validator.Struct(in); err != nil {
		return failure(err)
	}
	if s.auth == nil {
		return s.fail("login", errNoAuthenticator)
	}

	s.dispatch(LoadStarted{})
	user, err := s.auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		return s.fail("login", err)
	}

	s.dispatch(AuthStateChanged{User: user})
	return succeed(user.ID)
}

// Logout signs the user out.
func (s *Session) Logout(ctx context.Context) Result {
	if s.auth != nil {
		if err := s.auth.Logout(ctx); err != nil {
			return s.fail("logout", err)
		}
	}
	s.dispatch(AuthStateChanged{})
	return succeed("")
}
