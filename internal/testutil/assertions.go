package testutil

import (
	"errors"
	"testing"

	apperrors "eventplanner/internal/errors"
)

func asAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertAppError fails unless err is an *AppError carrying code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected AppError %q, got nil", code)
	}
	if appErr := asAppError(t, err); appErr.Code != code {
		t.Errorf("expected error code %q, got %q (%s)", code, appErr.Code, appErr.Message)
	}
}

// AssertFieldError fails unless err is a validation failure naming field.
// An empty message only checks that the field is present.
func AssertFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	AssertAppError(t, err, apperrors.ErrValidation.Code)
	got, ok := asAppError(t, err).Fields[field]
	switch {
	case !ok:
		t.Errorf("expected a message for %q, fields: %v", field, asAppError(t, err).Fields)
	case message != "" && got != message:
		t.Errorf("field %q: expected %q, got %q", field, message, got)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
