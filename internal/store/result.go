package store

import (
	"errors"

	apperrors "eventplanner/internal/errors"
)

// Result is the uniform outcome of an intent: {success, id} on success and
// {success: false, error} on failure. Code and Fields carry the stable error
// code and any per-field validation messages.
type Result struct {
	Success bool              `json:"success"`
	ID      string            `json:"id,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func succeed(id string) Result {
	return Result{Success: true, ID: id}
}

func failure(err error) Result {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return Result{Error: appErr.Message, Code: appErr.Code, Fields: appErr.Fields}
	}
	return Result{Error: err.Error(), Code: apperrors.ErrInternalServer.Code}
}
