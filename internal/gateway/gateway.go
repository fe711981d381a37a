// Package gateway defines the Remote Data Gateway: the per-collection
// create/read/update/delete contract of the document store that holds every
// event planner record, and its implementations (direct gorm access and an
// HTTP client for the gateway API).
package gateway

import (
	"context"
	"fmt"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/models"
)

// Filter is an equality filter on a single column.
type Filter struct {
	Field string
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Order sorts query results by a single column.
type Order struct {
	Field string
	Desc  bool
}

// Asc orders by field ascending.
func Asc(field string) *Order { return &Order{Field: field} }

// Desc orders by field descending.
func Desc(field string) *Order { return &Order{Field: field, Desc: true} }

// Patch is a partial update keyed by column name.
type Patch map[string]any

// Gateway is the document store contract the domain state store depends on.
//
// Create assigns the record's key (echoed into its own id field), stamps
// creation and update times and returns the key. GetByID reports false when
// the document is absent. Query fills out, a pointer to a slice of the
// collection's model, with documents matching every filter. Update and
// Delete fail with a not-found error when no document has the given key.
type Gateway interface {
	Create(ctx context.Context, collection string, record models.Document) (string, error)
	GetByID(ctx context.Context, collection, id string, out models.Document) (bool, error)
	Query(ctx context.Context, collection string, out any, filters []Filter, order *Order) error
	Update(ctx context.Context, collection, id string, patch Patch) error
	Delete(ctx context.Context, collection, id string) error
}

// lookup resolves a collection and validates filter and order columns against it.
func lookup(collection string, filters []Filter, order *Order) (models.CollectionSpec, error) {
	spec, ok := models.Lookup(collection)
	if !ok {
		return spec, apperrors.WithMessage(apperrors.ErrUnknownCollection, fmt.Sprintf("Unknown collection %q", collection))
	}
	for _, f := range filters {
		if !spec.Filterable[f.Field] {
			return spec, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Cannot filter %s by %q", collection, f.Field))
		}
	}
	if order != nil && !spec.Sortable[order.Field] {
		return spec, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Cannot order %s by %q", collection, order.Field))
	}
	return spec, nil
}

// CheckPatch rejects empty patches and patches touching read-only columns.
func CheckPatch(collection string, patch Patch) error {
	spec, err := lookup(collection, nil, nil)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Nothing to update")
	}
	for field := range patch {
		if !spec.Writable[field] {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Field %q of %s is read-only", field, collection))
		}
	}
	return nil
}

// NotFound returns the not-found error for a collection.
func NotFound(collection string) *apperrors.AppError {
	switch collection {
	case models.CollectionUsers:
		return apperrors.ErrUserNotFound
	case models.CollectionEvents:
		return apperrors.ErrEventNotFound
	case models.CollectionGuests:
		return apperrors.ErrGuestNotFound
	case models.CollectionTasks:
		return apperrors.ErrTaskNotFound
	case models.CollectionBudgets:
		return apperrors.ErrBudgetNotFound
	case models.CollectionExpenses:
		return apperrors.ErrExpenseNotFound
	}
	return apperrors.ErrNotFound
}
