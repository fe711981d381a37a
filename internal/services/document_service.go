package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/logger"
	"eventplanner/internal/models"
)

type clientIPKey struct{}

// WithClientIP returns a context carrying the caller's address for the
// audit log.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func clientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// boolColumns are filter columns whose query-string values are parsed as
// booleans.
var boolColumns = map[string]bool{"status": true, "paid_status": true}

// documentService serves the gateway API's collection endpoints on top of
// a Gateway, scoping every read and write to the calling user.
type documentService struct {
	gw    gateway.Gateway
	audit AuditServicer
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(gw gateway.Gateway, audit AuditServicer) DocumentServicer {
	return &documentService{gw: gw, audit: audit}
}

// Create decodes payload into a new document of collection owned by userID
// and stores it.
func (s *documentService) Create(ctx context.Context, userID, collection string, payload []byte) (string, error) {
	spec, err := ownedCollection(collection)
	if err != nil {
		return "", err
	}

	doc, ok := spec.New().(models.Owned)
	if !ok {
		return "", apperrors.ErrForbidden
	}
	if err := json.Unmarshal(payload, doc); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid JSON body")
	}
	doc.Claim(userID)
	if child, ok := doc.(models.Child); ok {
		if err := s.checkParents(ctx, userID, child); err != nil {
			return "", err
		}
	}

	id, err := s.gw.Create(ctx, collection, doc)
	if err != nil {
		return "", err
	}

	s.audit.Log(userID, AuditCreate, collection, id, clientIP(ctx), nil)
	return id, nil
}

// Get returns one document owned by userID.
func (s *documentService) Get(ctx context.Context, userID, collection, id string) (models.Document, error) {
	if _, err := ownedCollection(collection); err != nil {
		return nil, err
	}
	return s.owned(ctx, userID, collection, id)
}

// List returns a pointer to a slice of userID's documents matching every
// filter. Filter values arrive as strings; "status" and "paid_status"
// accept "true" and "false".
func (s *documentService) List(ctx context.Context, userID, collection string, filters map[string]string, order *gateway.Order) (any, error) {
	spec, err := ownedCollection(collection)
	if err != nil {
		return nil, err
	}

	fs := []gateway.Filter{gateway.Eq("user_id", userID)}
	for field, raw := range filters {
		if field == "user_id" {
			continue
		}
		var value any = raw
		if boolColumns[field] {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Filter %q must be true or false", field))
			}
			value = b
		}
		fs = append(fs, gateway.Eq(field, value))
	}

	out := spec.NewSlice()
	if err := s.gw.Query(ctx, collection, out, fs, order); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update to a document owned by userID.
func (s *documentService) Update(ctx context.Context, userID, collection, id string, patch gateway.Patch) error {
	if _, err := ownedCollection(collection); err != nil {
		return err
	}
	if err := gateway.CheckPatch(collection, patch); err != nil {
		return err
	}
	if _, err := s.owned(ctx, userID, collection, id); err != nil {
		return err
	}
	if err := s.gw.Update(ctx, collection, id, patch); err != nil {
		return err
	}

	s.audit.Log(userID, AuditUpdate, collection, id, clientIP(ctx), patch)
	return nil
}

// Delete removes a document owned by userID.
func (s *documentService) Delete(ctx context.Context, userID, collection, id string) error {
	if _, err := ownedCollection(collection); err != nil {
		return err
	}
	if _, err := s.owned(ctx, userID, collection, id); err != nil {
		return err
	}
	if err := s.gw.Delete(ctx, collection, id); err != nil {
		return err
	}

	s.audit.Log(userID, AuditDelete, collection, id, clientIP(ctx), nil)
	return nil
}

func (s *documentService) owned(ctx context.Context, userID, collection, id string) (models.Owned, error) {
	spec, _ := models.Lookup(collection)
	doc := spec.New().(models.Owned)

	found, err := s.gw.GetByID(ctx, collection, id, doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, gateway.NotFound(collection)
	}
	if doc.OwnerID() != userID {
		logger.Named("documents").Warnw("cross-user access refused",
			"collection", collection, "id", id, "user_id", userID)
		return nil, gateway.NotFound(collection)
	}
	return doc, nil
}

// checkParents refuses a child whose parents are missing or belong to
// another user. Foreign parents are reported as not found.
func (s *documentService) checkParents(ctx context.Context, userID string, child models.Child) error {
	for _, p := range child.Parents() {
		if p.ID == "" {
			return apperrors.WithFields(apperrors.ErrValidation, map[string]string{p.Field: p.Label + " is required"})
		}
		if _, err := s.owned(ctx, userID, p.Collection, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// ownedCollection resolves a collection reachable through the collection
// endpoints. Users are managed through the auth and admin endpoints only.
func ownedCollection(collection string) (models.CollectionSpec, error) {
	spec, ok := models.Lookup(collection)
	if !ok {
		return spec, apperrors.WithMessage(apperrors.ErrUnknownCollection, fmt.Sprintf("Unknown collection %q", collection))
	}
	if _, ok := spec.New().(models.Owned); !ok {
		return spec, apperrors.ErrForbidden
	}
	return spec, nil
}
