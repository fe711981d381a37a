package gateway

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/logger"
	"eventplanner/internal/models"
)

// gormGateway stores documents in SQL tables through gorm.
type gormGateway struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewGormGateway creates a Gateway backed by the given database.
func NewGormGateway(db *gorm.DB) Gateway {
	return &gormGateway{db: db, log: logger.Named("gateway")}
}

// Create inserts a new document. The model hooks assign the key.
func (g *gormGateway) Create(ctx context.Context, collection string, record models.Document) (string, error) {
	spec, err := lookup(collection, nil, nil)
	if err != nil {
		return "", err
	}
	if reflect.TypeOf(record) != reflect.TypeOf(spec.New()) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Record of type %T does not belong to %s", record, collection))
	}

	if err := g.db.WithContext(ctx).Create(record).Error; err != nil {
		g.log.Errorw("create failed", "collection", collection, "error", err)
		return "", apperrors.Wrap(apperrors.ErrGateway, err)
	}
	return record.DocumentID(), nil
}

// GetByID loads a single document into out.
func (g *gormGateway) GetByID(ctx context.Context, collection, id string, out models.Document) (bool, error) {
	if _, err := lookup(collection, nil, nil); err != nil {
		return false, err
	}

	err := g.db.WithContext(ctx).Where("id = ?", id).First(out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		g.log.Errorw("get failed", "collection", collection, "id", id, "error", err)
		return false, apperrors.Wrap(apperrors.ErrGateway, err)
	}
	return true, nil
}

// Query loads every document matching all filters into out. Documents are
// ordered by the requested column, ties (and unordered queries) by key,
// which is time-ordered.
func (g *gormGateway) Query(ctx context.Context, collection string, out any, filters []Filter, order *Order) error {
	if _, err := lookup(collection, filters, order); err != nil {
		return err
	}

	q := g.db.WithContext(ctx)
	for _, f := range filters {
		q = q.Where(clause.Eq{Column: clause.Column{Name: f.Field}, Value: f.Value})
	}
	if order != nil {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Field}, Desc: order.Desc})
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	if err := q.Find(out).Error; err != nil {
		g.log.Errorw("query failed", "collection", collection, "error", err)
		return apperrors.Wrap(apperrors.ErrGateway, err)
	}
	return nil
}

// Update applies a partial update. updated_at is stamped by gorm.
func (g *gormGateway) Update(ctx context.Context, collection, id string, patch Patch) error {
	if err := CheckPatch(collection, patch); err != nil {
		return err
	}
	spec, _ := models.Lookup(collection)

	res := g.db.WithContext(ctx).Model(spec.New()).Where("id = ?", id).Updates(map[string]any(patch))
	if res.Error != nil {
		g.log.Errorw("update failed", "collection", collection, "id", id, "error", res.Error)
		return apperrors.Wrap(apperrors.ErrGateway, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound(collection)
	}
	return nil
}

// Delete removes a document permanently. Dependent documents are left in place.
func (g *gormGateway) Delete(ctx context.Context, collection, id string) error {
	spec, err := lookup(collection, nil, nil)
	if err != nil {
		return err
	}

	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(spec.New())
	if res.Error != nil {
		g.log.Errorw("delete failed", "collection", collection, "id", id, "error", res.Error)
		return apperrors.Wrap(apperrors.ErrGateway, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound(collection)
	}
	return nil
}
