package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/models"
	"eventplanner/internal/pagination"
)

// adminService computes system-wide figures for administrators.
type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB) AdminServicer {
	return &adminService{db: db}
}

// GetStats counts users, events, guests and tasks and sums every budget
// total and every expense amount.
func (s *adminService) GetStats(ctx context.Context) (*SystemStats, error) {
	db := s.db.WithContext(ctx)
	var stats SystemStats

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Event{}, &stats.TotalEvents},
		{&models.Guest{}, &stats.TotalGuests},
		{&models.Task{}, &stats.TotalTasks},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := db.Model(&models.Budget{}).Select("COALESCE(SUM(total_budget), 0)").Scan(&stats.TotalBudget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Model(&models.Expense{}).Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalExpenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &stats, nil
}

// ListUsers returns a page of users, newest first.
func (s *adminService) ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	return list[models.User](s.db.WithContext(ctx), page)
}

// ListEvents returns a page of events of every user, newest first.
func (s *adminService) ListEvents(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
	return list[models.Event](s.db.WithContext(ctx), page)
}

func list[T any](db *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	page.Defaults()

	var total int64
	if err := db.Model(new(T)).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []T
	if err := db.Scopes(pagination.Paginate(page)).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(items, page.Page, page.PageSize, total)
	return &resp, nil
}
