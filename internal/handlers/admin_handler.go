package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/pagination"
	"eventplanner/internal/services"
)

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	adminService services.AdminServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService services.AdminServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetStats returns system-wide totals
// @Summary     System statistics
// @Description Totals of users, events, guests and tasks, the sum of all budgets and the sum of all expenses
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SystemStats "Statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an administrator"
// @Router      /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers returns a page of users
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" minimum(1)
// @Param       page_size query int false "Items per page" minimum(1) maximum(100)
// @Success     200 {object} pagination.PageResponse[models.User] "Users"
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Failure     403 {object} ErrorResponse "Not an administrator"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.adminService.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListEvents returns a page of events across all users
// @Summary     List events
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" minimum(1)
// @Param       page_size query int false "Items per page" minimum(1) maximum(100)
// @Success     200 {object} pagination.PageResponse[models.Event] "Events"
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Failure     403 {object} ErrorResponse "Not an administrator"
// @Router      /admin/events [get]
func (h *AdminHandler) ListEvents(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.adminService.ListEvents(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid pagination parameters")
	}
	page.Defaults()
	return page, nil
}
