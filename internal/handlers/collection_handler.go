package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/services"
)

// CollectionHandler exposes the gateway collections over HTTP.
type CollectionHandler struct {
	documents services.DocumentServicer
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(documents services.DocumentServicer) *CollectionHandler {
	return &CollectionHandler{documents: documents}
}

// CreatedResponse carries the key of a new document.
type CreatedResponse struct {
	ID string `json:"id"`
}

// RecordResponse wraps a single document.
type RecordResponse struct {
	Record any `json:"record"`
}

// RecordsResponse wraps a list of documents.
type RecordsResponse struct {
	Records any `json:"records"`
}

// Create handles document creation
// @Summary     Create a document
// @Description Store a new document owned by the caller; the key and timestamps are assigned by the server
// @Tags        collections
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       collection path string true "Collection" Enums(events, guests, tasks, budgets, expenses)
// @Param       request body object true "Document fields"
// @Success     201 {object} CreatedResponse "Document created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Unknown collection"
// @Router      /collections/{collection} [post]
func (h *CollectionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	id, err := h.documents.Create(h.context(c), userID, c.Param("collection"), payload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Get handles fetching one document
// @Summary     Get a document
// @Tags        collections
// @Produce     json
// @Security    BearerAuth
// @Param       collection path string true "Collection"
// @Param       id path string true "Document key"
// @Success     200 {object} RecordResponse "Document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /collections/{collection}/{id} [get]
func (h *CollectionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.documents.Get(h.context(c), userID, c.Param("collection"), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecordResponse{Record: doc})
}

// List handles querying a collection
// @Summary     Query a collection
// @Description List the caller's documents. Filters are passed as filter[field]=value; results are ordered by order_by, then by key
// @Tags        collections
// @Produce     json
// @Security    BearerAuth
// @Param       collection path string true "Collection"
// @Param       order_by query string false "Column to order by"
// @Param       order query string false "asc or desc" Enums(asc, desc)
// @Success     200 {object} RecordsResponse "Documents"
// @Failure     400 {object} ErrorResponse "Invalid filter or order"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /collections/{collection} [get]
func (h *CollectionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if field, ok := filterField(key); ok && len(values) > 0 {
			filters[field] = values[0]
		}
	}

	var order *gateway.Order
	if field := c.Query("order_by"); field != "" {
		switch c.DefaultQuery("order", "asc") {
		case "asc":
			order = gateway.Asc(field)
		case "desc":
			order = gateway.Desc(field)
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "order must be asc or desc"))
			return
		}
	}

	records, err := h.documents.List(h.context(c), userID, c.Param("collection"), filters, order)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecordsResponse{Records: records})
}

// Update handles partial updates
// @Summary     Update a document
// @Tags        collections
// @Accept      json
// @Security    BearerAuth
// @Param       collection path string true "Collection"
// @Param       id path string true "Document key"
// @Param       request body object true "Fields to change"
// @Success     204 "Updated"
// @Failure     400 {object} ErrorResponse "Invalid or read-only field"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /collections/{collection}/{id} [patch]
func (h *CollectionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	patch, err := decodePatch(c.Request.Body)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.documents.Update(h.context(c), userID, c.Param("collection"), c.Param("id"), patch); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles document deletion
// @Summary     Delete a document
// @Description Delete a document permanently; dependent documents are not removed
// @Tags        collections
// @Security    BearerAuth
// @Param       collection path string true "Collection"
// @Param       id path string true "Document key"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /collections/{collection}/{id} [delete]
func (h *CollectionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.documents.Delete(h.context(c), userID, c.Param("collection"), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CollectionHandler) context(c *gin.Context) context.Context {
	return services.WithClientIP(c.Request.Context(), c.ClientIP())
}

// filterField extracts field from a "filter[field]" query key.
func filterField(key string) (string, bool) {
	if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	field := key[len("filter[") : len(key)-1]
	return field, field != ""
}

// decodePatch reads a JSON object of column values. Whole numbers decode as
// int64 so integer columns receive integers.
func decodePatch(body io.Reader) (gateway.Patch, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid JSON body")
	}

	patch := make(gateway.Patch, len(raw))
	for field, value := range raw {
		if n, ok := value.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				value = i
			} else if f, err := n.Float64(); err == nil {
				value = f
			}
		}
		patch[field] = value
	}
	return patch, nil
}
