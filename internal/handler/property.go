package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PropertyService is the listing logic used by PropertyHandler and EmbeddingHandler
type PropertyService interface {
	Create(ctx context.Context, req model.PropertyCreateRequest) (*model.Property, error)
	Get(ctx context.Context, id int64) (*model.Property, error)
	List(ctx context.Context, filter model.PropertyFilter) ([]model.Property, int, error)
	UpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) model.EmbeddingBatchResponse
}

// PropertyHandler handles property listing HTTP requests
type PropertyHandler struct {
	propertyService PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create handles POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req model.PropertyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.propertyService.Create(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	var filter model.PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	props, total, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": props, "total": total})
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	p, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		log.Error().Err(err).Int64("property_id", id).Msg("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}
	c.JSON(http.StatusOK, p)
}
