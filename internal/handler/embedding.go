package handler

import (
	"net/http"

	"realestate-agent/internal/model"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler handles embedding-related HTTP requests
type EmbeddingHandler struct {
	propertyService PropertyService
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(propertyService PropertyService) *EmbeddingHandler {
	return &EmbeddingHandler{propertyService: propertyService}
}

// BatchUpdate handles POST /api/v1/properties/embeddings/batch
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	response := h.propertyService.UpdateEmbeddings(c.Request.Context(), req.Embeddings)
	if len(response.Errors) > 0 {
		c.JSON(http.StatusPartialContent, response)
		return
	}
	c.JSON(http.StatusOK, response)
}
