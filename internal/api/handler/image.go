package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/imagen/internal/domain"
	"github.com/timmy/imagen/internal/service"
)

// ImageHandler handles image generation, classification, and retrieval
// endpoints.
type ImageHandler struct {
	commands *service.CommandService
	queries  *service.QueryService
}

// NewImageHandler creates a new image handler.
// Parameters:
//   - commands: write-side command service.
//   - queries: read-side query service.
// Returns:
//   - *ImageHandler: initialized handler.
func NewImageHandler(commands *service.CommandService, queries *service.QueryService) *ImageHandler {
	return &ImageHandler{
		commands: commands,
		queries:  queries,
	}
}

// GenerateRequest is the request body for POST /api/v1/images/generate.
type GenerateRequest struct {
	Description string `json:"description" binding:"required"`
	Platform    string `json:"platform"`
}

// ClassifyRequest is the request body for POST /api/v1/images/classify.
type ClassifyRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

// Generate handles POST /api/v1/images/generate.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ImageHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	dto, err := h.commands.CreateImage(c.Request.Context(), req.Description, req.Platform)
	if err != nil {
		h.writeError(c, err, "Failed to generate image")
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// Classify handles POST /api/v1/images/classify.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ImageHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	dto, err := h.commands.ClassifyImage(c.Request.Context(), req.ImageURL)
	if err != nil {
		h.writeError(c, err, "Failed to classify image")
		return
	}

	c.JSON(http.StatusOK, dto)
}

// GetImage handles GET /api/v1/images/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ImageHandler) GetImage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image ID is required",
		})
		return
	}

	dto, err := h.queries.GetImageByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get image")
		return
	}

	c.JSON(http.StatusOK, dto)
}

// GetImageBase64 handles GET /api/v1/images/:id/base64.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ImageHandler) GetImageBase64(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image ID is required",
		})
		return
	}

	data, err := h.queries.GetImageBase64(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get image data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         id,
		"base64Data": data,
	})
}

// GetClassifiedImage handles GET /api/v1/images/classified/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ImageHandler) GetClassifiedImage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Classified image ID is required",
		})
		return
	}

	dto, err := h.queries.GetClassifiedImageByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get classified image")
		return
	}

	c.JSON(http.StatusOK, dto)
}

// writeError maps domain errors to HTTP statuses: validation failures are
// 400, absent read-model rows are 404, everything else is 500.
func (h *ImageHandler) writeError(c *gin.Context, err error, fallback string) {
	if domain.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": fallback + ": " + err.Error(),
	})
}
