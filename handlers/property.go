package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"nestview/middleware"
	"nestview/services/property"
	"nestview/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PropertyHandler exposes the property directory endpoints.
type PropertyHandler struct {
	Service property.PropertyService
}

func NewPropertyHandler(svc property.PropertyService) *PropertyHandler {
	return &PropertyHandler{Service: svc}
}

// ListHandler handles GET /api/properties (public).
func (h *PropertyHandler) ListHandler(c *gin.Context) {
	properties, err := h.Service.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// MyPropertiesHandler handles GET /api/properties/my-properties (agent).
func (h *PropertyHandler) MyPropertiesHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	properties, err := h.Service.ListByAgent(c.Request.Context(), caller)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetHandler handles GET /api/properties/:id (public).
func (h *PropertyHandler) GetHandler(c *gin.Context) {
	prop, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prop)
}

// CreateHandler handles POST /api/properties (agent). The body is multipart:
// title, address, price, optional description, and either an image file or
// an image URL string.
func (h *PropertyHandler) CreateHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		utils.RespondError(c, utils.ValidationError("price must be a number"))
		return
	}

	input := property.CreateInput{
		Title:       c.PostForm("title"),
		Address:     c.PostForm("address"),
		Description: c.PostForm("description"),
		Price:       price,
		ImageURL:    c.PostForm("image"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tmpPath); err != nil {
			utils.RespondError(c, err)
			return
		}
		defer os.Remove(tmpPath)
		input.ImageFilePath = tmpPath
		input.ImageURL = ""
	}

	prop, err := h.Service.Create(c.Request.Context(), caller, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prop)
}

// DeleteHandler handles DELETE /api/properties/:id (owning agent). Slot
// deletion cascades.
func (h *PropertyHandler) DeleteHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.Service.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "property removed"})
}
