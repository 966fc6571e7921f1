package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/lowstock/internal/service"
	"github.com/GTDGit/lowstock/internal/utils"
)

// CategoryHandler serves the category tree.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	tree, err := h.categoryService.GetTree(c.Request.Context())
	if err != nil {
		if errors.Is(err, utils.ErrUpstreamUnavailable) {
			utils.Error(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Failed to load the category list")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tree": tree})
}
