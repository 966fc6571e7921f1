package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/lowstock/internal/service"
	"github.com/GTDGit/lowstock/internal/web"
)

// PageHandler renders the search form.
type PageHandler struct {
	data web.PageData
}

// NewPageHandler constructs a PageHandler with the form defaults.
func NewPageHandler(defaultThreshold, defaultMaxPages int) *PageHandler {
	return &PageHandler{data: web.PageData{
		Title:            "Low stock finder",
		DefaultThreshold: defaultThreshold,
		DefaultMaxPages:  defaultMaxPages,
		MinThreshold:     service.MinThreshold,
		MaxThreshold:     service.MaxThreshold,
		MinPages:         service.MinPages,
		MaxPages:         service.MaxPages,
		ExportFilename:   service.ExportFilename,
	}}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.data)
}
