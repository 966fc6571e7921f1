package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/GTDGit/lowstock/internal/models"
	"github.com/GTDGit/lowstock/internal/service"
	"github.com/GTDGit/lowstock/internal/utils"
)

// SearchHandler runs low-stock searches.
type SearchHandler struct {
	searchService   *service.SearchService
	defaultMaxPages int
}

// NewSearchHandler constructs a SearchHandler. defaultMaxPages applies when the body omits maxPages.
func NewSearchHandler(searchService *service.SearchService, defaultMaxPages int) *SearchHandler {
	if defaultMaxPages <= 0 {
		defaultMaxPages = service.DefaultMaxPages
	}
	return &SearchHandler{searchService: searchService, defaultMaxPages: defaultMaxPages}
}

// Search handles POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	results, _, err := h.searchService.Search(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Export handles POST /search/export and returns the results as a text attachment.
func (h *SearchHandler) Export(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	results, _, err := h.searchService.Search(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.ExportFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.FormatExport(results)))
}

// bindParams decodes and validates the body, writing a 400 on failure.
func (h *SearchHandler) bindParams(c *gin.Context) (service.SearchParams, bool) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid parameters: "+describeBindError(err))
		return service.SearchParams{}, false
	}

	params := service.SearchParams{
		SubjectID: req.SubjectID,
		Threshold: req.Threshold,
		MaxPages:  h.defaultMaxPages,
	}
	if req.MaxPages != nil {
		params.MaxPages = *req.MaxPages
	}
	if err := params.Validate(); err != nil {
		h.handleError(c, err)
		return service.SearchParams{}, false
	}
	return params, true
}

func (h *SearchHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrValidationFailed):
		msg := strings.TrimPrefix(err.Error(), utils.ErrValidationFailed.Error()+": ")
		utils.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid parameters: "+msg)
	default:
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// describeBindError turns binding failures into a short client-facing message.
func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Param() != "" {
				parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			} else {
				parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
			}
		}
		return strings.Join(parts, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be an integer", typeErr.Field)
	}
	return "body must be a JSON object"
}
