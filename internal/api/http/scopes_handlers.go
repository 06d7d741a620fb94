package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/shell/internal/shell"
)

// ListCategories lists category rows without their results
func (h *Handlers) ListCategories(c *gin.Context) {
	rows, err := h.shell.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": rows,
		"count":      len(rows),
	})
}

// GetResults lists the results of a category row
func (h *Handlers) GetResults(c *gin.Context) {
	row, ok := intParam(c, "row")
	if !ok {
		return
	}
	results, err := h.shell.Results(c.Request.Context(), row)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"row":     row,
		"results": results,
		"count":   len(results),
	})
}

// AddSpecialCategory inserts a category at the top
func (h *Handlers) AddSpecialCategory(c *gin.Context) {
	var req shell.SpecialCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if err := validateID(req.ID, "categoryId"); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Counter != "" {
		if err := validateID(req.Counter, "counter"); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	if err := h.shell.AddSpecialCategory(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"categoryId": req.ID,
	})
}

// RemoveCategory removes a category row
func (h *Handlers) RemoveCategory(c *gin.Context) {
	row, ok := intParam(c, "row")
	if !ok {
		return
	}
	if err := h.shell.RemoveCategory(c.Request.Context(), row); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResetCategories replaces all categories with synthesized ones
func (h *Handlers) ResetCategories(c *gin.Context) {
	var req struct {
		Count *int `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if err := h.shell.ResetCategories(c.Request.Context(), *req.Count); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// OverrideCategoryJSON is not supported and answers 501
func (h *Handlers) OverrideCategoryJSON(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := h.shell.OverrideCategoryJSON(c.Request.Context(), c.Param("categoryId"), string(body)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListCounters lists named count sources
func (h *Handlers) ListCounters(c *gin.Context) {
	counters, err := h.shell.Counters(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counters": counters})
}

// SetCounter sets a named count source
func (h *Handlers) SetCounter(c *gin.Context) {
	name := c.Param("name")
	if err := validateID(name, "name"); err != nil {
		badRequest(c, err.Error())
		return
	}

	var req struct {
		Count *int `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.shell.SetCounter(c.Request.Context(), name, *req.Count); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    name,
		"count":   *req.Count,
	})
}
