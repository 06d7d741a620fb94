package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/catalog"
)

// SearchCatalog lists catalog entries matching the q query parameter
func (h *Handlers) SearchCatalog(c *gin.Context) {
	cat := h.shell.Catalog()
	if cat == nil {
		c.JSON(http.StatusOK, gin.H{"entries": []catalog.Entry{}, "count": 0})
		return
	}

	entries := cat.Search(c.Query("q"))
	if entries == nil {
		entries = []catalog.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// AddCatalogEntry registers desktop metadata for an application
func (h *Handlers) AddCatalogEntry(c *gin.Context) {
	var req catalog.Entry
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if err := validateID(req.AppID, "id"); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.shell.AddCatalogEntry(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      req.AppID,
	})
}

// ReloadCatalog reloads the configured catalog sources
func (h *Handlers) ReloadCatalog(c *gin.Context) {
	n, err := h.shell.ReloadCatalog(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"loaded":  n,
	})
}
