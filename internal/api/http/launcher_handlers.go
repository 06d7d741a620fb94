package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListLauncher lists launcher rows in display order
func (h *Handlers) ListLauncher(c *gin.Context) {
	rows, err := h.shell.Launcher(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": rows,
		"count": len(rows),
	})
}

// ListPinned lists pinned application ids in display order
func (h *Handlers) ListPinned(c *gin.Context) {
	pinned, err := h.shell.Pinned(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if pinned == nil {
		pinned = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"pinned": pinned})
}

// GetLauncherItem returns one launcher row
func (h *Handlers) GetLauncherItem(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	row, err := h.shell.LauncherItem(c.Request.Context(), appID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": row})
}

// PinItem pins an application, optionally at an index
func (h *Handlers) PinItem(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Index *int `json:"index"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request: "+err.Error())
			return
		}
	}
	index := -1
	if req.Index != nil {
		index = *req.Index
	}

	if err := h.shell.Pin(c.Request.Context(), appID, index); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"app_id":  appID,
	})
}

// UnpinItem clears the pinned flag of an application
func (h *Handlers) UnpinItem(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	if err := h.shell.Unpin(c.Request.Context(), appID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"app_id":  appID,
	})
}

// MoveItem relocates a launcher row
func (h *Handlers) MoveItem(c *gin.Context) {
	var req struct {
		From *int `json:"from" binding:"required"`
		To   *int `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.shell.Move(c.Request.Context(), *req.From, *req.To); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"from":    *req.From,
		"to":      *req.To,
	})
}

// RemoveItem asks the launcher to drop an application
func (h *Handlers) RemoveItem(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	if err := h.shell.RequestRemove(c.Request.Context(), appID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"app_id":  appID,
	})
}

// SetItemCount updates the badge of an application
func (h *Handlers) SetItemCount(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Count   int  `json:"count"`
		Visible bool `json:"visible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.shell.SetItemCount(c.Request.Context(), appID, req.Count, req.Visible); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetQuickList lists the quick-list actions of an application
func (h *Handlers) GetQuickList(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	actions, err := h.shell.QuickList(c.Request.Context(), appID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"app_id":  appID,
		"actions": actions,
	})
}

// InvokeQuickListAction triggers a quick-list action
func (h *Handlers) InvokeQuickListAction(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}

	if err := h.shell.InvokeQuickListAction(c.Request.Context(), appID, index); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"app_id":  appID,
		"action":  index,
	})
}
