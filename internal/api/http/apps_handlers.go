package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/app"
)

// apps returns the lifecycle manager, answering 503 when the shell runs
// without one.
func (h *Handlers) apps(c *gin.Context) (*app.Manager, bool) {
	m := h.shell.Apps()
	if m == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "application manager unavailable",
		})
		return nil, false
	}
	return m, true
}

// ListApps lists all running apps
func (h *Handlers) ListApps(c *gin.Context) {
	m, ok := h.apps(c)
	if !ok {
		return
	}

	var filter *app.State
	if s := c.Query("state"); s != "" {
		state, err := app.ParseState(s)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		filter = &state
	}

	c.JSON(http.StatusOK, gin.H{
		"apps":  m.List(filter),
		"stats": m.Stats(),
	})
}

// ListDispatches lists quick-list actions handed to the manager
func (h *Handlers) ListDispatches(c *gin.Context) {
	m, ok := h.apps(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispatches": m.Dispatches()})
}

// StartApp launches an application
func (h *Handlers) StartApp(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	m, ok := h.apps(c)
	if !ok {
		return
	}

	a, err := m.Start(appID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"app":     a,
	})
}

// SetAppState reports a lifecycle transition
func (h *Handlers) SetAppState(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	m, ok := h.apps(c)
	if !ok {
		return
	}

	var req struct {
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	state, err := app.ParseState(req.State)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := m.SetState(appID, state); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"app_id":  appID,
		"state":   state,
	})
}

// FocusApp brings an app to foreground
func (h *Handlers) FocusApp(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	m, ok := h.apps(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": m.Focus(appID),
		"app_id":  appID,
	})
}

// StopApp stops an application
func (h *Handlers) StopApp(c *gin.Context) {
	appID, ok := appIDParam(c)
	if !ok {
		return
	}
	m, ok := h.apps(c)
	if !ok {
		return
	}

	if err := m.Stop(appID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"app_id":  appID,
	})
}
