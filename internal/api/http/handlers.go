package http

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/scopes"
	"github.com/GriffinCanCode/AgentOS/shell/internal/shell"
)

// MaxIDLength bounds application, category and counter identifiers.
const MaxIDLength = 128

// idPattern allows alphanumerics, dots, hyphens and underscores.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Handlers contains all HTTP handlers
type Handlers struct {
	shell   *shell.Shell
	logger  *zap.Logger
	started time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(s *shell.Shell, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		shell:   s,
		logger:  logger.Named("http"),
		started: time.Now(),
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	launcher := r.Group("/launcher")
	launcher.GET("", h.ListLauncher)
	launcher.GET("/pinned", h.ListPinned)
	launcher.POST("/move", h.MoveItem)
	launcher.GET("/:appId", h.GetLauncherItem)
	launcher.DELETE("/:appId", h.RemoveItem)
	launcher.POST("/:appId/pin", h.PinItem)
	launcher.POST("/:appId/unpin", h.UnpinItem)
	launcher.PUT("/:appId/count", h.SetItemCount)
	launcher.GET("/:appId/quicklist", h.GetQuickList)
	launcher.POST("/:appId/quicklist/:index", h.InvokeQuickListAction)

	sc := r.Group("/scopes")
	sc.GET("/categories", h.ListCategories)
	sc.POST("/categories", h.AddSpecialCategory)
	sc.POST("/categories/reset", h.ResetCategories)
	sc.GET("/categories/:row/results", h.GetResults)
	sc.DELETE("/categories/:row", h.RemoveCategory)
	sc.PUT("/categories/:categoryId/json", h.OverrideCategoryJSON)
	sc.GET("/counters", h.ListCounters)
	sc.PUT("/counters/:name", h.SetCounter)

	apps := r.Group("/apps")
	apps.GET("", h.ListApps)
	apps.GET("/dispatches", h.ListDispatches)
	apps.POST("/:appId/start", h.StartApp)
	apps.PUT("/:appId/state", h.SetAppState)
	apps.POST("/:appId/focus", h.FocusApp)
	apps.DELETE("/:appId", h.StopApp)

	cat := r.Group("/catalog")
	cat.GET("", h.SearchCatalog)
	cat.POST("", h.AddCatalogEntry)
	cat.POST("/reload", h.ReloadCatalog)

	r.POST("/logs", h.StreamLogs)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "AgentOS Shell",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status": "healthy",
		"uptime": time.Since(h.started).String(),
	}
	if apps := h.shell.Apps(); apps != nil {
		body["app_manager"] = apps.Stats()
	}
	if cat := h.shell.Catalog(); cat != nil {
		body["catalog"] = gin.H{"entries": cat.Len()}
	}
	c.JSON(http.StatusOK, body)
}

// validateID checks a path or body identifier.
func validateID(id, field string) error {
	switch {
	case id == "":
		return errors.New(field + " is required")
	case len(id) > MaxIDLength:
		return errors.New(field + " is too long")
	case !idPattern.MatchString(id):
		return errors.New(field + " contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)")
	}
	return nil
}

// appIDParam reads and validates the appId path parameter, answering 400
// when it is malformed.
func appIDParam(c *gin.Context) (string, bool) {
	appID := c.Param("appId")
	if err := validateID(appID, "app_id"); err != nil {
		badRequest(c, err.Error())
		return "", false
	}
	return appID, true
}

// intParam reads an integer path parameter, answering 400 when it is not
// a number.
func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, name+" must be an integer")
		return 0, false
	}
	return n, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, listmodel.ErrInvalidIndex),
		errors.Is(err, shell.ErrInvalidArgument),
		errors.Is(err, app.ErrInvalidTransition),
		errors.Is(err, catalog.ErrInvalidEntry):
		return http.StatusBadRequest
	case errors.Is(err, shell.ErrNotFound), errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, listmodel.ErrReentrant):
		return http.StatusConflict
	case errors.Is(err, scopes.ErrUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, shell.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes err with the status it maps to.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
