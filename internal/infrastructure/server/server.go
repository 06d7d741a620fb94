package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	shellhttp "github.com/GriffinCanCode/AgentOS/shell/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/shell/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/shell/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/shell/internal/shell"
)

// Server wraps the HTTP server and the shell models behind it.
type Server struct {
	router  *gin.Engine
	handler http.Handler
	shell   *shell.Shell
	hub     *ws.Hub
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance with a logger built from cfg.
func NewServer(cfg *config.Config) (*Server, error) {
	lc := logging.DefaultConfig()
	if cfg.Logging.Development {
		lc = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		lc.Level = cfg.Logging.Level
	}
	logger, err := logging.New(lc)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return NewWithLogger(cfg, logger)
}

// NewWithLogger creates a new server instance logging to logger.
func NewWithLogger(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger.Info("Initializing shell server",
		zap.String("port", cfg.Server.Port),
		zap.String("catalog_dir", cfg.Launcher.CatalogDir),
		zap.String("catalog_url", cfg.Launcher.CatalogURL),
	)

	metrics := monitoring.NewMetrics()

	cat, err := catalog.New(cfg.Launcher.SearchCacheSize, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}
	apps := app.NewManager(logger.Logger)

	sh, err := shell.New(cfg, cat, apps, metrics, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell: %w", err)
	}
	hub := ws.NewHub(sh, metrics, logger.Logger, cfg.WS.SendBuffer)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logger.Middleware())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowOrigins...)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := shellhttp.NewHandlers(sh, logger.Logger)
	handlers.Register(router)

	// WebSocket
	router.GET("/ws", hub.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s := &Server{
		router:  router,
		handler: router,
		shell:   sh,
		hub:     hub,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
	if cfg.Server.Compression {
		s.handler = compress(router)
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// compress gzips every response except the websocket upgrade, which needs
// the raw connection.
func compress(h http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") != "" {
			h.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Shell returns the view-model shell served by s.
func (s *Server) Shell() *shell.Shell {
	return s.shell
}

// Start runs the shell loop and loads the configured catalog. It returns
// once the catalog is loaded; catalog errors are logged, not fatal.
func (s *Server) Start(ctx context.Context) {
	go s.shell.Run(ctx)

	n, err := s.shell.ReloadCatalog(ctx)
	if err != nil {
		s.logger.Warn("Failed to load catalog", zap.Error(err))
		return
	}
	s.logger.Info("Catalog loaded", zap.Int("entries", n))
}

// Run starts the shell and serves HTTP until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.Start(ctx)

	srv := &http.Server{Handler: s.handler}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer stop()
	s.logger.Info("Shutting down server...")
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close disconnects stream clients and stops the shell loop.
func (s *Server) Close() {
	s.hub.Close()
	s.shell.Close()
	_ = s.logger.Sync()
}
