package shell

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/launcher"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/scopes"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/monitoring"
)

// Model names accepted by Observe.
const (
	ModelLauncher   = "launcher"
	ModelCategories = "categories"
)

// AppsCategoryID is the id of the special category listing the catalog.
const AppsCategoryID = "apps"

var (
	// ErrNotFound is returned for unknown items, rows or models.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for malformed requests.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Shell owns the view-models and serializes every access through its loop.
type Shell struct {
	loop       *Loop
	launcher   *launcher.Model
	categories *scopes.Categories
	counters   map[string]*scopes.Counter
	appsCount  *scopes.Counter

	catalog *catalog.Catalog
	fetcher *catalog.Fetcher
	apps    *app.Manager
	cfg     *config.Config
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// New builds the shell models from cfg. cat and apps are shared with the
// rest of the process; metrics may be nil.
func New(cfg *config.Config, cat *catalog.Catalog, apps *app.Manager, metrics *monitoring.Metrics, logger *zap.Logger) (*Shell, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Shell{
		loop:     NewLoop(logger),
		counters: make(map[string]*scopes.Counter),
		catalog:  cat,
		fetcher:  catalog.NewFetcher(catalog.DefaultFetcherConfig(), logger),
		apps:     apps,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger.Named("shell"),
	}

	opts := launcher.Options{
		Logger:           logger,
		RecentLimit:      cfg.Launcher.RecentLimit,
		RankByPopularity: cfg.Launcher.RankByPopularity,
	}
	if cat != nil {
		opts.Resolver = cat
	}
	if apps != nil {
		opts.Dispatcher = apps
	}
	s.launcher = launcher.NewModel(opts)

	s.categories = scopes.NewCategories(cfg.Scopes.Categories).
		WithProvider(s.results).
		WithLogger(logger).
		WithMetrics(metrics)

	if cfg.Scopes.AppsCategory && cat != nil {
		s.appsCount = scopes.NewCounter(cat.Len())
		if err := s.categories.AddSpecialCategory(AppsCategoryID, "Applications", "view-app-grid", "", s.appsCount); err != nil {
			return nil, err
		}
	}

	for _, appID := range cfg.Launcher.Pinned {
		if err := s.launcher.Pin(appID, launcher.NoIndex); err != nil {
			return nil, fmt.Errorf("pin %s: %w", appID, err)
		}
	}

	s.observe(ModelLauncher, s.launcher)
	s.observe(ModelCategories, s.categories)
	s.metrics.SetLauncherItems(s.launcher.Len())

	if apps != nil {
		apps.OnEvent(s.appEvent)
	}
	return s, nil
}

// results fills categories on first access: the catalog backs the apps
// category and every other category is synthesized.
func (s *Shell) results(info scopes.CategoryInfo) []scopes.Result {
	if info.ID == AppsCategoryID && s.catalog != nil {
		entries := s.catalog.All()
		out := make([]scopes.Result, 0, len(entries))
		for _, e := range entries {
			out = append(out, scopes.Result{
				URI:      "application:///" + e.DesktopFile,
				Title:    e.Name,
				Subtitle: e.AppID,
				Art:      e.Icon,
			})
		}
		return out
	}
	return scopes.SyntheticProvider(s.cfg.Scopes.ResultsPerCategory)(info)
}

func (s *Shell) observe(name string, m listmodel.Model) {
	m.Subscribe(listmodel.Funcs{
		OnEnd: func(c listmodel.Change) {
			s.metrics.RecordStructuralChange(name, c.Kind.String())
			if name == ModelLauncher {
				s.metrics.SetLauncherItems(m.Len())
			}
		},
		OnData: func(int, int, []listmodel.Role) {
			s.metrics.RecordDataChange(name)
		},
	})
}

// appEvent runs on the manager's goroutine and forwards to the loop.
func (s *Shell) appEvent(ev app.Event) {
	s.loop.Post(func() {
		err := s.launcher.ApplyAppEvent(launcher.AppEvent{
			AppID:   ev.AppID,
			State:   launcher.AppState(ev.State),
			Focused: ev.Focused,
		})
		if err != nil {
			s.logger.Warn("Ignoring application event", zap.String("app_id", ev.AppID), zap.Error(err))
		}
	})
}

// Run processes model work until ctx is cancelled.
func (s *Shell) Run(ctx context.Context) {
	s.logger.Info("Shell started",
		zap.Int("launcher_items", s.launcher.Len()),
		zap.Int("categories", s.categories.Len()))
	s.loop.Run(ctx)
}

// Close stops the loop.
func (s *Shell) Close() {
	s.loop.Close()
}

// Do runs fn on the loop.
func (s *Shell) Do(ctx context.Context, fn func() error) error {
	return s.loop.Do(ctx, fn)
}

// Catalog returns the metadata catalog, or nil.
func (s *Shell) Catalog() *catalog.Catalog { return s.catalog }

// Apps returns the lifecycle manager, or nil.
func (s *Shell) Apps() *app.Manager { return s.apps }

func (s *Shell) model(name string) (listmodel.Model, error) {
	switch name {
	case ModelLauncher:
		return s.launcher, nil
	case ModelCategories:
		return s.categories, nil
	}
	return nil, fmt.Errorf("model %q: %w", name, ErrNotFound)
}

// Observe subscribes the observer built by build to the named model. build
// and every observer callback run on the loop, so build may read the model
// to take a consistent snapshot.
func (s *Shell) Observe(ctx context.Context, name string, build func(m listmodel.Model) listmodel.Observer) (*listmodel.Subscription, error) {
	var sub *listmodel.Subscription
	err := s.loop.Do(ctx, func() error {
		m, err := s.model(name)
		if err != nil {
			return err
		}
		sub = m.Subscribe(build(m))
		return nil
	})
	return sub, err
}

// Unobserve revokes sub on the loop.
func (s *Shell) Unobserve(sub *listmodel.Subscription) {
	if sub == nil {
		return
	}
	s.loop.Post(sub.Revoke)
}
