package shell

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel/listmodeltest"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/scopes"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/monitoring"
)

type fixture struct {
	shell   *Shell
	catalog *catalog.Catalog
	apps    *app.Manager
	metrics *monitoring.Metrics
}

func newFixture(t *testing.T, mutate func(cfg *config.Config)) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Scopes.Categories = 2
	cfg.Scopes.ResultsPerCategory = 3
	if mutate != nil {
		mutate(cfg)
	}

	cat, err := catalog.New(0, nil)
	require.NoError(t, err)
	require.NoError(t, cat.Add(catalog.Entry{AppID: "camera-app", Name: "Camera", Icon: "camera.svg", DesktopFile: "camera-app.desktop"}))
	require.NoError(t, cat.Add(catalog.Entry{AppID: "gallery-app", Name: "Gallery"}))

	apps := app.NewManager(nil)
	metrics := monitoring.NewMetrics()

	s, err := New(cfg, cat, apps, metrics, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	t.Cleanup(cancel)

	return &fixture{shell: s, catalog: cat, apps: apps, metrics: metrics}
}

func appIDs(t *testing.T, s *Shell) []string {
	t.Helper()
	rows, err := s.Launcher(context.Background())
	require.NoError(t, err)
	var ids []string
	for _, r := range rows {
		ids = append(ids, r["appId"].(string))
	}
	return ids
}

func TestNewAppliesDefaultPins(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.Launcher.Pinned = []string{"camera-app", "dialer-app"}
	})

	assert.Equal(t, []string{"camera-app", "dialer-app"}, appIDs(t, f.shell))

	row, err := f.shell.LauncherItem(context.Background(), "camera-app")
	require.NoError(t, err)
	assert.Equal(t, "Camera", row["name"])
	assert.Equal(t, "camera.svg", row["icon"])
	assert.Equal(t, true, row["pinned"])

	row, err = f.shell.LauncherItem(context.Background(), "dialer-app")
	require.NoError(t, err)
	assert.Equal(t, "dialer-app.png", row["icon"])
}

func TestLauncherOperations(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.Launcher.Pinned = []string{"a", "b", "c"}
	})
	ctx := context.Background()
	s := f.shell

	require.NoError(t, s.Pin(ctx, "d", 1))
	assert.Equal(t, []string{"a", "d", "b", "c"}, appIDs(t, s))

	require.NoError(t, s.Move(ctx, 3, 0))
	assert.Equal(t, []string{"c", "a", "d", "b"}, appIDs(t, s))

	require.NoError(t, s.RequestRemove(ctx, "a"))
	assert.Equal(t, []string{"c", "d", "b"}, appIDs(t, s))

	assert.ErrorIs(t, s.RequestRemove(ctx, "a"), ErrNotFound)
	assert.ErrorIs(t, s.Move(ctx, 0, 9), listmodel.ErrInvalidIndex)
	assert.ErrorIs(t, s.Pin(ctx, "", 0), ErrInvalidArgument)

	require.NoError(t, s.Unpin(ctx, "d"))
	pinned, err := s.Pinned(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, pinned)

	_, err = s.LauncherItem(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppEventsReachLauncher(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.apps.Start("gallery-app")
	require.NoError(t, err)
	require.NoError(t, f.apps.SetState("gallery-app", app.StateRunning))

	require.Eventually(t, func() bool {
		row, err := f.shell.LauncherItem(ctx, "gallery-app")
		return err == nil && row["running"] == true && row["focused"] == true
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, f.apps.Stop("gallery-app"))
	require.Eventually(t, func() bool {
		_, err := f.shell.LauncherItem(ctx, "gallery-app")
		return err != nil
	}, time.Second, 5*time.Millisecond)
}

func TestQuickListInvokeStartsApp(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.Launcher.Pinned = []string{"camera-app"}
	})
	ctx := context.Background()

	actions, err := f.shell.QuickList(ctx, "camera-app")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "Camera", actions[0]["label"])

	require.NoError(t, f.shell.InvokeQuickListAction(ctx, "camera-app", 0))
	_, ok := f.apps.Get("camera-app")
	assert.True(t, ok)

	require.NoError(t, f.shell.InvokeQuickListAction(ctx, "camera-app", 4))
	dispatches := f.apps.Dispatches()
	require.Len(t, dispatches, 2)
	assert.Equal(t, 4, dispatches[1].ActionIndex)
	assert.ErrorIs(t, f.shell.InvokeQuickListAction(ctx, "camera-app", -1), ErrInvalidArgument)
	assert.ErrorIs(t, f.shell.InvokeQuickListAction(ctx, "nope", 1), ErrNotFound)
	_, err = f.shell.QuickList(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoriesWithAppsCategory(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	rows, err := f.shell.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, AppsCategoryID, rows[0]["categoryId"])
	assert.Equal(t, 2, rows[0]["count"])
	assert.NotContains(t, rows[0], "results")
	assert.Equal(t, 3, rows[1]["count"])

	results, err := f.shell.Results(ctx, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Camera", results[0]["title"])

	_, err = f.shell.Results(ctx, 7)
	assert.ErrorIs(t, err, listmodel.ErrInvalidIndex)
}

func TestCatalogChangeRefreshesAppsCategory(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.shell.Results(ctx, 0)
	require.NoError(t, err)

	require.NoError(t, f.shell.AddCatalogEntry(ctx, catalog.Entry{AppID: "notes", Name: "Notes"}))

	rows, err := f.shell.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rows[0]["count"])
	results, err := f.shell.Results(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	assert.ErrorIs(t, f.shell.AddCatalogEntry(ctx, catalog.Entry{}), ErrInvalidArgument)
}

func TestCatalogChangeResolvesPinnedItems(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.Launcher.Pinned = []string{"notes-app"}
	})
	ctx := context.Background()

	item, err := f.shell.LauncherItem(ctx, "notes-app")
	require.NoError(t, err)
	assert.Equal(t, "notes-app", item["name"])
	assert.Equal(t, "notes-app.png", item["icon"])

	require.NoError(t, f.shell.AddCatalogEntry(ctx, catalog.Entry{
		AppID:       "notes-app",
		Name:        "Notes",
		Icon:        "notes.svg",
		DesktopFile: "org.example.notes.desktop",
		Keywords:    []string{"memo"},
	}))

	item, err = f.shell.LauncherItem(ctx, "notes-app")
	require.NoError(t, err)
	assert.Equal(t, "Notes", item["name"])
	assert.Equal(t, "notes.svg", item["icon"])
	assert.Equal(t, "org.example.notes.desktop", item["desktopFile"])
	assert.Equal(t, []string{"memo"}, item["keywords"])
	assert.Equal(t, true, item["pinned"])

	actions, err := f.shell.QuickList(ctx, "notes-app")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "Notes", actions[0]["label"])
}

func TestSpecialCategoryWithCounter(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.Scopes.AppsCategory = false
	})
	ctx := context.Background()
	s := f.shell

	require.NoError(t, s.AddSpecialCategory(ctx, SpecialCategory{ID: "mail", Name: "Mail", Counter: "unread"}))
	require.NoError(t, s.SetCounter(ctx, "unread", 7))

	rows, err := s.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "mail", rows[0]["categoryId"])
	assert.Equal(t, 7, rows[0]["count"])

	counters, err := s.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"unread": 7}, counters)

	require.NoError(t, s.RemoveCategory(ctx, 0))
	assert.ErrorIs(t, s.RemoveCategory(ctx, 5), listmodel.ErrInvalidIndex)
	assert.ErrorIs(t, s.AddSpecialCategory(ctx, SpecialCategory{}), ErrInvalidArgument)
	assert.ErrorIs(t, s.SetCounter(ctx, "", 1), ErrInvalidArgument)
}

func TestOverrideCategoryJSON(t *testing.T) {
	f := newFixture(t, nil)

	err := f.shell.OverrideCategoryJSON(context.Background(), "0", "{}")
	assert.ErrorIs(t, err, scopes.ErrUnsupported)
}

func TestObserveStreamsChanges(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var rec *listmodeltest.Recorder
	var snapshot int
	sub, err := f.shell.Observe(ctx, ModelLauncher, func(m listmodel.Model) listmodel.Observer {
		snapshot = m.Len()
		rec = listmodeltest.NewRecorder(m)
		return rec
	})
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot)

	require.NoError(t, f.shell.Pin(ctx, "a", -1))
	require.NoError(t, f.shell.Do(ctx, func() error {
		assert.Equal(t, 1, rec.Count(listmodeltest.PhaseEnd, listmodel.KindInsert))
		return nil
	}))

	f.shell.Unobserve(sub)
	_, err = f.shell.Observe(ctx, "nope", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetCategories(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.shell.ResetCategories(ctx, 5))
	rows, err := f.shell.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.ErrorIs(t, f.shell.ResetCategories(ctx, -1), ErrInvalidArgument)
}

func TestReloadCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte("apps:\n  - id: notes\n    name: Notes\n"), 0o644))

	f := newFixture(t, func(cfg *config.Config) {
		cfg.Launcher.CatalogDir = dir
	})
	ctx := context.Background()

	n, err := f.shell.ReloadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := f.shell.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rows[0]["count"])
}
