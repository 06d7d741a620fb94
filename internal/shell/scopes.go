package shell

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/scopes"
)

// Categories returns every category row keyed by role name. The nested
// results model is omitted; use Results.
func (s *Shell) Categories(ctx context.Context) ([]map[string]any, error) {
	var rows []map[string]any
	err := s.loop.Do(ctx, func() error {
		rows = listmodel.Project(s.categories)
		return nil
	})
	return rows, err
}

// Results returns the results of the category at row, building them on
// first access.
func (s *Shell) Results(ctx context.Context, row int) ([]map[string]any, error) {
	var rows []map[string]any
	err := s.loop.Do(ctx, func() error {
		r := s.categories.Results(row)
		if r == nil {
			return fmt.Errorf("category row %d: %w", row, listmodel.ErrInvalidIndex)
		}
		rows = listmodel.Project(r)
		return nil
	})
	return rows, err
}

// SpecialCategory describes a category added at the top of the list.
type SpecialCategory struct {
	ID          string `json:"categoryId" binding:"required"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	RawTemplate string `json:"rawRendererTemplate"`
	// Counter names the shell counter driving the count role. Empty means
	// the count follows the results.
	Counter string `json:"counter"`
}

// AddSpecialCategory inserts sc at row 0.
func (s *Shell) AddSpecialCategory(ctx context.Context, sc SpecialCategory) error {
	if sc.ID == "" {
		return fmt.Errorf("add category: %w: id is required", ErrInvalidArgument)
	}
	return s.loop.Do(ctx, func() error {
		var source scopes.CountSource
		if sc.Counter != "" {
			source = s.counter(sc.Counter)
		}
		return s.categories.AddSpecialCategory(sc.ID, sc.Name, sc.Icon, sc.RawTemplate, source)
	})
}

// RemoveCategory removes the category at row.
func (s *Shell) RemoveCategory(ctx context.Context, row int) error {
	return s.loop.Do(ctx, func() error {
		return s.categories.RemoveCategory(row)
	})
}

// ResetCategories replaces every category with n synthesized ones.
func (s *Shell) ResetCategories(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("reset categories: %w: negative count", ErrInvalidArgument)
	}
	return s.loop.Do(ctx, func() error {
		return s.categories.Reset(n)
	})
}

// OverrideCategoryJSON always fails with scopes.ErrUnsupported.
func (s *Shell) OverrideCategoryJSON(ctx context.Context, categoryID, json string) error {
	return s.loop.Do(ctx, func() error {
		return s.categories.OverrideCategoryJSON(categoryID, json)
	})
}

// counter returns the named counter, creating it at zero (loop only).
func (s *Shell) counter(name string) *scopes.Counter {
	c, ok := s.counters[name]
	if !ok {
		c = scopes.NewCounter(0)
		s.counters[name] = c
	}
	return c
}

// SetCounter sets the named counter, creating it when missing.
func (s *Shell) SetCounter(ctx context.Context, name string, n int) error {
	if name == "" {
		return fmt.Errorf("set counter: %w: name is required", ErrInvalidArgument)
	}
	return s.loop.Do(ctx, func() error {
		s.counter(name).Set(n)
		return nil
	})
}

// Counters returns the value of every named counter.
func (s *Shell) Counters(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int)
	err := s.loop.Do(ctx, func() error {
		for name, c := range s.counters {
			out[name] = c.Count()
		}
		return nil
	})
	return out, err
}

// ReloadCatalog reloads the configured catalog directory and URL and
// refreshes the apps category. It returns the number of entries loaded.
func (s *Shell) ReloadCatalog(ctx context.Context) (int, error) {
	if s.catalog == nil {
		return 0, nil
	}

	total := 0
	if dir := s.cfg.Launcher.CatalogDir; dir != "" {
		n, err := s.catalog.LoadDir(ctx, dir, s.cfg.Launcher.CatalogPattern)
		if err != nil {
			return total, err
		}
		total += n
	}
	if u := s.cfg.Launcher.CatalogURL; u != "" {
		n, err := s.catalog.LoadURL(ctx, s.fetcher, u)
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, s.loop.Do(ctx, func() error {
		s.catalogChanged()
		return nil
	})
}

// AddCatalogEntry adds e to the catalog and refreshes the apps count.
func (s *Shell) AddCatalogEntry(ctx context.Context, e catalog.Entry) error {
	if s.catalog == nil {
		return fmt.Errorf("add catalog entry: %w: no catalog", ErrNotFound)
	}
	if err := s.catalog.Add(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return s.loop.Do(ctx, func() error {
		s.catalogChanged()
		return nil
	})
}

// catalogChanged re-resolves launcher items, refreshes the apps count and
// drops stale apps results (loop only).
func (s *Shell) catalogChanged() {
	if s.catalog != nil {
		if err := s.launcher.RefreshMetadata(); err != nil {
			s.logger.Warn("Launcher metadata refresh incomplete", zap.Error(err))
		}
	}
	if s.appsCount == nil {
		return
	}
	s.appsCount.Set(s.catalog.Len())
	if row := s.categories.Find(AppsCategoryID); row >= 0 {
		s.categories.Refresh(row)
	}
}
