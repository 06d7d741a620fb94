package shell

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// Launcher returns every launcher row keyed by role name.
func (s *Shell) Launcher(ctx context.Context) ([]map[string]any, error) {
	var rows []map[string]any
	err := s.loop.Do(ctx, func() error {
		rows = listmodel.Project(s.launcher)
		return nil
	})
	return rows, err
}

// LauncherItem returns the launcher row of appID.
func (s *Shell) LauncherItem(ctx context.Context, appID string) (map[string]any, error) {
	var row map[string]any
	err := s.loop.Do(ctx, func() error {
		i := s.launcher.Find(appID)
		if i < 0 {
			return fmt.Errorf("launcher item %q: %w", appID, ErrNotFound)
		}
		row = listmodel.ProjectRow(s.launcher, i)
		return nil
	})
	return row, err
}

// Pin pins appID at index. Index -1 pins in place or appends.
func (s *Shell) Pin(ctx context.Context, appID string, index int) error {
	if appID == "" {
		return fmt.Errorf("pin: %w: app id is required", ErrInvalidArgument)
	}
	return s.loop.Do(ctx, func() error {
		return s.launcher.Pin(appID, index)
	})
}

// Unpin clears the pinned flag of appID.
func (s *Shell) Unpin(ctx context.Context, appID string) error {
	return s.loop.Do(ctx, func() error {
		found, err := s.launcher.Unpin(appID)
		if !found {
			return fmt.Errorf("unpin %q: %w", appID, ErrNotFound)
		}
		return err
	})
}

// Move relocates a launcher row.
func (s *Shell) Move(ctx context.Context, from, to int) error {
	return s.loop.Do(ctx, func() error {
		return s.launcher.Move(from, to)
	})
}

// RequestRemove removes appID from the launcher.
func (s *Shell) RequestRemove(ctx context.Context, appID string) error {
	return s.loop.Do(ctx, func() error {
		if !s.launcher.RequestRemove(appID) {
			return fmt.Errorf("remove %q: %w", appID, ErrNotFound)
		}
		return nil
	})
}

// QuickList returns the quick-list rows of appID.
func (s *Shell) QuickList(ctx context.Context, appID string) ([]map[string]any, error) {
	var rows []map[string]any
	err := s.loop.Do(ctx, func() error {
		it := s.launcher.Get(s.launcher.Find(appID))
		if it == nil {
			return fmt.Errorf("quick list of %q: %w", appID, ErrNotFound)
		}
		rows = listmodel.Project(it.QuickList())
		return nil
	})
	return rows, err
}

// InvokeQuickListAction forwards an action of a launcher item to the
// dispatcher. The index is not checked against the item's quick list; the
// dispatcher decides what it means.
func (s *Shell) InvokeQuickListAction(ctx context.Context, appID string, actionIndex int) error {
	if actionIndex < 0 {
		return fmt.Errorf("action %d: %w", actionIndex, ErrInvalidArgument)
	}
	return s.loop.Do(ctx, func() error {
		if s.launcher.Find(appID) < 0 {
			return fmt.Errorf("quick list of %q: %w", appID, ErrNotFound)
		}
		s.launcher.QuickListActionInvoked(appID, actionIndex)
		return nil
	})
}

// SetItemCount sets the badge of appID and shows it when visible is true.
func (s *Shell) SetItemCount(ctx context.Context, appID string, count int, visible bool) error {
	return s.loop.Do(ctx, func() error {
		it := s.launcher.Get(s.launcher.Find(appID))
		if it == nil {
			return fmt.Errorf("launcher item %q: %w", appID, ErrNotFound)
		}
		it.SetCount(count)
		it.SetCountVisible(visible)
		return nil
	})
}

// Pinned returns the pinned application ids in launcher order.
func (s *Shell) Pinned(ctx context.Context) ([]string, error) {
	var out []string
	err := s.loop.Do(ctx, func() error {
		for _, it := range s.launcher.Items() {
			if it.Pinned() {
				out = append(out, it.AppID())
			}
		}
		return nil
	})
	return out, err
}
