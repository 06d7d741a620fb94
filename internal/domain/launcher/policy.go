package launcher

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// AppState is the lifecycle state reported by the application source.
type AppState string

const (
	AppStarting  AppState = "starting"
	AppRunning   AppState = "running"
	AppSuspended AppState = "suspended"
	AppStopped   AppState = "stopped"
)

// AppEvent is one lifecycle signal.
type AppEvent struct {
	AppID   string
	State   AppState
	Focused bool
}

// metadata resolves appID, falling back to names derived from the id.
func (m *Model) metadata(appID string) Metadata {
	md := Metadata{
		Name:        appID,
		Icon:        appID + ".png",
		DesktopFile: appID + ".desktop",
	}
	if m.opts.Resolver == nil {
		return md
	}
	if found, ok := m.opts.Resolver.Resolve(appID); ok {
		if found.Name != "" {
			md.Name = found.Name
		}
		if found.Icon != "" {
			md.Icon = found.Icon
		}
		if found.DesktopFile != "" {
			md.DesktopFile = found.DesktopFile
		}
		md.Keywords = found.Keywords
	}
	return md
}

// RefreshMetadata resolves every item again, so items created before the
// resolver knew their application pick up its name, icon and keywords.
// Each changed attribute is announced on its own role.
func (m *Model) RefreshMetadata() error {
	var errs []error
	for _, it := range m.Items() {
		md := m.metadata(it.appID)
		old := it.name
		it.SetDesktopFile(md.DesktopFile)
		it.SetName(md.Name)
		it.SetIcon(md.Icon)
		it.SetKeywords(md.Keywords)
		if err := it.quickList.relabel(old, md.Name, md.Icon); err != nil {
			errs = append(errs, fmt.Errorf("relabel %s: %w", it.appID, err))
		}
	}
	return errors.Join(errs...)
}

// Pin pins appID. An item already present is pinned in place when index is
// NoIndex or its current row, and moved to index otherwise. A new item is
// inserted at index, or appended for NoIndex.
func (m *Model) Pin(appID string, index int) error {
	current := m.Find(appID)
	if current >= 0 {
		it := m.Get(current)
		if index != NoIndex && index != current {
			if err := m.Move(current, index); err != nil {
				return fmt.Errorf("pin %s: %w", appID, err)
			}
		}
		it.SetPinned(true)
		m.logger.Debug("Pinned existing item", zap.String("app_id", appID), zap.Int("index", m.Find(appID)))
		return nil
	}

	if index == NoIndex {
		index = m.Len()
	}
	it := NewItem(appID, m.metadata(appID))
	it.pinned = true
	if err := m.insert(index, it); err != nil {
		return fmt.Errorf("pin %s: %w", appID, err)
	}
	m.logger.Debug("Pinned new item", zap.String("app_id", appID), zap.Int("index", index))
	return nil
}

// Unpin clears the pinned flag and drops the item once it is idle. It
// reports whether appID was present.
func (m *Model) Unpin(appID string) (bool, error) {
	row := m.Find(appID)
	if row < 0 {
		return false, nil
	}
	it := m.Get(row)
	it.SetPinned(false)
	if it.Idle() {
		if err := m.remove(m.Find(appID)); err != nil {
			return true, fmt.Errorf("unpin %s: %w", appID, err)
		}
	}
	if err := m.rank(); err != nil {
		return true, fmt.Errorf("unpin %s: %w", appID, err)
	}
	return true, nil
}

// RequestRemove removes appID when present, whether or not it is running.
// The lifecycle source re-adds a running application on its next signal.
func (m *Model) RequestRemove(appID string) bool {
	row := m.Find(appID)
	if row < 0 {
		return false
	}
	if err := m.remove(row); err != nil {
		return false
	}
	m.logger.Debug("Removed item", zap.String("app_id", appID), zap.Int("index", row))
	return true
}

// QuickListActionInvoked hands the action to the dispatcher untouched.
func (m *Model) QuickListActionInvoked(appID string, actionIndex int) {
	if m.opts.Dispatcher == nil {
		m.logger.Debug("No quick-list dispatcher", zap.String("app_id", appID), zap.Int("action", actionIndex))
		return
	}
	m.opts.Dispatcher.DispatchQuickListAction(appID, actionIndex)
}

// ApplyAppEvent folds a lifecycle signal into the launcher.
func (m *Model) ApplyAppEvent(ev AppEvent) error {
	switch ev.State {
	case AppStarting, AppRunning, AppSuspended:
		return m.appActive(ev)
	case AppStopped:
		return m.appStopped(ev.AppID)
	default:
		return fmt.Errorf("unknown application state %q", ev.State)
	}
}

func (m *Model) appActive(ev AppEvent) error {
	row := m.Find(ev.AppID)
	if row < 0 {
		it := NewItem(ev.AppID, m.metadata(ev.AppID))
		it.running = true
		it.popularity = 1
		it.focused = ev.Focused
		if err := m.insert(m.Len(), it); err != nil {
			return err
		}
		if ev.Focused {
			m.unfocusOthers(it)
		}
		return m.rank()
	}

	it := m.Get(row)
	if !it.running {
		it.SetPopularity(it.popularity + 1)
	}
	it.SetRunning(true)
	it.SetRecent(false)
	it.SetFocused(ev.Focused)
	if ev.Focused {
		m.unfocusOthers(it)
	}
	return m.rank()
}

func (m *Model) unfocusOthers(focused *Item) {
	for _, it := range m.Items() {
		if it != focused {
			it.SetFocused(false)
		}
	}
}

func (m *Model) appStopped(appID string) error {
	row := m.Find(appID)
	if row < 0 {
		return nil
	}
	it := m.Get(row)
	it.SetRunning(false)
	it.SetFocused(false)
	if !it.pinned && m.opts.RecentLimit > 0 {
		it.SetRecent(true)
	}
	if it.Idle() {
		if err := m.remove(m.Find(appID)); err != nil {
			return fmt.Errorf("drop stopped %s: %w", appID, err)
		}
	}
	if err := m.pruneRecents(); err != nil {
		return err
	}
	return m.rank()
}

// pruneRecents drops the least popular recent entries over the limit.
func (m *Model) pruneRecents() error {
	for {
		victim := -1
		recents := 0
		for i, it := range m.Items() {
			if it.pinned || it.running || !it.recent {
				continue
			}
			recents++
			if victim < 0 || it.popularity < m.Get(victim).popularity {
				victim = i
			}
		}
		if recents <= m.opts.RecentLimit || victim < 0 {
			return nil
		}
		appID := m.Get(victim).appID
		m.logger.Debug("Pruning recent item", zap.String("app_id", appID))
		if err := m.remove(victim); err != nil {
			return fmt.Errorf("prune recent %s: %w", appID, err)
		}
	}
}

// rank sorts the unpinned rows after the last pinned row by popularity,
// most popular first, using moves only.
func (m *Model) rank() error {
	if !m.opts.RankByPopularity {
		return nil
	}
	start := 0
	for i, it := range m.Items() {
		if it.pinned {
			start = i + 1
		}
	}
	for slot := start; slot < m.Len(); slot++ {
		best := slot
		for j := slot + 1; j < m.Len(); j++ {
			if m.Get(j).popularity > m.Get(best).popularity {
				best = j
			}
		}
		if best != slot {
			if err := m.Move(best, slot); err != nil {
				return fmt.Errorf("rank: %w", err)
			}
		}
	}
	return nil
}
