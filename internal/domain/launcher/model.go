package launcher

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// Launcher roles.
const (
	RoleAppID listmodel.Role = iota + 1
	RoleDesktopFile
	RoleName
	RoleIcon
	RolePinned
	RoleRunning
	RoleRecent
	RoleProgress
	RoleCount
	RoleCountVisible
	RoleFocused
	RoleAlerting
	RoleKeywords
	RolePopularity
	RoleSurfaceCount
)

var roleNames = map[listmodel.Role]string{
	RoleAppID:        "appId",
	RoleDesktopFile:  "desktopFile",
	RoleName:         "name",
	RoleIcon:         "icon",
	RolePinned:       "pinned",
	RoleRunning:      "running",
	RoleRecent:       "recent",
	RoleProgress:     "progress",
	RoleCount:        "count",
	RoleCountVisible: "countVisible",
	RoleFocused:      "focused",
	RoleAlerting:     "alerting",
	RoleKeywords:     "keywords",
	RolePopularity:   "popularity",
	RoleSurfaceCount: "surfaceCount",
}

// NoIndex asks Pin to keep the current position, or to append.
const NoIndex = -1

// Metadata describes an application for a new item.
type Metadata struct {
	Name        string
	Icon        string
	DesktopFile string
	Keywords    []string
}

// MetadataResolver supplies item defaults for an application id.
type MetadataResolver interface {
	Resolve(appID string) (Metadata, bool)
}

// ActionDispatcher executes quick-list actions.
type ActionDispatcher interface {
	DispatchQuickListAction(appID string, actionIndex int)
}

// Options configures a Model.
type Options struct {
	Resolver   MetadataResolver
	Dispatcher ActionDispatcher
	Logger     *zap.Logger
	// RecentLimit is the number of stopped, unpinned applications kept as
	// recent entries. Zero removes them as soon as they stop.
	RecentLimit int
	// RankByPopularity reorders the unpinned tail by popularity.
	RankByPopularity bool
}

type entry struct {
	item  *Item
	watch *Watch
}

// Model is the launcher collection.
type Model struct {
	listmodel.Notifier
	entries *listmodel.List[entry]
	opts    Options
	logger  *zap.Logger
}

var _ listmodel.Model = (*Model)(nil)

// NewModel returns an empty launcher.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{opts: opts, logger: logger.Named("launcher")}
	m.entries = listmodel.NewList[entry](&m.Notifier)
	return m
}

func (m *Model) Len() int { return m.entries.Len() }

func (m *Model) RoleNames() map[listmodel.Role]string { return roleNames }

// Get returns the item at index, or nil when index is out of range.
func (m *Model) Get(index int) *Item {
	e, ok := m.entries.At(index)
	if !ok {
		return nil
	}
	return e.item
}

// Find returns the row of appID, or -1.
func (m *Model) Find(appID string) int {
	return m.entries.IndexFunc(func(e entry) bool { return e.item.appID == appID })
}

// Items returns the items in display order.
func (m *Model) Items() []*Item {
	out := make([]*Item, 0, m.entries.Len())
	for _, e := range m.entries.Items() {
		out = append(out, e.item)
	}
	return out
}

func (m *Model) Data(row int, role listmodel.Role) listmodel.Value {
	it := m.Get(row)
	if it == nil {
		return nil
	}
	switch role {
	case RoleAppID:
		return it.appID
	case RoleDesktopFile:
		return it.desktopFile
	case RoleName:
		return it.name
	case RoleIcon:
		return it.icon
	case RolePinned:
		return it.pinned
	case RoleRunning:
		return it.running
	case RoleRecent:
		return it.recent
	case RoleProgress:
		return it.progress
	case RoleCount:
		return it.count
	case RoleCountVisible:
		return it.countVisible
	case RoleFocused:
		return it.focused
	case RoleAlerting:
		return it.alerting
	case RoleKeywords:
		return it.Keywords()
	case RolePopularity:
		return it.popularity
	case RoleSurfaceCount:
		return it.surfaceCount
	}
	return nil
}

// Move relocates the row at oldIndex to newIndex.
func (m *Model) Move(oldIndex, newIndex int) error {
	return m.entries.Move(oldIndex, newIndex)
}

// insert adopts it at index and starts relaying its attribute changes.
func (m *Model) insert(index int, it *Item) error {
	e := entry{item: it}
	e.watch = it.Watch(m.relay)
	if err := m.entries.Insert(index, e); err != nil {
		e.watch.Cancel()
		return err
	}
	return nil
}

// remove drops the row at index and releases its item.
func (m *Model) remove(index int) error {
	e, err := m.entries.Remove(index)
	if err != nil {
		return err
	}
	e.watch.Cancel()
	return nil
}

// relay re-emits an item attribute change for the row the item occupies now.
func (m *Model) relay(it *Item, role listmodel.Role) {
	row := m.entries.IndexFunc(func(e entry) bool { return e.item == it })
	if row < 0 {
		return
	}
	m.NotifyDataChanged(row, row, role)
}
