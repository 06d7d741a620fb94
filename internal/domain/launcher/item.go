package launcher

import (
	"slices"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// NoProgress is the progress value of an item without a progress bar.
const NoProgress = -1

// Watch is the registration returned by Item.Watch.
type Watch struct {
	item      *Item
	fn        func(*Item, listmodel.Role)
	cancelled bool
}

// Cancel stops delivering attribute changes.
func (w *Watch) Cancel() {
	if w == nil || w.cancelled {
		return
	}
	w.cancelled = true
	w.item.watches = slices.DeleteFunc(w.item.watches, func(o *Watch) bool { return o == w })
}

// Item is one launcher entry. AppID never changes; every other attribute
// announces itself through the item's watches, only when its value changes.
type Item struct {
	appID        string
	desktopFile  string
	name         string
	icon         string
	keywords     []string
	popularity   uint
	pinned       bool
	running      bool
	recent       bool
	progress     int
	count        int
	countVisible bool
	focused      bool
	alerting     bool
	surfaceCount int

	quickList *QuickList
	watches   []*Watch
}

// NewItem creates an unpinned, stopped item described by md.
func NewItem(appID string, md Metadata) *Item {
	it := &Item{
		appID:       appID,
		desktopFile: md.DesktopFile,
		name:        md.Name,
		icon:        md.Icon,
		keywords:    append([]string(nil), md.Keywords...),
		progress:    NoProgress,
	}
	it.quickList = newQuickList(Action{Label: md.Name, Icon: md.Icon, Clickable: true})
	return it
}

// Watch calls fn with the changed role after every attribute change.
func (it *Item) Watch(fn func(*Item, listmodel.Role)) *Watch {
	w := &Watch{item: it, fn: fn}
	it.watches = append(it.watches, w)
	return w
}

func (it *Item) emit(role listmodel.Role) {
	for _, w := range slices.Clone(it.watches) {
		if !w.cancelled {
			w.fn(it, role)
		}
	}
}

func (it *Item) AppID() string { return it.appID }
func (it *Item) DesktopFile() string { return it.desktopFile }
func (it *Item) Name() string { return it.name }
func (it *Item) Icon() string { return it.icon }
func (it *Item) Keywords() []string { return slices.Clone(it.keywords) }
func (it *Item) Popularity() uint { return it.popularity }
func (it *Item) Pinned() bool { return it.pinned }
func (it *Item) Running() bool { return it.running }
func (it *Item) Recent() bool { return it.recent }
func (it *Item) Progress() int { return it.progress }
func (it *Item) Count() int { return it.count }
func (it *Item) CountVisible() bool { return it.countVisible }
func (it *Item) Focused() bool { return it.focused }
func (it *Item) Alerting() bool { return it.alerting }
func (it *Item) SurfaceCount() int { return it.surfaceCount }
func (it *Item) QuickList() *QuickList { return it.quickList }

// Idle reports whether the item has no reason to stay in the launcher.
func (it *Item) Idle() bool {
	return !it.pinned && !it.running && !it.recent
}

func set[T comparable](it *Item, field *T, v T, role listmodel.Role) {
	if *field == v {
		return
	}
	*field = v
	it.emit(role)
}

func (it *Item) SetDesktopFile(f string) { set(it, &it.desktopFile, f, RoleDesktopFile) }
func (it *Item) SetName(name string) { set(it, &it.name, name, RoleName) }
func (it *Item) SetIcon(icon string) { set(it, &it.icon, icon, RoleIcon) }
func (it *Item) SetPopularity(p uint) { set(it, &it.popularity, p, RolePopularity) }
func (it *Item) SetPinned(pinned bool) { set(it, &it.pinned, pinned, RolePinned) }
func (it *Item) SetRunning(running bool) { set(it, &it.running, running, RoleRunning) }
func (it *Item) SetRecent(recent bool) { set(it, &it.recent, recent, RoleRecent) }
func (it *Item) SetProgress(progress int) { set(it, &it.progress, progress, RoleProgress) }
func (it *Item) SetCount(count int) { set(it, &it.count, count, RoleCount) }
func (it *Item) SetCountVisible(v bool) { set(it, &it.countVisible, v, RoleCountVisible) }
func (it *Item) SetFocused(focused bool) { set(it, &it.focused, focused, RoleFocused) }
func (it *Item) SetAlerting(alerting bool) { set(it, &it.alerting, alerting, RoleAlerting) }
func (it *Item) SetSurfaceCount(n int) { set(it, &it.surfaceCount, n, RoleSurfaceCount) }

// SetKeywords replaces the keyword list.
func (it *Item) SetKeywords(keywords []string) {
	if slices.Equal(it.keywords, keywords) {
		return
	}
	it.keywords = slices.Clone(keywords)
	it.emit(RoleKeywords)
}
