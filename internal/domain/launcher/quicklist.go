package launcher

import (
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// Action is one quick-list entry.
type Action struct {
	Label        string
	Icon         string
	Clickable    bool
	HasSeparator bool
}

// Quick-list roles.
const (
	QuickListRoleLabel listmodel.Role = iota + 1
	QuickListRoleIcon
	QuickListRoleClickable
	QuickListRoleHasSeparator
)

var quickListRoleNames = map[listmodel.Role]string{
	QuickListRoleLabel:        "label",
	QuickListRoleIcon:         "icon",
	QuickListRoleClickable:    "clickable",
	QuickListRoleHasSeparator: "hasSeparator",
}

// QuickList is the action list owned by a single Item.
type QuickList struct {
	listmodel.Notifier
	actions *listmodel.List[Action]
}

var _ listmodel.Model = (*QuickList)(nil)

func newQuickList(actions ...Action) *QuickList {
	q := &QuickList{}
	q.actions = listmodel.NewList[Action](&q.Notifier)
	q.actions.Reset(actions)
	return q
}

func (q *QuickList) Len() int { return q.actions.Len() }

// Action returns the entry at i.
func (q *QuickList) Action(i int) (Action, bool) { return q.actions.At(i) }

// Append adds actions at the end of the list.
func (q *QuickList) Append(actions ...Action) error { return q.actions.Append(actions...) }

// relabel points the launch action, still labelled old, at a new name and
// icon.
func (q *QuickList) relabel(old, name, icon string) error {
	a, ok := q.actions.At(0)
	if !ok || a.Label != old || (a.Label == name && a.Icon == icon) {
		return nil
	}
	a.Label, a.Icon = name, icon
	return q.actions.Set(0, a, QuickListRoleLabel, QuickListRoleIcon)
}

// Remove deletes the action at i.
func (q *QuickList) Remove(i int) error {
	_, err := q.actions.Remove(i)
	return err
}

func (q *QuickList) Data(row int, role listmodel.Role) listmodel.Value {
	a, ok := q.actions.At(row)
	if !ok {
		return nil
	}
	switch role {
	case QuickListRoleLabel:
		return a.Label
	case QuickListRoleIcon:
		return a.Icon
	case QuickListRoleClickable:
		return a.Clickable
	case QuickListRoleHasSeparator:
		return a.HasSeparator
	}
	return nil
}

func (q *QuickList) RoleNames() map[listmodel.Role]string { return quickListRoleNames }
