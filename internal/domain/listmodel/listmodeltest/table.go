package listmodeltest

import (
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// Table is an in-memory listmodel.Model over fixed rows. It never announces
// structural changes; Set announces a data change.
type Table struct {
	listmodel.Notifier
	names map[listmodel.Role]string
	rows  []map[listmodel.Role]listmodel.Value
}

// NewTable returns a Table with the given role names and rows.
func NewTable(names map[listmodel.Role]string, rows ...map[listmodel.Role]listmodel.Value) *Table {
	return &Table{names: names, rows: rows}
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Data(row int, role listmodel.Role) listmodel.Value {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	if _, ok := t.names[role]; !ok {
		return nil
	}
	return t.rows[row][role]
}

func (t *Table) RoleNames() map[listmodel.Role]string { return t.names }

// Set stores a cell and announces it.
func (t *Table) Set(row int, role listmodel.Role, v listmodel.Value) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row][role] = v
	t.NotifyDataChanged(row, row, role)
}
