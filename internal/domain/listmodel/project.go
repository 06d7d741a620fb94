package listmodel

// Project returns every row of m as a map keyed by role name. Roles whose
// value is invalid or a nested Model are omitted.
func Project(m Model) []map[string]any {
	rows := make([]map[string]any, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		rows = append(rows, ProjectRow(m, i))
	}
	return rows
}

// ProjectRow returns one row of m keyed by role name, or nil when row is out
// of range.
func ProjectRow(m Model, row int) map[string]any {
	if row < 0 || row >= m.Len() {
		return nil
	}
	names := m.RoleNames()
	out := make(map[string]any, len(names))
	for role, name := range names {
		v := m.Data(row, role)
		if v == nil {
			continue
		}
		if _, nested := v.(Model); nested {
			continue
		}
		out[name] = v
	}
	return out
}

// RoleLabels maps roles to their names using m's role table. Unknown roles
// are skipped.
func RoleLabels(m Model, roles []Role) []string {
	names := m.RoleNames()
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if name, ok := names[r]; ok {
			out = append(out, name)
		}
	}
	return out
}
