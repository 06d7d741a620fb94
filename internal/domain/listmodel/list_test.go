package listmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel/listmodeltest"
)

// stringModel exposes a List[string] through the Model contract.
type stringModel struct {
	listmodel.Notifier
	list *listmodel.List[string]
}

const roleText listmodel.Role = 1

func newStringModel(items ...string) *stringModel {
	m := &stringModel{}
	m.list = listmodel.NewList[string](&m.Notifier)
	m.list.Reset(items)
	return m
}

func (m *stringModel) Len() int { return m.list.Len() }

func (m *stringModel) Data(row int, role listmodel.Role) listmodel.Value {
	s, ok := m.list.At(row)
	if !ok || role != roleText {
		return nil
	}
	return s
}

func (m *stringModel) RoleNames() map[listmodel.Role]string {
	return map[listmodel.Role]string{roleText: "text"}
}

func TestInsertBracket(t *testing.T) {
	m := newStringModel("a", "b")
	rec := listmodeltest.Record(m)

	require.NoError(t, m.list.Insert(1, "x", "y"))

	assert.Equal(t, []string{"a", "x", "y", "b"}, m.list.Items())
	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, listmodeltest.PhaseBegin, events[0].Phase)
	assert.Equal(t, listmodel.Change{Kind: listmodel.KindInsert, First: 1, Last: 2}, events[0].Change)
	assert.Equal(t, 2, events[0].Len, "begin must observe the old state")
	assert.Equal(t, listmodeltest.PhaseEnd, events[1].Phase)
	assert.Equal(t, 4, events[1].Len, "end must observe the new state")
}

func TestInsertBounds(t *testing.T) {
	m := newStringModel("a")
	rec := listmodeltest.Record(m)

	assert.ErrorIs(t, m.list.Insert(-1, "x"), listmodel.ErrInvalidIndex)
	assert.ErrorIs(t, m.list.Insert(2, "x"), listmodel.ErrInvalidIndex)
	require.NoError(t, m.list.Insert(1))
	require.NoError(t, m.list.Insert(1, "z"))

	assert.Equal(t, []string{"a", "z"}, m.list.Items())
	assert.Len(t, rec.Events(), 2)
}

func TestRemove(t *testing.T) {
	m := newStringModel("a", "b", "c", "d")
	rec := listmodeltest.Record(m)

	got, err := m.list.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	removed, err := m.list.RemoveRange(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, removed)
	assert.Equal(t, []string{"a"}, m.list.Items())

	_, err = m.list.Remove(1)
	assert.ErrorIs(t, err, listmodel.ErrInvalidIndex)
	assert.Equal(t, 2, rec.Count(listmodeltest.PhaseBegin, listmodel.KindRemove))
	assert.Equal(t, 2, rec.Count(listmodeltest.PhaseEnd, listmodel.KindRemove))
}

func TestSet(t *testing.T) {
	m := newStringModel("a", "b")
	rec := listmodeltest.Record(m)

	require.NoError(t, m.list.Set(1, "B", roleText))
	assert.Equal(t, []string{"a", "B"}, m.list.Items())
	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, listmodeltest.PhaseData, events[0].Phase)
	assert.Equal(t, 1, events[0].First)
	assert.Equal(t, []listmodel.Role{roleText}, events[0].Roles)

	assert.ErrorIs(t, m.list.Set(2, "c"), listmodel.ErrInvalidIndex)
	assert.Len(t, rec.Events(), 1)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 3, []string{"b", "c", "d", "a", "e"}},
		{"backward", 4, 1, []string{"a", "e", "b", "c", "d"}},
		{"adjacent", 2, 3, []string{"a", "b", "d", "c", "e"}},
		{"same", 2, 2, []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newStringModel("a", "b", "c", "d", "e")
			rec := listmodeltest.Record(m)

			require.NoError(t, m.list.Move(tt.from, tt.to))
			assert.Equal(t, tt.want, m.list.Items())

			if tt.from == tt.to {
				assert.Empty(t, rec.Events())
				return
			}
			events := rec.Events()
			require.Len(t, events, 2)
			want := listmodel.Change{Kind: listmodel.KindMove, First: tt.from, Last: tt.from, Dest: tt.to}
			assert.Equal(t, want, events[0].Change)
			assert.Equal(t, want, events[1].Change)
		})
	}
}

func TestMoveRoundTrip(t *testing.T) {
	original := []string{"a", "b", "c", "d", "e", "f"}
	for a := range original {
		for b := range original {
			m := newStringModel(original...)
			require.NoError(t, m.list.Move(a, b))
			require.NoError(t, m.list.Move(b, a))
			assert.Equal(t, original, m.list.Items(), "move(%d,%d) then back", a, b)
		}
	}
}

func TestMoveBounds(t *testing.T) {
	m := newStringModel("a", "b")
	assert.ErrorIs(t, m.list.Move(0, 2), listmodel.ErrInvalidIndex)
	assert.ErrorIs(t, m.list.Move(-1, 0), listmodel.ErrInvalidIndex)
	assert.Equal(t, []string{"a", "b"}, m.list.Items())
}

func TestAtOutOfRange(t *testing.T) {
	m := newStringModel("a")
	_, ok := m.list.At(1)
	assert.False(t, ok)
	_, ok = m.list.At(-1)
	assert.False(t, ok)
	assert.Nil(t, m.Data(3, roleText))
	assert.Nil(t, m.Data(0, listmodel.Role(99)))
}

func TestReentrantMutationRejected(t *testing.T) {
	m := newStringModel("a")
	var inner error
	m.Subscribe(listmodel.Funcs{
		OnBegin: func(listmodel.Change) {
			inner = m.list.Append("nested")
		},
	})

	require.NoError(t, m.list.Append("b"))
	assert.ErrorIs(t, inner, listmodel.ErrReentrant)
	assert.Equal(t, []string{"a", "b"}, m.list.Items())
	assert.False(t, m.list.Changing())
}

func TestRevokeDuringDispatch(t *testing.T) {
	m := newStringModel()
	var second int
	var sub *listmodel.Subscription
	m.Subscribe(listmodel.Funcs{OnBegin: func(listmodel.Change) { sub.Revoke() }})
	sub = m.Subscribe(listmodel.Funcs{OnBegin: func(listmodel.Change) { second++ }})

	require.NoError(t, m.list.Append("a"))
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, m.Subscribers())

	sub.Revoke()
	assert.Equal(t, 1, m.Subscribers())
}

func TestProject(t *testing.T) {
	m := newStringModel("a", "b")
	rows := listmodel.Project(m)
	assert.Equal(t, []map[string]any{{"text": "a"}, {"text": "b"}}, rows)
	assert.Nil(t, listmodel.ProjectRow(m, 2))
	assert.Equal(t, []string{"text"}, listmodel.RoleLabels(m, []listmodel.Role{roleText, 42}))
}

func TestTableDouble(t *testing.T) {
	table := listmodeltest.NewTable(
		map[listmodel.Role]string{roleText: "text"},
		map[listmodel.Role]listmodel.Value{roleText: "one"},
	)
	rec := listmodeltest.Record(table)

	table.Set(0, roleText, "uno")

	assert.Equal(t, "uno", table.Data(0, roleText))
	data := rec.Data()
	require.Len(t, data, 1)
	assert.Equal(t, []listmodel.Role{roleText}, data[0].Roles)
	assert.Equal(t, []map[string]any{{"text": "uno"}}, listmodel.Project(table))
}

func TestProjectSkipsNestedModels(t *testing.T) {
	const roleChild listmodel.Role = 2
	child := newStringModel("x")
	table := listmodeltest.NewTable(
		map[listmodel.Role]string{roleText: "text", roleChild: "child"},
		map[listmodel.Role]listmodel.Value{roleText: "parent", roleChild: child},
	)

	assert.Equal(t, map[string]any{"text": "parent"}, listmodel.ProjectRow(table, 0))
}
