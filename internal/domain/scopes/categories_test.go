package scopes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel/listmodeltest"
)

func TestSynthesizedCategories(t *testing.T) {
	c := NewCategories(2)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "1", c.Data(1, RoleCategoryID))
	assert.Equal(t, "Category 1", c.Data(1, RoleName))
	assert.Equal(t, "gtk-apply", c.Data(1, RoleIcon))
	assert.Equal(t, "", c.Data(1, RoleRawRendererTemplate))
	assert.Equal(t, DefaultResultsPerCategory, c.Data(0, RoleCount))
	assert.Nil(t, c.Data(2, RoleName))
	assert.Nil(t, c.Data(0, listmodel.Role(99)))
}

func TestNegativeCountsYieldEmptyModels(t *testing.T) {
	c := NewCategories(-1)
	assert.Equal(t, 0, c.Len())

	c = NewCategories(2)
	require.NoError(t, c.Reset(-3))
	assert.Equal(t, 0, c.Len())

	assert.Empty(t, SyntheticResults("a", -5))
}

func TestResultsMemoized(t *testing.T) {
	c := NewCategories(3)

	first := c.Data(1, RoleResults).(*Results)
	second := c.Data(1, RoleResults).(*Results)

	assert.Same(t, first, second)
	assert.Equal(t, "1", first.CategoryID())
	assert.Equal(t, DefaultResultsPerCategory, first.Count())
	assert.True(t, c.Cached(1))
	assert.False(t, c.Cached(0))
}

func TestStructuralChangeInvalidatesCache(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, c *Categories)
	}{
		{"insert", func(t *testing.T, c *Categories) {
			require.NoError(t, c.AddSpecialCategory("special", "Special", "", "", nil))
		}},
		{"remove", func(t *testing.T, c *Categories) {
			require.NoError(t, c.RemoveCategory(2))
		}},
		{"reset", func(t *testing.T, c *Categories) {
			require.NoError(t, c.Reset(3))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCategories(3)
			before := c.Results(1)
			c.Results(0)

			tt.mutate(t, c)

			assert.False(t, c.Cached(0))
			assert.False(t, c.Cached(1))
			after := c.Results(1)
			assert.NotSame(t, before, after)
		})
	}
}

func TestCacheEmptyWhenObserversSeeEnd(t *testing.T) {
	c := NewCategories(2)
	c.Results(0)
	var cachedAtEnd bool
	c.Subscribe(listmodel.Funcs{OnEnd: func(listmodel.Change) { cachedAtEnd = c.Cached(0) }})

	require.NoError(t, c.AddSpecialCategory("s", "S", "", "", nil))

	assert.False(t, cachedAtEnd)
	assert.Equal(t, "s", c.Results(0).CategoryID())
}

func TestAddSpecialCategoryBracket(t *testing.T) {
	c := NewCategories(1)
	rec := listmodeltest.Record(c)

	require.NoError(t, c.AddSpecialCategory("apps", "Apps", "grid", "{}", nil))

	events := rec.Structural()
	require.Len(t, events, 2)
	want := listmodel.Change{Kind: listmodel.KindInsert, First: 0, Last: 0}
	assert.Equal(t, want, events[0].Change)
	assert.Equal(t, 1, events[0].Len)
	assert.Equal(t, want, events[1].Change)
	assert.Equal(t, 2, events[1].Len)

	info, ok := c.Info(0)
	require.True(t, ok)
	assert.True(t, info.Special)
	assert.Equal(t, "{}", info.RawTemplate)
	assert.Equal(t, 0, c.Results(0).Count(), "special categories have no synthesized results")
	assert.Equal(t, 1, c.Find("0"))
}

func TestCountSourceScenario(t *testing.T) {
	c := NewCategories(1)
	counter := NewCounter(5)
	require.NoError(t, c.AddSpecialCategory("special", "Special", "", "", counter))
	rec := listmodeltest.Record(c)

	assert.Equal(t, 5, c.Data(0, RoleCount))

	counter.Set(7)

	data := rec.Data()
	require.Len(t, data, 1)
	assert.Equal(t, 0, data[0].First)
	assert.Equal(t, 0, data[0].Last)
	assert.Equal(t, []listmodel.Role{RoleCount}, data[0].Roles)
	assert.Empty(t, rec.Structural())
	assert.Equal(t, 7, c.Data(0, RoleCount))

	rec.Clear()
	counter.Set(7)
	assert.Empty(t, rec.Events(), "unchanged value")
}

func TestCountSourceFollowsShiftedRow(t *testing.T) {
	c := NewCategories(1)
	counter := NewCounter(1)
	require.NoError(t, c.AddSpecialCategory("first", "First", "", "", counter))
	require.NoError(t, c.AddSpecialCategory("second", "Second", "", "", nil))
	require.Equal(t, 1, c.Find("first"))
	rec := listmodeltest.Record(c)

	counter.Add(2)

	data := rec.Data()
	require.Len(t, data, 1)
	assert.Equal(t, 1, data[0].First)
	assert.Equal(t, 1, data[0].Last)
	assert.Equal(t, []listmodel.Role{RoleCount}, data[0].Roles)
	assert.Equal(t, 3, c.Data(1, RoleCount))
}

func TestSharedCountSource(t *testing.T) {
	c := NewCategories(0)
	counter := NewCounter(0)
	require.NoError(t, c.AddSpecialCategory("a", "A", "", "", counter))
	require.NoError(t, c.AddSpecialCategory("b", "B", "", "", counter))
	rec := listmodeltest.Record(c)

	counter.Set(4)

	data := rec.Data()
	require.Len(t, data, 2)
	for _, ev := range data {
		assert.Equal(t, ev.First, ev.Last)
		assert.Equal(t, []listmodel.Role{RoleCount}, ev.Roles)
	}
}

func TestRemovedRowUnsubscribes(t *testing.T) {
	c := NewCategories(1)
	counter := NewCounter(0)
	require.NoError(t, c.AddSpecialCategory("s", "S", "", "", counter))
	require.Equal(t, 1, counter.Listeners())

	require.NoError(t, c.RemoveCategory(0))
	assert.Equal(t, 0, counter.Listeners())

	rec := listmodeltest.Record(c)
	counter.Set(10)
	assert.Empty(t, rec.Events())
}

func TestResetUnsubscribes(t *testing.T) {
	c := NewCategories(1)
	counter := NewCounter(0)
	require.NoError(t, c.AddSpecialCategory("s", "S", "", "", counter))

	require.NoError(t, c.Reset(4))

	assert.Equal(t, 0, counter.Listeners())
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, -1, c.Find("s"))
}

func TestRemoveCategoryInvalid(t *testing.T) {
	c := NewCategories(1)
	rec := listmodeltest.Record(c)

	assert.ErrorIs(t, c.RemoveCategory(1), listmodel.ErrInvalidIndex)
	assert.Empty(t, rec.Events())
}

func TestOverrideCategoryJSONUnsupported(t *testing.T) {
	c := NewCategories(1)

	err := c.OverrideCategoryJSON("0", `{"template":{}}`)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.NotErrorIs(t, err, listmodel.ErrInvalidIndex)
}

func TestDynamicRolesFollowPosition(t *testing.T) {
	c := NewCategories(2)
	assert.Equal(t, "grid", c.Data(0, RoleRenderer).(map[string]any)["category-layout"])
	assert.Equal(t, "carousel", c.Data(1, RoleRenderer).(map[string]any)["category-layout"])

	require.NoError(t, c.AddSpecialCategory("s", "S", "", "", nil))
	assert.Equal(t, "carousel", c.Data(1, RoleRenderer).(map[string]any)["category-layout"])
	assert.Equal(t, "small", c.Data(1, RoleRenderer).(map[string]any)["card-size"])

	components := c.Data(0, RoleComponents).(map[string]any)
	assert.Equal(t, "title", components["title"])
	assert.Equal(t, map[string]any{"aspect-ratio": "1.0", "field": "art"}, components["art"])
}

func TestCustomProvider(t *testing.T) {
	var calls []CategoryInfo
	c := NewCategories(2).WithProvider(func(info CategoryInfo) []Result {
		calls = append(calls, info)
		return []Result{{URI: "x://" + info.ID, Title: info.Name}}
	})

	r := c.Results(1)
	c.Results(1)

	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Row)
	assert.Equal(t, "x://1", r.Data(0, ResultRoleURI))
	assert.Equal(t, 1, c.Data(1, RoleCount))
}

func TestRefreshRebuildsResults(t *testing.T) {
	c := NewCategories(2)
	first := c.Results(1)
	rec := listmodeltest.Record(c)

	require.NoError(t, c.Refresh(1))

	assert.False(t, c.Cached(1))
	assert.NotSame(t, first, c.Results(1))
	data := rec.Data()
	require.Len(t, data, 1)
	assert.Equal(t, 1, data[0].First)
	assert.Equal(t, []listmodel.Role{RoleResults, RoleCount}, data[0].Roles)
	assert.Empty(t, rec.Structural())

	assert.ErrorIs(t, c.Refresh(5), listmodel.ErrInvalidIndex)
}
