package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(m *Manager) *[]Event {
	var events []Event
	m.OnEvent(func(ev Event) { events = append(events, ev) })
	return &events
}

func TestStart(t *testing.T) {
	m := NewManager(nil)
	events := collect(m)

	a, err := m.Start("camera-app")
	require.NoError(t, err)

	assert.Equal(t, "camera-app", a.AppID)
	assert.Equal(t, StateStarting, a.State)
	assert.True(t, a.Focused)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, []Event{{AppID: "camera-app", State: StateStarting, Focused: true}}, *events)

	_, err = m.Start("")
	assert.Error(t, err)
}

func TestFocusMovesBetweenApps(t *testing.T) {
	m := NewManager(nil)
	m.Start("a")
	m.Start("b")
	events := collect(m)

	require.True(t, m.Focus("a"))

	assert.Equal(t, []Event{
		{AppID: "b", State: StateStarting, Focused: false},
		{AppID: "a", State: StateStarting, Focused: true},
	}, *events)
	assert.False(t, m.Focus("missing"))

	got, _ := m.Get("b")
	assert.False(t, got.Focused)
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name  string
		steps []State
		err   error
	}{
		{"start run suspend resume", []State{StateRunning, StateSuspended, StateRunning}, nil},
		{"stop from starting", []State{StateStopped}, nil},
		{"cannot suspend while starting", []State{StateSuspended}, ErrInvalidTransition},
		{"cannot go back to starting", []State{StateRunning, StateStarting}, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil)
			m.Start("x")

			var err error
			for _, s := range tt.steps {
				if err = m.SetState("x", s); err != nil {
					break
				}
			}
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStopRemovesApp(t *testing.T) {
	m := NewManager(nil)
	m.Start("x")
	events := collect(m)

	require.NoError(t, m.Stop("x"))

	_, ok := m.Get("x")
	assert.False(t, ok)
	assert.Equal(t, []Event{{AppID: "x", State: StateStopped}}, *events)
	assert.Nil(t, m.Stats().FocusedID)
	assert.ErrorIs(t, m.Stop("x"), ErrNotFound)
}

func TestStats(t *testing.T) {
	m := NewManager(nil)
	m.Start("a")
	m.Start("b")
	m.Start("c")
	require.NoError(t, m.SetState("a", StateRunning))
	require.NoError(t, m.SetState("b", StateRunning))
	require.NoError(t, m.SetState("b", StateSuspended))

	stats := m.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Running)
	assert.Equal(t, 1, stats.Suspended)
	require.NotNil(t, stats.FocusedID)
	assert.Equal(t, "c", *stats.FocusedID)

	running := StateRunning
	assert.Len(t, m.List(&running), 1)
	assert.Len(t, m.List(nil), 3)
}

func TestDispatchQuickListAction(t *testing.T) {
	m := NewManager(nil)

	m.DispatchQuickListAction("gallery-app", 2)
	_, ok := m.Get("gallery-app")
	assert.False(t, ok)

	m.DispatchQuickListAction("gallery-app", 0)
	a, ok := m.Get("gallery-app")
	require.True(t, ok)
	assert.True(t, a.Focused)

	dispatches := m.Dispatches()
	require.Len(t, dispatches, 2)
	assert.Equal(t, 2, dispatches[0].ActionIndex)
	assert.Equal(t, 0, dispatches[1].ActionIndex)
}

func TestParseState(t *testing.T) {
	s, err := ParseState("suspended")
	require.NoError(t, err)
	assert.Equal(t, StateSuspended, s)

	_, err = ParseState("zombie")
	assert.Error(t, err)
}
