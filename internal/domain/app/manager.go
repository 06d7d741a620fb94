package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned for application ids the manager does not track.
	ErrNotFound = errors.New("application not found")
	// ErrInvalidTransition is returned for state changes the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// State represents application lifecycle states
type State string

const (
	StateStarting  State = "starting"
	StateRunning   State = "running"
	StateSuspended State = "suspended"
	StateStopped   State = "stopped"
)

// ParseState validates a state name.
func ParseState(s string) (State, error) {
	switch st := State(s); st {
	case StateStarting, StateRunning, StateSuspended, StateStopped:
		return st, nil
	}
	return "", fmt.Errorf("unknown state %q", s)
}

var transitions = map[State][]State{
	StateStarting:  {StateRunning, StateStopped},
	StateRunning:   {StateSuspended, StateStopped},
	StateSuspended: {StateRunning, StateStopped},
}

func allowed(from, to State) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Application is one tracked application instance.
type Application struct {
	ID        string    `json:"id"`
	AppID     string    `json:"app_id"`
	State     State     `json:"state"`
	Focused   bool      `json:"focused"`
	StartedAt time.Time `json:"started_at"`
}

// Event is emitted after every state or focus change.
type Event struct {
	AppID   string
	State   State
	Focused bool
}

// Listener receives lifecycle events. Listeners run on the goroutine that
// caused the change, after the manager released its lock.
type Listener func(Event)

// Dispatch records a quick-list action handed to the manager.
type Dispatch struct {
	AppID       string    `json:"app_id"`
	ActionIndex int       `json:"action_index"`
	At          time.Time `json:"at"`
}

// Stats contains manager statistics
type Stats struct {
	Total     int     `json:"total"`
	Running   int     `json:"running"`
	Suspended int     `json:"suspended"`
	FocusedID *string `json:"focused_app_id,omitempty"`
}

// Manager tracks application lifecycle and focus
type Manager struct {
	mu         sync.RWMutex
	apps       map[string]*Application // Protected by mu, keyed by AppID
	focusedID  *string                 // Protected by mu
	dispatches []Dispatch              // Protected by mu
	listeners  []Listener              // Protected by mu
	logger     *zap.Logger
}

// NewManager creates a new app manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		apps:   make(map[string]*Application),
		logger: logger.Named("apps"),
	}
}

// OnEvent registers a listener.
func (m *Manager) OnEvent(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Manager) emit(events []Event) {
	m.mu.RLock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}

func event(a *Application) Event {
	return Event{AppID: a.AppID, State: a.State, Focused: a.Focused}
}

// Start launches appID in the starting state and focuses it. Starting an
// application that is already tracked only focuses it.
func (m *Manager) Start(appID string) (*Application, error) {
	if appID == "" {
		return nil, fmt.Errorf("app id is required")
	}

	m.mu.Lock()
	a, exists := m.apps[appID]
	if !exists {
		a = &Application{
			ID:        uuid.New().String(),
			AppID:     appID,
			State:     StateStarting,
			StartedAt: time.Now(),
		}
		m.apps[appID] = a
	}
	events := m.focusLocked(a)
	if !exists && len(events) == 0 {
		events = append(events, event(a))
	}
	appCopy := *a
	m.mu.Unlock()

	if !exists {
		m.logger.Info("Application starting", zap.String("app_id", appID), zap.String("instance", appCopy.ID))
	}
	m.emit(events)
	return &appCopy, nil
}

// SetState moves appID to state. Stopping removes the application.
func (m *Manager) SetState(appID string, state State) error {
	m.mu.Lock()
	a, ok := m.apps[appID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("set state of %s: %w", appID, ErrNotFound)
	}
	if !allowed(a.State, state) {
		from := a.State
		m.mu.Unlock()
		return fmt.Errorf("%s: %s -> %s: %w", appID, from, state, ErrInvalidTransition)
	}
	if a.State == state {
		m.mu.Unlock()
		return nil
	}

	a.State = state
	if state == StateStopped {
		a.Focused = false
		delete(m.apps, appID)
		if m.focusedID != nil && *m.focusedID == appID {
			m.focusedID = nil
		}
	}
	events := []Event{event(a)}
	m.mu.Unlock()

	m.logger.Debug("Application state changed", zap.String("app_id", appID), zap.String("state", string(state)))
	m.emit(events)
	return nil
}

// Stop stops appID.
func (m *Manager) Stop(appID string) error {
	return m.SetState(appID, StateStopped)
}

// Focus brings an app to foreground
func (m *Manager) Focus(appID string) bool {
	m.mu.Lock()
	a, ok := m.apps[appID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	events := m.focusLocked(a)
	m.mu.Unlock()

	m.emit(events)
	return true
}

// focusLocked focuses a and unfocuses the previous application (must hold
// lock). It returns the resulting events.
func (m *Manager) focusLocked(a *Application) []Event {
	if a.Focused {
		return nil
	}
	var events []Event
	if m.focusedID != nil {
		if current, exists := m.apps[*m.focusedID]; exists && current != a {
			current.Focused = false
			events = append(events, event(current))
		}
	}
	a.Focused = true
	id := a.AppID
	m.focusedID = &id
	return append(events, event(a))
}

// DispatchQuickListAction executes a launcher quick-list action. Action 0
// launches or focuses the application; other actions are recorded.
func (m *Manager) DispatchQuickListAction(appID string, actionIndex int) {
	m.mu.Lock()
	m.dispatches = append(m.dispatches, Dispatch{AppID: appID, ActionIndex: actionIndex, At: time.Now()})
	m.mu.Unlock()

	m.logger.Info("Quick-list action", zap.String("app_id", appID), zap.Int("action", actionIndex))
	if actionIndex == 0 {
		if _, err := m.Start(appID); err != nil {
			m.logger.Warn("Quick-list launch failed", zap.String("app_id", appID), zap.Error(err))
		}
	}
}

// Dispatches returns the recorded quick-list actions.
func (m *Manager) Dispatches() []Dispatch {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Dispatch(nil), m.dispatches...)
}

// Get retrieves an app by application id
func (m *Manager) Get(appID string) (*Application, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.apps[appID]
	if !ok {
		return nil, false
	}
	appCopy := *a
	return &appCopy, true
}

// List returns all apps, optionally filtered by state
func (m *Manager) List(state *State) []*Application {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := make([]*Application, 0, len(m.apps))
	for _, a := range m.apps {
		if state == nil || a.State == *state {
			appCopy := *a
			apps = append(apps, &appCopy)
		}
	}
	return apps
}

// Stats returns manager statistics
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Total: len(m.apps)}
	for _, a := range m.apps {
		switch a.State {
		case StateRunning:
			stats.Running++
		case StateSuspended:
			stats.Suspended++
		}
	}
	if m.focusedID != nil {
		id := *m.focusedID
		stats.FocusedID = &id
	}
	return stats
}
