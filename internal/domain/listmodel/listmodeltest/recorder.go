// Package listmodeltest provides test doubles for listmodel observers and
// models.
package listmodeltest

import (
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// Phase tells which callback produced an Event.
type Phase string

const (
	PhaseBegin Phase = "begin"
	PhaseEnd   Phase = "end"
	PhaseData  Phase = "data"
)

// Event is one recorded notification.
type Event struct {
	Phase  Phase
	Change listmodel.Change
	First  int
	Last   int
	Roles  []listmodel.Role
	// Len is the model length observed while the callback ran.
	Len int
}

// Recorder records every notification it receives.
type Recorder struct {
	model  listmodel.Model
	sub    *listmodel.Subscription
	events []Event
}

// Record subscribes a new Recorder to m.
func Record(m listmodel.Model) *Recorder {
	r := NewRecorder(m)
	r.sub = m.Subscribe(r)
	return r
}

// NewRecorder returns a Recorder reading lengths from m that is not yet
// subscribed, for callers that subscribe it themselves.
func NewRecorder(m listmodel.Model) *Recorder {
	return &Recorder{model: m}
}

func (r *Recorder) BeginChange(c listmodel.Change) {
	r.events = append(r.events, Event{Phase: PhaseBegin, Change: c, First: c.First, Last: c.Last, Len: r.model.Len()})
}

func (r *Recorder) EndChange(c listmodel.Change) {
	r.events = append(r.events, Event{Phase: PhaseEnd, Change: c, First: c.First, Last: c.Last, Len: r.model.Len()})
}

func (r *Recorder) DataChanged(first, last int, roles []listmodel.Role) {
	r.events = append(r.events, Event{
		Phase: PhaseData,
		First: first,
		Last:  last,
		Roles: append([]listmodel.Role(nil), roles...),
		Len:   r.model.Len(),
	})
}

// Events returns the recorded events in delivery order.
func (r *Recorder) Events() []Event {
	return append([]Event(nil), r.events...)
}

// Clear forgets recorded events.
func (r *Recorder) Clear() {
	r.events = nil
}

// Stop revokes the subscription.
func (r *Recorder) Stop() {
	r.sub.Revoke()
}

// Count returns how many events of the phase were recorded. For begin and
// end phases kind filters by change kind; pass 0 to count all kinds.
func (r *Recorder) Count(phase Phase, kind listmodel.Kind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Phase != phase {
			continue
		}
		if phase != PhaseData && kind != 0 && ev.Change.Kind != kind {
			continue
		}
		n++
	}
	return n
}

// Structural returns the begin/end events only.
func (r *Recorder) Structural() []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Phase != PhaseData {
			out = append(out, ev)
		}
	}
	return out
}

// Data returns the data-changed events only.
func (r *Recorder) Data() []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Phase == PhaseData {
			out = append(out, ev)
		}
	}
	return out
}
