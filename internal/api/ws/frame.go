package ws

import (
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// Frame types.
const (
	FrameSnapshot = "snapshot"
	FrameBegin    = "begin"
	FrameEnd      = "end"
	FrameData     = "data"
	FrameError    = "error"
)

// Frame is one message on the change stream. Row indexes follow the
// model's numbering at the time the frame was produced.
type Frame struct {
	Type  string `json:"type"`
	Model string `json:"model"`
	Seq   uint64 `json:"seq"`

	Kind  string `json:"kind,omitempty"`
	First int    `json:"first"`
	Last  int    `json:"last"`
	// Dest is the final index of the first moved row.
	Dest *int `json:"dest,omitempty"`

	Roles []string         `json:"roles,omitempty"`
	Rows  []map[string]any `json:"rows,omitempty"`
	Error string           `json:"error,omitempty"`
}

// rows projects first..last of m; out of range rows are skipped.
func rows(m listmodel.Model, first, last int) []map[string]any {
	if first < 0 {
		first = 0
	}
	if last >= m.Len() {
		last = m.Len() - 1
	}
	if last < first {
		return nil
	}
	out := make([]map[string]any, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, listmodel.ProjectRow(m, i))
	}
	return out
}

// observer turns model notifications into frames. It runs on the shell
// loop, so it may read the model while projecting rows.
type observer struct {
	name  string
	model listmodel.Model
	send  func(Frame)
}

func (o *observer) snapshot() Frame {
	return Frame{
		Type:  FrameSnapshot,
		Model: o.name,
		First: 0,
		Last:  o.model.Len() - 1,
		Rows:  listmodel.Project(o.model),
	}
}

func (o *observer) BeginChange(c listmodel.Change) {
	o.send(o.change(FrameBegin, c))
}

func (o *observer) EndChange(c listmodel.Change) {
	f := o.change(FrameEnd, c)
	switch c.Kind {
	case listmodel.KindInsert:
		f.Rows = rows(o.model, c.First, c.Last)
	case listmodel.KindMove:
		f.Rows = rows(o.model, c.Dest, c.Dest+c.Width()-1)
	case listmodel.KindReset:
		f.Rows = listmodel.Project(o.model)
	}
	o.send(f)
}

func (o *observer) DataChanged(first, last int, roles []listmodel.Role) {
	o.send(Frame{
		Type:  FrameData,
		Model: o.name,
		First: first,
		Last:  last,
		Roles: listmodel.RoleLabels(o.model, roles),
		Rows:  rows(o.model, first, last),
	})
}

func (o *observer) change(typ string, c listmodel.Change) Frame {
	f := Frame{
		Type:  typ,
		Model: o.name,
		Kind:  c.Kind.String(),
		First: c.First,
		Last:  c.Last,
	}
	if c.Kind == listmodel.KindMove {
		dest := c.Dest
		f.Dest = &dest
	}
	return f
}
