package listmodel

import "errors"

var (
	// ErrInvalidIndex is returned for indices outside the current bounds.
	ErrInvalidIndex = errors.New("index out of range")
	// ErrReentrant is returned when a structural mutation is requested
	// while another one is still being announced.
	ErrReentrant = errors.New("structural change already in progress")
)

// Role identifies one attribute channel of a row.
type Role int

// Value is a projected cell. A nil Value is invalid.
type Value = any

// Kind classifies structural changes.
type Kind int

const (
	KindInsert Kind = iota + 1
	KindRemove
	KindMove
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindRemove:
		return "remove"
	case KindMove:
		return "move"
	case KindReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes a structural mutation. For KindMove, First..Last is the
// moved block before the move and Dest the index its first row occupies
// after the move. For KindReset the range is unused.
type Change struct {
	Kind  Kind
	First int
	Last  int
	Dest  int
}

// Width returns the number of rows named by the change.
func (c Change) Width() int {
	if c.Kind == KindReset {
		return 0
	}
	return c.Last - c.First + 1
}

// Observer receives model notifications.
type Observer interface {
	BeginChange(c Change)
	EndChange(c Change)
	DataChanged(first, last int, roles []Role)
}

// Funcs adapts optional callbacks to Observer.
type Funcs struct {
	OnBegin func(Change)
	OnEnd   func(Change)
	OnData  func(first, last int, roles []Role)
}

func (f Funcs) BeginChange(c Change) {
	if f.OnBegin != nil {
		f.OnBegin(c)
	}
}

func (f Funcs) EndChange(c Change) {
	if f.OnEnd != nil {
		f.OnEnd(c)
	}
}

func (f Funcs) DataChanged(first, last int, roles []Role) {
	if f.OnData != nil {
		f.OnData(first, last, roles)
	}
}

// Model is the read side of a role-projected collection.
type Model interface {
	Len() int
	// Data returns nil for an invalid row or an unknown role.
	Data(row int, role Role) Value
	RoleNames() map[Role]string
	Subscribe(o Observer) *Subscription
}
