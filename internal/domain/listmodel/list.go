package listmodel

import "fmt"

// List is ordered storage whose structural mutations are announced on a
// Notifier. Indices are contiguous from 0.
type List[T any] struct {
	items    []T
	notifier *Notifier
	pending  *Change
}

// NewList returns an empty list announcing on n.
func NewList[T any](n *Notifier) *List[T] {
	if n == nil {
		n = &Notifier{}
	}
	return &List[T]{notifier: n}
}

// Len returns the number of rows.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the value at i, or false when i is out of range.
func (l *List[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Items returns a copy of the rows.
func (l *List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// IndexFunc returns the first index satisfying pred, or -1.
func (l *List[T]) IndexFunc(pred func(T) bool) int {
	for i, it := range l.items {
		if pred(it) {
			return i
		}
	}
	return -1
}

// Changing reports whether a structural change is being announced.
func (l *List[T]) Changing() bool {
	return l.pending != nil
}

func (l *List[T]) apply(c Change, mutate func()) error {
	if l.pending != nil {
		return ErrReentrant
	}
	l.pending = &c
	defer func() { l.pending = nil }()

	l.notifier.begin(c)
	mutate()
	l.notifier.end(c)
	return nil
}

// Insert places items so the first of them ends up at index i.
func (l *List[T]) Insert(i int, items ...T) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("insert at %d (len %d): %w", i, len(l.items), ErrInvalidIndex)
	}
	if len(items) == 0 {
		return nil
	}
	c := Change{Kind: KindInsert, First: i, Last: i + len(items) - 1}
	return l.apply(c, func() {
		grown := make([]T, 0, len(l.items)+len(items))
		grown = append(grown, l.items[:i]...)
		grown = append(grown, items...)
		l.items = append(grown, l.items[i:]...)
	})
}

// Append inserts items at the end.
func (l *List[T]) Append(items ...T) error {
	return l.Insert(len(l.items), items...)
}

// Remove deletes the row at i and returns it.
func (l *List[T]) Remove(i int) (T, error) {
	removed, err := l.RemoveRange(i, i)
	if err != nil {
		var zero T
		return zero, err
	}
	return removed[0], nil
}

// RemoveRange deletes rows first..last inclusive and returns them.
func (l *List[T]) RemoveRange(first, last int) ([]T, error) {
	if first < 0 || last >= len(l.items) || first > last {
		return nil, fmt.Errorf("remove %d..%d (len %d): %w", first, last, len(l.items), ErrInvalidIndex)
	}
	removed := append([]T(nil), l.items[first:last+1]...)
	c := Change{Kind: KindRemove, First: first, Last: last}
	err := l.apply(c, func() {
		var zero T
		tail := len(l.items) - (last - first + 1)
		copy(l.items[first:], l.items[last+1:])
		for k := tail; k < len(l.items); k++ {
			l.items[k] = zero
		}
		l.items = l.items[:tail]
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Set replaces the row at i in place and announces roles as changed. It is
// not a structural change.
func (l *List[T]) Set(i int, v T, roles ...Role) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("set %d (len %d): %w", i, len(l.items), ErrInvalidIndex)
	}
	if l.pending != nil {
		return ErrReentrant
	}
	l.items[i] = v
	l.notifier.NotifyDataChanged(i, i, roles...)
	return nil
}

// Move relocates the row at from so that it ends up at index to. The
// relative order of every other row is preserved. Equal indices are a no-op
// and announce nothing.
func (l *List[T]) Move(from, to int) error {
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d (len %d): %w", from, to, n, ErrInvalidIndex)
	}
	if from == to {
		return nil
	}
	c := Change{Kind: KindMove, First: from, Last: from, Dest: to}
	return l.apply(c, func() {
		moved := l.items[from]
		if from < to {
			copy(l.items[from:to], l.items[from+1:to+1])
		} else {
			copy(l.items[to+1:from+1], l.items[to:from])
		}
		l.items[to] = moved
	})
}

// Reset replaces every row.
func (l *List[T]) Reset(items []T) error {
	return l.apply(Change{Kind: KindReset}, func() {
		l.items = append([]T(nil), items...)
	})
}
