package scopes

import "slices"

// Registration is returned by CountSource.OnCountChanged. Revoking it stops
// further callbacks.
type Registration interface {
	Revoke()
}

// CountSource is any external object with a count and a change signal.
type CountSource interface {
	Count() int
	OnCountChanged(fn func()) Registration
}

// Counter is an observable integer that implements CountSource.
type Counter struct {
	count     int
	listeners []*counterRegistration
}

var _ CountSource = (*Counter)(nil)

// NewCounter returns a counter starting at n.
func NewCounter(n int) *Counter {
	return &Counter{count: n}
}

func (c *Counter) Count() int { return c.count }

// Set changes the count and notifies listeners when it differs.
func (c *Counter) Set(n int) {
	if c.count == n {
		return
	}
	c.count = n
	for _, l := range slices.Clone(c.listeners) {
		if !l.revoked {
			l.fn()
		}
	}
}

// Add shifts the count by delta.
func (c *Counter) Add(delta int) {
	c.Set(c.count + delta)
}

// Listeners returns the number of live registrations.
func (c *Counter) Listeners() int {
	return len(c.listeners)
}

func (c *Counter) OnCountChanged(fn func()) Registration {
	r := &counterRegistration{counter: c, fn: fn}
	c.listeners = append(c.listeners, r)
	return r
}

type counterRegistration struct {
	counter *Counter
	fn      func()
	revoked bool
}

func (r *counterRegistration) Revoke() {
	if r.revoked {
		return
	}
	r.revoked = true
	r.counter.listeners = slices.DeleteFunc(r.counter.listeners, func(o *counterRegistration) bool { return o == r })
}
