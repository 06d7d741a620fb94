package listmodel

// Subscription is the token returned by Subscribe. The subscriber stops
// receiving notifications once it is revoked.
type Subscription struct {
	notifier *Notifier
	observer Observer
	revoked  bool
}

// Revoke detaches the observer. Calling it more than once is harmless.
func (s *Subscription) Revoke() {
	if s == nil || s.revoked {
		return
	}
	s.revoked = true
	s.notifier.drop(s)
}

// Notifier fans notifications out to subscribed observers in subscription
// order. The zero value is ready to use.
type Notifier struct {
	subs []*Subscription
}

// Subscribe registers o and returns its revocation token.
func (n *Notifier) Subscribe(o Observer) *Subscription {
	s := &Subscription{notifier: n, observer: o}
	n.subs = append(n.subs, s)
	return s
}

// Subscribers returns the number of live subscriptions.
func (n *Notifier) Subscribers() int {
	return len(n.subs)
}

func (n *Notifier) drop(s *Subscription) {
	for i, sub := range n.subs {
		if sub == s {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}

// snapshot lets observers revoke themselves (or others) mid-dispatch.
func (n *Notifier) snapshot() []*Subscription {
	return append([]*Subscription(nil), n.subs...)
}

func (n *Notifier) begin(c Change) {
	for _, s := range n.snapshot() {
		if !s.revoked {
			s.observer.BeginChange(c)
		}
	}
}

func (n *Notifier) end(c Change) {
	for _, s := range n.snapshot() {
		if !s.revoked {
			s.observer.EndChange(c)
		}
	}
}

// NotifyDataChanged announces an attribute change for rows first..last.
func (n *Notifier) NotifyDataChanged(first, last int, roles ...Role) {
	for _, s := range n.snapshot() {
		if !s.revoked {
			s.observer.DataChanged(first, last, roles)
		}
	}
}
