// Package notify fans configuration changes out to observers.
//
// An observer listens either to everything or to one section such as
// "view". Calls happen synchronously on the goroutine that made the change,
// after the notifier has released its lock, so an observer may read the
// configuration back.
package notify

import (
	"strings"
	"sync"
)

// ChangeType distinguishes a section update from a whole reload.
type ChangeType int

const (
	ChangeSet ChangeType = iota
	ChangeReload
)

func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	}
	return "unknown"
}

// Change describes one update. Path, OldValue and NewValue are empty for
// reloads. Source says what triggered the change ("reload", "update").
type Change struct {
	Path     string
	Type     ChangeType
	OldValue any
	NewValue any
	Source   string
}

// Observer receives changes.
type Observer func(Change)

// Subscription is returned by Subscribe and SubscribePath.
type Subscription struct {
	n  *Notifier
	id uint64
}

// Unsubscribe stops delivery. Repeated calls do nothing.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.n == nil {
		return
	}
	s.n.remove(s.id)
}

type observerEntry struct {
	id   uint64
	path string
	fn   Observer
}

// Notifier is safe for concurrent use.
type Notifier struct {
	mu      sync.Mutex
	entries []observerEntry // in subscription order
	next    uint64
	closed  bool
}

func New() *Notifier { return &Notifier{} }

// Subscribe observes every change.
func (n *Notifier) Subscribe(fn Observer) *Subscription { return n.add("", fn) }

// SubscribePath observes changes at path or below it, so "view" also sees
// "view.fontSize". Reloads are delivered to every path.
func (n *Notifier) SubscribePath(path string, fn Observer) *Subscription { return n.add(path, fn) }

func (n *Notifier) add(path string, fn Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next++
	n.entries = append(n.entries, observerEntry{id: n.next, path: path, fn: fn})
	return &Subscription{n: n, id: n.next}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, e := range n.entries {
		if e.id == id {
			n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
			return
		}
	}
}

// Notify calls the matching observers in the order they subscribed.
func (n *Notifier) Notify(c Change) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	var targets []Observer
	for _, e := range n.entries {
		if covers(e.path, c.Path) {
			targets = append(targets, e.fn)
		}
	}
	n.mu.Unlock()

	for _, fn := range targets {
		fn(c)
	}
}

func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Count returns the number of live subscriptions.
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}

// Close drops every observer and mutes later notifications.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.entries = nil
}

func covers(sub, path string) bool {
	return sub == "" || path == "" || sub == path || strings.HasPrefix(path, sub+".")
}
