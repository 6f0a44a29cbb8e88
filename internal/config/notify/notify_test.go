package notify

import (
	"testing"
)

func TestChangeTypeString(t *testing.T) {
	if ChangeSet.String() != "set" || ChangeReload.String() != "reload" || ChangeType(9).String() != "unknown" {
		t.Error("unexpected ChangeType names")
	}
}

func TestSubscribeAll(t *testing.T) {
	n := New()
	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.NotifySet("view", 1, 2, "test")
	n.NotifyReload("test")

	if len(got) != 2 {
		t.Fatalf("got %d changes, want 2", len(got))
	}
	if got[0].Path != "view" || got[0].OldValue != 1 || got[0].NewValue != 2 || got[0].Type != ChangeSet {
		t.Errorf("first change = %+v", got[0])
	}
	if got[1].Type != ChangeReload {
		t.Errorf("second change = %+v", got[1])
	}
}

func TestSubscribePath(t *testing.T) {
	tests := []struct {
		sub, path string
		want      bool
	}{
		{"view", "view", true},
		{"view", "view.fontSize", true},
		{"view", "viewport", false},
		{"view", "editor", false},
		{"view", "", true},
	}

	for _, tt := range tests {
		n := New()
		hit := false
		n.SubscribePath(tt.sub, func(Change) { hit = true })
		n.Notify(Change{Path: tt.path})
		if hit != tt.want {
			t.Errorf("sub %q path %q: delivered = %v, want %v", tt.sub, tt.path, hit, tt.want)
		}
	}
}

func TestDeliveryOrder(t *testing.T) {
	n := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		n.Subscribe(func(Change) { order = append(order, i) })
	}
	n.NotifyReload("test")

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v", order)
		}
	}
}

func TestUnsubscribeAndClose(t *testing.T) {
	n := New()
	calls := 0
	sub := n.Subscribe(func(Change) { calls++ })
	n.Subscribe(func(Change) { calls++ })

	sub.Unsubscribe()
	sub.Unsubscribe()
	if n.Count() != 1 {
		t.Errorf("Count() = %d, want 1", n.Count())
	}
	n.NotifyReload("test")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	n.Close()
	n.NotifyReload("test")
	if calls != 1 {
		t.Error("closed notifier should not deliver")
	}
}

func TestObserverMaySubscribe(t *testing.T) {
	n := New()
	n.Subscribe(func(Change) {
		n.Subscribe(func(Change) {})
	})
	n.NotifyReload("test")
	if n.Count() != 2 {
		t.Errorf("Count() = %d", n.Count())
	}
}
