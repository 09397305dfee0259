package state

import "testing"

func TestUpdateItemsKeepsCursorOnSameItem(t *testing.T) {
	l := newTestLevel("play", "update", "exit")
	l.Cursor = 1
	l.UpdateItems([]Item{{ID: "play"}, {ID: "setup"}, {ID: "update"}, {ID: "exit"}})
	if l.Cursor != 2 {
		t.Fatalf("expected cursor to follow item, got %d", l.Cursor)
	}

	l.UpdateItems([]Item{{ID: "play"}})
	if l.Cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", l.Cursor)
	}

	l.UpdateItems(nil)
	if l.Cursor != 0 || l.ViewportOffset != 0 {
		t.Fatalf("expected reset for empty items, got cursor %d offset %d", l.Cursor, l.ViewportOffset)
	}
}

func TestCurrentAndIndexOf(t *testing.T) {
	l := newTestLevel("a", "b")
	l.Cursor = 1
	item, ok := l.Current()
	if !ok || item.ID != "b" {
		t.Fatalf("expected b, got %+v (%t)", item, ok)
	}
	if l.IndexOf("missing") != -1 || l.IndexOf("") != -1 {
		t.Fatalf("expected -1 for unknown ids")
	}
	l.Cursor = 5
	if _, ok := l.Current(); ok {
		t.Fatalf("expected no current item out of range")
	}
}

func TestSetDisabled(t *testing.T) {
	l := newTestLevel("play", "exit")
	if !l.SetDisabled("play", true) {
		t.Fatalf("expected change")
	}
	if l.SetDisabled("play", true) {
		t.Fatalf("expected no change when already disabled")
	}
	if l.SetDisabled("missing", true) {
		t.Fatalf("expected no change for unknown id")
	}
	if !l.Items[0].Disabled {
		t.Fatalf("expected play disabled")
	}
}
