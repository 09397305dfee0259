package state

// Level holds the menu items with cursor and viewport state.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Cursor         int
	ViewportOffset int
}

// NewLevel constructs a Level with the cursor on the first item.
func NewLevel(id, title string, items []Item) *Level {
	l := &Level{ID: id, Title: title}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the items, keeping the cursor on the same item ID
// when it still exists.
func (l *Level) UpdateItems(items []Item) {
	currentID := ""
	if item, ok := l.Current(); ok {
		currentID = item.ID
	}
	prevOffset := l.ViewportOffset
	l.Items = CloneItems(items)
	if idx := l.IndexOf(currentID); idx >= 0 {
		l.Cursor = idx
	} else if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		prevOffset = 0
	}
	l.ViewportOffset = prevOffset
}

// SetDisabled toggles the disabled flag on the item with id.
func (l *Level) SetDisabled(id string, disabled bool) bool {
	idx := l.IndexOf(id)
	if idx < 0 || l.Items[idx].Disabled == disabled {
		return false
	}
	l.Items[idx].Disabled = disabled
	return true
}
