package state

// Item is one entry of the launcher menu. Request is the raw event sent to
// the request dispatcher when the item is activated.
type Item struct {
	ID       string
	Label    string
	Request  string
	Disabled bool
}

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
