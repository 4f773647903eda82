// Package cart owns the ordered, deduplicated shopping list.
package cart

import (
	"strings"

	"cartscout/internal/logging"
)

// MaxItems is the cart capacity.
const MaxItems = 10

// Notice is the outcome of a cart mutation. Declined operations are notices
// for the user, never errors: the cart is left untouched and the caller
// surfaces the reason.
type Notice int

const (
	NoticeAdded Notice = iota
	NoticeDuplicate
	NoticeFull
	NoticeEmpty
)

// String returns the user-facing message for a declined add.
func (n Notice) String() string {
	switch n {
	case NoticeAdded:
		return "added"
	case NoticeDuplicate:
		return "that item is already in your cart"
	case NoticeFull:
		return "cart is full (10 items max)"
	case NoticeEmpty:
		return "enter an item name first"
	}
	return "unknown"
}

// Cart is the ordered list of confirmed item names. Insertion order is
// preserved through to results display. Not safe for concurrent use; the
// whole session mutates from a single event loop.
type Cart struct {
	items []string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends name to the cart. Duplicates (case-sensitive exact match) and
// adds beyond capacity are declined, not errors.
func (c *Cart) Add(name string) Notice {
	name = strings.TrimSpace(name)
	if name == "" {
		return NoticeEmpty
	}
	if c.Contains(name) {
		logging.Cart("declined duplicate %q", name)
		return NoticeDuplicate
	}
	if len(c.items) >= MaxItems {
		logging.Cart("declined %q: cart full", name)
		return NoticeFull
	}
	c.items = append(c.items, name)
	logging.Cart("added %q (%d/%d)", name, len(c.items), MaxItems)
	return NoticeAdded
}

// Remove deletes the item at position i. Out-of-bounds indexes are ignored;
// the UI contract never produces them.
func (c *Cart) Remove(i int) bool {
	if i < 0 || i >= len(c.items) {
		return false
	}
	logging.Cart("removed %q", c.items[i])
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Clear empties the cart. Callers must have confirmed with the user first.
func (c *Cart) Clear() {
	logging.Cart("cleared (%d items)", len(c.items))
	c.items = nil
}

// Contains reports whether name is already in the cart (exact match).
func (c *Cart) Contains(name string) bool {
	for _, it := range c.items {
		if it == name {
			return true
		}
	}
	return false
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the cart.
func (c *Cart) Len() int { return len(c.items) }

// Full reports whether the cart is at capacity.
func (c *Cart) Full() bool { return len(c.items) >= MaxItems }
