package cart

import (
	"fmt"
	"testing"
)

func TestAddAndOrder(t *testing.T) {
	c := New()
	for _, name := range []string{"milk", "eggs", "bread"} {
		if got := c.Add(name); got != NoticeAdded {
			t.Fatalf("Add(%q) = %v, want NoticeAdded", name, got)
		}
	}

	items := c.Items()
	want := []string{"milk", "eggs", "bread"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, items[i], want[i])
		}
	}
}

func TestAddDuplicate(t *testing.T) {
	c := New()
	c.Add("milk")
	if got := c.Add("milk"); got != NoticeDuplicate {
		t.Errorf("duplicate add = %v, want NoticeDuplicate", got)
	}
	if c.Len() != 1 {
		t.Errorf("cart has %d items after duplicate add, want 1", c.Len())
	}

	// Dedupe is exact-string and case-sensitive.
	if got := c.Add("Milk"); got != NoticeAdded {
		t.Errorf("Add(%q) = %v, want NoticeAdded", "Milk", got)
	}
}

func TestCapacity(t *testing.T) {
	c := New()
	for i := 0; i < MaxItems; i++ {
		if got := c.Add(fmt.Sprintf("item-%d", i)); got != NoticeAdded {
			t.Fatalf("Add #%d = %v, want NoticeAdded", i, got)
		}
	}
	if got := c.Add("overflow"); got != NoticeFull {
		t.Errorf("11th add = %v, want NoticeFull", got)
	}
	if c.Len() != MaxItems {
		t.Errorf("cart has %d items, want %d", c.Len(), MaxItems)
	}
	if !c.Full() {
		t.Error("Full() = false at capacity")
	}
}

func TestAddEmpty(t *testing.T) {
	c := New()
	if got := c.Add("   "); got != NoticeEmpty {
		t.Errorf("Add(blank) = %v, want NoticeEmpty", got)
	}
	if c.Len() != 0 {
		t.Errorf("cart has %d items, want 0", c.Len())
	}
}

func TestAddTrimsWhitespace(t *testing.T) {
	c := New()
	c.Add("  milk  ")
	if !c.Contains("milk") {
		t.Error("trimmed name not found in cart")
	}
	if got := c.Add("milk"); got != NoticeDuplicate {
		t.Errorf("Add after trimmed insert = %v, want NoticeDuplicate", got)
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add("milk")
	c.Add("eggs")

	if !c.Remove(0) {
		t.Fatal("Remove(0) = false")
	}
	if c.Contains("milk") || !c.Contains("eggs") {
		t.Errorf("unexpected contents after remove: %v", c.Items())
	}

	// Defensive only: the UI never produces these.
	if c.Remove(-1) || c.Remove(5) {
		t.Error("out-of-bounds remove reported success")
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Add("milk")
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("cart has %d items after clear, want 0", c.Len())
	}
	// Cleared names can be re-added.
	if got := c.Add("milk"); got != NoticeAdded {
		t.Errorf("Add after clear = %v, want NoticeAdded", got)
	}
}

func TestItemsIsACopy(t *testing.T) {
	c := New()
	c.Add("milk")
	items := c.Items()
	items[0] = "mutated"
	if !c.Contains("milk") {
		t.Error("mutating the returned slice changed the cart")
	}
}
