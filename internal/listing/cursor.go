package listing

import "strings"

// Cursor is the selection over the listed entries. Moving past either end
// wraps around.
type Cursor struct {
	entries []Entry
	index   int
}

// NewCursor selects the first of entries.
func NewCursor(entries []Entry) *Cursor {
	return &Cursor{entries: entries}
}

// Len returns the number of entries.
func (c *Cursor) Len() int {
	return len(c.entries)
}

// Index returns the selected position.
func (c *Cursor) Index() int {
	return c.index
}

// Selected returns the selected entry, false when the list is empty.
func (c *Cursor) Selected() (Entry, bool) {
	if len(c.entries) == 0 {
		return Entry{}, false
	}
	return c.entries[c.index], true
}

// Next moves to the following entry, wrapping to the first.
func (c *Cursor) Next() Entry {
	return c.move(1)
}

// Prev moves to the preceding entry, wrapping to the last.
func (c *Cursor) Prev() Entry {
	return c.move(-1)
}

func (c *Cursor) move(delta int) Entry {
	n := len(c.entries)
	if n == 0 {
		return Entry{}
	}
	c.index = ((c.index+delta)%n + n) % n
	return c.entries[c.index]
}

// Jump selects index i. Out of range values are ignored.
func (c *Cursor) Jump(i int) bool {
	if i < 0 || i >= len(c.entries) {
		return false
	}
	c.index = i
	return true
}

// FocusByName selects the entry named name.
func (c *Cursor) FocusByName(name string) bool {
	for i, e := range c.entries {
		if e.Name == name {
			c.index = i
			return true
		}
	}
	return false
}

// Find returns the index of the first entry after the selection, wrapping
// around, whose name contains query ignoring case.
func (c *Cursor) Find(query string) (int, bool) {
	n := len(c.entries)
	query = strings.ToLower(query)
	if n == 0 || query == "" {
		return 0, false
	}
	for step := 1; step <= n; step++ {
		i := (c.index + step) % n
		if strings.Contains(strings.ToLower(c.entries[i].Name), query) {
			return i, true
		}
	}
	return 0, false
}

// Replace swaps in a fresh listing. The selection stays on the same name
// when it still exists, otherwise it keeps its position clamped to the new
// length.
func (c *Cursor) Replace(entries []Entry) {
	var selected string
	if e, ok := c.Selected(); ok {
		selected = e.Name
	}
	c.entries = entries
	if selected != "" && c.FocusByName(selected) {
		return
	}
	c.index = max(0, min(c.index, len(entries)-1))
}
