package preview

import "fmt"

// LabelCache keeps the rasterized labels of the current and the previous
// entry. Labels are only rasterized when the text changes.
type LabelCache struct {
	rasterizer Rasterizer
	current    *RasterizedLabel
	previous   *RasterizedLabel
}

// NewLabelCache returns an empty cache backed by r.
func NewLabelCache(r Rasterizer) *LabelCache {
	return &LabelCache{rasterizer: r}
}

// Current returns the label of the selected entry, nil before the first
// Advance.
func (c *LabelCache) Current() *RasterizedLabel {
	return c.current
}

// Previous returns the outgoing label.
func (c *LabelCache) Previous() *RasterizedLabel {
	return c.previous
}

// Advance makes text the current label. The old current label moves into
// the previous slot and the old previous label is dropped. Advancing to the
// text already current does nothing and reports false. On error both slots
// are left untouched.
func (c *LabelCache) Advance(text string) (bool, error) {
	if c.current != nil && c.current.Text == text {
		return false, nil
	}
	next, err := c.rasterizer.Rasterize(text)
	if err != nil {
		return false, fmt.Errorf("rasterize %q: %w", text, err)
	}
	c.previous, c.current = c.current, next
	return true, nil
}

// Settle overwrites the previous slot with the current label once a
// transition has finished.
func (c *LabelCache) Settle() {
	c.previous = c.current
}
