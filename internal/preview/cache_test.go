package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelCache_AdvanceIsIdempotent(t *testing.T) {
	r := newFakeRasterizer()
	c := NewLabelCache(r)

	changed, err := c.Advance("notes.txt")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = c.Advance("notes.txt")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, r.calls["notes.txt"])
}

func TestLabelCache_AdvanceMovesCurrent(t *testing.T) {
	c := NewLabelCache(newFakeRasterizer())
	assert.Nil(t, c.Current())
	assert.Nil(t, c.Previous())

	_, err := c.Advance("a")
	require.NoError(t, err)
	first := c.Current()
	assert.Nil(t, c.Previous())

	_, err = c.Advance("b")
	require.NoError(t, err)
	assert.Same(t, first, c.Previous(), "current moves into previous")
	assert.Equal(t, "b", c.Current().Text)

	_, err = c.Advance("c")
	require.NoError(t, err)
	assert.Equal(t, "b", c.Previous().Text, "old previous is dropped")
	assert.Equal(t, "c", c.Current().Text)
}

func TestLabelCache_AdvanceErrorKeepsSlots(t *testing.T) {
	r := newFakeRasterizer()
	c := NewLabelCache(r)
	_, err := c.Advance("a")
	require.NoError(t, err)
	_, err = c.Advance("b")
	require.NoError(t, err)

	r.fail = "c"
	changed, err := c.Advance("c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rasterize "c"`)
	assert.False(t, changed)
	assert.Equal(t, "a", c.Previous().Text)
	assert.Equal(t, "b", c.Current().Text)
}

func TestLabelCache_Settle(t *testing.T) {
	c := NewLabelCache(newFakeRasterizer())
	_, err := c.Advance("a")
	require.NoError(t, err)
	_, err = c.Advance("b")
	require.NoError(t, err)

	c.Settle()
	assert.Same(t, c.Current(), c.Previous())
}
