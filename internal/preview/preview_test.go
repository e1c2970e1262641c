package preview

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRasterizer produces a 40x10 fill and 42x12 outline per label and
// counts calls.
type fakeRasterizer struct {
	calls map[string]int
	fail  string
}

func newFakeRasterizer() *fakeRasterizer {
	return &fakeRasterizer{calls: make(map[string]int)}
}

func (f *fakeRasterizer) Rasterize(text string) (*RasterizedLabel, error) {
	f.calls[text]++
	if text == f.fail {
		return nil, errors.New("boom")
	}
	return &RasterizedLabel{
		Text:    text,
		Fill:    image.NewRGBA(image.Rect(0, 0, 40, 10)),
		Outline: image.NewRGBA(image.Rect(0, 0, 42, 12)),
	}, nil
}

func (f *fakeRasterizer) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type drawCall struct {
	img image.Image
	dst Rect
}

type recordingBackend struct {
	size  Size
	draws []drawCall
}

func (b *recordingBackend) DrawImage(img image.Image, dst Rect) {
	b.draws = append(b.draws, drawCall{img: img, dst: dst})
}

func (b *recordingBackend) WindowSize() Size { return b.size }

func (b *recordingBackend) reset() { b.draws = nil }

func newTestPreview(t *testing.T) (*Preview, *fakeRasterizer, *recordingBackend, image.Image) {
	t.Helper()
	r := newFakeRasterizer()
	backend := &recordingBackend{size: Size{W: 800, H: 600}}
	prop := image.NewRGBA(image.Rect(0, 0, 400, 500))
	p, err := New(Options{
		Rasterizer: r,
		Backend:    backend,
		Prop:       prop,
		Duration:   time.Second,
	})
	require.NoError(t, err)
	return p, r, backend, prop
}

func TestNew_Validation(t *testing.T) {
	backend := &recordingBackend{}
	prop := image.NewRGBA(image.Rect(0, 0, 4, 4))

	_, err := New(Options{Backend: backend, Prop: prop})
	assert.ErrorIs(t, err, ErrNilRasterizer)

	_, err = New(Options{Rasterizer: newFakeRasterizer(), Prop: prop})
	assert.ErrorIs(t, err, ErrNilBackend)

	_, err = New(Options{Rasterizer: newFakeRasterizer(), Backend: backend})
	assert.ErrorIs(t, err, ErrNoProp)

	_, err = New(Options{Rasterizer: newFakeRasterizer(), Backend: backend, Prop: image.NewRGBA(image.Rectangle{})})
	assert.ErrorIs(t, err, ErrNoProp)
}

func TestShow_DoesNotAnimate(t *testing.T) {
	p, r, backend, prop := newTestPreview(t)
	now := time.Unix(100, 0)

	require.NoError(t, p.Show("alpha"))
	assert.Equal(t, Idle, p.Phase())
	assert.Equal(t, 1, r.calls["alpha"])

	require.NoError(t, p.RenderFrame(now))
	require.Len(t, backend.draws, 3)
	assert.Same(t, prop, backend.draws[0].img)
	assert.Same(t, p.Current().Outline, backend.draws[1].img)
	assert.Same(t, p.Current().Fill, backend.draws[2].img)

	// centred prop: height 480, width 384
	assert.InDelta(t, 208, backend.draws[0].dst.X, 1e-9)
	assert.InDelta(t, 60, backend.draws[0].dst.Y, 1e-9)
}

func TestOnNavigate_SameLabelIsNoop(t *testing.T) {
	p, r, _, _ := newTestPreview(t)
	require.NoError(t, p.Show("alpha"))

	changed, err := p.OnNavigate(Forward, "alpha", time.Unix(1, 0))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Idle, p.Phase())
	assert.Equal(t, 1, r.total())
}

func TestSlideScenario(t *testing.T) {
	p, _, backend, prop := newTestPreview(t)
	require.NoError(t, p.Show("alpha"))
	start := time.Unix(1000, 0)

	changed, err := p.OnNavigate(Forward, "beta", start)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, Sliding, p.Phase())
	assert.Equal(t, "alpha", p.Previous().Text)
	assert.Equal(t, "beta", p.Current().Text)

	// prop rect is 384 wide in an 800 wide window: span = (800+384)/2 = 592
	const span = 592.0
	centre := (800.0 - 384.0) / 2

	assert.InDelta(t, 0, p.Progress(start), 1e-9)
	require.NoError(t, p.RenderFrame(start))
	require.Len(t, backend.draws, 6)
	assert.Same(t, prop, backend.draws[0].img)
	assert.InDelta(t, centre, backend.draws[0].dst.X, 1e-9, "outgoing starts centred")
	assert.Same(t, p.Previous().Fill, backend.draws[2].img)
	assert.InDelta(t, centre-span, backend.draws[3].dst.X, 1e-9, "incoming starts off-screen left")
	assert.Same(t, p.Current().Fill, backend.draws[5].img)

	backend.reset()
	half := start.Add(500 * time.Millisecond)
	assert.InDelta(t, 0.5, p.Progress(half), 1e-9)
	require.NoError(t, p.RenderFrame(half))
	require.Len(t, backend.draws, 6)
	assert.InDelta(t, centre+span/2, backend.draws[0].dst.X, 1e-9)
	assert.InDelta(t, centre-span/2, backend.draws[3].dst.X, 1e-9)

	backend.reset()
	end := start.Add(time.Second)
	require.NoError(t, p.RenderFrame(end))
	assert.Equal(t, Idle, p.Phase())
	require.Len(t, backend.draws, 3, "no outgoing draw once idle")
	assert.InDelta(t, centre, backend.draws[0].dst.X, 1e-9)
	assert.Same(t, p.Current(), p.Previous(), "outgoing slot settles on the current label")

	backend.reset()
	require.NoError(t, p.RenderFrame(end.Add(time.Hour)))
	assert.Len(t, backend.draws, 3)
}

func TestBackwardEntersFromRight(t *testing.T) {
	p, _, backend, _ := newTestPreview(t)
	require.NoError(t, p.Show("alpha"))
	start := time.Unix(0, 0)

	_, err := p.OnNavigate(Backward, "omega", start)
	require.NoError(t, err)
	require.NoError(t, p.RenderFrame(start.Add(250*time.Millisecond)))
	require.Len(t, backend.draws, 6)
	centre := (800.0 - 384.0) / 2
	assert.Less(t, backend.draws[0].dst.X, centre, "outgoing moves left")
	assert.Greater(t, backend.draws[3].dst.X, centre, "incoming comes from the right")
}

func TestInterruptedSlideRestarts(t *testing.T) {
	p, r, backend, _ := newTestPreview(t)
	require.NoError(t, p.Show("b"))
	start := time.Unix(0, 0)

	_, err := p.OnNavigate(Backward, "a", start)
	require.NoError(t, err)

	again := start.Add(300 * time.Millisecond)
	changed, err := p.OnNavigate(Forward, "b", again)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, Forward, p.Direction())
	assert.Equal(t, "a", p.Previous().Text, "interrupted outgoing label is dropped")
	assert.Equal(t, "b", p.Current().Text)
	assert.InDelta(t, 0, p.Progress(again), 1e-9, "timer restarts")
	assert.Equal(t, 2, r.calls["b"])

	require.NoError(t, p.RenderFrame(again.Add(100*time.Millisecond)))
	require.Len(t, backend.draws, 6)
	centre := (800.0 - 384.0) / 2
	assert.Greater(t, backend.draws[0].dst.X, centre, "forward: outgoing leaves to the right")
	assert.Less(t, backend.draws[3].dst.X, centre, "forward: incoming enters from the left")

	assert.Equal(t, Sliding, p.Tick(again.Add(999*time.Millisecond)))
	assert.Equal(t, Idle, p.Tick(again.Add(time.Second)))
}

func TestRasterizeErrorSurfaces(t *testing.T) {
	p, r, _, _ := newTestPreview(t)
	require.NoError(t, p.Show("alpha"))
	r.fail = "bad"

	changed, err := p.OnNavigate(Forward, "bad", time.Unix(0, 0))
	require.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, Idle, p.Phase())
	assert.Equal(t, "alpha", p.Current().Text)
}

func TestRenderFrame_DegenerateWindow(t *testing.T) {
	p, _, backend, _ := newTestPreview(t)
	require.NoError(t, p.Show("alpha"))
	backend.size = Size{W: 0, H: 600}

	require.NoError(t, p.RenderFrame(time.Unix(0, 0)))
	assert.Empty(t, backend.draws)
}

func TestRenderFrame_BeforeShow(t *testing.T) {
	p, _, backend, _ := newTestPreview(t)

	assert.ErrorIs(t, p.RenderFrame(time.Unix(0, 0)), ErrNoLabel)
	assert.Empty(t, backend.draws)

	require.NoError(t, p.Show("alpha"))
	assert.NoError(t, p.RenderFrame(time.Unix(0, 0)))
}

func TestRenderFrame_EmptyLabelDrawsPropOnly(t *testing.T) {
	r := &emptyRasterizer{}
	backend := &recordingBackend{size: Size{W: 800, H: 600}}
	p, err := New(Options{Rasterizer: r, Backend: backend, Prop: image.NewRGBA(image.Rect(0, 0, 10, 10))})
	require.NoError(t, err)
	require.NoError(t, p.Show(""))

	require.NoError(t, p.RenderFrame(time.Unix(0, 0)))
	assert.Len(t, backend.draws, 1)
}

type emptyRasterizer struct{}

func (emptyRasterizer) Rasterize(text string) (*RasterizedLabel, error) {
	empty := image.NewRGBA(image.Rectangle{})
	return &RasterizedLabel{Text: text, Fill: empty, Outline: empty}, nil
}

func TestNavigateSequence_CurrentMatchesFinalIndex(t *testing.T) {
	labels := []string{"a", "b", "c"}
	steps := []Direction{Forward, Forward, Backward, Forward, Forward, Forward, Backward, Backward}

	p, _, _, _ := newTestPreview(t)
	require.NoError(t, p.Show(labels[0]))
	idx := 0
	now := time.Unix(0, 0)
	for i, d := range steps {
		idx = (idx + int(d) + len(labels)) % len(labels)
		_, err := p.OnNavigate(d, labels[idx], now.Add(time.Duration(i)*100*time.Millisecond))
		require.NoError(t, err)
	}
	assert.Equal(t, labels[idx], p.Current().Text)
}

func TestZeroDurationSettlesImmediately(t *testing.T) {
	backend := &recordingBackend{size: Size{W: 100, H: 100}}
	p, err := New(Options{Rasterizer: newFakeRasterizer(), Backend: backend, Prop: image.NewRGBA(image.Rect(0, 0, 10, 10))})
	require.NoError(t, err)
	require.NoError(t, p.Show("a"))

	now := time.Unix(5, 0)
	_, err = p.OnNavigate(Forward, "b", now)
	require.NoError(t, err)
	assert.Equal(t, Idle, p.Tick(now))
}
