package preview

import (
	"errors"
	"image"
	"time"
)

var (
	// ErrNoProp is returned when the engine is built without a prop image.
	ErrNoProp = errors.New("preview: no prop image")
	// ErrNilRasterizer is returned when the engine has nothing to draw labels with.
	ErrNilRasterizer = errors.New("preview: nil rasterizer")
	// ErrNilBackend is returned when the engine has nowhere to draw.
	ErrNilBackend = errors.New("preview: nil backend")
	// ErrNoLabel is returned when a frame is rendered before any label was
	// shown.
	ErrNoLabel = errors.New("preview: no label shown yet")
)

// DefaultDuration is how long one slide takes.
const DefaultDuration = time.Second

// Options configures a Preview.
type Options struct {
	Rasterizer Rasterizer
	Backend    Backend
	Prop       image.Image
	Duration   time.Duration
}

// Preview is the per-session render state: the label cache, the running
// transition and the prop it slides. It is owned by the render loop and is
// not safe for concurrent use.
type Preview struct {
	cache   *LabelCache
	backend Backend
	prop    image.Image
	trans   Transition
}

// New validates opts and returns an idle preview with no label yet.
func New(opts Options) (*Preview, error) {
	if opts.Rasterizer == nil {
		return nil, ErrNilRasterizer
	}
	if opts.Backend == nil {
		return nil, ErrNilBackend
	}
	if opts.Prop == nil || MeasureImage(opts.Prop).Degenerate() {
		return nil, ErrNoProp
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}
	return &Preview{
		cache:   NewLabelCache(opts.Rasterizer),
		backend: opts.Backend,
		prop:    opts.Prop,
		trans:   Transition{duration: opts.Duration, dir: Forward},
	}, nil
}

// Show sets the label without animating. It is used for the first frame.
func (p *Preview) Show(label string) error {
	if _, err := p.cache.Advance(label); err != nil {
		return err
	}
	p.cache.Settle()
	p.trans.active = false
	return nil
}

// OnNavigate starts a slide towards label in direction dir. A label equal to
// the current one is ignored. Navigating during a slide restarts the timer
// from the label current at that moment; the interrupted outgoing label is
// dropped.
func (p *Preview) OnNavigate(dir Direction, label string, now time.Time) (bool, error) {
	changed, err := p.cache.Advance(label)
	if err != nil || !changed {
		return false, err
	}
	if dir != Backward {
		dir = Forward
	}
	p.trans.Begin(now, dir)
	return true, nil
}

// Tick advances the state machine to now and returns the resulting phase.
func (p *Preview) Tick(now time.Time) Phase {
	if p.trans.active && p.trans.Done(now) {
		p.trans.active = false
		p.cache.Settle()
	}
	return p.Phase()
}

// Phase reports whether a slide is in progress.
func (p *Preview) Phase() Phase {
	if p.trans.active {
		return Sliding
	}
	return Idle
}

// Direction returns the direction of the latest slide.
func (p *Preview) Direction() Direction {
	return p.trans.dir
}

// Progress returns the progress of the running slide, 1 when idle.
func (p *Preview) Progress(now time.Time) float64 {
	if !p.trans.active {
		return 1
	}
	return p.trans.Progress(now)
}

// Current returns the label being shown.
func (p *Preview) Current() *RasterizedLabel {
	return p.cache.Current()
}

// Previous returns the outgoing label.
func (p *Preview) Previous() *RasterizedLabel {
	return p.cache.Previous()
}

// RenderFrame draws the preview for time now. While sliding the outgoing
// prop is drawn first so the incoming one covers it as it enters.
// Degenerate geometry draws nothing. Rendering before Show or OnNavigate
// fails with ErrNoLabel.
func (p *Preview) RenderFrame(now time.Time) error {
	if p.cache.Current() == nil {
		return ErrNoLabel
	}
	phase := p.Tick(now)
	window := p.backend.WindowSize()
	if window.Degenerate() {
		return nil
	}

	if phase == Idle {
		p.drawProp(p.cache.Current(), window, 0)
		return nil
	}

	propW, _ := ComputeRects(window, MeasureImage(p.prop), Size{}, 0)
	incoming, outgoing := p.trans.Offsets(now, window.W, propW.W)
	p.drawProp(p.cache.Previous(), window, outgoing)
	p.drawProp(p.cache.Current(), window, incoming)
	return nil
}

func (p *Preview) drawProp(label *RasterizedLabel, window Size, offset float64) {
	fill := label.FillSize()
	propRect, labelRect := ComputeRects(window, MeasureImage(p.prop), fill, offset)
	if propRect.Empty() {
		return
	}
	p.backend.DrawImage(p.prop, propRect)
	if label == nil || labelRect.Empty() {
		return
	}
	if outline := OutlineRect(labelRect, fill, label.OutlineSize()); !outline.Empty() {
		p.backend.DrawImage(label.Outline, outline)
	}
	p.backend.DrawImage(label.Fill, labelRect)
}
