package preview

import "time"

// Direction is the sign of a navigation step.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Phase is the state of the transition coordinator.
type Phase int

const (
	Idle Phase = iota
	Sliding
)

func (p Phase) String() string {
	if p == Sliding {
		return "sliding"
	}
	return "idle"
}

// Transition times one slide between the outgoing and the incoming label.
type Transition struct {
	start    time.Time
	duration time.Duration
	dir      Direction
	active   bool
}

// Begin restarts the transition at now in direction dir.
func (t *Transition) Begin(now time.Time, dir Direction) {
	t.start = now
	t.dir = dir
	t.active = true
}

// Progress returns the elapsed fraction of the transition clamped to [0, 1].
func (t *Transition) Progress(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Done reports whether the full duration has elapsed at now.
func (t *Transition) Done(now time.Time) bool {
	return now.Sub(t.start) >= t.duration
}

// Offsets returns the horizontal offsets of the incoming and outgoing prop.
// The incoming prop enters from the side opposite to the direction and
// reaches the centre at progress 1; the outgoing one leaves towards the
// direction of travel.
func (t *Transition) Offsets(now time.Time, screenW, propW float64) (incoming, outgoing float64) {
	p := t.Progress(now)
	span := (screenW + propW) / 2
	d := float64(t.dir)
	incoming = -d * (1 - p) * span
	outgoing = d * p * span
	return incoming, outgoing
}
