// Package animation drives numeric counters from a start value toward a
// target over a fixed duration.
//
// Interpolator is a pure state machine: callers supply the current time and
// deliver Frames they scheduled earlier. Every activation, retarget and stop
// bumps a generation counter, so a Frame scheduled before the bump is
// rejected by Advance and can never write into a torn-down consumer.
package animation

import (
	"math"
	"time"
)

// State is the lifecycle phase of an Interpolator.
type State int

const (
	// Idle means the interpolator is inactive and holds its last value.
	Idle State = iota
	// Animating means frames are expected and the value is moving.
	Animating
	// Settled means the value has reached the target.
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Frame is a scheduled update ticket tied to one generation.
type Frame struct {
	Generation uint64
}

// Interpolator animates Value toward Target while active.
type Interpolator struct {
	start      time.Time
	duration   time.Duration
	target     float64
	from       float64
	value      float64
	generation uint64
	state      State
	active     bool
}

// New creates an idle interpolator holding 0.
func New(target float64, duration time.Duration) *Interpolator {
	return &Interpolator{
		target:   target,
		duration: duration,
		state:    Idle,
	}
}

// Value returns the most recently emitted value.
func (in *Interpolator) Value() float64 { return in.value }

// Target returns the value being animated toward.
func (in *Interpolator) Target() float64 { return in.target }

// State returns the current lifecycle phase.
func (in *Interpolator) State() State { return in.state }

// Active reports whether the consumer asked for animation.
func (in *Interpolator) Active() bool { return in.active }

// Generation returns the current generation id.
func (in *Interpolator) Generation() uint64 { return in.generation }

// SetActive flips the active flag. Activation resets the value to 0 and
// starts a new run; the returned Frame must be delivered to Advance when
// ok is true. Deactivation cancels every outstanding Frame.
func (in *Interpolator) SetActive(active bool, now time.Time) (Frame, bool) {
	if active == in.active {
		return Frame{}, false
	}

	in.active = active
	in.generation++

	if !active {
		in.state = Idle
		return Frame{}, false
	}

	in.value = 0
	return in.begin(0, now)
}

// SetTarget changes the target. While active the run restarts from the
// currently displayed value rather than from 0.
func (in *Interpolator) SetTarget(target float64, now time.Time) (Frame, bool) {
	if target == in.target {
		return Frame{}, false
	}

	in.target = target
	if !in.active {
		return Frame{}, false
	}

	in.generation++
	return in.begin(in.value, now)
}

// Advance applies a frame at time now. It returns ok=false, leaving the
// value untouched, when the frame belongs to an older generation or the
// interpolator is not animating.
func (in *Interpolator) Advance(frame Frame, now time.Time) (float64, bool) {
	if !in.active || in.state != Animating || frame.Generation != in.generation {
		return in.value, false
	}

	elapsed := now.Sub(in.start)
	if elapsed >= in.duration {
		in.settle()
		return in.value, true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	progress := float64(elapsed) / float64(in.duration)
	in.value = in.from + (in.target-in.from)*easeOutCubic(progress)

	if in.value == in.target {
		in.state = Settled
	}
	return in.value, true
}

// Next returns the ticket for the following frame, if one is needed.
func (in *Interpolator) Next() (Frame, bool) {
	if !in.active || in.state != Animating {
		return Frame{}, false
	}
	return Frame{Generation: in.generation}, true
}

// Stop cancels outstanding frames when the consumer is torn down. The last
// value is kept.
func (in *Interpolator) Stop() {
	in.active = false
	in.generation++
	in.state = Idle
}

func (in *Interpolator) begin(from float64, now time.Time) (Frame, bool) {
	in.from = from
	in.start = now

	if in.duration <= 0 || from == in.target {
		in.settle()
		return Frame{}, false
	}

	in.state = Animating
	return Frame{Generation: in.generation}, true
}

func (in *Interpolator) settle() {
	in.value = in.target
	in.state = Settled
}

func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}
