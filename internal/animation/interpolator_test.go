package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// run drives the interpolator at 16ms frames until it stops asking for more.
func run(t *testing.T, in *Interpolator, frame Frame, from, until int) []float64 {
	t.Helper()
	var values []float64
	for ms := from; ms <= until; ms += 16 {
		v, ok := in.Advance(frame, at(ms))
		if !ok {
			break
		}
		values = append(values, v)
		next, more := in.Next()
		if !more {
			break
		}
		frame = next
	}
	return values
}

func TestInterpolator_ReachesTargetByDuration(t *testing.T) {
	in := New(1000, 2000*time.Millisecond)
	assert.Equal(t, Idle, in.State())
	assert.Zero(t, in.Value())

	frame, ok := in.SetActive(true, at(0))
	require.True(t, ok)
	assert.Equal(t, Animating, in.State())

	values := run(t, in, frame, 16, 2100)
	require.NotEmpty(t, values)

	for i := 1; i < len(values); i++ {
		assert.GreaterOrEqual(t, values[i], values[i-1], "value must not decrease")
	}
	assert.Equal(t, 1000.0, values[len(values)-1])
	assert.Equal(t, Settled, in.State())

	// Exactly at the duration mark the target is reached.
	in2 := New(1000, 2000*time.Millisecond)
	f, _ := in2.SetActive(true, at(0))
	v, ok := in2.Advance(f, at(2000))
	require.True(t, ok)
	assert.Equal(t, 1000.0, v)
}

func TestInterpolator_InactiveHoldsZero(t *testing.T) {
	in := New(500, time.Second)

	_, ok := in.Advance(Frame{}, at(100))
	assert.False(t, ok)
	assert.Zero(t, in.Value())

	_, ok = in.SetTarget(800, at(100))
	assert.False(t, ok, "retargeting while inactive schedules nothing")
	assert.Zero(t, in.Value())
	assert.Equal(t, Idle, in.State())
}

func TestInterpolator_DeactivationCancelsPendingFrames(t *testing.T) {
	in := New(1000, 2*time.Second)
	frame, _ := in.SetActive(true, at(0))

	v, ok := in.Advance(frame, at(500))
	require.True(t, ok)
	next, _ := in.Next()

	in.SetActive(false, at(600))
	assert.Equal(t, Idle, in.State())

	held, ok := in.Advance(next, at(700))
	assert.False(t, ok, "no update may be delivered after cancellation")
	assert.Equal(t, v, held)
	assert.Equal(t, v, in.Value(), "inactive interpolator holds the last value")
}

func TestInterpolator_StopRejectsStaleFrames(t *testing.T) {
	in := New(1000, 2*time.Second)
	frame, _ := in.SetActive(true, at(0))
	_, _ = in.Advance(frame, at(100))
	pending, _ := in.Next()

	in.Stop()
	before := in.Value()

	_, ok := in.Advance(pending, at(2500))
	assert.False(t, ok)
	assert.Equal(t, before, in.Value())
	_, more := in.Next()
	assert.False(t, more)
}

func TestInterpolator_ReactivationResetsToZero(t *testing.T) {
	in := New(300, time.Second)
	frame, _ := in.SetActive(true, at(0))
	_, _ = in.Advance(frame, at(1000))
	require.Equal(t, 300.0, in.Value())

	in.SetActive(false, at(1100))
	oldGen := in.Generation()

	frame, ok := in.SetActive(true, at(1200))
	require.True(t, ok)
	assert.Zero(t, in.Value())
	assert.Greater(t, frame.Generation, oldGen)

	// A frame from the previous activation is rejected.
	_, ok = in.Advance(Frame{Generation: oldGen}, at(1300))
	assert.False(t, ok)
}

func TestInterpolator_RetargetRestartsFromCurrentValue(t *testing.T) {
	in := New(1000, time.Second)
	frame, _ := in.SetActive(true, at(0))

	mid, ok := in.Advance(frame, at(500))
	require.True(t, ok)
	require.Greater(t, mid, 0.0)
	require.Less(t, mid, 1000.0)
	stale, _ := in.Next()

	frame, ok = in.SetTarget(2000, at(500))
	require.True(t, ok)
	assert.Equal(t, mid, in.Value(), "retarget does not reset to zero")

	_, ok = in.Advance(stale, at(516))
	assert.False(t, ok, "frames from before the retarget are stale")

	v, ok := in.Advance(frame, at(520))
	require.True(t, ok)
	assert.GreaterOrEqual(t, v, mid)

	v, ok = in.Advance(Frame{Generation: in.Generation()}, at(1500))
	require.True(t, ok)
	assert.Equal(t, 2000.0, v)
	assert.Equal(t, Settled, in.State())
}

func TestInterpolator_SettledAcceptsNewTarget(t *testing.T) {
	in := New(100, 200*time.Millisecond)
	frame, _ := in.SetActive(true, at(0))
	_, _ = in.Advance(frame, at(300))
	require.Equal(t, Settled, in.State())

	frame, ok := in.SetTarget(50, at(400))
	require.True(t, ok)
	assert.Equal(t, Animating, in.State())

	values := run(t, in, frame, 416, 700)
	require.NotEmpty(t, values)
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i], values[i-1], "decreasing targets approach monotonically too")
	}
	assert.Equal(t, 50.0, in.Value())
}

func TestInterpolator_ZeroDurationSettlesImmediately(t *testing.T) {
	in := New(42, 0)
	_, ok := in.SetActive(true, at(0))
	assert.False(t, ok)
	assert.Equal(t, 42.0, in.Value())
	assert.Equal(t, Settled, in.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "animating", Animating.String())
	assert.Equal(t, "settled", Settled.String())
	assert.Equal(t, "unknown", State(9).String())
}
