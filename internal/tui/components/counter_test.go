package components

import (
	"testing"
	"time"

	"github.com/Veraticus/finpilot/internal/animation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestCounter_StartSchedulesTick(t *testing.T) {
	c := NewCounter(3, "Income", 1200, time.Second)

	cmd := c.Start(t0)
	require.NotNil(t, cmd)

	msg, ok := cmd().(CounterTickMsg)
	require.True(t, ok)
	assert.Equal(t, 3, msg.ID)
	assert.Equal(t, uint64(1), msg.Frame.Generation)
}

func TestCounter_AdvancesAndSettles(t *testing.T) {
	c := NewCounter(1, "Spent", 1000, time.Second)
	require.NotNil(t, c.Start(t0))
	frame := animation.Frame{Generation: 1}

	c, cmd := c.Update(CounterTickMsg{ID: 1, Frame: frame, Time: t0.Add(500 * time.Millisecond)})
	assert.NotNil(t, cmd, "mid-run frames schedule the next one")
	assert.Greater(t, c.Value(), 500.0, "ease-out runs ahead of linear")
	assert.Less(t, c.Value(), 1000.0)

	c, cmd = c.Update(CounterTickMsg{ID: 1, Frame: frame, Time: t0.Add(2 * time.Second)})
	assert.Nil(t, cmd)
	assert.True(t, c.Settled())
	assert.InDelta(t, 1000.0, c.Value(), 1e-9)
	assert.Contains(t, c.View(), "$1,000")
}

func TestCounter_IgnoresOtherCounters(t *testing.T) {
	c := NewCounter(1, "Spent", 1000, time.Second)
	c.Start(t0)

	c, cmd := c.Update(CounterTickMsg{ID: 2, Frame: animation.Frame{Generation: 1}, Time: t0.Add(time.Second)})
	assert.Nil(t, cmd)
	assert.Zero(t, c.Value())
}

func TestCounter_DropsStaleFrames(t *testing.T) {
	c := NewCounter(1, "Spent", 1000, time.Second)
	c.Start(t0)
	stale := animation.Frame{Generation: 1}

	require.NotNil(t, c.SetTarget(2000, t0.Add(100*time.Millisecond)))

	c, cmd := c.Update(CounterTickMsg{ID: 1, Frame: stale, Time: t0.Add(5 * time.Second)})
	assert.Nil(t, cmd)
	assert.False(t, c.Settled())
	assert.Zero(t, c.Value())
}

func TestCounter_StopCancelsFrames(t *testing.T) {
	c := NewCounter(1, "Spent", 1000, time.Second)
	c.Start(t0)
	c.Stop()

	c, cmd := c.Update(CounterTickMsg{ID: 1, Frame: animation.Frame{Generation: 1}, Time: t0.Add(time.Second)})
	assert.Nil(t, cmd)
	assert.Zero(t, c.Value())
}

func TestCounter_ZeroDurationSettlesImmediately(t *testing.T) {
	c := NewCounter(1, "Saved", 42, 0, WithFormat(func(float64) string { return "n/a" }))
	assert.Nil(t, c.Start(t0))
	assert.True(t, c.Settled())
	assert.Contains(t, c.View(), "n/a")
	assert.Equal(t, "Saved", c.Label())
}
