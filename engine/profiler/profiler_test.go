package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickReportsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithLogger(zap.New(core)), WithClock(clock.now), WithInterval(time.Second))

	for i := 0; i < 59; i++ {
		clock.t = clock.t.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	clock.t = time.Unix(1, 0)
	require.True(t, p.Tick())

	assert.InDelta(t, 60, p.Last().FPS, 0.5)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "frame stats", entry.Message)
	assert.Contains(t, entry.ContextMap(), "fps")
	assert.Contains(t, entry.ContextMap(), "heapMB")
}

func TestTickResetsFrameCount(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithInterval(time.Second))

	clock.t = clock.t.Add(time.Second)
	require.True(t, p.Tick())

	for i := 0; i < 10; i++ {
		clock.t = clock.t.Add(time.Second / 10)
		p.Tick()
	}
	assert.InDelta(t, 10, p.Last().FPS, 0.5)
}
