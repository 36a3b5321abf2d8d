package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// manualTicker fires only when the test sends on c.
type manualTicker struct {
	c       chan time.Time
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               { m.stopped = true }

func newManualDriver(t *testing.T, opts ...Option) (*Driver, *manualTicker) {
	t.Helper()
	mt := &manualTicker{c: make(chan time.Time)}
	opts = append(opts, WithTicker(func(time.Duration) Ticker { return mt }))
	d := NewDriver(opts...)
	t.Cleanup(func() { _ = d.Close() })
	return d, mt
}

func nextFrame(t *testing.T, d *Driver) Frame {
	t.Helper()
	select {
	case f, ok := <-d.Frames():
		require.True(t, ok, "frames channel closed")
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
	return Frame{}
}

func TestDriverSamplesOncePerFrame(t *testing.T) {
	d, mt := newManualDriver(t)

	d.Measure(0, 1000)
	d.Resize(500)
	d.Scroll(100)
	d.Scroll(180)
	d.Scroll(250)

	// Nothing is computed until a frame elapses.
	assert.Equal(t, 0.0, d.Progress())

	mt.c <- time.Now()
	f := nextFrame(t, d)
	assert.InDelta(t, 0.5, f.Progress, 1e-9)
	assert.Equal(t, uint64(1), f.Seq)
	assert.InDelta(t, 0.5, d.Progress(), 1e-9)
	assert.Equal(t, uint64(1), d.Samples())

	// Idle frames do not recompute.
	mt.c <- time.Now()
	mt.c <- time.Now()
	assert.Equal(t, uint64(1), d.Samples())
}

func TestDriverResizeRemeasures(t *testing.T) {
	d, mt := newManualDriver(t, WithInitialGeometry(Measure(0, 1000, 500)))

	d.Scroll(250)
	mt.c <- time.Now()
	assert.InDelta(t, 0.5, nextFrame(t, d).Progress, 1e-9)

	d.Resize(750)
	mt.c <- time.Now()
	assert.InDelta(t, 1.0, nextFrame(t, d).Progress, 1e-9)
}

func TestDriverUnmeasuredIsZero(t *testing.T) {
	d, mt := newManualDriver(t)

	d.Scroll(9999)
	mt.c <- time.Now()
	f := nextFrame(t, d)
	assert.Equal(t, 0.0, f.Progress)
	assert.False(t, f.Geometry.Measured)
}

func TestDriverFramesCoalesce(t *testing.T) {
	d, mt := newManualDriver(t, WithInitialGeometry(Measure(0, 1000, 500)))

	d.Scroll(100)
	mt.c <- time.Now()
	// The tick is handed off before it is sampled; wait for the first sample
	// so the next scroll lands in a frame of its own.
	require.Eventually(t, func() bool { return d.Samples() == 1 }, 2*time.Second, time.Millisecond)
	d.Scroll(400)
	mt.c <- time.Now()
	// Ticks are handled in order, so this send returns only after the second
	// sample has been published.
	mt.c <- time.Now()

	f := nextFrame(t, d)
	assert.Equal(t, uint64(2), f.Seq)
	assert.InDelta(t, 0.8, f.Progress, 1e-9)
}

func TestDriverCloseReleasesTicker(t *testing.T) {
	mt := &manualTicker{c: make(chan time.Time)}
	d := NewDriver(WithTicker(func(time.Duration) Ticker { return mt }))

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.True(t, mt.stopped)

	_, ok := <-d.Frames()
	assert.False(t, ok)

	// Events after teardown are ignored.
	d.Scroll(100)
	d.Measure(0, 10)
	assert.Equal(t, 0.0, d.Progress())
}

func TestDriverRealTicker(t *testing.T) {
	d := NewDriver(WithFrameRate(200), WithInitialGeometry(Measure(0, 1000, 500)))
	defer d.Close()

	d.Scroll(1000)
	f := nextFrame(t, d)
	assert.Equal(t, 1.0, f.Progress)
}
