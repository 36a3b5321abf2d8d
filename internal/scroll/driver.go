package scroll

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultFrameRate is the sampling rate used when none is configured.
const DefaultFrameRate = 60

// Frame is one sample published by a Driver.
type Frame struct {
	Seq      uint64    `json:"seq"`
	Progress float64   `json:"progress"`
	Geometry Geometry  `json:"geometry"`
	Offset   float64   `json:"offset"`
	At       time.Time `json:"at"`
}

// Ticker delivers frame callbacks. *time.Ticker satisfies it through
// NewTimeTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(interval time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(interval)}
}

// Option configures a Driver.
type Option func(*Driver)

// WithFrameRate sets the sampling rate in frames per second.
func WithFrameRate(hz int) Option {
	return func(d *Driver) {
		if hz > 0 {
			d.interval = time.Second / time.Duration(hz)
		}
	}
}

// WithTicker replaces the frame clock, mainly for tests.
func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(d *Driver) {
		if newTicker != nil {
			d.newTicker = newTicker
		}
	}
}

// WithLogger attaches a logger for lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithInitialGeometry measures the subject up front.
func WithInitialGeometry(g Geometry) Option {
	return func(d *Driver) {
		d.geom = g
		d.dirty = true
	}
}

// Driver tracks one ScrollSubject. Scroll, resize and measure events only mark
// the subject dirty; a frame ticker recomputes progress at most once per frame
// and stores it in a read slot that consumers poll on their own render pass.
//
// The sampling goroutine is the slot's only writer. Close must be called when
// the region unmounts.
type Driver struct {
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	logger    *zap.Logger

	mu     sync.Mutex
	geom   Geometry
	offset float64
	dirty  bool
	closed bool

	slot    atomic.Uint64
	seq     atomic.Uint64
	samples atomic.Uint64

	frames    chan Frame
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDriver starts a driver with no measured geometry; Progress reports 0
// until Measure and Resize have been called and a frame has elapsed.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		interval:  time.Second / DefaultFrameRate,
		newTicker: NewTimeTicker,
		logger:    zap.NewNop(),
		frames:    make(chan Frame, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	ticker := d.newTicker(d.interval)
	d.wg.Add(1)
	go d.run(ticker)
	return d
}

func (d *Driver) run(ticker Ticker) {
	defer d.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case now := <-ticker.C():
			d.sample(now)
		}
	}
}

// Measure records the region's top offset and height. Call it when the region
// mounts and whenever its layout changes.
func (d *Driver) Measure(top, height float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.geom.RegionTop = top
	d.geom.RegionHeight = height
	d.geom.Measured = true
	d.dirty = true
	d.logger.Debug("scroll subject measured",
		zap.Float64("top", top),
		zap.Float64("height", height))
}

// Resize records a new viewport height.
func (d *Driver) Resize(viewportHeight float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.geom.ViewportHeight = viewportHeight
	d.dirty = true
}

// Scroll records the latest vertical scroll offset.
func (d *Driver) Scroll(offset float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.offset = offset
	d.dirty = true
}

// Progress returns the most recently sampled progress value.
func (d *Driver) Progress() float64 {
	return math.Float64frombits(d.slot.Load())
}

// Samples returns how many times progress has been recomputed.
func (d *Driver) Samples() uint64 {
	return d.samples.Load()
}

// Frames delivers the latest frame after each sample. Only the newest frame
// is buffered; the channel is closed by Close.
func (d *Driver) Frames() <-chan Frame {
	return d.frames
}

// Close stops sampling and releases the frame ticker. It is safe to call more
// than once.
func (d *Driver) Close() error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		close(d.done)
		d.wg.Wait()
		close(d.frames)
		d.logger.Debug("scroll driver closed", zap.Uint64("samples", d.samples.Load()))
	})
	return nil
}

func (d *Driver) sample(now time.Time) {
	d.mu.Lock()
	if !d.dirty || d.closed {
		d.mu.Unlock()
		return
	}
	g, offset := d.geom, d.offset
	d.dirty = false
	d.mu.Unlock()

	p := Progress(g, offset)
	d.slot.Store(math.Float64bits(p))
	d.samples.Add(1)

	d.publish(Frame{
		Seq:      d.seq.Add(1),
		Progress: p,
		Geometry: g,
		Offset:   offset,
		At:       now,
	})
}

// publish replaces any unread frame with f.
func (d *Driver) publish(f Frame) {
	select {
	case d.frames <- f:
		return
	default:
	}
	select {
	case <-d.frames:
	default:
	}
	select {
	case d.frames <- f:
	default:
	}
}
