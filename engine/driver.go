// Package engine drives the clock animation from wall-clock time
//
// A Driver is a pull-based frame source: each call to Next computes the frame
// for the current instant. The consumer paces the calls; the driver never
// sleeps. The sequence ends only when the driver's context is cancelled.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/lixenwraith/clockgrid/clock"
	"github.com/lixenwraith/clockgrid/grid"
)

// PreviewElapsed is the nominal elapsed time used in preview mode, past the
// fade so the frame is fully settled
const PreviewElapsed = 5 * time.Second

// Options configure a Driver
type Options struct {
	// Speed dilates time; 1 is real time
	Speed float64

	// Preview pins every frame to PreviewDate, for static snapshots
	Preview     bool
	PreviewDate time.Time
}

// Frame is one composed display instant
type Frame struct {
	Grid    grid.Grid
	Date    time.Time
	Elapsed time.Duration
}

// Driver produces frames until its context is cancelled
type Driver struct {
	ctx      context.Context
	composer *clock.Composer
	clock    TimeProvider
	opts     Options

	done bool

	// mu guards start and the fade-out state, which BeginFadeOut may touch
	// from another goroutine
	mu         sync.Mutex
	start      time.Time
	started    bool
	stopping   bool
	stopAt     time.Time
	fadeCredit time.Duration
}

// NewDriver creates a driver; cancelling ctx ends the frame sequence
func NewDriver(ctx context.Context, composer *clock.Composer, provider TimeProvider, opts Options) *Driver {
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &Driver{
		ctx:      ctx,
		composer: composer,
		clock:    provider,
		opts:     opts,
	}
}

// Next returns the frame for the current instant
// Returns false once the context is cancelled, and on every call after that
func (d *Driver) Next() (Frame, bool) {
	if d.done {
		return Frame{}, false
	}
	if d.ctx.Err() != nil {
		d.done = true
		return Frame{}, false
	}

	now := d.clock.Now()
	d.mu.Lock()
	if !d.started {
		d.start = now
		d.started = true
	}
	d.mu.Unlock()

	if d.opts.Preview {
		return Frame{
			Grid:    d.composer.GridForTime(d.opts.PreviewDate, PreviewElapsed),
			Date:    d.opts.PreviewDate,
			Elapsed: PreviewElapsed,
		}, true
	}

	elapsed := d.scale(now.Sub(d.start))
	date := d.start.Add(elapsed)

	if fade, ok := d.fadeElapsed(now); ok {
		elapsed = fade
	}

	return Frame{
		Grid:    d.composer.GridForTime(date, elapsed),
		Date:    date,
		Elapsed: elapsed,
	}, true
}

// BeginFadeOut starts the shutdown fade; later calls are ignored
// Frames keep coming until the context is cancelled; once FadedOut reports
// true they are blank. Stopping during the fade-in fades out from the
// current level rather than from a fully drawn frame.
func (d *Driver) BeginFadeOut() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopping {
		return
	}
	now := d.clock.Now()
	d.stopping = true
	d.stopAt = now

	if d.started && !d.opts.Preview {
		if shown := d.scale(now.Sub(d.start)); shown < d.fadeDuration() {
			d.fadeCredit = d.fadeDuration() - shown
		}
	}
}

// FadingOut reports whether BeginFadeOut has been called
func (d *Driver) FadingOut() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopping
}

// FadedOut reports whether the shutdown fade has reached blank
func (d *Driver) FadedOut() bool {
	remaining, ok := d.fadeRemaining(d.clock.Now())
	if !ok {
		return false
	}
	return d.opts.Preview || remaining == 0
}

// fadeRemaining returns how much of the fade-out is left, in scaled time
func (d *Driver) fadeRemaining(now time.Time) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopping {
		return 0, false
	}

	left := d.fadeDuration() - d.fadeCredit - d.scale(now.Sub(d.stopAt))
	if left < 0 {
		left = 0
	}
	return left, true
}

// fadeElapsed maps the fade-out onto the composer's elapsed axis
// A stop during the fade-in replays the fade-in curve backwards from the
// level on screen; otherwise the regular fade-out runs. Both reach blank at 0
func (d *Driver) fadeElapsed(now time.Time) (time.Duration, bool) {
	remaining, ok := d.fadeRemaining(now)
	if !ok {
		return 0, false
	}

	d.mu.Lock()
	reverse := d.fadeCredit > 0
	d.mu.Unlock()

	if reverse {
		return remaining, true
	}
	return -remaining, true
}

func (d *Driver) fadeDuration() time.Duration {
	return time.Duration(d.composer.FadeSeconds * float64(time.Second))
}

func (d *Driver) scale(wall time.Duration) time.Duration {
	return time.Duration(d.opts.Speed * float64(wall))
}
