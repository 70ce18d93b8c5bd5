// Package audio plays an optional two-note chime when the displayed minute
// turns over. Audio is best-effort: without a working output device every
// operation is a silent no-op.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDurationMs = 100
	noteDurationMs          = 180
	chimeHighHz             = 1318.5 // E6
	chimeLowHz              = 1046.5 // C6
)

// Chime sounds the minute turnover
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	lastMinute int64
	seen       bool
}

// NewChime creates a chime at volume 0.0-1.0
func NewChime(volume float64) *Chime {
	return &Chime{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize opens the speaker; calling it again is a no-op
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*speakerBufferDurationMs))
	if err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences pending notes and closes the speaker
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	c.initialized = false
}

// Observe records the displayed time and chimes when its minute differs from
// the previous observation; the first observation never chimes
// Returns true when the minute turned over
func (c *Chime) Observe(t time.Time) bool {
	minute := t.Unix() / 60

	c.mu.Lock()
	turned := c.seen && minute != c.lastMinute
	c.lastMinute = minute
	c.seen = true
	c.mu.Unlock()

	if turned {
		c.Play()
	}
	return turned
}

// Play queues the chime
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.volume == 0 {
		return
	}

	streamer, err := c.tone()
	if err != nil {
		return
	}

	speaker.Lock()
	c.mixer.Add(streamer)
	speaker.Unlock()
}

// tone builds the high-low two-note chime with a decaying envelope
func (c *Chime) tone() (beep.Streamer, error) {
	high, err := note(chimeHighHz)
	if err != nil {
		return nil, err
	}
	low, err := note(chimeLowHz)
	if err != nil {
		return nil, err
	}

	return &effects.Volume{
		Streamer: beep.Seq(high, low),
		Base:     2,
		Volume:   math.Log2(c.volume),
	}, nil
}

func note(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	samples := sampleRate.N(time.Millisecond * noteDurationMs)
	return newDecay(beep.Take(samples, sine), samples), nil
}

// decay fades a streamer linearly to silence over length samples
type decay struct {
	streamer beep.Streamer
	length   int
	position int
}

func newDecay(s beep.Streamer, length int) *decay {
	return &decay{streamer: s, length: length}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(d.position)/float64(d.length)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
