package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/matt-g-everett/cakeshow/util"
)

const (
	sampleRate = beep.SampleRate(44100)
	clickTime  = 18 * time.Millisecond
)

// Clicker plays a typewriter key click for each typed character.
type Clicker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	envelope    []float64
	initialized bool
}

// NewClicker creates an instance of a Clicker.
func NewClicker() *Clicker {
	c := new(Clicker)
	c.mixer = &beep.Mixer{}
	c.envelope = util.Envelope(sampleRate.N(clickTime))
	return c
}

// Initialize opens the audio device.
func (c *Clicker) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences pending clicks.
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Click queues one key click. Whitespace gets a softer, lower thud.
func (c *Clicker) Click(r rune) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	freq := 1800.0 + rand.Float64()*400
	gain := 0.25
	if r == ' ' {
		freq = 900
		gain = 0.15
	}

	speaker.Lock()
	c.mixer.Add(NewClickGenerator(sampleRate, freq, gain, c.envelope))
	speaker.Unlock()
}

// ClickGenerator streams one enveloped, noisy tone burst.
type ClickGenerator struct {
	sr       beep.SampleRate
	freq     float64
	gain     float64
	envelope []float64
	pos      int
	noise    *rand.Rand
}

// NewClickGenerator creates a click lasting len(envelope) samples.
func NewClickGenerator(sr beep.SampleRate, freq, gain float64, envelope []float64) *ClickGenerator {
	return &ClickGenerator{
		sr:       sr,
		freq:     freq,
		gain:     gain,
		envelope: envelope,
		noise:    rand.New(rand.NewSource(int64(freq))),
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= len(g.envelope) {
		return 0, false
	}

	for i := range samples {
		if g.pos >= len(g.envelope) {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		tone := math.Sin(2 * math.Pi * g.freq * t)
		noise := g.noise.Float64()*2 - 1
		sample := g.gain * g.envelope[g.pos] * (0.7*tone + 0.3*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}
