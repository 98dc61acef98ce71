// Package sound drives the console buzzer from presented frames.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/pewpew/internal/loop"
)

const sampleRate = beep.SampleRate(44100)

// Tones for each event.
const (
	waveFreq  = 880.0
	waveLen   = 80 * time.Millisecond
	hitFreq   = 1320.0
	hitLen    = 25 * time.Millisecond
	overFreq  = 220.0
	overLen   = 400 * time.Millisecond
	toneLevel = 0.25
)

// Player plays a single tone.
type Player interface {
	Play(freq float64, d time.Duration)
}

// Buzzer watches frames and beeps when a wave indicator lights, a target is
// destroyed or the game is lost.
type Buzzer struct {
	player Player
	leds   loop.LEDs
	screen loop.Screen
	score  int
}

// NewBuzzer creates a buzzer playing through p.
func NewBuzzer(p Player) *Buzzer {
	return &Buzzer{player: p}
}

// Observe compares f with the previous frame and plays any due tone.
func (b *Buzzer) Observe(f loop.Frame) {
	switch {
	case f.Screen == loop.ScreenGameOver && b.screen != loop.ScreenGameOver:
		b.player.Play(overFreq, overLen)
	case f.Screen == loop.ScreenPlaying && f.Score > b.score:
		b.player.Play(hitFreq, hitLen)
	case (f.LEDs.Left && !b.leds.Left) || (f.LEDs.Right && !b.leds.Right):
		if f.Screen == loop.ScreenPlaying {
			b.player.Play(waveFreq, waveLen)
		}
	}
	b.leds = f.LEDs
	b.screen = f.Screen
	b.score = f.Score
}

// Speaker plays tones on the default audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	logger      *log.Logger
	initialized bool
}

// NewSpeaker opens the audio device. Tones that cannot be generated are
// reported to logger.
func NewSpeaker(logger *log.Logger) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}, logger: logger, initialized: true}
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes in a sine tone.
func (s *Speaker) Play(freq float64, d time.Duration) {
	tone, err := newTone(freq, d)
	if err != nil {
		s.logger.Warn("Tone dropped", "err", err)
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		s.mixer.Add(tone)
	}
}

// newTone returns a sine of freq Hz lasting d at the mixer level.
func newTone(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.0f Hz: %w", freq, err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   math.Log2(toneLevel),
	}, nil
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Silent discards every tone.
type Silent struct{}

// Play does nothing.
func (Silent) Play(float64, time.Duration) {}
