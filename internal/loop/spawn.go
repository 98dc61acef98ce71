package loop

import (
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/object"
)

// onScreen counts the falling entities still in motion.
func (e *Engine) onScreen() int {
	n := 0
	for _, t := range object.FallingTiers {
		n += e.pools[t].CountMoving()
	}
	return n
}

// spawn runs the wave scheduler for one tick. A wave starts once the sky is
// clear; after a short lead-in the three asteroid slots are released in
// shuffled order, one per random delay. Occupied slots are skipped but still
// count toward the wave.
func (e *Engine) spawn() {
	if e.gameSpeed <= 0 {
		return
	}

	if !e.wave.started && e.onScreen() == 0 {
		e.waveTimer.Reset()
		e.wave.started = true
		e.wave.count = 0
		e.shuffleWave()
		e.wave.delay = e.spawnDelay()
		e.flashLED = true
	}

	if e.waveTimer.Elapsed <= config.WaveStartDelay {
		return
	}
	e.lightWaveLED()

	if e.spawnTimer.Elapsed < e.wave.delay {
		return
	}
	e.wave.delay = e.spawnDelay()
	if e.wave.started {
		i := e.wave.order[e.wave.count]
		asteroids := e.pools[object.TierAsteroid]
		if s := asteroids.At(i); !s.State.Any(object.Active) {
			s.Ticks = 0
			s.State = object.Active
		}
		e.wave.count++
		if e.wave.count >= len(e.wave.order) {
			e.wave.started = false
			e.wave.count = 0
		}
	}
	e.spawnTimer.Reset()
}

// shuffleWave permutes the release order with one random transposition per slot.
func (e *Engine) shuffleWave() {
	n := len(e.wave.order)
	for i := 0; i < n; i++ {
		j := e.rng.Intn(n)
		e.wave.order[i], e.wave.order[j] = e.wave.order[j], e.wave.order[i]
	}
}

// spawnDelay draws the next inter-release delay in (0.1, 1.6] seconds.
func (e *Engine) spawnDelay() float64 {
	steps := e.rng.Intn(config.SpawnDelayStepMax-config.SpawnDelayStepMin+1) + config.SpawnDelayStepMin
	return 0.1 + float64(steps)/10
}

// lightWaveLED lights the indicator on the side the middle asteroid will fall,
// once per wave.
func (e *Engine) lightWaveLED() {
	if !e.flashLED {
		return
	}
	e.flashLED = false
	e.ledTimer.Reset()
	if e.flags.IsOver() {
		e.leds = LEDs{Left: true, Right: true}
		return
	}
	mid := e.pools[object.TierAsteroid].At(1)
	if mid.X+3 > config.ScreenWidth/2 {
		e.leds = LEDs{Right: true}
	} else {
		e.leds = LEDs{Left: true}
	}
}

// updateLEDs switches the wave indicator off after its on time.
func (e *Engine) updateLEDs() {
	if e.flags.IsOver() && !e.flags.Has(OverChoiceShown) {
		return
	}
	if (e.leds.Left || e.leds.Right) && e.ledTimer.Reached(config.LEDOnTime) {
		e.leds = LEDs{}
	}
}
