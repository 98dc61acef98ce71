// Package loop is the game engine: one aggregate that owns every pool, timer
// and flag, advanced by a fixed hardware tick.
package loop

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/tomz197/pewpew/internal/clock"
	"github.com/tomz197/pewpew/internal/input"
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/object"
	"github.com/tomz197/pewpew/internal/physics"
)

// DefaultGameSpeed is the fall rate used until an analog source reports one.
const DefaultGameSpeed = 5.0

// AnalogInput supplies the two potentiometer readings, already scaled:
// turret offset in [-2, 2] and game speed in [0, 10].
type AnalogInput interface {
	Turret() int
	Speed() float64
}

// Options configures an Engine. The zero value is usable.
type Options struct {
	Rand       *rand.Rand  // Random source; seeded from the clock when nil
	FrameTicks int         // Ticks per simulation step; config.FrameTicks when zero
	Debug      io.Writer   // Debug channel replies; discarded when nil
	Analog     AnalogInput // Potentiometers; the last values are kept when nil
}

// LEDs are the two indicator lights under the panel.
type LEDs struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// wave is the spawn scheduler's progress through one release sequence.
type wave struct {
	started bool
	order   [config.MaxAsteroids]int
	count   int
	delay   float64
}

// Engine is the whole simulation. It is not safe for concurrent use; one
// goroutine calls Tick, HandleByte and Frame in sequence.
type Engine struct {
	rng        *rand.Rand
	out        io.Writer
	analog     AnalogInput
	frameTicks int

	flags    Flags
	debounce input.Debouncer
	raw      input.Lines
	edges    []input.Edge

	pools  [4]*object.Pool // Indexed by object.Tier
	ship   object.Ship
	turret object.Turret

	score         int
	shield        int
	gameSpeed     float64
	speedOverride bool
	statusScreen  bool
	fired         bool
	gameTime      float64

	fireTimer     clock.Timer
	spawnTimer    clock.Timer
	waveTimer     clock.Timer
	ledTimer      clock.Timer
	overrideTimer clock.Timer
	overTimer     float64

	wave      wave
	flashLED  bool
	leds      LEDs
	backlight int

	introX, introY int

	prompt prompt

	ticks    uint64
	subTicks int
}

// NewEngine creates an engine showing the intro screen.
func NewEngine(opts Options) *Engine {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	out := opts.Debug
	if out == nil {
		out = io.Discard
	}
	frameTicks := opts.FrameTicks
	if frameTicks <= 0 {
		frameTicks = config.FrameTicks
	}

	e := &Engine{
		rng:           rng,
		out:           out,
		analog:        opts.Analog,
		frameTicks:    frameTicks,
		flags:         Intro,
		gameSpeed:     DefaultGameSpeed,
		fireTimer:     clock.NewTimer(config.FireTimerWrap),
		spawnTimer:    clock.NewTimer(config.SpawnTimerWrap),
		waveTimer:     clock.NewTimer(config.WaveTimerWrap),
		ledTimer:      clock.NewTimer(config.LEDTimerWrap),
		overrideTimer: clock.NewTimer(config.OverrideExpiry),
		backlight:     config.BacklightMax,
		introX:        rng.Intn(config.ScreenWidth),
		introY:        -config.AsteroidSize,
	}
	for _, t := range []object.Tier{object.TierAsteroid, object.TierBoulder, object.TierFragment, object.TierProjectile} {
		e.pools[t] = object.NewPool(t)
	}
	e.resetGame()
	e.flags = Intro
	return e
}

// Pool returns the pool for a tier.
func (e *Engine) Pool(t object.Tier) *object.Pool {
	return e.pools[t]
}

// Flags returns the current game state.
func (e *Engine) Flags() Flags { return e.flags }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Shield returns the remaining shield life.
func (e *Engine) Shield() int { return e.shield }

// Ship returns the ship and turret.
func (e *Engine) Ship() (object.Ship, object.Turret) { return e.ship, e.turret }

// GameSpeed returns the current fall rate.
func (e *Engine) GameSpeed() float64 { return e.gameSpeed }

// Ticks returns the number of hardware ticks processed.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Done reports whether the game has been quit.
func (e *Engine) Done() bool { return e.flags.IsQuit() }

// SetLines records the raw level of the physical controls. The debouncer
// samples it on every following tick until it is replaced.
func (e *Engine) SetLines(raw input.Lines) {
	e.raw = raw
}

// Tick advances the engine by one hardware tick of config.Delta seconds.
// Input sampling, timers and the spawn scheduler run every tick; movement and
// collisions run once per simulation step of FrameTicks ticks.
func (e *Engine) Tick() {
	e.ticks++
	if e.flags.IsQuit() {
		return
	}

	e.debounce.Sample(e.raw)
	e.edges = e.debounce.Edges(e.edges[:0])
	for _, ed := range e.edges {
		if ed.Closed {
			e.handleControl(ed.Control)
		}
	}
	if e.flags.IsQuit() {
		return
	}

	e.advanceTimers()
	e.dimBacklight()

	step := false
	e.subTicks++
	if e.subTicks >= e.frameTicks {
		e.subTicks = 0
		step = true
	}

	if e.flags.InIntro() {
		if step {
			e.stepIntro()
		}
		return
	}

	if !e.flags.IsPaused() && !e.flags.IsAwaiting() {
		e.gameTime += clock.Delta
		e.spawn()
	}
	e.updateLEDs()

	if (!e.flags.IsPaused() || e.flags.IsCheated()) && e.fired && e.fireTimer.Reached(config.FireCooldown) {
		e.fired = false
	}

	if step {
		e.simulationStep()
	}

	e.checkOver()
}

// simulationStep is one frame of motion: analog read, pool movement,
// collisions, shield line and ship movement.
func (e *Engine) simulationStep() {
	if e.flags.IsAwaiting() {
		return
	}
	e.readAnalog()

	if e.flags.Simulating() {
		e.moveEntities()
		e.collide()
		e.resolve()
	}
	if !e.flags.IsPaused() {
		e.stepShip()
	}
}

func (e *Engine) advanceTimers() {
	e.fireTimer.Advance()
	e.spawnTimer.Advance()
	e.waveTimer.Advance()
	e.ledTimer.Advance()

	e.overrideTimer.Advance()
	if e.overrideTimer.Elapsed > config.OverrideExpiry {
		e.turret.Override = false
		e.speedOverride = false
		e.overrideTimer.Reset()
	}
}

// dimBacklight ramps the backlight one step per tick: down during the
// game-over sequence, back up otherwise.
func (e *Engine) dimBacklight() {
	if e.flags.IsOver() && !e.flags.Has(OverChoiceShown) {
		if e.backlight > 0 {
			e.backlight--
		}
		return
	}
	if e.backlight < config.BacklightMax {
		e.backlight++
	}
}

func (e *Engine) readAnalog() {
	if e.analog == nil {
		return
	}
	if !e.turret.Override {
		e.turret.X = physics.ClampInt(e.analog.Turret(), config.TurretMin, config.TurretMax)
	}
	if !e.speedOverride {
		e.gameSpeed = e.analog.Speed()
	}
}

// stepIntro drops the decorative asteroid down the title screen.
func (e *Engine) stepIntro() {
	if e.introY > config.ScreenHeight {
		e.introX = e.rng.Intn(config.ScreenWidth)
		e.introY = -10
	}
	e.introY++
}

// checkOver enters the game-over state when the shield is gone and runs the
// timed sequence that ends with the restart-or-quit choice.
func (e *Engine) checkOver() {
	if e.shield < 1 && !e.flags.Has(OverChoiceShown) && !e.flags.IsOver() {
		e.flags.enterOver()
		e.overTimer = 0
	}
	if !e.flags.IsOver() || e.flags.Has(OverChoiceShown) {
		return
	}
	e.leds = LEDs{Left: true, Right: true}
	e.overTimer += clock.Delta
	if e.overTimer >= config.GameOverSequence {
		e.flags.set(OverChoiceShown)
		e.leds = LEDs{}
		e.print("*********GAME OVER**********\r\n")
		e.writeStatus()
	}
}

// resetGame puts every pool, timer and counter back to its starting value.
func (e *Engine) resetGame() {
	e.score = 0
	e.shield = config.InitialShield
	e.gameTime = 0
	e.statusScreen = false
	e.fired = false
	e.flashLED = false
	e.leds = LEDs{}
	e.overTimer = 0

	e.ship = object.NewShip()
	if e.rng.Intn(10)+1 > 5 {
		e.ship.Direction = object.Left
	} else {
		e.ship.Direction = object.Right
	}
	e.turret.Y = config.TurretY

	e.resetPools()
}

// resetPools returns every entity to the pool and restarts the wave.
func (e *Engine) resetPools() {
	for _, p := range e.pools {
		p.Reset()
	}
	object.SeedAsteroids(e.pools[object.TierAsteroid], e.rng)
	e.wave = wave{order: [config.MaxAsteroids]int{0, 1, 2}}
}

func (e *Engine) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func (e *Engine) print(s string) {
	io.WriteString(e.out, s)
}
