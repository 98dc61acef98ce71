package loop

import (
	"strconv"

	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/object"
	"github.com/tomz197/pewpew/internal/physics"
)

// cmdTurret is the debug command that overrides the turret aim.
const cmdTurret = 'o'

// carriageReturn ends a captured number.
const carriageReturn = 13

// prompt is a pending debug command waiting for a number. Move commands for
// entities take two numbers, x then y.
type prompt struct {
	cmd   byte
	wantY bool
	x     int
	buf   [config.InputBufferSize]byte
	n     int
}

// feed appends one byte to the capture buffer. On carriage return it returns
// the parsed value and true. Bytes past the buffer size are dropped.
func (p *prompt) feed(b byte) (int, bool) {
	if b == carriageReturn {
		v := atoi(p.buf[:p.n])
		p.n = 0
		return v, true
	}
	if p.n < len(p.buf) {
		p.buf[p.n] = b
		p.n++
	}
	return 0, false
}

// atoi parses a leading decimal integer the way C's atoi does: leading
// spaces are skipped, parsing stops at the first non-digit, and anything
// unparseable is 0.
func atoi(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	start := i
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		i++
	}
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	v, err := strconv.Atoi(string(b[start:i]))
	if err != nil {
		return 0
	}
	return v
}

// AwaitingInput reports whether the engine is capturing a number. The host
// keeps ticking while it waits.
func (e *Engine) AwaitingInput() bool {
	return e.flags.IsAwaiting()
}

// request starts capturing a number for cmd. A capture already in progress
// is never replaced.
func (e *Engine) request(cmd byte, msg string) {
	if e.flags.IsAwaiting() {
		return
	}
	e.prompt = prompt{cmd: cmd}
	e.flags.set(AwaitingInput)
	e.print(msg)
}

// SubmitInput completes the pending capture with v. It does nothing when no
// capture is pending.
func (e *Engine) SubmitInput(v int) {
	if !e.flags.IsAwaiting() {
		return
	}
	e.flags.clear(AwaitingInput)
	p := e.prompt

	switch p.cmd {
	case cmdTurret:
		e.overrideTurret(v)
	case 'm', 'l', 'g':
		e.override(p.cmd, v)
	case 'h':
		e.moveShip(v)
	case 'j', 'k', 'i':
		if !p.wantY {
			e.prompt = prompt{cmd: p.cmd, wantY: true, x: v}
			e.flags.set(AwaitingInput)
			e.print("Input y coordinates: - (0-39)\r\n")
			return
		}
		e.moveEntity(moveTier(p.cmd), p.x, v)
	}
	e.prompt = prompt{}
}

func moveTier(cmd byte) object.Tier {
	switch cmd {
	case 'j':
		return object.TierAsteroid
	case 'k':
		return object.TierBoulder
	default:
		return object.TierFragment
	}
}

// overrideTurret aims the turret from a heading in [-60, 60] and pauses so
// the new aim can be inspected.
func (e *Engine) overrideTurret(v int) {
	v = physics.ClampInt(v, config.TurretOverrideMin, config.TurretOverrideMax)
	e.turret.X = v / config.TurretOverrideDiv
	e.turret.Override = true
	e.overrideTimer.Reset()
	e.flags.set(Paused)
	e.print("Turret heading changed\r\n")
}

// override sets speed, shield or score. Negative values become 0.
func (e *Engine) override(cmd byte, v int) {
	if v < 0 {
		v = 0
	}
	switch cmd {
	case 'g':
		e.score = v
	case 'l':
		e.shield = v
	case 'm':
		if v > config.SpeedOverrideMax {
			v = config.SpeedOverrideMax
		}
		e.gameSpeed = float64(v / config.SpeedOverrideDiv)
		e.speedOverride = true
		e.overrideTimer.Reset()
	}
	e.flags.set(Cheated)
}

// moveShip clears the field and puts the ship at column x. Play resumes.
func (e *Engine) moveShip(x int) {
	e.resetPools()
	e.ship.Place(x)
	e.flags.clear(Cheated | Paused)
	e.print("ship moved\r\n")
}

// moveEntity clears the field and parks slot 1 of the tier at (x, y), drawn
// but not moving. Row 0 is reserved for pooled slots, so y is at least 1. The game pauses as cheated so projectiles can still be
// fired at it.
func (e *Engine) moveEntity(t object.Tier, x, y int) {
	e.resetPools()
	size := int(t.Size())
	s := e.pools[t].At(1)
	s.X = float64(physics.ClampInt(x, 0, config.ScreenWidth-size))
	s.Y = float64(physics.ClampInt(y, 1, config.ShieldLine-size))
	s.Ticks = 0
	s.State = object.Drawn
	e.flags.set(Cheated | Paused)

	switch t {
	case object.TierAsteroid:
		e.print("Asteroid moved\r\n")
	case object.TierBoulder:
		e.print("Boulder moved\r\n")
	default:
		e.print("Fragment moved\r\n")
	}
}
