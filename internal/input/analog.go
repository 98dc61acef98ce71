package input

import "github.com/tomz197/pewpew/internal/physics"

// Potentiometer readings span a 10-bit ADC.
const (
	knobMax    = 1023
	knobStep   = 64
	knobCenter = 512
)

// Knobs emulates the two analog potentiometers with keyboard nudges.
// Readings are pre-scaled to the ranges the engine expects.
type Knobs struct {
	turret int
	speed  int
}

// NewKnobs returns knobs with the turret centered and a moderate speed.
func NewKnobs() *Knobs {
	return &Knobs{turret: knobCenter, speed: knobCenter}
}

// NudgeTurret turns the turret knob by steps notches.
func (k *Knobs) NudgeTurret(steps int) {
	k.turret = physics.ClampInt(k.turret+steps*knobStep, 0, knobMax)
}

// NudgeSpeed turns the speed knob by steps notches.
func (k *Knobs) NudgeSpeed(steps int) {
	k.speed = physics.ClampInt(k.speed+steps*knobStep, 0, knobMax)
}

// SetRaw sets both raw readings directly, clamped to the ADC range.
func (k *Knobs) SetRaw(turret, speed int) {
	k.turret = physics.ClampInt(turret, 0, knobMax)
	k.speed = physics.ClampInt(speed, 0, knobMax)
}

// Turret returns the turret offset in [-2, 2].
func (k *Knobs) Turret() int {
	return k.turret*5/(knobMax+1) - 2
}

// Speed returns the game speed in [0, 10].
func (k *Knobs) Speed() float64 {
	return float64(k.speed * 11 / (knobMax + 1))
}
