package object

import (
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/physics"
)

// Direction is the ship's current lateral drift.
type Direction int

const (
	Neutral Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "neutral"
	}
}

// Turret is the aimable barrel on top of the ship.
type Turret struct {
	X        int  // Offset of the aim point from the barrel base, [-2,2]
	Y        int  // Row of the aim point
	Override bool // Analog aim is ignored while set
}

// Ship is the player's lateral-moving base.
type Ship struct {
	X         int
	Direction Direction
	Speed     int // Movement rate fed to the step throttle
	Ticks     int
}

// NewShip creates a ship at its start column.
func NewShip() Ship {
	return Ship{
		X:     config.ShipStartX,
		Speed: config.ShipSpeed,
	}
}

// SteerLeft cancels rightward drift or starts drifting left.
func (s *Ship) SteerLeft() {
	if s.Direction == Right {
		s.Direction = Neutral
	} else {
		s.Direction = Left
	}
}

// SteerRight cancels leftward drift or starts drifting right.
func (s *Ship) SteerRight() {
	if s.Direction == Left {
		s.Direction = Neutral
	} else {
		s.Direction = Right
	}
}

// Ready advances the throttle counter and reports whether the ship may move
// this step.
func (s *Ship) Ready() bool {
	s.Ticks++
	if s.Ticks*s.Speed <= config.MoveThreshold {
		return false
	}
	s.Ticks = 0
	return true
}

// FitTurret clamps the turret so ship and barrel stay on screen. Returns true
// when the offset had to be clamped.
func (s *Ship) FitTurret(t *Turret) bool {
	if s.X+config.ShipWidth+t.X > config.ScreenWidth-1 {
		t.X = config.ScreenWidth - 1 - (s.X + config.ShipWidth)
		return true
	}
	return false
}

// Move shifts the ship one column in its current direction. Reaching a bound
// stops the ship instead of moving it. The right bound accounts for a turret
// aimed past the hull.
func (s *Ship) Move(t Turret) {
	width := config.ShipWidth
	if t.X > 0 {
		width += t.X
	}
	switch s.Direction {
	case Right:
		if s.X > config.ScreenWidth-1-width {
			s.Direction = Neutral
		} else {
			s.X++
		}
	case Left:
		if s.X < 1 {
			s.Direction = Neutral
		} else {
			s.X--
		}
	}
}

// Place moves the ship to column x, clamped to the screen, and stops it.
func (s *Ship) Place(x int) {
	s.X = physics.ClampInt(x, 0, config.ScreenWidth-config.ShipWidth)
	s.Direction = Neutral
}

// BarrelBase returns the point the turret barrel starts from.
func (s *Ship) BarrelBase() (float64, float64) {
	return float64(s.X + 7), config.TurretBaseY
}

// Muzzle returns where new projectiles appear for the given turret.
func (s *Ship) Muzzle(t Turret) (float64, float64) {
	return float64(s.X + 8 + t.X), float64(t.Y)
}

// AimPoint returns the turret's aim point.
func (s *Ship) AimPoint(t Turret) (float64, float64) {
	return float64(s.X + 7 + t.X), float64(t.Y)
}

// Heading returns the launch heading for the turret's current aim.
func (s *Ship) Heading(t Turret) float64 {
	bx, by := s.BarrelBase()
	ax, ay := s.AimPoint(t)
	return physics.Angle(bx, by, ax, ay)
}
