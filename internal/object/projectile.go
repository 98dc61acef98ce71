package object

import (
	"math"

	"github.com/tomz197/pewpew/internal/loop/config"
)

// Launch puts the first free projectile slot in flight from (x, y) along
// heading. Returns false without side effects when the pool is full.
func Launch(p *Pool, x, y, heading float64) (int, bool) {
	i, ok := p.FirstFree()
	if !ok {
		return 0, false
	}
	s := &p.Slots[i]
	s.X = x
	s.Y = y
	s.Heading = heading
	s.DX = math.Cos(heading)
	s.DY = math.Sin(heading)
	s.Ticks = 0
	s.State = Active
	return i, true
}

// OffScreen reports whether a projectile has left the playfield.
func OffScreen(s *Slot) bool {
	return s.Y < 0 || s.X > config.ScreenWidth || s.X < 0
}
