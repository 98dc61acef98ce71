package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/physics"
)

// SeedAsteroid parks asteroid slot i off-screen at a fresh random x.
// The screen is split into one vertical band per asteroid slot so a wave
// never stacks all three in the same column.
func SeedAsteroid(p *Pool, i int, rng *rand.Rand) {
	lower := i * (config.ScreenWidth / config.MaxAsteroids)
	upper := (i + 1) * 24
	s := &p.Slots[i]
	s.X = float64(rng.Intn(upper-lower+1) + lower)
	s.Y = config.PoolY
	s.DX = 0
	s.DY = 1
	s.Ticks = 0
	s.State = 0
}

// SeedAsteroids reseeds every asteroid slot.
func SeedAsteroids(p *Pool, rng *rand.Rand) {
	for i := range p.Slots {
		SeedAsteroid(p, i, rng)
	}
}

// SpawnChildren places the two children of a destroyed parent at (x, y).
// The first child drifts left on a heading in [90°,120°], the second drifts
// right on a heading in [60°,90°]; both fall at a random rate.
// Whatever occupied the child slots before is overwritten.
func SpawnChildren(child *Pool, parent int, x, y float64, rng *rand.Rand) (int, int) {
	a, b := ChildIndices(parent)
	right := randBetween(rng, config.ChildHeadingLoMin, config.ChildHeadingLoMax)
	left := randBetween(rng, config.ChildHeadingHiMin, config.ChildHeadingHiMax)

	spawnChild(&child.Slots[a], x, y, left, rng)
	spawnChild(&child.Slots[b], x, y, right, rng)
	return a, b
}

func spawnChild(s *Slot, x, y float64, headingDeg int, rng *rand.Rand) {
	s.X = x
	s.Y = y
	s.DX = config.ChildSpeed * math.Cos(physics.Radians(float64(headingDeg)))
	s.DY = float64(randBetween(rng, 2, 15)) / 10
	s.Ticks = 0
	s.State = Active
}

// randBetween returns an int in [lo, hi].
func randBetween(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}
