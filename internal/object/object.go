// Package object defines the fixed-capacity entity pools and the player ship.
//
// Every entity lives in a slot of its tier's pool for the life of the process.
// Slots are never allocated or freed; they move between the pooled (off-screen)
// position and the playfield by changing their State.
package object

import (
	"fmt"

	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/physics"
)

// Tier identifies one of the four entity classes.
type Tier int

const (
	TierAsteroid Tier = iota
	TierBoulder
	TierFragment
	TierProjectile
)

// FallingTiers lists the tiers that threaten the shield, parents first.
var FallingTiers = [...]Tier{TierAsteroid, TierBoulder, TierFragment}

func (t Tier) String() string {
	switch t {
	case TierAsteroid:
		return "asteroid"
	case TierBoulder:
		return "boulder"
	case TierFragment:
		return "fragment"
	case TierProjectile:
		return "projectile"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Capacity returns the fixed number of slots in the tier's pool.
func (t Tier) Capacity() int {
	switch t {
	case TierAsteroid:
		return config.MaxAsteroids
	case TierBoulder:
		return config.MaxBoulders
	case TierFragment:
		return config.MaxFragments
	case TierProjectile:
		return config.MaxProjectiles
	default:
		return 0
	}
}

// Size returns the width and height of the tier's bounding box.
func (t Tier) Size() float64 {
	switch t {
	case TierAsteroid:
		return config.AsteroidSize
	case TierBoulder:
		return config.BoulderSize
	case TierFragment:
		return config.FragmentSize
	case TierProjectile:
		return config.ProjectileSize
	default:
		return 0
	}
}

// Score returns the points awarded for destroying one entity of the tier.
func (t Tier) Score() int {
	switch t {
	case TierAsteroid:
		return config.ScoreAsteroid
	case TierBoulder:
		return config.ScoreBoulder
	case TierFragment:
		return config.ScoreFragment
	default:
		return 0
	}
}

// Child returns the tier a destroyed entity splits into.
// Fragments and projectiles have no children.
func (t Tier) Child() (Tier, bool) {
	switch t {
	case TierAsteroid:
		return TierBoulder, true
	case TierBoulder:
		return TierFragment, true
	default:
		return 0, false
	}
}

// PoolY returns the off-screen row unused slots rest on.
func (t Tier) PoolY() float64 {
	if t == TierProjectile {
		return config.ProjectilePoolY
	}
	return config.PoolY
}

// Bounces reports whether the tier reflects off the left and right edges.
func (t Tier) Bounces() bool {
	return t == TierBoulder || t == TierFragment
}

// ChildIndices returns the two slots in the next tier owned by parent slot i.
// The mapping is a property of the pool layout: capacities double per tier,
// so every parent has exactly 2i and 2i+1 reserved.
func ChildIndices(i int) (int, int) {
	return 2 * i, 2*i + 1
}

// ParentIndex returns the slot in the previous tier that owns child slot i.
func ParentIndex(i int) int {
	return i / 2
}

// State is the per-slot flag set.
type State uint8

const (
	// Drawn means the slot is occupied: rendered and collidable.
	Drawn State = 1 << iota
	// Moving means the slot advances on each throttled step.
	Moving
	// Broken marks the slot for teardown and child spawn in the current update.
	Broken
)

// Active is the state of a freshly released or spawned entity.
const Active = Drawn | Moving

// Has reports whether all flags in f are set.
func (s State) Has(f State) bool {
	return s&f == f
}

// Any reports whether at least one flag in f is set.
func (s State) Any(f State) bool {
	return s&f != 0
}

// IsDrawn reports whether the slot is occupied.
func (s State) IsDrawn() bool { return s.Has(Drawn) }

// IsMoving reports whether the slot advances.
func (s State) IsMoving() bool { return s.Has(Moving) }

// IsBroken reports whether the slot awaits teardown.
func (s State) IsBroken() bool { return s.Has(Broken) }

// IsPooled reports whether the slot is free.
func (s State) IsPooled() bool { return s == 0 }

func (s State) String() string {
	if s == 0 {
		return "pooled"
	}
	out := ""
	for _, f := range []struct {
		flag State
		name string
	}{{Drawn, "drawn"}, {Moving, "moving"}, {Broken, "broken"}} {
		if s.Has(f.flag) {
			if out != "" {
				out += "|"
			}
			out += f.name
		}
	}
	return out
}

// Slot is one reusable entity.
type Slot struct {
	X, Y    float64 // Top-left corner, screen space
	DX, DY  float64 // Displacement applied per move
	Heading float64 // Projectiles only: fixed at fire time
	Ticks   int     // Steps since the last move
	State   State
}

// Box returns the slot's bounding box for a tier size.
func (s *Slot) Box(size float64) physics.Rect {
	return physics.Square(s.X, s.Y, size)
}

// Pool is a fixed-capacity array of slots for one tier.
type Pool struct {
	Tier  Tier
	Slots []Slot
}

// NewPool creates a pool for a tier with all slots pooled.
func NewPool(t Tier) *Pool {
	p := &Pool{
		Tier:  t,
		Slots: make([]Slot, t.Capacity()),
	}
	p.Reset()
	return p
}

// Len returns the pool capacity.
func (p *Pool) Len() int {
	return len(p.Slots)
}

// At returns slot i.
func (p *Pool) At(i int) *Slot {
	return &p.Slots[i]
}

// Reset returns every slot to the pool. X positions are kept; callers that
// need fresh positions reseed them.
func (p *Pool) Reset() {
	for i := range p.Slots {
		p.Release(i)
		p.Slots[i].Ticks = 0
	}
}

// Release clears slot i back to the pooled position.
func (p *Pool) Release(i int) {
	s := &p.Slots[i]
	s.Y = p.Tier.PoolY()
	s.State = 0
	if p.Tier == TierProjectile {
		s.X = config.ProjectilePoolY
	}
}

// FirstFree returns the lowest slot that is not drawn.
func (p *Pool) FirstFree() (int, bool) {
	for i := range p.Slots {
		if !p.Slots[i].State.IsDrawn() {
			return i, true
		}
	}
	return 0, false
}

// CountMoving returns the number of slots with Moving set.
func (p *Pool) CountMoving() int {
	n := 0
	for i := range p.Slots {
		if p.Slots[i].State.IsMoving() {
			n++
		}
	}
	return n
}

// CountDrawn returns the number of occupied slots.
func (p *Pool) CountDrawn() int {
	n := 0
	for i := range p.Slots {
		if p.Slots[i].State.IsDrawn() {
			n++
		}
	}
	return n
}

// AnyBroken reports whether any slot still carries Broken.
func (p *Pool) AnyBroken() bool {
	for i := range p.Slots {
		if p.Slots[i].State.IsBroken() {
			return true
		}
	}
	return false
}

// Step advances slot i's throttle counter and moves it when the counter times
// rate passes the threshold. Bouncing tiers reflect their horizontal velocity
// when the projected box would leave the screen. Reports whether a move happened.
func (p *Pool) Step(i int, rate float64) bool {
	s := &p.Slots[i]
	s.Ticks++
	if float64(s.Ticks)*rate <= config.MoveThreshold {
		return false
	}
	s.Ticks = 0
	if !s.State.IsMoving() {
		return false
	}
	if p.Tier.Bounces() {
		bounce(s, p.Tier.Size())
	}
	s.X += s.DX
	s.Y += s.DY
	return true
}

// bounce reflects DX when the next position would put the box outside the
// screen. The reflection happens before the move, so an entity may sit one
// step inside the edge band before turning around.
func bounce(s *Slot, size float64) {
	next := s.X + s.DX
	if next <= 0 || next+size >= config.ScreenWidth {
		s.DX = -s.DX
	}
}
