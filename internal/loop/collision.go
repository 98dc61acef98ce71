package loop

import (
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/object"
)

// moveEntities advances every slot's throttle and moves the ones due.
// Falling tiers move at game speed, projectiles at ship speed. Projectiles
// leaving the screen go back to the pool.
func (e *Engine) moveEntities() {
	for _, t := range object.FallingTiers {
		p := e.pools[t]
		for i := range p.Slots {
			p.Step(i, e.gameSpeed)
		}
	}

	projectiles := e.pools[object.TierProjectile]
	for i := range projectiles.Slots {
		projectiles.Step(i, config.ShipSpeed)
		if s := projectiles.At(i); s.State.IsDrawn() && object.OffScreen(s) {
			projectiles.Release(i)
		}
	}
}

// collide tests every drawn projectile against every visible entity. A hit
// marks the entity Broken, returns the projectile and scores the tier.
// An entity may absorb several projectiles in one pass; each one scores.
func (e *Engine) collide() {
	projectiles := e.pools[object.TierProjectile]
	for _, t := range object.FallingTiers {
		p := e.pools[t]
		size := t.Size()
		for i := range p.Slots {
			s := p.At(i)
			if !s.State.IsDrawn() || s.Y <= 0 {
				continue
			}
			box := s.Box(size)
			for j := range projectiles.Slots {
				b := projectiles.At(j)
				if !b.State.IsDrawn() {
					continue
				}
				if box.Overlaps(b.Box(config.ProjectileSize)) {
					s.State = object.Broken
					projectiles.Release(j)
					e.score += t.Score()
				}
			}
		}
	}
}

// resolve tears down Broken entities and entities past the shield line.
// Broken parents split into their two children; crossing the line costs one
// shield. Both can happen to the same entity in the same step. Tiers resolve
// children first so a parent's fresh children are never left Broken.
func (e *Engine) resolve() {
	for k := len(object.FallingTiers) - 1; k >= 0; k-- {
		t := object.FallingTiers[k]
		p := e.pools[t]
		line := float64(config.ShieldLine) - t.Size()
		for i := range p.Slots {
			s := p.At(i)
			broken := s.State.IsBroken()
			crossed := s.Y > line
			if !broken && !crossed {
				continue
			}
			if broken {
				if child, ok := t.Child(); ok {
					object.SpawnChildren(e.pools[child], i, s.X, s.Y, e.rng)
				}
			}
			if crossed {
				e.shield--
			}
			p.Release(i)
			if t == object.TierAsteroid {
				object.SeedAsteroid(p, i, e.rng)
			}
		}
	}
}
