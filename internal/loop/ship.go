package loop

import (
	"github.com/tomz197/pewpew/internal/object"
)

// stepShip moves the ship once its throttle allows. Before moving, a turret
// aimed past the right edge is pulled back and held there until the override
// timer expires.
func (e *Engine) stepShip() {
	if !e.ship.Ready() {
		return
	}
	if e.ship.FitTurret(&e.turret) {
		e.turret.Override = true
	}
	e.ship.Move(e.turret)
}

// fire launches one projectile from the turret tip toward the aim point.
// A single shared cooldown limits the fire rate regardless of how many
// projectiles are in flight; a full pool makes the shot a no-op.
func (e *Engine) fire() {
	if e.fired {
		return
	}
	x, y := e.ship.Muzzle(e.turret)
	if _, ok := object.Launch(e.pools[object.TierProjectile], x, y, e.ship.Heading(e.turret)); !ok {
		return
	}
	e.fired = true
	e.fireTimer.Reset()
}
