// Package mob implements the server-side creature: the CatoMob orchestrator
// that owns all per-tick behavior state, and the population roster its goals
// query for neighbors, buddies, and threats.
package mob

import (
	"catoworld/server/internal/world"
)

// Actor is anything standing in the world that mobs can perceive: other
// mobs, or player stand-ins. Handles are weak; callers re-check Alive at
// every use.
type Actor interface {
	ID() string
	Pos() world.Vec3
	Alive() bool
	SpeciesName() string
	// Threat reports whether hostile mobs should acquire this actor.
	Threat() bool
	// Hurt applies damage from the attacker, which may be nil for
	// environmental damage.
	Hurt(damage float64, attacker Actor)
}

// Player is a minimal player stand-in used by the simulation loop and the
// tests. It takes damage but has no behavior of its own.
type Player struct {
	Name     string
	Position world.Vec3
	HP       float64
}

func NewPlayer(name string, pos world.Vec3, hp float64) *Player {
	return &Player{Name: name, Position: pos, HP: hp}
}

func (p *Player) ID() string           { return p.Name }
func (p *Player) Pos() world.Vec3      { return p.Position }
func (p *Player) Alive() bool          { return p.HP > 0 }
func (p *Player) SpeciesName() string  { return "player" }
func (p *Player) Threat() bool         { return true }

func (p *Player) Hurt(damage float64, attacker Actor) {
	if damage <= 0 {
		return
	}
	p.HP -= damage
	if p.HP < 0 {
		p.HP = 0
	}
}

// MoveTo teleports the stand-in, used by scenarios driving a player around.
func (p *Player) MoveTo(pos world.Vec3) {
	p.Position = pos
}
