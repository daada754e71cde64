// Package behavior holds the goal modules that drive a mob each tick:
// sleeping, sleep searching, fleeing, rain sheltering, swimming, wandering,
// melee attacks, and target acquisition. Goals never touch each other;
// everything they share flows through the Mob contract the base mob
// implements.
package behavior

import (
	"math/rand"

	"catoworld/server/internal/sleep"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	"catoworld/server/species"
)

// AttackKind selects which parameter block a timed attack uses.
type AttackKind string

const (
	AttackNormal  AttackKind = "normal"
	AttackSpecial AttackKind = "special"
)

// Target is another actor a goal may chase, hit, or run from. Handles are
// weak: the target can die or despawn between ticks, so Alive is re-checked
// at every use.
type Target interface {
	ID() string
	Pos() world.Vec3
	Alive() bool
}

// MoveMode is the synchronized animation hint for observers.
type MoveMode int

const (
	MoveIdle MoveMode = iota
	MoveWalk
	MoveRun
)

// Positioned exposes the mob facts nearly every goal reads.
type Positioned interface {
	ID() string
	Pos() world.Vec3
	BlockPos() world.BlockPos
	World() *world.World
	Species() *species.Config
	RNG() *rand.Rand
	// Home returns the roam anchor when bounded roaming is enabled.
	Home() (world.BlockPos, bool)
	Events() logging.Publisher
}

// Navigating wraps the mob's pathfinding handle. Only the goal holding the
// move flag may call the mutating methods.
type Navigating interface {
	NavigateTo(target world.BlockPos, speed float64) bool
	StopNavigation()
	NavActive() bool
	NavStalled() bool
	SetMoveMode(mode MoveMode)
	LookAt(p world.Vec3)
}

// SleepState is the sleep contract between the base mob and the two sleep
// goals.
type SleepState interface {
	Sleeping() bool
	SleepDesireActive() bool
	// BeginSleepingAt commits the mob to sleep at pos, arming the duration
	// timer and clearing desire.
	BeginSleepingAt(pos world.BlockPos)
	// AbortSleepSearch clears desire and blocks new rolls for cooldownTicks.
	AbortSleepSearch(cooldownTicks int)
	SleepMemory() *sleep.Memory
	SleepBlacklist() *sleep.Blacklist
	// FreezePose zeroes velocity and pins yaw and pitch for one tick.
	FreezePose()
}

// CombatState is the combat contract consumed by the attack and targeting
// goals.
type CombatState interface {
	Target() (Target, bool)
	SetTarget(t Target)
	ClearTarget()
	Aggressive() bool
	AttackInFlight() bool
	// AttackMovementAllowed reports whether the active swing's movement
	// window permits walking this tick. True when no attack is in flight.
	AttackMovementAllowed() bool
	StartTimedAttack(t Target, kind AttackKind) bool
	// ChooseAttackKind rolls the special-attack gate for the next swing.
	ChooseAttackKind() AttackKind
	// LastAttacker returns the most recent actor that hurt this mob.
	LastAttacker() (Target, bool)
	// ThreatsNear lists candidate targets within radius, nearest first.
	ThreatsNear(radius float64) []Target
	Health() float64
	MaxHealth() float64
}

// FleeState is read by the flee goal and by every goal that yields to it.
type FleeState interface {
	Fleeing() bool
	FleeThreat() (Target, bool)
}

// Social exposes neighbor queries used by buddy sleeping and shelter
// crowding.
type Social interface {
	Nearby() sleep.Surroundings
	// CrowdAt counts same-species mobs within radius of center, excluding
	// this mob.
	CrowdAt(center world.BlockPos, radius float64) int
}

// Mob is the full capability surface the goal modules consume. The base mob
// satisfies it; tests substitute narrow fakes.
type Mob interface {
	Positioned
	Navigating
	SleepState
	CombatState
	FleeState
	Social
}
