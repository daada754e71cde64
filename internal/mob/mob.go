package mob

import (
	"math/rand"

	"catoworld/server/internal/behavior"
	"catoworld/server/internal/goal"
	"catoworld/server/internal/sleep"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	"catoworld/server/species"
)

// attackState is the in-flight swing. Target is a weak handle re-checked at
// the hit tick; the cached damage and hit range are frozen at swing start.
type attackState struct {
	active        bool
	kind          behavior.AttackKind
	target        Actor
	damage        float64
	hitRangeSq    float64
	ticksUntilHit int
	animRemaining int
	animTotal     int
	moveStart     int
	moveStop      int
}

// CatoMob is the authoritative server-side creature. All behavior state
// lives here; goals mutate it only through the contract methods, and
// everything advances inside Tick.
type CatoMob struct {
	id  string
	cfg *species.Config
	w   *world.World
	pop *Population
	pub logging.Publisher
	rng *rand.Rand

	pos      world.Vec3
	yaw      float64
	pitch    float64
	health   float64
	alive    bool
	moveMode behavior.MoveMode
	nav      *world.Navigator

	home    world.BlockPos
	hasHome bool
	ticked  bool

	// combat
	angerTicks          int
	target              Actor
	lastAttacker        Actor
	attack              attackState
	normalHits          int
	attackCooldownUntil uint64

	// sleep
	sleeping             bool
	sleepPos             world.BlockPos
	sleepTicksRemaining  int
	sleepDesireTicks     int
	nextSleepAttemptTick uint64
	sleepCooldownUntil   uint64
	windowGraceTicks     int
	memory               *sleep.Memory
	blacklist            *sleep.Blacklist

	// flee
	fleeTicks         int
	fleeCooldownUntil uint64
	fleeThreat        Actor
	lowHealthFled     bool

	actions *goal.Selector
	targets *goal.Selector

	debugOverlay bool

	tick uint64 // current tick, valid during Tick only
}

// New builds a mob at pos and registers its goal profile. The mob is not
// added to the population; the caller owns the roster.
func New(id string, cfg *species.Config, w *world.World, pop *Population, pub logging.Publisher, pos world.Vec3, rootSeed string) *CatoMob {
	maxHP := cfg.MaxHealth
	if maxHP <= 0 {
		maxHP = 10
	}
	m := &CatoMob{
		id:     id,
		cfg:    cfg,
		w:      w,
		pop:    pop,
		pub:    pub,
		rng:    world.NewDeterministicRNG(rootSeed, id),
		pos:    pos,
		health: maxHP,
		alive:  true,
		nav: world.NewNavigator(w, world.PathProfile{
			Headroom: cfg.Sleep.Headroom,
			CanSwim:  cfg.Sleep.InWaterAllowed || cfg.Swim.FunEnabled,
		}),
		memory:    sleep.NewMemory(cfg.Sleep.MemorySize, cfg.Sleep.MemoryMaxStrikes),
		blacklist: sleep.NewBlacklist(cfg.Sleep.BlacklistMaxStrikes, cfg.Sleep.BlacklistDecayTicks, cfg.Sleep.BlacklistCapacity),
		actions:   goal.NewSelector(),
		targets:   goal.NewSelector(),
	}
	behavior.ProfileFor(cfg).Register(m, m.actions, m.targets)
	return m
}

// Actor surface.

func (m *CatoMob) ID() string          { return m.id }
func (m *CatoMob) Pos() world.Vec3     { return m.pos }
func (m *CatoMob) Alive() bool         { return m.alive }
func (m *CatoMob) SpeciesName() string { return m.cfg.Name }

// Threat: mobs never count as threats to other mobs; only players do.
func (m *CatoMob) Threat() bool { return false }

// Positioned surface.

func (m *CatoMob) BlockPos() world.BlockPos    { return m.pos.Block() }
func (m *CatoMob) World() *world.World         { return m.w }
func (m *CatoMob) Species() *species.Config    { return m.cfg }
func (m *CatoMob) RNG() *rand.Rand             { return m.rng }
func (m *CatoMob) Events() logging.Publisher   { return m.pub }

func (m *CatoMob) Home() (world.BlockPos, bool) {
	return m.home, m.hasHome
}

// SetHome overrides the roam anchor. Outside of this the anchor is set once
// on the first tick and never moves.
func (m *CatoMob) SetHome(p world.BlockPos) {
	m.home = p
	m.hasHome = true
}

// Navigating surface.

func (m *CatoMob) NavigateTo(target world.BlockPos, speed float64) bool {
	return m.nav.MoveTo(m.pos, target, speed)
}

func (m *CatoMob) StopNavigation() {
	m.nav.Stop()
}

func (m *CatoMob) NavActive() bool  { return m.nav.InProgress() }
func (m *CatoMob) NavStalled() bool { return m.nav.Stalled() }

func (m *CatoMob) SetMoveMode(mode behavior.MoveMode) {
	m.moveMode = mode
}

func (m *CatoMob) MoveMode() behavior.MoveMode { return m.moveMode }

func (m *CatoMob) LookAt(p world.Vec3) {
	if m.sleeping {
		return
	}
	m.yaw, m.pitch = lookAngles(m.pos, p)
}

func (m *CatoMob) Yaw() float64   { return m.yaw }
func (m *CatoMob) Pitch() float64 { return m.pitch }

// Social surface.

func (m *CatoMob) Nearby() sleep.Surroundings { return m.pop }

func (m *CatoMob) CrowdAt(center world.BlockPos, radius float64) int {
	return m.pop.CrowdNear(m.id, m.cfg.Name, center, radius)
}

// Health.

func (m *CatoMob) Health() float64 { return m.health }

func (m *CatoMob) MaxHealth() float64 {
	if m.cfg.MaxHealth > 0 {
		return m.cfg.MaxHealth
	}
	return 10
}

// Debug overlay.

func (m *CatoMob) DebugOverlay() bool        { return m.debugOverlay }
func (m *CatoMob) SetDebugOverlay(on bool)   { m.debugOverlay = on }

// GoalStatus exposes both selectors for debug introspection.
func (m *CatoMob) GoalStatus() (actions, targets []goal.Status) {
	return m.actions.Enumerate(), m.targets.Enumerate()
}
