package behavior

import (
	"math/rand"

	"catoworld/server/internal/goal"
	"catoworld/server/internal/sleep"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	"catoworld/server/species"
)

type fakeTarget struct {
	id    string
	pos   world.Vec3
	alive bool
}

func (t *fakeTarget) ID() string      { return t.id }
func (t *fakeTarget) Pos() world.Vec3 { return t.pos }
func (t *fakeTarget) Alive() bool     { return t.alive }

type fakeSurroundings struct {
	buddies []sleep.Buddy
}

func (f *fakeSurroundings) BuddiesNear(selfID string, center world.BlockPos, radius float64) []sleep.Buddy {
	out := make([]sleep.Buddy, 0, len(f.buddies))
	for _, b := range f.buddies {
		if b.ID == selfID {
			continue
		}
		if b.Pos.HorizontalDistSq(center) <= radius*radius {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeSurroundings) SleeperAt(pos world.BlockPos) bool {
	for _, b := range f.buddies {
		if b.Sleeping && b.Pos == pos {
			return true
		}
	}
	return false
}

// fakeMob records every mutation the goals perform so tests can assert on
// navigation, combat, and sleep calls without a full base mob.
type fakeMob struct {
	id  string
	pos world.Vec3
	w   *world.World
	cfg *species.Config
	rng *rand.Rand

	home    world.BlockPos
	hasHome bool

	sleeping   bool
	desire     bool
	sleptAt    []world.BlockPos
	abortCalls []int
	memory     *sleep.Memory
	blacklist  *sleep.Blacklist
	freezes    int

	target       Target
	aggressive   bool
	inFlight     bool
	moveAllowed  bool
	started      []AttackKind
	acceptAttack bool
	nextKind     AttackKind
	attacker     Target
	threats      []Target
	health       float64
	maxHealth    float64

	fleeing bool
	threat  Target

	navTarget world.BlockPos
	navSpeed  float64
	navActive bool
	navAccept bool
	navCalls  int
	stopCalls int
	mode      MoveMode
	looks     []world.Vec3

	near  *fakeSurroundings
	crowd int
}

var _ Mob = (*fakeMob)(nil)

func newFakeMob(cfg *species.Config, w *world.World, pos world.Vec3) *fakeMob {
	return &fakeMob{
		id:           "fake-1",
		pos:          pos,
		w:            w,
		cfg:          cfg,
		rng:          world.NewDeterministicRNG("test", "fake"),
		memory:       sleep.NewMemory(4, 3),
		blacklist:    sleep.NewBlacklist(3, 200, 8),
		near:         &fakeSurroundings{},
		navAccept:    true,
		acceptAttack: true,
		moveAllowed:  true,
		nextKind:     AttackNormal,
		health:       10,
		maxHealth:    10,
	}
}

func (m *fakeMob) ctx(tick uint64) goal.Context {
	return goal.Context{Tick: tick, Pos: m.pos, Block: m.pos.Block(), Species: m.cfg}
}

func (m *fakeMob) ID() string                { return m.id }
func (m *fakeMob) Pos() world.Vec3           { return m.pos }
func (m *fakeMob) BlockPos() world.BlockPos  { return m.pos.Block() }
func (m *fakeMob) World() *world.World       { return m.w }
func (m *fakeMob) Species() *species.Config  { return m.cfg }
func (m *fakeMob) RNG() *rand.Rand           { return m.rng }
func (m *fakeMob) Events() logging.Publisher { return logging.NopPublisher() }

func (m *fakeMob) Home() (world.BlockPos, bool) {
	return m.home, m.hasHome
}

func (m *fakeMob) NavigateTo(target world.BlockPos, speed float64) bool {
	m.navCalls++
	if !m.navAccept {
		return false
	}
	m.navTarget = target
	m.navSpeed = speed
	m.navActive = true
	return true
}

func (m *fakeMob) StopNavigation() {
	m.stopCalls++
	m.navActive = false
}

func (m *fakeMob) NavActive() bool            { return m.navActive }
func (m *fakeMob) NavStalled() bool           { return false }
func (m *fakeMob) SetMoveMode(mode MoveMode)  { m.mode = mode }
func (m *fakeMob) LookAt(p world.Vec3)        { m.looks = append(m.looks, p) }
func (m *fakeMob) Sleeping() bool             { return m.sleeping }
func (m *fakeMob) SleepDesireActive() bool    { return m.desire }
func (m *fakeMob) SleepMemory() *sleep.Memory { return m.memory }
func (m *fakeMob) FreezePose()                { m.freezes++ }

func (m *fakeMob) SleepBlacklist() *sleep.Blacklist { return m.blacklist }

func (m *fakeMob) BeginSleepingAt(pos world.BlockPos) {
	m.sleptAt = append(m.sleptAt, pos)
	m.sleeping = true
	m.desire = false
}

func (m *fakeMob) AbortSleepSearch(cooldownTicks int) {
	m.abortCalls = append(m.abortCalls, cooldownTicks)
	m.desire = false
}

func (m *fakeMob) Target() (Target, bool) {
	if m.target == nil {
		return nil, false
	}
	return m.target, true
}

func (m *fakeMob) SetTarget(t Target) { m.target = t }
func (m *fakeMob) ClearTarget()       { m.target = nil }
func (m *fakeMob) Aggressive() bool   { return m.aggressive }

func (m *fakeMob) AttackInFlight() bool        { return m.inFlight }
func (m *fakeMob) AttackMovementAllowed() bool { return m.moveAllowed }

func (m *fakeMob) StartTimedAttack(t Target, kind AttackKind) bool {
	if !m.acceptAttack {
		return false
	}
	m.started = append(m.started, kind)
	m.inFlight = true
	return true
}

func (m *fakeMob) ChooseAttackKind() AttackKind { return m.nextKind }

func (m *fakeMob) LastAttacker() (Target, bool) {
	if m.attacker == nil {
		return nil, false
	}
	return m.attacker, true
}

func (m *fakeMob) ThreatsNear(radius float64) []Target {
	out := make([]Target, 0, len(m.threats))
	for _, t := range m.threats {
		if t.Alive() && t.Pos().HorizontalDistSq(m.pos) <= radius*radius {
			out = append(out, t)
		}
	}
	return out
}

func (m *fakeMob) Health() float64    { return m.health }
func (m *fakeMob) MaxHealth() float64 { return m.maxHealth }

func (m *fakeMob) Fleeing() bool { return m.fleeing }

func (m *fakeMob) FleeThreat() (Target, bool) {
	if m.threat == nil {
		return nil, false
	}
	return m.threat, true
}

func (m *fakeMob) Nearby() sleep.Surroundings { return m.near }

func (m *fakeMob) CrowdAt(world.BlockPos, float64) int { return m.crowd }

func fakeBuddy(id string, pos world.BlockPos, sleeping bool) sleep.Buddy {
	return sleep.Buddy{ID: id, Pos: pos, Species: "marmot", Sleeping: sleeping}
}

// testConfig is a neutral all-rounder used by most goal tests; individual
// tests tweak the sections they exercise.
func testConfig() *species.Config {
	return &species.Config{
		Name:        "marmot",
		Temperament: species.TemperamentNeutral,
		MaxHealth:   10,
		Combat: species.CombatTuning{
			Normal: species.AttackParams{
				Damage:       2,
				TriggerRange: 2,
				HitRange:     2.5,
				WindupTicks:  3,
				AnimTicks:    6,
			},
			CooldownTicks: 10,
			AngerTicks:    50,
			AcquireRadius: 8,
		},
		Sleep: species.SleepTuning{
			Enabled:              true,
			AtNight:              true,
			MinTicks:             80,
			MaxTicks:             120,
			AttemptIntervalTicks: 10,
			Chance:               1,
			DesireWindowTicks:    200,
			Headroom:             2,
			RoofScanHeight:       8,
			MinRadius:            2,
			MaxRadius:            10,
			SearchAttempts:       12,
			PathBudget:           8,
			SearchTimeoutTicks:   400,
			RetryCooldownTicks:   100,
			BuddySearchRadius:    8,
			BuddyRingRadius:      2,
			BuddyBonus:           1,
			MemorySize:           4,
			MemoryMaxStrikes:     3,
			BlacklistMaxStrikes:  3,
			BlacklistDecayTicks:  200,
			BlacklistCapacity:    8,
		},
		Flee: species.FleeTuning{
			Enabled:             true,
			DurationTicks:       100,
			SafetyRadius:        12,
			RepathIntervalTicks: 5,
			RunSpeed:            0.4,
		},
		Wander: species.WanderTuning{
			WalkSpeed:        0.2,
			RunSpeed:         0.4,
			MinRadius:        2,
			MaxRadius:        8,
			IntervalMinTicks: 10,
			IntervalMaxTicks: 20,
			HomeRadius:       16,
			SampleCandidates: 6,
		},
		Surface: species.SurfaceWeights{Soft: 2, Hard: 1},
	}
}

// testWorld builds a grass floor at y=0; mobs stand at y=1.
func testWorld(sizeX, sizeY, sizeZ int) *world.World {
	w := world.New(sizeX, sizeY, sizeZ, world.NewDeterministicRNG("test", "world"))
	w.FillBox(world.BlockPos{}, world.BlockPos{X: sizeX - 1, Y: 0, Z: sizeZ - 1}, world.BlockGrass)
	return w
}
