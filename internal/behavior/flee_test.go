package behavior

import (
	"testing"

	"catoworld/server/internal/world"
)

func TestFleeGoalGating(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(48, 8, 48), world.Vec3{X: 24.5, Y: 1, Z: 24.5})
	g := NewFleeGoal(m)

	if g.CanUse(m.ctx(0)) {
		t.Fatalf("usable while calm")
	}
	m.fleeing = true
	if g.CanUse(m.ctx(0)) {
		t.Fatalf("usable without a recorded threat")
	}
	m.threat = &fakeTarget{id: "wolf", pos: world.Vec3{X: 20.5, Y: 1, Z: 24.5}, alive: true}
	if !g.CanUse(m.ctx(0)) {
		t.Fatalf("not usable while fleeing with a threat")
	}
	m.sleeping = true
	if g.CanUse(m.ctx(0)) {
		t.Fatalf("usable while sleeping")
	}
}

func TestFleeGoalRunsAwayFromThreat(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(64, 8, 64), world.Vec3{X: 32.5, Y: 1, Z: 32.5})
	threatPos := world.Vec3{X: 28.5, Y: 1, Z: 32.5}
	m.fleeing = true
	m.threat = &fakeTarget{id: "wolf", pos: threatPos, alive: true}
	g := NewFleeGoal(m)

	g.Start(m.ctx(1))

	if m.navCalls == 0 {
		t.Fatalf("never navigated")
	}
	if m.mode != MoveRun {
		t.Fatalf("move mode = %v, want run", m.mode)
	}
	here := threatPos.HorizontalDistSq(m.pos)
	there := threatPos.HorizontalDistSq(m.navTarget.Center())
	if there <= here {
		t.Fatalf("flee destination %v is not farther from the threat", m.navTarget)
	}
}

func TestFleeGoalStopsAtSafetyRadius(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(64, 8, 64), world.Vec3{X: 32.5, Y: 1, Z: 32.5})
	threatPos := world.Vec3{X: 10.5, Y: 1, Z: 32.5} // 22 blocks away, past the 12 radius
	m.fleeing = true
	m.threat = &fakeTarget{id: "wolf", pos: threatPos, alive: true}
	g := NewFleeGoal(m)

	g.Start(m.ctx(1))
	stopsBefore := m.stopCalls
	g.Tick(m.ctx(2))

	if m.stopCalls <= stopsBefore {
		t.Fatalf("navigation not stopped past the safety radius")
	}
	if m.mode != MoveIdle {
		t.Fatalf("move mode = %v, want idle", m.mode)
	}
	if len(m.looks) == 0 || m.looks[len(m.looks)-1] != threatPos {
		t.Fatalf("mob is not watching the threat")
	}
}

func TestFleeGoalRepathInterval(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(64, 8, 64), world.Vec3{X: 32.5, Y: 1, Z: 32.5})
	m.fleeing = true
	m.threat = &fakeTarget{id: "wolf", pos: world.Vec3{X: 30.5, Y: 1, Z: 32.5}, alive: true}
	g := NewFleeGoal(m)

	g.Start(m.ctx(10))
	calls := m.navCalls
	g.Tick(m.ctx(11))
	if m.navCalls != calls {
		t.Fatalf("repathed before the interval elapsed")
	}
	g.Tick(m.ctx(16))
	if m.navCalls == calls {
		t.Fatalf("never repathed after the interval")
	}
}

func TestFleeGoalSuppressesMeleeAttack(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(32, 8, 32), world.Vec3{X: 16.5, Y: 1, Z: 16.5})
	m.target = &fakeTarget{id: "player", pos: world.Vec3{X: 17.5, Y: 1, Z: 16.5}, alive: true}
	attack := NewMeleeAttackGoal(m)

	if !attack.CanUse(m.ctx(0)) {
		t.Fatalf("attack unusable with a live target")
	}
	m.fleeing = true
	if attack.CanUse(m.ctx(0)) {
		t.Fatalf("attack usable while fleeing")
	}
	if attack.CanContinueToUse(m.ctx(0)) {
		t.Fatalf("attack continues while fleeing")
	}
}
