package behavior

import (
	"testing"

	"catoworld/server/internal/world"
)

func TestMeleeAttackStartsSwingInRange(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(32, 8, 32), world.Vec3{X: 16.5, Y: 1, Z: 16.5})
	m.target = &fakeTarget{id: "player", pos: world.Vec3{X: 17.5, Y: 1, Z: 16.5}, alive: true}
	g := NewMeleeAttackGoal(m)

	g.Start(m.ctx(1))
	g.Tick(m.ctx(1))

	if len(m.started) != 1 || m.started[0] != AttackNormal {
		t.Fatalf("started attacks = %v, want one normal", m.started)
	}
	if m.navActive {
		t.Fatalf("still navigating after starting a swing")
	}
	if len(m.looks) == 0 {
		t.Fatalf("never faced the target")
	}
}

func TestMeleeAttackChasesOutOfRange(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(32, 8, 32), world.Vec3{X: 16.5, Y: 1, Z: 16.5})
	targetPos := world.Vec3{X: 24.5, Y: 1, Z: 16.5}
	m.target = &fakeTarget{id: "player", pos: targetPos, alive: true}
	g := NewMeleeAttackGoal(m)

	g.Start(m.ctx(1))
	g.Tick(m.ctx(1))

	if len(m.started) != 0 {
		t.Fatalf("swung at a target 8 blocks away")
	}
	if m.navCalls == 0 || m.navTarget != targetPos.Block() {
		t.Fatalf("not chasing the target, nav target %v", m.navTarget)
	}
	if m.mode != MoveRun {
		t.Fatalf("chasing at mode %v, want run", m.mode)
	}
}

func TestMeleeAttackChaseRepathsOnTargetMove(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(32, 8, 32), world.Vec3{X: 16.5, Y: 1, Z: 16.5})
	target := &fakeTarget{id: "player", pos: world.Vec3{X: 24.5, Y: 1, Z: 16.5}, alive: true}
	m.target = target
	g := NewMeleeAttackGoal(m)

	g.Start(m.ctx(1))
	g.Tick(m.ctx(1))
	calls := m.navCalls

	// Same block, inside the repath interval: no new path.
	g.Tick(m.ctx(2))
	if m.navCalls != calls {
		t.Fatalf("repathed with the target standing still")
	}

	// Target changed block: repath immediately.
	target.pos = world.Vec3{X: 24.5, Y: 1, Z: 20.5}
	g.Tick(m.ctx(3))
	if m.navCalls == calls {
		t.Fatalf("did not repath after the target moved")
	}
	if m.navTarget != target.pos.Block() {
		t.Fatalf("nav target %v, want %v", m.navTarget, target.pos.Block())
	}
}

func TestMeleeAttackHoldsDuringSwing(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(32, 8, 32), world.Vec3{X: 16.5, Y: 1, Z: 16.5})
	m.target = &fakeTarget{id: "player", pos: world.Vec3{X: 17.5, Y: 1, Z: 16.5}, alive: true}
	m.inFlight = true
	m.moveAllowed = false
	m.navActive = true
	g := NewMeleeAttackGoal(m)

	g.Tick(m.ctx(1))

	if len(m.started) != 0 {
		t.Fatalf("started a new swing while one is in flight")
	}
	if m.navActive {
		t.Fatalf("kept walking through the locked animation window")
	}
}

func TestMeleeAttackMovesInAllowedWindow(t *testing.T) {
	m := newFakeMob(testConfig(), testWorld(32, 8, 32), world.Vec3{X: 16.5, Y: 1, Z: 16.5})
	m.target = &fakeTarget{id: "player", pos: world.Vec3{X: 17.5, Y: 1, Z: 16.5}, alive: true}
	m.inFlight = true
	m.moveAllowed = true
	m.navActive = true
	g := NewMeleeAttackGoal(m)

	stops := m.stopCalls
	g.Tick(m.ctx(1))

	if m.stopCalls != stops {
		t.Fatalf("stopped navigation inside the movement window")
	}
	if len(m.started) != 0 {
		t.Fatalf("started a second swing mid-animation")
	}
}

func TestMeleeAttackGating(t *testing.T) {
	cfg := testConfig()
	m := newFakeMob(cfg, testWorld(32, 8, 32), world.Vec3{X: 16.5, Y: 1, Z: 16.5})
	g := NewMeleeAttackGoal(m)

	if g.CanUse(m.ctx(0)) {
		t.Fatalf("usable without a target")
	}
	dead := &fakeTarget{id: "player", pos: world.Vec3{X: 17.5, Y: 1, Z: 16.5}}
	m.target = dead
	if g.CanUse(m.ctx(0)) {
		t.Fatalf("usable against a dead target")
	}
	dead.alive = true
	if !g.CanUse(m.ctx(0)) {
		t.Fatalf("unusable with a live target")
	}
	m.sleeping = true
	if g.CanUse(m.ctx(0)) {
		t.Fatalf("usable while sleeping")
	}
	m.sleeping = false
	cfg.Combat.Normal.Damage = 0
	if g.CanUse(m.ctx(0)) {
		t.Fatalf("usable with zero damage")
	}
}
