package mob

import (
	"math"

	"catoworld/server/internal/goal"
	"catoworld/server/internal/world"
	"catoworld/server/species"
)

// Tick is the authoritative per-tick update. Order matters: sleep locks out
// combat, an active flee overrides anger, anger runs down toward dropping
// the target, then swing timers resolve, and only then do the selectors
// arbitrate which goals hold the control surfaces this tick.
func (m *CatoMob) Tick(tick uint64) {
	if !m.alive {
		return
	}
	m.tick = tick
	if !m.ticked {
		m.ticked = true
		if m.cfg.Wander.HomeRadius > 0 && !m.hasHome {
			m.home = m.pos.Block()
			m.hasHome = true
		}
	}

	if m.sleeping {
		m.target = nil
		m.angerTicks = 0
		m.tickSleeping()
	} else {
		m.tickFleeTimer()
		m.tickAnger()
		m.tickAttack()
		m.tickSleepDesire()
		m.tickLowHealthFlee()
	}

	ctx := goal.Context{Tick: tick, Pos: m.pos, Block: m.pos.Block(), Species: m.cfg}
	m.targets.Update(ctx)
	m.actions.Update(ctx)

	if !m.sleeping {
		next, moving := m.nav.Advance(m.pos, tick)
		if moving {
			m.faceMovement(next)
		}
		m.pos = next
		if m.target != nil && m.target.Alive() {
			m.LookAt(m.target.Pos())
		}
	}
}

func (m *CatoMob) tickFleeTimer() {
	if m.fleeTicks <= 0 {
		return
	}
	// Flee overrides combat for as long as it runs.
	m.target = nil
	m.angerTicks = 0
	m.fleeTicks--
	if m.fleeTicks == 0 {
		m.fleeThreat = nil
		if cd := m.cfg.Flee.CooldownTicks; cd > 0 {
			m.fleeCooldownUntil = m.tick + uint64(cd)
		}
	}
}

func (m *CatoMob) tickAnger() {
	if m.angerTicks <= 0 {
		return
	}
	m.angerTicks--
	if m.angerTicks == 0 && m.cfg.Temperament != species.TemperamentHostile {
		m.target = nil
	}
}

// tickLowHealthFlee triggers a one-shot panic flee below the species health
// threshold, independent of being hurt this tick.
func (m *CatoMob) tickLowHealthFlee() {
	f := m.cfg.Flee
	if !f.Enabled || f.LowHealthFraction <= 0 || m.lowHealthFled || m.fleeTicks > 0 {
		return
	}
	if m.health > m.MaxHealth()*f.LowHealthFraction {
		return
	}
	threat := m.lastAttacker
	if threat == nil || !threat.Alive() {
		threats := m.pop.ThreatsNear(m.id, m.pos, f.SafetyRadius)
		if len(threats) > 0 {
			threat = threats[0]
		}
	}
	if threat == nil {
		return
	}
	if m.startFlee(threat, true, false, true) {
		m.lowHealthFled = true
	}
}

func (m *CatoMob) faceMovement(next world.Vec3) {
	if m.sleeping {
		return
	}
	delta := next.Sub(m.pos)
	if delta.X == 0 && delta.Z == 0 {
		return
	}
	m.yaw = math.Atan2(delta.Z, delta.X)
}

// lookAngles aims from eye position at the target point.
func lookAngles(from, at world.Vec3) (yaw, pitch float64) {
	delta := at.Sub(from)
	yaw = math.Atan2(delta.Z, delta.X)
	horizontal := math.Sqrt(delta.X*delta.X + delta.Z*delta.Z)
	pitch = math.Atan2(delta.Y, horizontal)
	return yaw, pitch
}
