package mob

import (
	"context"

	"catoworld/server/internal/behavior"
	"catoworld/server/internal/goal"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	logbehavior "catoworld/server/logging/behavior"
	"catoworld/server/species"
)

// CombatState surface.

func (m *CatoMob) Target() (behavior.Target, bool) {
	if m.target == nil || !m.target.Alive() {
		return nil, false
	}
	return m.target, true
}

func (m *CatoMob) SetTarget(t behavior.Target) {
	actor, ok := t.(Actor)
	if !ok {
		return
	}
	m.target = actor
}

func (m *CatoMob) ClearTarget() {
	m.target = nil
}

func (m *CatoMob) Aggressive() bool {
	return m.angerTicks > 0 || m.target != nil
}

func (m *CatoMob) AttackInFlight() bool {
	return m.attack.active
}

// AttackMovementAllowed gates walking to the configured sub-window of the
// current swing.
func (m *CatoMob) AttackMovementAllowed() bool {
	if !m.attack.active {
		return true
	}
	elapsed := m.attack.animTotal - m.attack.animRemaining
	return elapsed >= m.attack.moveStart && elapsed <= m.attack.moveStop
}

func (m *CatoMob) LastAttacker() (behavior.Target, bool) {
	if m.lastAttacker == nil || !m.lastAttacker.Alive() {
		return nil, false
	}
	return m.lastAttacker, true
}

func (m *CatoMob) ThreatsNear(radius float64) []behavior.Target {
	actors := m.pop.ThreatsNear(m.id, m.pos, radius)
	if len(actors) == 0 {
		return nil
	}
	out := make([]behavior.Target, len(actors))
	for i, a := range actors {
		out[i] = a
	}
	return out
}

// ChooseAttackKind unlocks the special swing after enough normal hits, or by
// chance, when the species has one.
func (m *CatoMob) ChooseAttackKind() behavior.AttackKind {
	c := m.cfg.Combat
	if !c.SpecialEnabled || c.Special.Damage <= 0 {
		return behavior.AttackNormal
	}
	if c.SpecialAfterHits > 0 && m.normalHits >= c.SpecialAfterHits {
		return behavior.AttackSpecial
	}
	if c.SpecialChance > 0 && world.RandomFloat(m.rng) < c.SpecialChance {
		return behavior.AttackSpecial
	}
	return behavior.AttackNormal
}

// StartTimedAttack arms a swing against t. It refuses while asleep, while a
// swing is already in flight, during the cooldown, out of trigger range, or
// against a dead target.
func (m *CatoMob) StartTimedAttack(t behavior.Target, kind behavior.AttackKind) bool {
	if m.sleeping || m.attack.active || !m.alive {
		return false
	}
	if m.tick < m.attackCooldownUntil {
		return false
	}
	actor, ok := t.(Actor)
	if !ok || actor == nil || !actor.Alive() {
		return false
	}
	params := m.attackParams(kind)
	if params.Damage <= 0 {
		return false
	}
	if params.TriggerRange > 0 &&
		m.pos.HorizontalDistSq(actor.Pos()) > params.TriggerRange*params.TriggerRange {
		return false
	}

	windup := params.WindupTicks
	if windup < 1 {
		windup = 1
	}
	anim := params.AnimTicks
	if anim < windup {
		anim = windup
	}
	m.attack = attackState{
		active:        true,
		kind:          kind,
		target:        actor,
		damage:        params.Damage,
		hitRangeSq:    params.HitRange * params.HitRange,
		ticksUntilHit: windup,
		animRemaining: anim,
		animTotal:     anim,
		moveStart:     params.MoveStartTick,
		moveStop:      params.MoveStopTick,
	}
	if kind == behavior.AttackSpecial {
		m.normalHits = 0
	}
	logbehavior.AttackStarted(context.Background(), m.pub, m.tick,
		logging.MobRef(m.id), logging.MobRef(actor.ID()), string(kind))
	return true
}

func (m *CatoMob) attackParams(kind behavior.AttackKind) species.AttackParams {
	if kind == behavior.AttackSpecial {
		return m.cfg.Combat.Special
	}
	return m.cfg.Combat.Normal
}

// tickAttack advances the two swing countdowns. The hit countdown fires
// damage exactly once; the animation countdown clears all swing state.
func (m *CatoMob) tickAttack() {
	if !m.attack.active {
		return
	}
	if m.attack.ticksUntilHit > 0 {
		m.attack.ticksUntilHit--
		if m.attack.ticksUntilHit == 0 {
			m.resolveHit()
		}
	}
	if m.attack.animRemaining > 0 {
		m.attack.animRemaining--
	}
	if m.attack.animRemaining == 0 {
		cooldown := m.cfg.Combat.CooldownTicks
		if cooldown > 0 {
			m.attackCooldownUntil = m.tick + uint64(cooldown)
		}
		m.attack = attackState{}
	}
}

// resolveHit applies damage if the queued target is still alive and inside
// the cached hit range at this instant, then drops the handle either way.
func (m *CatoMob) resolveHit() {
	target := m.attack.target
	m.attack.target = nil
	if target == nil || !target.Alive() {
		return
	}
	hit := m.pos.HorizontalDistSq(target.Pos()) <= m.attack.hitRangeSq
	if hit {
		target.Hurt(m.attack.damage, m)
		if m.attack.kind == behavior.AttackNormal {
			m.normalHits++
		}
	}
	logbehavior.AttackLanded(context.Background(), m.pub, m.tick,
		logging.MobRef(m.id), logging.MobRef(target.ID()), string(m.attack.kind),
		m.attack.damage, hit)
}

// Hurt applies incoming damage and routes the reaction: wake, flee, or
// retaliate, in that order of evaluation.
func (m *CatoMob) Hurt(damage float64, attacker Actor) {
	if !m.alive || damage <= 0 {
		return
	}
	m.health -= damage
	if attacker != nil && attacker.Alive() {
		m.lastAttacker = attacker
	}
	if m.health <= 0 {
		m.health = 0
		m.die()
		return
	}

	if m.sleeping && m.cfg.Sleep.WakeOnDamage {
		m.wake("damage")
	}

	if m.cfg.Flee.Enabled && m.cfg.Flee.OnHurt && attacker != nil {
		m.startFlee(attacker, true, false, false)
		return
	}
	if m.cfg.Temperament != species.TemperamentPassive && attacker != nil && attacker.Alive() {
		anger := m.cfg.Combat.AngerTicks
		if anger <= 0 {
			anger = 100
		}
		m.angerTicks = anger
	}
}

func (m *CatoMob) die() {
	m.alive = false
	m.sleeping = false
	m.fleeTicks = 0
	m.attack = attackState{}
	m.nav.Stop()
	ctx := goal.Context{Tick: m.tick, Pos: m.pos, Block: m.pos.Block(), Species: m.cfg}
	m.actions.StopAll(ctx)
	m.targets.StopAll(ctx)
}

// startFlee arms the flee timer and clears combat. Propagated calls come
// from a neighbor's group flee and never re-propagate.
func (m *CatoMob) startFlee(threat Actor, bypassCooldown, propagated, lowHealth bool) bool {
	if !m.cfg.Flee.Enabled || !m.alive {
		return false
	}
	if m.fleeTicks > 0 {
		return false
	}
	if !bypassCooldown && m.tick < m.fleeCooldownUntil {
		return false
	}
	if m.sleeping {
		m.wake("flee")
	}

	duration := m.cfg.Flee.DurationTicks
	if duration <= 0 {
		duration = 100
	}
	m.fleeTicks = duration
	m.fleeThreat = threat
	m.angerTicks = 0
	m.target = nil
	m.attack.target = nil

	threatRef := logging.EntityRef{}
	if threat != nil {
		threatRef = logging.MobRef(threat.ID())
	}
	logbehavior.FleeStarted(context.Background(), m.pub, m.tick,
		logging.MobRef(m.id), threatRef, logbehavior.FleeStartedPayload{
			Propagated: propagated,
			LowHealth:  lowHealth,
		})

	if !propagated && m.cfg.Flee.GroupRadius > 0 {
		m.pop.PropagateFlee(m, threat, m.cfg.Flee.GroupRadius, m.cfg.Flee.GroupMaxAllies)
	}
	return true
}

// FleeState surface.

func (m *CatoMob) Fleeing() bool {
	return m.fleeTicks > 0
}

func (m *CatoMob) FleeThreat() (behavior.Target, bool) {
	if m.fleeThreat == nil {
		return nil, false
	}
	return m.fleeThreat, true
}
