package behavior

import (
	"catoworld/server/internal/goal"
	"catoworld/server/species"
)

// NearestThreatGoal acquires the closest living threat for hostile species.
// It runs on the target selector, so it only ever claims the target flag.
type NearestThreatGoal struct {
	m Mob
}

func NewNearestThreatGoal(m Mob) *NearestThreatGoal {
	return &NearestThreatGoal{m: m}
}

func (g *NearestThreatGoal) Name() string { return "nearest_threat" }

func (g *NearestThreatGoal) Flags() goal.Flag { return goal.FlagTarget }

func (g *NearestThreatGoal) CanUse(ctx goal.Context) bool {
	if ctx.Species.Temperament != species.TemperamentHostile {
		return false
	}
	if g.m.Sleeping() || g.m.Fleeing() {
		return false
	}
	if _, ok := g.m.Target(); ok {
		return false
	}
	return len(g.m.ThreatsNear(ctx.Species.Combat.AcquireRadius)) > 0
}

func (g *NearestThreatGoal) CanContinueToUse(goal.Context) bool {
	if g.m.Sleeping() || g.m.Fleeing() {
		return false
	}
	target, ok := g.m.Target()
	return ok && target.Alive()
}

func (g *NearestThreatGoal) Start(ctx goal.Context) {
	threats := g.m.ThreatsNear(ctx.Species.Combat.AcquireRadius)
	if len(threats) > 0 {
		g.m.SetTarget(threats[0])
	}
}

func (g *NearestThreatGoal) Stop(goal.Context) {}

func (g *NearestThreatGoal) Tick(goal.Context) {}

// HurtByTargetGoal turns retaliation anger into an attack target. The base
// mob arms the anger timer and records the attacker; this goal publishes the
// attacker as the target while anger lasts.
type HurtByTargetGoal struct {
	m Mob
}

func NewHurtByTargetGoal(m Mob) *HurtByTargetGoal {
	return &HurtByTargetGoal{m: m}
}

func (g *HurtByTargetGoal) Name() string { return "hurt_by" }

func (g *HurtByTargetGoal) Flags() goal.Flag { return goal.FlagTarget }

func (g *HurtByTargetGoal) CanUse(goal.Context) bool {
	if !g.m.Aggressive() || g.m.Sleeping() || g.m.Fleeing() {
		return false
	}
	if _, ok := g.m.Target(); ok {
		return false
	}
	attacker, ok := g.m.LastAttacker()
	return ok && attacker.Alive()
}

func (g *HurtByTargetGoal) CanContinueToUse(goal.Context) bool {
	if !g.m.Aggressive() || g.m.Sleeping() || g.m.Fleeing() {
		return false
	}
	target, ok := g.m.Target()
	return ok && target.Alive()
}

func (g *HurtByTargetGoal) Start(goal.Context) {
	if attacker, ok := g.m.LastAttacker(); ok {
		g.m.SetTarget(attacker)
	}
}

func (g *HurtByTargetGoal) Stop(goal.Context) {}

func (g *HurtByTargetGoal) Tick(goal.Context) {}
