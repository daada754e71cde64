package behavior

import (
	"catoworld/server/internal/goal"
	"catoworld/server/internal/world"
	"catoworld/server/species"
)

const chaseRepathIntervalTicks = 10

// MeleeAttackGoal closes on the current target and fires timed attacks. The
// base mob owns the swing timers and damage application; the goal only
// chases, respects the movement-gating window, and asks for new swings.
type MeleeAttackGoal struct {
	m Mob

	nextRepathTick uint64
	lastTargetPos  world.BlockPos
}

func NewMeleeAttackGoal(m Mob) *MeleeAttackGoal {
	return &MeleeAttackGoal{m: m}
}

func (g *MeleeAttackGoal) Name() string { return "melee_attack" }

func (g *MeleeAttackGoal) Flags() goal.Flag {
	return goal.FlagMove | goal.FlagLook
}

func (g *MeleeAttackGoal) eligible() bool {
	if g.m.Sleeping() || g.m.Fleeing() {
		return false
	}
	target, ok := g.m.Target()
	return ok && target.Alive()
}

func (g *MeleeAttackGoal) CanUse(ctx goal.Context) bool {
	return ctx.Species.Combat.Normal.Damage > 0 && g.eligible()
}

func (g *MeleeAttackGoal) CanContinueToUse(goal.Context) bool {
	return g.eligible()
}

func (g *MeleeAttackGoal) Start(goal.Context) {
	g.nextRepathTick = 0
}

func (g *MeleeAttackGoal) Stop(goal.Context) {
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
}

func (g *MeleeAttackGoal) Tick(ctx goal.Context) {
	target, ok := g.m.Target()
	if !ok || !target.Alive() {
		return
	}
	g.m.LookAt(target.Pos())

	if g.m.AttackInFlight() {
		if !g.m.AttackMovementAllowed() {
			g.m.StopNavigation()
			g.m.SetMoveMode(MoveIdle)
		}
		return
	}

	kind := g.m.ChooseAttackKind()
	trigger := attackParams(ctx, kind).TriggerRange
	if trigger > 0 && ctx.Pos.HorizontalDistSq(target.Pos()) <= trigger*trigger {
		if g.m.StartTimedAttack(target, kind) {
			g.m.StopNavigation()
			g.m.SetMoveMode(MoveIdle)
			return
		}
	}
	g.chase(ctx, target)
}

func (g *MeleeAttackGoal) chase(ctx goal.Context, target Target) {
	targetBlock := target.Pos().Block()
	if ctx.Tick < g.nextRepathTick && targetBlock == g.lastTargetPos {
		return
	}
	g.nextRepathTick = ctx.Tick + chaseRepathIntervalTicks
	g.lastTargetPos = targetBlock

	speed := ctx.Species.Wander.RunSpeed
	if speed <= 0 {
		speed = ctx.Species.Wander.WalkSpeed
	}
	g.m.NavigateTo(targetBlock, speed)
	g.m.SetMoveMode(MoveRun)
}

func attackParams(ctx goal.Context, kind AttackKind) species.AttackParams {
	if kind == AttackSpecial {
		return ctx.Species.Combat.Special
	}
	return ctx.Species.Combat.Normal
}
