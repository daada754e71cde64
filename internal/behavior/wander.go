package behavior

import (
	"catoworld/server/internal/goal"
	"catoworld/server/internal/world"
)

// WanderGoal is the lowest-priority mover: idle strolling between random
// standable columns, biased by the species' surface preferences. Everything
// else preempts it.
type WanderGoal struct {
	m Mob

	nextWanderTick uint64
	walking        bool
}

func NewWanderGoal(m Mob) *WanderGoal {
	return &WanderGoal{m: m}
}

func (g *WanderGoal) Name() string { return "wander" }

func (g *WanderGoal) Flags() goal.Flag {
	return goal.FlagMove
}

func (g *WanderGoal) CanUse(ctx goal.Context) bool {
	if g.m.Sleeping() || g.m.Fleeing() || g.m.Aggressive() {
		return false
	}
	if _, ok := g.m.Target(); ok {
		return false
	}
	return ctx.Tick >= g.nextWanderTick
}

func (g *WanderGoal) CanContinueToUse(goal.Context) bool {
	if g.m.Sleeping() || g.m.Fleeing() || g.m.Aggressive() {
		return false
	}
	return g.walking && g.m.NavActive()
}

func (g *WanderGoal) Start(ctx goal.Context) {
	g.walking = false
	dest, run, ok := g.pick(ctx)
	g.armCooldown(ctx)
	if !ok {
		return
	}
	speed := ctx.Species.Wander.WalkSpeed
	mode := MoveWalk
	if run {
		speed = ctx.Species.Wander.RunSpeed
		mode = MoveRun
	}
	if speed <= 0 {
		speed = 1
	}
	if g.m.NavigateTo(dest, speed) {
		g.walking = true
		g.m.SetMoveMode(mode)
	}
}

func (g *WanderGoal) Stop(goal.Context) {
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
	g.walking = false
}

func (g *WanderGoal) Tick(goal.Context) {}

func (g *WanderGoal) armCooldown(ctx goal.Context) {
	wd := ctx.Species.Wander
	wait := world.RandomTicks(g.m.RNG(), wd.IntervalMinTicks, wd.IntervalMaxTicks)
	if wait <= 0 {
		wait = 40
	}
	g.nextWanderTick = ctx.Tick + uint64(wait)
}

// pick samples candidate columns and keeps the one whose ground surface the
// species likes most.
func (g *WanderGoal) pick(ctx goal.Context) (world.BlockPos, bool, bool) {
	wd := ctx.Species.Wander
	w := g.m.World()
	profile := world.PathProfile{Headroom: clampHeadroom(ctx.Species.Sleep.Headroom)}

	anchor := ctx.Block
	if home, ok := g.m.Home(); ok {
		anchor = home
	}
	samples := wd.SampleCandidates
	if samples <= 0 {
		samples = 6
	}
	maxRadius := wd.MaxRadius
	if maxRadius <= 0 {
		maxRadius = 10
	}

	var best world.BlockPos
	bestScore := 0.0
	found := false
	for i := 0; i < samples; i++ {
		dx, dz := world.RandomPolarOffset(g.m.RNG(), wd.MinRadius, maxRadius)
		cell, ok := w.FindStand(anchor.Offset(dx, 0, dz), profile)
		if !ok {
			continue
		}
		if home, bounded := g.m.Home(); bounded && wd.HomeRadius > 0 &&
			cell.HorizontalDistSq(home) > wd.HomeRadius*wd.HomeRadius {
			continue
		}
		score := g.surfaceScore(ctx, cell) + world.RandomFloat(g.m.RNG())*0.5
		if !found || score > bestScore {
			best = cell
			bestScore = score
			found = true
		}
	}
	if !found {
		return world.BlockPos{}, false, false
	}

	run := false
	if wd.RunDistance > 0 && best.DistSq(ctx.Block) > wd.RunDistance*wd.RunDistance {
		run = world.RandomFloat(g.m.RNG()) < wd.RunChance
	}
	return best, run, true
}

func (g *WanderGoal) surfaceScore(ctx goal.Context, p world.BlockPos) float64 {
	ground := g.m.World().BlockAt(p.Below(1))
	weights := ctx.Species.Surface
	switch {
	case ground.Fluid():
		return weights.Water
	case ground.SoftGround():
		return weights.Soft
	default:
		return weights.Hard
	}
}
