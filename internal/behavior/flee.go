package behavior

import (
	"math"

	"catoworld/server/internal/goal"
	"catoworld/server/internal/world"
)

// fleeManualFallbackDist is how far the manual directly-opposite offset
// reaches when the away-sampler finds nothing.
const fleeManualFallbackDist = 8.0

// FleeGoal runs a frightened mob away from the threat the base mob recorded.
// It repaths on an interval rather than every tick, and once the safety
// radius is reached it stops and watches the threat instead.
type FleeGoal struct {
	m Mob

	nextRepathTick uint64
}

func NewFleeGoal(m Mob) *FleeGoal {
	return &FleeGoal{m: m}
}

func (g *FleeGoal) Name() string { return "flee" }

func (g *FleeGoal) Flags() goal.Flag {
	return goal.FlagMove | goal.FlagLook
}

func (g *FleeGoal) CanUse(goal.Context) bool {
	if !g.m.Fleeing() || g.m.Sleeping() {
		return false
	}
	_, ok := g.m.FleeThreat()
	return ok
}

func (g *FleeGoal) CanContinueToUse(goal.Context) bool {
	return g.m.Fleeing()
}

func (g *FleeGoal) Start(ctx goal.Context) {
	g.nextRepathTick = 0
	g.m.SetMoveMode(MoveRun)
	g.repath(ctx)
}

func (g *FleeGoal) Stop(goal.Context) {
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
}

func (g *FleeGoal) Tick(ctx goal.Context) {
	threat, ok := g.m.FleeThreat()
	if !ok || !threat.Alive() {
		// Keep running out the timer in the last known direction.
		return
	}

	safety := ctx.Species.Flee.SafetyRadius
	if safety <= 0 {
		safety = 12
	}
	if ctx.Pos.HorizontalDistSq(threat.Pos()) >= safety*safety {
		g.m.StopNavigation()
		g.m.SetMoveMode(MoveIdle)
		g.m.LookAt(threat.Pos())
		return
	}

	g.m.SetMoveMode(MoveRun)
	if ctx.Tick >= g.nextRepathTick {
		g.repath(ctx)
	}
}

// repath picks a destination away from the threat. The sampled half-circle
// heuristic goes first; a fixed directly-opposite offset is the fallback.
func (g *FleeGoal) repath(ctx goal.Context) {
	interval := ctx.Species.Flee.RepathIntervalTicks
	if interval <= 0 {
		interval = 5
	}
	g.nextRepathTick = ctx.Tick + uint64(interval)

	threat, ok := g.m.FleeThreat()
	if !ok {
		return
	}

	w := g.m.World()
	profile := world.PathProfile{Headroom: clampHeadroom(ctx.Species.Sleep.Headroom)}
	safety := ctx.Species.Flee.SafetyRadius
	if safety <= 0 {
		safety = 12
	}

	dest, found := w.RandomPosAway(g.m.RNG(), ctx.Pos, threat.Pos(), safety*0.5, safety, profile)
	if !found {
		dest, found = g.oppositeOffset(ctx, threat.Pos(), profile)
	}
	if !found {
		return
	}
	dest = g.clampHome(ctx, dest)

	speed := ctx.Species.Flee.RunSpeed
	if speed <= 0 {
		speed = ctx.Species.Wander.RunSpeed
	}
	g.m.NavigateTo(dest, speed)
}

// oppositeOffset is the manual fallback: step straight away from the threat
// and snap to the nearest standable column.
func (g *FleeGoal) oppositeOffset(ctx goal.Context, threat world.Vec3, profile world.PathProfile) (world.BlockPos, bool) {
	away := ctx.Pos.Sub(threat)
	away.Y = 0
	if away.Length() < 1e-6 {
		angle := world.RandomAngle(g.m.RNG())
		away = world.Vec3{X: math.Cos(angle), Z: math.Sin(angle)}
	}
	dir := away.Normalized()
	col := ctx.Pos.Add(dir.Scale(fleeManualFallbackDist)).Block()
	return g.m.World().FindStand(col, profile)
}

func (g *FleeGoal) clampHome(ctx goal.Context, dest world.BlockPos) world.BlockPos {
	home, ok := g.m.Home()
	if !ok {
		return dest
	}
	radius := ctx.Species.Wander.HomeRadius
	if radius <= 0 || dest.HorizontalDistSq(home) <= radius*radius {
		return dest
	}
	offset := dest.Center().Sub(home.Center())
	offset.Y = 0
	clamped := home.Center().Add(offset.Normalized().Scale(radius)).Block()
	profile := world.PathProfile{Headroom: clampHeadroom(ctx.Species.Sleep.Headroom)}
	if cell, found := g.m.World().FindStand(clamped, profile); found {
		return cell
	}
	return dest
}

func clampHeadroom(h int) int {
	if h <= 0 {
		return 2
	}
	return h
}
