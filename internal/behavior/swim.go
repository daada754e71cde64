package behavior

import (
	"catoworld/server/internal/goal"
	"catoworld/server/internal/world"
)

// funSwimRollIntervalTicks paces the fun-swim chance roll.
const funSwimRollIntervalTicks = 200

type swimState int

const (
	swimToWater swimState = iota
	swimPlaying
	swimExiting
)

// FunSwimGoal sends water-loving species for a bounded splash and walks
// everyone back out afterwards. It doubles as the forced exit for species
// that dislike water: landing in a fluid flips the goal straight into the
// exiting state.
type FunSwimGoal struct {
	m Mob

	state        swimState
	done         bool
	nextRollTick uint64
	playUntil    uint64
}

func NewFunSwimGoal(m Mob) *FunSwimGoal {
	return &FunSwimGoal{m: m}
}

func (g *FunSwimGoal) Name() string { return "fun_swim" }

func (g *FunSwimGoal) Flags() goal.Flag {
	return goal.FlagMove | goal.FlagLook
}

func (g *FunSwimGoal) calm() bool {
	return !g.m.Sleeping() && !g.m.Fleeing() && !g.m.Aggressive()
}

func (g *FunSwimGoal) CanUse(ctx goal.Context) bool {
	if !g.calm() {
		return false
	}
	sw := ctx.Species.Swim
	inWater := g.m.World().InFluid(ctx.Block)

	if sw.DislikesWater {
		return inWater
	}
	if !sw.FunEnabled || inWater {
		return false
	}
	if ctx.Tick < g.nextRollTick {
		return false
	}
	g.nextRollTick = ctx.Tick + funSwimRollIntervalTicks
	if world.RandomFloat(g.m.RNG()) >= sw.FunChance {
		return false
	}
	_, ok := g.findWater(ctx)
	return ok
}

func (g *FunSwimGoal) CanContinueToUse(goal.Context) bool {
	return g.calm() && !g.done
}

func (g *FunSwimGoal) Start(ctx goal.Context) {
	g.done = false
	sw := ctx.Species.Swim
	if sw.DislikesWater || g.m.World().InFluid(ctx.Block) {
		g.beginExit(ctx)
		return
	}
	entry, ok := g.findWater(ctx)
	if !ok {
		g.done = true
		return
	}
	g.state = swimToWater
	g.m.NavigateTo(entry, ctx.Species.Wander.WalkSpeed)
	g.m.SetMoveMode(MoveWalk)
}

func (g *FunSwimGoal) Stop(goal.Context) {
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
}

func (g *FunSwimGoal) Tick(ctx goal.Context) {
	switch g.state {
	case swimToWater:
		if g.m.World().InFluid(ctx.Block) {
			g.beginPlay(ctx)
		} else if !g.m.NavActive() {
			// Never reached the water; bail out quietly.
			g.beginExit(ctx)
		}
	case swimPlaying:
		if ctx.Tick >= g.playUntil || ctx.Species.Swim.DislikesWater {
			g.beginExit(ctx)
		}
	case swimExiting:
		if g.m.World().InFluid(ctx.Block) {
			if !g.m.NavActive() {
				g.beginExit(ctx) // exit path lost, resample
			}
			return
		}
		if !g.m.NavActive() {
			g.m.SetMoveMode(MoveIdle)
			g.nextRollTick = ctx.Tick + funSwimRollIntervalTicks
			g.done = true
		}
	}
}

func (g *FunSwimGoal) beginPlay(ctx goal.Context) {
	g.state = swimPlaying
	ticks := ctx.Species.Swim.MaxTicks
	if ticks <= 0 {
		ticks = 200
	}
	g.playUntil = ctx.Tick + uint64(ticks)
	g.m.StopNavigation()
}

func (g *FunSwimGoal) beginExit(ctx goal.Context) {
	g.state = swimExiting
	profile := world.PathProfile{Headroom: clampHeadroom(ctx.Species.Sleep.Headroom), CanSwim: true}
	exit, ok := g.m.World().FindWaterExit(ctx.Block, ctx.Species.Swim.ExitSearchRadius, profile)
	if !ok {
		return
	}
	g.m.NavigateTo(exit, ctx.Species.Wander.WalkSpeed)
	g.m.SetMoveMode(MoveWalk)
}

// findWater samples nearby columns for a fluid surface to play in.
func (g *FunSwimGoal) findWater(ctx goal.Context) (world.BlockPos, bool) {
	w := g.m.World()
	radius := ctx.Species.Swim.ExitSearchRadius
	if radius <= 0 {
		radius = 8
	}
	for i := 0; i < 12; i++ {
		dx, dz := world.RandomPolarOffset(g.m.RNG(), 1, float64(radius))
		col := ctx.Block.Offset(dx, 0, dz)
		profile := world.PathProfile{Headroom: 1, CanSwim: true}
		cell, ok := w.FindStand(col, profile)
		if !ok {
			continue
		}
		if w.InFluid(cell) {
			return cell, true
		}
	}
	return world.BlockPos{}, false
}
