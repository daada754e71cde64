package behavior

import (
	"context"

	"catoworld/server/internal/goal"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	logbehavior "catoworld/server/logging/behavior"
)

// coverScanCap bounds the per-direction dry run-length scan; anything this
// deep counts as fully covered.
const coverScanCap = 8

var coverDirections = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

type shelterState int

const (
	shelterSearching shelterState = iota
	shelterTraveling
	shelterSettled
	shelterPeeking
)

// RainShelterGoal moves an exposed mob under cover while it rains and then
// holds it there. Once properly sheltered the goal enters a settle window
// that suppresses further searching, so a herd under one roof does not
// thrash repathing against each other; a configured chance makes the mob
// peek out briefly before returning.
type RainShelterGoal struct {
	m Mob

	state      shelterState
	spot       world.BlockPos
	coverDepth int
	stateUntil uint64
	peekFrom   world.BlockPos

	lastPos    world.Vec3
	stallTicks int
}

func NewRainShelterGoal(m Mob) *RainShelterGoal {
	return &RainShelterGoal{m: m}
}

func (g *RainShelterGoal) Name() string { return "rain_shelter" }

func (g *RainShelterGoal) Flags() goal.Flag {
	return goal.FlagMove | goal.FlagLook
}

func (g *RainShelterGoal) eligible(ctx goal.Context) bool {
	if !ctx.Species.Shelter.Enabled {
		return false
	}
	if g.m.Sleeping() || g.m.Fleeing() || g.m.Aggressive() {
		return false
	}
	return g.m.World().Raining()
}

func (g *RainShelterGoal) CanUse(ctx goal.Context) bool {
	return g.eligible(ctx) && g.m.World().IsRainedOn(ctx.Block)
}

func (g *RainShelterGoal) CanContinueToUse(ctx goal.Context) bool {
	return g.eligible(ctx)
}

func (g *RainShelterGoal) Start(ctx goal.Context) {
	g.state = shelterSearching
	g.lastPos = ctx.Pos
	g.stallTicks = 0
	g.search(ctx)
}

func (g *RainShelterGoal) Stop(goal.Context) {
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
	g.state = shelterSearching
}

func (g *RainShelterGoal) Tick(ctx goal.Context) {
	switch g.state {
	case shelterSearching:
		g.search(ctx)
	case shelterTraveling:
		g.travel(ctx)
	case shelterSettled:
		g.settled(ctx)
	case shelterPeeking:
		g.peek(ctx)
	}
}

// search samples random columns and keeps the best dry, covered, uncrowded,
// reachable one.
func (g *RainShelterGoal) search(ctx goal.Context) {
	sh := ctx.Species.Shelter
	attempts := sh.Attempts
	if attempts <= 0 {
		attempts = 16
	}
	radius := sh.SearchRadius
	if radius <= 0 {
		radius = 12
	}
	budget := world.NewPathBudget(sh.PathBudget)
	profile := world.PathProfile{Headroom: clampHeadroom(ctx.Species.Sleep.Headroom)}
	w := g.m.World()

	bestScore := 0.0
	bestDepth := 0
	var best world.BlockPos
	found := false
	for i := 0; i < attempts && !budget.Exhausted(); i++ {
		dx, dz := world.RandomPolarOffset(g.m.RNG(), 1, radius)
		cell, ok := w.FindStand(ctx.Block.Offset(dx, 0, dz), profile)
		if !ok {
			continue
		}
		if !g.dryColumn(cell) {
			continue
		}
		depth := g.coverDepthAt(cell)
		if depth < sh.MinCoverDepth {
			continue
		}
		if sh.MaxCrowd > 0 && g.m.CrowdAt(cell, sh.CrowdRadius) >= sh.MaxCrowd {
			continue
		}
		if !w.CanReach(ctx.Block, cell, profile, budget) {
			continue
		}
		// Deeper cover wins; distance breaks near-ties.
		score := float64(depth)*4 - cell.Center().Sub(ctx.Pos).Length()
		if !found || score > bestScore {
			best = cell
			bestScore = score
			bestDepth = depth
			found = true
		}
	}
	if !found {
		logbehavior.SearchExhausted(context.Background(), g.m.Events(), ctx.Tick,
			logging.MobRef(g.m.ID()), "shelter", budget.Spent())
		// Stay in the searching state; rain keeps the goal alive and a
		// later tick may sample a better region.
		return
	}

	g.spot = best
	g.coverDepth = bestDepth
	g.state = shelterTraveling
	g.lastPos = ctx.Pos
	g.stallTicks = 0
	g.m.NavigateTo(g.spot, ctx.Species.Wander.WalkSpeed)
	g.m.SetMoveMode(MoveWalk)
}

func (g *RainShelterGoal) travel(ctx goal.Context) {
	if ctx.Pos.HorizontalDistSq(g.spot.Center()) <= arriveEpsilonSq {
		g.settle(ctx)
		return
	}

	moved := ctx.Pos.DistSq(g.lastPos)
	g.lastPos = ctx.Pos
	if g.m.NavActive() && moved < stallMoveEpsilonSq {
		g.stallTicks++
	} else {
		g.stallTicks = 0
	}
	if g.stallTicks >= stallTripTicks || !g.m.NavActive() {
		g.state = shelterSearching
		g.m.StopNavigation()
	}
}

func (g *RainShelterGoal) settle(ctx goal.Context) {
	sh := ctx.Species.Shelter
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
	g.state = shelterSettled
	settle := sh.SettleTicks
	if settle <= 0 {
		settle = 100
	}
	g.stateUntil = ctx.Tick + uint64(settle)
	logbehavior.ShelterSettled(context.Background(), g.m.Events(), ctx.Tick,
		logging.MobRef(g.m.ID()), logbehavior.ShelterSettledPayload{
			Spot:       logbehavior.SpotPayload{X: g.spot.X, Y: g.spot.Y, Z: g.spot.Z},
			CoverDepth: g.coverDepth,
		})
}

// settled holds position for the settle window. A spot that starts leaking
// (block broken above) or the window expiring triggers either a peek or a
// fresh dryness check.
func (g *RainShelterGoal) settled(ctx goal.Context) {
	if g.m.World().IsRainedOn(ctx.Block) {
		g.state = shelterSearching
		return
	}
	if ctx.Tick < g.stateUntil {
		return
	}
	sh := ctx.Species.Shelter
	if sh.PeekTicks > 0 && world.RandomFloat(g.m.RNG()) < sh.PeekChance {
		g.startPeek(ctx)
		return
	}
	// Re-arm the settle window without moving.
	g.stateUntil = ctx.Tick + uint64(maxInt(sh.SettleTicks, 1))
}

// startPeek wanders a couple of blocks toward the open before coming back.
func (g *RainShelterGoal) startPeek(ctx goal.Context) {
	profile := world.PathProfile{Headroom: clampHeadroom(ctx.Species.Sleep.Headroom)}
	dx, dz := world.RandomPolarOffset(g.m.RNG(), 2, 4)
	cell, ok := g.m.World().FindStand(g.spot.Offset(dx, 0, dz), profile)
	if !ok {
		g.stateUntil = ctx.Tick + uint64(maxInt(ctx.Species.Shelter.SettleTicks, 1))
		return
	}
	g.peekFrom = g.spot
	g.state = shelterPeeking
	g.stateUntil = ctx.Tick + uint64(ctx.Species.Shelter.PeekTicks)
	g.m.NavigateTo(cell, ctx.Species.Wander.WalkSpeed)
	g.m.SetMoveMode(MoveWalk)
}

func (g *RainShelterGoal) peek(ctx goal.Context) {
	if ctx.Tick < g.stateUntil {
		return
	}
	// Walk back under cover and re-settle.
	g.spot = g.peekFrom
	g.state = shelterTraveling
	g.lastPos = ctx.Pos
	g.stallTicks = 0
	g.m.NavigateTo(g.spot, ctx.Species.Wander.WalkSpeed)
	g.m.SetMoveMode(MoveWalk)
}

// dryColumn samples dryness at the feet, body, and head heights.
func (g *RainShelterGoal) dryColumn(p world.BlockPos) bool {
	w := g.m.World()
	return !w.IsRainedOn(p) && !w.IsRainedOn(p.Above(1)) && !w.IsRainedOn(p.Above(2))
}

// coverDepthAt measures the shortest dry run before rain exposure in any of
// the eight horizontal directions.
func (g *RainShelterGoal) coverDepthAt(p world.BlockPos) int {
	w := g.m.World()
	depth := coverScanCap
	for _, dir := range coverDirections {
		run := 0
		for step := 1; step <= coverScanCap; step++ {
			cell := p.Offset(dir[0]*step, 0, dir[1]*step)
			if w.IsRainedOn(cell) {
				break
			}
			run++
		}
		if run < depth {
			depth = run
		}
	}
	return depth
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
