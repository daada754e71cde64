package behavior

import (
	"context"

	"catoworld/server/internal/goal"
	"catoworld/server/internal/sleep"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	logbehavior "catoworld/server/logging/behavior"
)

const (
	// arriveEpsilonSq accepts the waypoint once the mob is within this
	// squared horizontal distance of the spot center.
	arriveEpsilonSq = 1.2 * 1.2
	// stallMoveEpsilonSq is the squared per-tick displacement below which
	// the mob counts as not actually moving.
	stallMoveEpsilonSq = 0.02 * 0.02
	stallTripTicks     = 20
	// noProgressTripTicks trips when distance to the spot stops shrinking
	// even though the mob is moving, such as circling an unreachable ledge.
	noProgressTripTicks = 60
)

// SleepSearchGoal walks a desiring mob to a validated sleep spot and commits
// it. Two independent watchdogs guard against stuck navigation: one for the
// mob not physically moving, one for distance to the spot not improving.
// Either trip strikes the spot and re-searches.
type SleepSearchGoal struct {
	m Mob

	target     world.BlockPos
	haveTarget bool
	startTick  uint64

	lastPos         world.Vec3
	stallTicks      int
	bestDistSq      float64
	noProgressTicks int
	buddyChecked    bool
}

func NewSleepSearchGoal(m Mob) *SleepSearchGoal {
	return &SleepSearchGoal{m: m}
}

func (g *SleepSearchGoal) Name() string { return "sleep_search" }

func (g *SleepSearchGoal) Flags() goal.Flag {
	return goal.FlagMove | goal.FlagLook
}

func (g *SleepSearchGoal) eligible() bool {
	if g.m.Sleeping() || g.m.Fleeing() || g.m.Aggressive() {
		return false
	}
	if _, hasTarget := g.m.Target(); hasTarget {
		return false
	}
	return g.m.SleepDesireActive()
}

func (g *SleepSearchGoal) CanUse(goal.Context) bool {
	return g.eligible()
}

func (g *SleepSearchGoal) CanContinueToUse(goal.Context) bool {
	return g.eligible()
}

func (g *SleepSearchGoal) Start(ctx goal.Context) {
	g.startTick = ctx.Tick
	g.buddyChecked = false
	g.resetWatchdogs(ctx)
	g.search(ctx)
}

func (g *SleepSearchGoal) Stop(goal.Context) {
	if g.haveTarget {
		g.m.StopNavigation()
	}
	g.m.SetMoveMode(MoveIdle)
	g.haveTarget = false
}

func (g *SleepSearchGoal) Tick(ctx goal.Context) {
	sp := ctx.Species.Sleep
	if sp.SearchTimeoutTicks > 0 && ctx.Tick-g.startTick > uint64(sp.SearchTimeoutTicks) {
		g.giveUp(ctx)
		return
	}
	if !g.haveTarget {
		g.search(ctx)
		return
	}

	if ctx.Pos.HorizontalDistSq(g.target.Center()) <= arriveEpsilonSq {
		g.arrive(ctx)
		return
	}
	g.runWatchdogs(ctx)
}

// search asks the buddy relocator first, then the full finder, and starts
// walking toward whatever came back.
func (g *SleepSearchGoal) search(ctx goal.Context) {
	req := g.request(ctx)

	res, ok := sleep.FindBuddySpot(req)
	if !ok {
		res, ok = sleep.FindSpot(req)
	}
	if !ok {
		logbehavior.SearchExhausted(context.Background(), g.m.Events(), ctx.Tick,
			logging.MobRef(g.m.ID()), "sleep", res.BudgetSpent)
		g.giveUp(ctx)
		return
	}

	g.target = res.Pos
	g.haveTarget = true
	g.resetWatchdogs(ctx)
	g.m.NavigateTo(g.target, ctx.Species.Wander.WalkSpeed)
	g.m.SetMoveMode(MoveWalk)
}

// arrive re-validates the spot underfoot, optionally hops to a buddy spot
// that appeared while walking, then commits.
func (g *SleepSearchGoal) arrive(ctx goal.Context) {
	req := g.request(ctx)
	if _, ok := sleep.Validate(req, g.target); !ok {
		g.strikeCurrent(ctx, "invalid_on_arrival")
		g.search(ctx)
		return
	}

	if !g.buddyChecked {
		g.buddyChecked = true
		if res, ok := sleep.FindBuddySpot(req); ok && res.Pos != g.target {
			g.target = res.Pos
			g.resetWatchdogs(ctx)
			g.m.NavigateTo(g.target, ctx.Species.Wander.WalkSpeed)
			return
		}
	}

	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
	g.m.SleepMemory().Remember(g.target)
	g.m.BeginSleepingAt(g.target)
	g.haveTarget = false
}

func (g *SleepSearchGoal) runWatchdogs(ctx goal.Context) {
	moved := ctx.Pos.DistSq(g.lastPos)
	g.lastPos = ctx.Pos
	if g.m.NavActive() && moved < stallMoveEpsilonSq {
		g.stallTicks++
	} else {
		g.stallTicks = 0
	}

	distSq := ctx.Pos.DistSq(g.target.Center())
	if distSq < g.bestDistSq-0.01 {
		g.bestDistSq = distSq
		g.noProgressTicks = 0
	} else {
		g.noProgressTicks++
	}

	if g.stallTicks >= stallTripTicks {
		g.strikeCurrent(ctx, "stalled")
		g.search(ctx)
		return
	}
	if g.noProgressTicks >= noProgressTripTicks {
		g.strikeCurrent(ctx, "no_progress")
		g.search(ctx)
	}
}

func (g *SleepSearchGoal) strikeCurrent(ctx goal.Context, reason string) {
	strikes, _ := g.m.SleepMemory().Strike(g.target)
	g.m.SleepBlacklist().Strike(g.target, ctx.Tick)
	logbehavior.SpotStruck(context.Background(), g.m.Events(), ctx.Tick,
		logging.MobRef(g.m.ID()), logbehavior.SpotStruckPayload{
			Spot:    logbehavior.SpotPayload{X: g.target.X, Y: g.target.Y, Z: g.target.Z},
			Strikes: strikes,
			Source:  reason,
		})
	g.m.StopNavigation()
	g.haveTarget = false
}

func (g *SleepSearchGoal) giveUp(ctx goal.Context) {
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
	g.haveTarget = false
	g.m.AbortSleepSearch(ctx.Species.Sleep.RetryCooldownTicks)
}

func (g *SleepSearchGoal) resetWatchdogs(ctx goal.Context) {
	g.lastPos = ctx.Pos
	g.stallTicks = 0
	g.noProgressTicks = 0
	if g.haveTarget {
		g.bestDistSq = ctx.Pos.DistSq(g.target.Center())
	} else {
		g.bestDistSq = 1e18
	}
}

func (g *SleepSearchGoal) request(ctx goal.Context) sleep.Request {
	anchor := ctx.Block
	homeRadius := 0.0
	if home, ok := g.m.Home(); ok {
		anchor = home
		homeRadius = ctx.Species.Wander.HomeRadius
	}
	return sleep.Request{
		World:      g.m.World(),
		SelfID:     g.m.ID(),
		MobPos:     ctx.Block,
		Anchor:     anchor,
		HomeRadius: homeRadius,
		Species:    ctx.Species,
		Memory:     g.m.SleepMemory(),
		Blacklist:  g.m.SleepBlacklist(),
		Near:       g.m.Nearby(),
		Profile: world.PathProfile{
			Headroom: ctx.Species.Sleep.Headroom,
			CanSwim:  ctx.Species.Sleep.InWaterAllowed,
		},
		RNG:  g.m.RNG(),
		Tick: ctx.Tick,
	}
}
