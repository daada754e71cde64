package behavior

import (
	"catoworld/server/internal/goal"
)

// SleepLockGoal holds a sleeping mob perfectly still. It claims every
// control surface so nothing below it can move, turn, or jump the mob, and
// re-freezes the pose every tick regardless of what physics did.
type SleepLockGoal struct {
	m Mob
}

func NewSleepLockGoal(m Mob) *SleepLockGoal {
	return &SleepLockGoal{m: m}
}

func (g *SleepLockGoal) Name() string { return "sleep" }

func (g *SleepLockGoal) Flags() goal.Flag {
	return goal.FlagMove | goal.FlagLook | goal.FlagJump
}

func (g *SleepLockGoal) CanUse(goal.Context) bool {
	return g.m.Sleeping()
}

func (g *SleepLockGoal) CanContinueToUse(goal.Context) bool {
	return g.m.Sleeping()
}

func (g *SleepLockGoal) Start(goal.Context) {
	g.m.StopNavigation()
	g.m.SetMoveMode(MoveIdle)
	g.m.FreezePose()
}

func (g *SleepLockGoal) Stop(goal.Context) {}

func (g *SleepLockGoal) Tick(goal.Context) {
	g.m.FreezePose()
}
