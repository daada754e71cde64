// Package goal implements the prioritized behavior arbitration the mob tick
// drives: goals declare the control surfaces they need (move, look, jump,
// target) and a selector starts, stops, and ticks them so no two running
// goals fight over the same surface.
package goal

import (
	"catoworld/server/internal/world"
	"catoworld/server/species"
)

// Flag identifies a control surface a goal claims while running.
type Flag uint8

const (
	FlagMove Flag = 1 << iota
	FlagLook
	FlagJump
	FlagTarget
)

func (f Flag) Has(other Flag) bool {
	return f&other != 0
}

func (f Flag) Overlaps(other Flag) bool {
	return f&other != 0
}

// Context carries the per-tick values goals read instead of caching them on
// the mob. It is rebuilt at the top of every tick and never retained.
type Context struct {
	Tick    uint64
	Pos     world.Vec3
	Block   world.BlockPos
	Species *species.Config
}

// Goal is one behavior state machine. Lifecycle: CanUse gates Start; while
// running, Tick fires every tick until CanContinueToUse reports false or a
// higher-priority goal preempts, then Stop fires exactly once.
type Goal interface {
	Name() string
	Flags() Flag
	CanUse(ctx Context) bool
	CanContinueToUse(ctx Context) bool
	Start(ctx Context)
	Stop(ctx Context)
	Tick(ctx Context)
}
