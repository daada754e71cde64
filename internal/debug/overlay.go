// Package debug renders per-mob overlay text for the websocket debug
// channel. Rendering is best effort: a panic inside inspection degrades to a
// placeholder line instead of taking down the tick.
package debug

import (
	"fmt"
	"strings"

	"catoworld/server/internal/goal"
	"catoworld/server/internal/mob"
)

const placeholder = "(overlay unavailable)"

// Overlay formats one mob's behavior state for the debug view.
func Overlay(m *mob.CatoMob) (text string) {
	if m == nil {
		return placeholder
	}
	defer func() {
		if r := recover(); r != nil {
			text = placeholder
		}
	}()

	var b strings.Builder
	pos := m.BlockPos()
	fmt.Fprintf(&b, "%s (%s) hp %.1f/%.1f @ %d,%d,%d\n",
		m.ID(), m.SpeciesName(), m.Health(), m.MaxHealth(), pos.X, pos.Y, pos.Z)
	fmt.Fprintf(&b, "sleeping=%v fleeing=%v aggressive=%v nav=%v\n",
		m.Sleeping(), m.Fleeing(), m.Aggressive(), m.NavActive())

	actions, targets := m.GoalStatus()
	b.WriteString("actions:\n")
	writeStatuses(&b, actions)
	if len(targets) > 0 {
		b.WriteString("targets:\n")
		writeStatuses(&b, targets)
	}
	return b.String()
}

func writeStatuses(b *strings.Builder, statuses []goal.Status) {
	for _, s := range statuses {
		marker := " "
		if s.Running {
			marker = "*"
		}
		fmt.Fprintf(b, " %s [%d] %s (%s)\n", marker, s.Priority, s.Name, flagString(s.Flags))
	}
}

func flagString(f goal.Flag) string {
	var parts []string
	if f.Has(goal.FlagMove) {
		parts = append(parts, "move")
	}
	if f.Has(goal.FlagLook) {
		parts = append(parts, "look")
	}
	if f.Has(goal.FlagJump) {
		parts = append(parts, "jump")
	}
	if f.Has(goal.FlagTarget) {
		parts = append(parts, "target")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}
