package world

import "testing"

func TestNavigatorWalksToTarget(t *testing.T) {
	w := flatWorld(16, 8, 16)
	nav := NewNavigator(w, PathProfile{Headroom: 2})
	start := Vec3{X: 2.5, Y: 1, Z: 2.5}
	target := BlockPos{X: 10, Y: 1, Z: 10}

	if !nav.MoveTo(start, target, 0.3) {
		t.Fatalf("MoveTo failed on open ground")
	}
	if !nav.InProgress() {
		t.Fatalf("navigator idle after MoveTo")
	}

	pos := start
	var tick uint64
	for nav.InProgress() {
		tick++
		if tick > 500 {
			t.Fatalf("navigator never finished, stuck at %v", pos)
		}
		next, _ := nav.Advance(pos, tick)
		pos = next
	}
	if pos.HorizontalDistSq(target.Center()) > 1 {
		t.Fatalf("finished at %v, want near %v", pos, target.Center())
	}
}

func TestNavigatorAdvanceReturnsFinalSnap(t *testing.T) {
	w := flatWorld(16, 8, 16)
	nav := NewNavigator(w, PathProfile{Headroom: 2})
	start := Vec3{X: 2.5, Y: 1, Z: 2.5}
	target := BlockPos{X: 3, Y: 1, Z: 2}

	if !nav.MoveTo(start, target, 5) {
		t.Fatalf("MoveTo failed")
	}
	// A fast mob reaches the single waypoint immediately; the terminal
	// Advance must still hand back the snapped position.
	pos := start
	moving := true
	var tick uint64
	for moving {
		tick++
		if tick > 10 {
			t.Fatalf("one-waypoint path never terminated")
		}
		pos, moving = nav.Advance(pos, tick)
	}
	if pos.HorizontalDistSq(target.Center()) > 0.01 {
		t.Fatalf("terminal position %v, want %v", pos, target.Center())
	}
}

func TestNavigatorStop(t *testing.T) {
	w := flatWorld(16, 8, 16)
	nav := NewNavigator(w, PathProfile{Headroom: 2})
	start := Vec3{X: 2.5, Y: 1, Z: 2.5}
	if !nav.MoveTo(start, BlockPos{X: 10, Y: 1, Z: 10}, 0.3) {
		t.Fatalf("MoveTo failed")
	}
	nav.Stop()
	if nav.InProgress() {
		t.Fatalf("navigator active after Stop")
	}
	if next, moving := nav.Advance(start, 1); moving || next != start {
		t.Fatalf("stopped navigator still moving: %v, %v", next, moving)
	}
	if _, ok := nav.Target(); ok {
		t.Fatalf("stopped navigator still reports a target")
	}
}

func TestNavigatorRejectsUnreachableTarget(t *testing.T) {
	w := flatWorld(16, 8, 16)
	w.FillBox(BlockPos{X: 10, Y: 1, Z: 10}, BlockPos{X: 14, Y: 5, Z: 14}, BlockStone)
	w.FillBox(BlockPos{X: 12, Y: 1, Z: 12}, BlockPos{X: 12, Y: 2, Z: 12}, BlockAir)

	nav := NewNavigator(w, PathProfile{Headroom: 2})
	if nav.MoveTo(Vec3{X: 2.5, Y: 1, Z: 2.5}, BlockPos{X: 12, Y: 1, Z: 12}, 0.3) {
		t.Fatalf("MoveTo accepted a sealed target")
	}
	if nav.InProgress() {
		t.Fatalf("navigator active after failed MoveTo")
	}
}

func TestNavigatorNilSafe(t *testing.T) {
	var nav *Navigator
	if nav.MoveTo(Vec3{}, BlockPos{}, 1) {
		t.Fatalf("nil navigator accepted MoveTo")
	}
	if nav.InProgress() || !nav.Done() || nav.Stalled() {
		t.Fatalf("nil navigator reports activity")
	}
	nav.Stop()
	if pos, moving := nav.Advance(Vec3{X: 1}, 1); moving || pos != (Vec3{X: 1}) {
		t.Fatalf("nil navigator moved: %v, %v", pos, moving)
	}
}
