package world

import "math"

const (
	waypointReachedEpsilon = 0.35
	navStallEpsilon        = 0.02
	navStallThresholdTicks = 8
	navRecalcCooldownTicks = 10
)

// Navigator owns one mob's active path. Only the goal currently holding the
// move flag may issue MoveTo/Stop.
type Navigator struct {
	w       *World
	profile PathProfile

	path   []BlockPos
	idx    int
	target BlockPos
	speed  float64
	active bool

	lastPos        Vec3
	stallTicks     int
	lastRecalcTick uint64
}

func NewNavigator(w *World, profile PathProfile) *Navigator {
	return &Navigator{w: w, profile: profile}
}

// MoveTo computes a fresh path from the current position and starts
// following it.
func (n *Navigator) MoveTo(from Vec3, target BlockPos, speed float64) bool {
	if n == nil || n.w == nil {
		return false
	}
	if speed <= 0 {
		speed = 0.1
	}
	path, ok := n.w.FindPath(from.Block(), target, n.profile)
	if !ok || len(path) == 0 {
		return false
	}
	n.path = path
	n.idx = 0
	n.target = target
	n.speed = speed
	n.active = true
	n.lastPos = from
	n.stallTicks = 0
	return true
}

func (n *Navigator) Stop() {
	if n == nil {
		return
	}
	n.path = nil
	n.idx = 0
	n.active = false
	n.stallTicks = 0
}

// InProgress reports whether the navigator still has waypoints to consume.
func (n *Navigator) InProgress() bool {
	return n != nil && n.active
}

func (n *Navigator) Done() bool {
	return n == nil || !n.active
}

func (n *Navigator) Target() (BlockPos, bool) {
	if n == nil || !n.active {
		return BlockPos{}, false
	}
	return n.target, true
}

func (n *Navigator) Speed() float64 {
	if n == nil {
		return 0
	}
	return n.speed
}

// Advance moves one tick along the path and returns the new position. The
// second result is false once the path is finished or was never active.
func (n *Navigator) Advance(current Vec3, tick uint64) (Vec3, bool) {
	if n == nil || !n.active {
		return current, false
	}
	if n.idx >= len(n.path) {
		n.Stop()
		return current, false
	}

	waypoint := n.path[n.idx].Center()
	delta := waypoint.Sub(current)
	dist := delta.Length()
	if dist <= waypointReachedEpsilon {
		n.idx++
		if n.idx >= len(n.path) {
			n.Stop()
			return waypoint, false
		}
		waypoint = n.path[n.idx].Center()
		delta = waypoint.Sub(current)
		dist = delta.Length()
	}

	step := n.speed
	next := current
	if dist > 0 {
		if step >= dist {
			next = waypoint
		} else {
			next = current.Add(delta.Scale(step / dist))
		}
	}

	moved := next.Sub(n.lastPos).Length()
	if moved < navStallEpsilon {
		n.stallTicks++
	} else {
		n.stallTicks = 0
	}
	n.lastPos = next

	// A stalled path is recomputed once per cooldown window; if the recompute
	// fails the path is abandoned so the owning goal can react.
	if n.stallTicks >= navStallThresholdTicks && tick >= n.lastRecalcTick+navRecalcCooldownTicks {
		n.lastRecalcTick = tick
		n.stallTicks = 0
		if !n.MoveTo(next, n.target, n.speed) {
			n.Stop()
			return next, false
		}
	}
	return next, true
}

// Stalled reports whether the navigator claims progress but the position has
// not been improving.
func (n *Navigator) Stalled() bool {
	return n != nil && n.active && n.stallTicks >= navStallThresholdTicks
}

// NextWaypoint exposes the current steering target for look control.
func (n *Navigator) NextWaypoint() (Vec3, bool) {
	if n == nil || !n.active || n.idx >= len(n.path) {
		return Vec3{}, false
	}
	return n.path[n.idx].Center(), true
}

// RemainingDistance estimates the distance left along the path.
func (n *Navigator) RemainingDistance(current Vec3) float64 {
	if n == nil || !n.active || n.idx >= len(n.path) {
		return 0
	}
	total := math.Sqrt(current.DistSq(n.path[n.idx].Center()))
	for i := n.idx; i+1 < len(n.path); i++ {
		total += math.Sqrt(n.path[i].Center().DistSq(n.path[i+1].Center()))
	}
	return total
}
