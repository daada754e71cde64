package world

import (
	"container/heap"
	"math"
)

// PathProfile describes how a mob traverses terrain.
type PathProfile struct {
	// Headroom is the number of passable cells the body needs.
	Headroom int
	// CanSwim lets the path cross fluid cells at surface level.
	CanSwim bool
	// MaxNodes bounds the A* expansion; zero picks a default.
	MaxNodes int
}

func (p PathProfile) headroom() int {
	if p.Headroom <= 0 {
		return 2
	}
	return p.Headroom
}

func (p PathProfile) maxNodes() int {
	if p.MaxNodes <= 0 {
		return 1500
	}
	return p.MaxNodes
}

type navNeighbor struct {
	dx       int
	dz       int
	cost     float64
	diagonal bool
}

var navNeighborOffsets = [...]navNeighbor{
	{dx: 0, dz: -1, cost: 1},
	{dx: 1, dz: 0, cost: 1},
	{dx: 0, dz: 1, cost: 1},
	{dx: -1, dz: 0, cost: 1},
	{dx: 1, dz: -1, cost: math.Sqrt2, diagonal: true},
	{dx: 1, dz: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dz: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dz: -1, cost: math.Sqrt2, diagonal: true},
}

// traversable reports whether a mob following the profile may occupy p, and
// whether the cell is a swim cell.
func (w *World) traversable(p BlockPos, profile PathProfile) bool {
	if w.Standable(p, profile.headroom()) {
		return true
	}
	if profile.CanSwim && w.BlockAt(p).Fluid() && w.BlockAt(p.Above(1)).Passable() {
		return true
	}
	return false
}

// resolveStand snaps a column move to a traversable cell within one step up
// or down of yHint.
func (w *World) resolveStand(x, z, yHint int, profile PathProfile) (BlockPos, bool) {
	for _, dy := range [...]int{0, -1, 1} {
		p := BlockPos{X: x, Y: yHint + dy, Z: z}
		if w.traversable(p, profile) {
			return p, true
		}
	}
	return BlockPos{}, false
}

func pathHeuristic(a, b BlockPos) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dz := math.Abs(float64(a.Z - b.Z))
	dy := math.Abs(float64(a.Y - b.Y))
	horiz := dx + (math.Sqrt2-1)*dz
	if dz > dx {
		horiz = dz + (math.Sqrt2-1)*dx
	}
	return horiz + dy*0.5
}

type pathNode struct {
	pos    BlockPos
	g      float64
	f      float64
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*pathNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// FindPath runs a bounded A* over traversable standing cells and returns the
// waypoints from start (exclusive) to goal (inclusive).
func (w *World) FindPath(start, goal BlockPos, profile PathProfile) ([]BlockPos, bool) {
	if w == nil {
		return nil, false
	}
	startCell, ok := w.resolveStand(start.X, start.Z, start.Y, profile)
	if !ok {
		return nil, false
	}
	goalCell, ok := w.resolveStand(goal.X, goal.Z, goal.Y, profile)
	if !ok {
		return nil, false
	}
	if startCell == goalCell {
		return []BlockPos{goalCell}, true
	}

	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{pos: startCell, g: 0, f: pathHeuristic(startCell, goalCell)})
	gScore := map[uint64]float64{startCell.Key(): 0}
	closed := make(map[uint64]struct{})
	expanded := 0
	maxNodes := profile.maxNodes()

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		currKey := current.pos.Key()
		if _, seen := closed[currKey]; seen {
			continue
		}
		closed[currKey] = struct{}{}
		if current.pos == goalCell {
			return reconstructPath(current), true
		}
		expanded++
		if expanded > maxNodes {
			return nil, false
		}

		for _, delta := range navNeighborOffsets {
			next, ok := w.resolveStand(current.pos.X+delta.dx, current.pos.Z+delta.dz, current.pos.Y, profile)
			if !ok {
				continue
			}
			if delta.diagonal && !w.canCutCorner(current.pos, delta, profile) {
				continue
			}
			key := next.Key()
			if _, seen := closed[key]; seen {
				continue
			}
			cost := delta.cost
			if next.Y != current.pos.Y {
				cost += 0.5
			}
			tentativeG := current.g + cost
			if prev, ok := gScore[key]; ok && tentativeG >= prev {
				continue
			}
			gScore[key] = tentativeG
			heap.Push(open, &pathNode{
				pos:    next,
				g:      tentativeG,
				f:      tentativeG + pathHeuristic(next, goalCell),
				parent: current,
			})
		}
	}
	return nil, false
}

// canCutCorner requires both cardinal columns beside a diagonal step to be
// traversable so mobs don't clip through block corners.
func (w *World) canCutCorner(from BlockPos, delta navNeighbor, profile PathProfile) bool {
	if _, ok := w.resolveStand(from.X+delta.dx, from.Z, from.Y, profile); !ok {
		return false
	}
	if _, ok := w.resolveStand(from.X, from.Z+delta.dz, from.Y, profile); !ok {
		return false
	}
	return true
}

func reconstructPath(end *pathNode) []BlockPos {
	if end == nil {
		return nil
	}
	path := make([]BlockPos, 0)
	for node := end; node != nil; node = node.parent {
		path = append(path, node.pos)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	if len(path) > 1 {
		path = path[1:]
	}
	return path
}

// CanReach answers a reachability query, consuming one unit of budget. An
// exhausted budget reports unreachable without running the search.
func (w *World) CanReach(start, goal BlockPos, profile PathProfile, budget *PathBudget) bool {
	if w == nil {
		return false
	}
	if !budget.TrySpend() {
		return false
	}
	_, ok := w.FindPath(start, goal, profile)
	return ok
}
