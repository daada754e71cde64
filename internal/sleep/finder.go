package sleep

import (
	"math/rand"

	"catoworld/server/internal/world"
	"catoworld/server/species"
)

// Buddy is a nearby mob considered for social sleeping.
type Buddy struct {
	ID       string
	Pos      world.BlockPos
	Species  string
	Sleeping bool
}

// Surroundings is the finder's read-only view of nearby mobs. The mob
// population implements it.
type Surroundings interface {
	// BuddiesNear returns mobs within radius of center, excluding the
	// searching mob itself.
	BuddiesNear(selfID string, center world.BlockPos, radius float64) []Buddy
	// SleeperAt reports whether another mob is already sleeping in the cell.
	SleeperAt(pos world.BlockPos) bool
}

// Request bundles everything one search invocation needs. The finder itself
// is stateless; per-mob state rides in via Memory and Blacklist.
type Request struct {
	World      *world.World
	SelfID     string
	MobPos     world.BlockPos
	Anchor     world.BlockPos // home position, or current position when unbounded
	HomeRadius float64        // zero disables the roaming bound
	Species    *species.Config
	Memory     *Memory
	Blacklist  *Blacklist
	Near       Surroundings
	Profile    world.PathProfile
	RNG        *rand.Rand
	Tick       uint64
}

// Result is the chosen sleep spot.
type Result struct {
	Pos         world.BlockPos
	Score       float64
	FromMemory  bool
	BudgetSpent int
}

// candidate is search-local and never escapes one invocation.
type candidate struct {
	pos        world.BlockPos
	roofDepth  int
	baseScore  float64
	distSq     float64
	fromMemory bool
}

const topCandidates = 5

// FindSpot runs the multi-pass search and returns the best standable sleep
// position, or false when nothing qualifies inside the path-query budget.
func FindSpot(req Request) (Result, bool) {
	if req.World == nil || req.Species == nil {
		return Result{}, false
	}
	budget := world.NewPathBudget(req.Species.Sleep.PathBudget)

	if res, ok := buddyJoinPass(req, budget); ok {
		res.BudgetSpent = budget.Spent()
		return res, true
	}

	buffer := make([]candidate, 0, topCandidates)
	buffer = rememberedPass(req, buffer)
	buffer = randomPass(req, buffer)

	if res, ok := finalizePass(req, buffer, budget); ok {
		res.BudgetSpent = budget.Spent()
		return res, true
	}

	if res, ok := fallbackPass(req); ok {
		res.BudgetSpent = budget.Spent()
		return res, true
	}
	return Result{}, false
}

// Validate re-runs the structural checks against a single position. The
// search goal uses it on arrival to confirm the spot still qualifies.
func Validate(req Request, pos world.BlockPos) (roofDepth int, ok bool) {
	if req.World == nil || req.Species == nil {
		return 0, false
	}
	return validateSpot(req, pos)
}

// validateSpot applies the structural constraints every candidate must meet.
// It is deliberately cheap; reachability is checked later against the
// budget.
func validateSpot(req Request, pos world.BlockPos) (roofDepth int, ok bool) {
	s := req.Species.Sleep

	if req.Blacklist.Banned(pos, req.Tick) {
		return 0, false
	}
	if req.Near != nil && req.Near.SleeperAt(pos) {
		return 0, false
	}
	if req.HomeRadius > 0 && pos.HorizontalDistSq(req.Anchor) > req.HomeRadius*req.HomeRadius {
		return 0, false
	}

	headroom := s.Headroom
	if headroom <= 0 {
		headroom = 1
	}
	if s.RequireSturdyGround {
		if !req.World.SturdyStandable(pos, headroom) {
			return 0, false
		}
	} else if !req.World.Standable(pos, headroom) {
		if !s.InWaterAllowed || !req.World.InFluid(pos) {
			return 0, false
		}
	}

	if s.RequiresRoof {
		depth, found := req.World.RoofAbove(pos, s.RoofScanHeight)
		if !found {
			return 0, false
		}
		if depth < headroom {
			return 0, false
		}
		return depth, true
	}
	depth, _ := req.World.RoofAbove(pos, s.RoofScanHeight)
	return depth, true
}

// buddyJoinPass looks for an already-sleeping qualifying neighbor and tries
// the adjacency ring around it, preferring the closest validated cell.
func buddyJoinPass(req Request, budget *world.PathBudget) (Result, bool) {
	s := req.Species.Sleep
	if req.Near == nil || len(s.BuddySpecies) == 0 || s.BuddySearchRadius <= 0 {
		return Result{}, false
	}
	buddies := req.Near.BuddiesNear(req.SelfID, req.MobPos, s.BuddySearchRadius)
	ring := s.BuddyRingRadius
	if ring <= 0 {
		ring = 1
	}

	best := candidate{baseScore: 0}
	found := false
	for _, buddy := range buddies {
		if !buddy.Sleeping || !s.BuddyAllowed(buddy.Species) {
			continue
		}
		for dx := -ring; dx <= ring; dx++ {
			for dz := -ring; dz <= ring; dz++ {
				if dx == 0 && dz == 0 {
					continue
				}
				cell, ok := req.World.FindStand(buddy.Pos.Offset(dx, 0, dz), req.Profile)
				if !ok {
					continue
				}
				roofDepth, ok := validateSpot(req, cell)
				if !ok {
					continue
				}
				score := BaseScore(roofDepth, s.Headroom) - buddyProximityBonus
				score += StrikePenalty(req.Memory.StrikesAt(cell))
				cand := candidate{
					pos:       cell,
					roofDepth: roofDepth,
					baseScore: score,
					distSq:    cell.DistSq(req.MobPos),
				}
				if !found || cand.better(best) {
					best = cand
					found = true
				}
			}
		}
	}
	if !found {
		return Result{}, false
	}
	if !req.World.CanReach(req.MobPos, best.pos, req.Profile, budget) {
		return Result{}, false
	}
	return Result{Pos: best.pos, Score: best.baseScore}, true
}

// rememberedPass re-validates memorized spots when the sleep window is open,
// striking the ones that stopped qualifying.
func rememberedPass(req Request, buffer []candidate) []candidate {
	s := req.Species.Sleep
	if req.Memory == nil || !s.SleepsNow(req.World.IsDay()) {
		return buffer
	}
	for _, entry := range req.Memory.Entries() {
		roofDepth, ok := validateSpot(req, entry.Pos)
		if !ok {
			req.Memory.Strike(entry.Pos)
			continue
		}
		buffer = insertCandidate(buffer, candidate{
			pos:        entry.Pos,
			roofDepth:  roofDepth,
			baseScore:  BaseScore(roofDepth, s.Headroom) + StrikePenalty(entry.Strikes) - memoryRecencyBias,
			distSq:     entry.Pos.DistSq(req.MobPos),
			fromMemory: true,
		})
	}
	return buffer
}

// randomPass samples polar offsets around the anchor, deduplicating and
// rejecting blacklisted coordinates before any scoring work.
func randomPass(req Request, buffer []candidate) []candidate {
	s := req.Species.Sleep
	attempts := s.SearchAttempts
	if attempts <= 0 {
		attempts = 16
	}
	scale := s.RadiusScale
	if scale <= 0 {
		scale = 1
	}
	minRadius := s.MinRadius * scale
	maxRadius := s.MaxRadius * scale
	if maxRadius <= 0 {
		maxRadius = 12
	}

	seen := make(map[uint64]struct{}, attempts)
	for i := 0; i < attempts; i++ {
		dx, dz := world.RandomPolarOffset(req.RNG, minRadius, maxRadius)
		col := req.Anchor.Offset(dx, 0, dz)
		cell, ok := req.World.FindStand(col, req.Profile)
		if !ok {
			continue
		}
		key := cell.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		roofDepth, ok := validateSpot(req, cell)
		if !ok {
			continue
		}
		buffer = insertCandidate(buffer, candidate{
			pos:       cell,
			roofDepth: roofDepth,
			baseScore: BaseScore(roofDepth, s.Headroom) + StrikePenalty(req.Memory.StrikesAt(cell)),
			distSq:    cell.DistSq(req.MobPos),
		})
	}
	return buffer
}

// finalizePass spends the path budget on only the top cheap-scored
// candidates, folds in buddy proximity, and picks the lowest final score.
func finalizePass(req Request, buffer []candidate, budget *world.PathBudget) (Result, bool) {
	s := req.Species.Sleep
	best := candidate{}
	bestScore := 0.0
	found := false
	for _, cand := range buffer {
		if budget.Exhausted() {
			break
		}
		if !req.World.CanReach(req.MobPos, cand.pos, req.Profile, budget) {
			continue
		}
		sleeping, awake := countBuddies(req, cand.pos)
		score := cand.baseScore - SocialBonus(sleeping, awake, s.BuddyBonus)
		if !found || score < bestScore || (score == bestScore && cand.distSq < best.distSq) {
			best = cand
			bestScore = score
			found = true
		}
	}
	if !found {
		return Result{}, false
	}
	return Result{Pos: best.pos, Score: bestScore, FromMemory: best.fromMemory}, true
}

// fallbackPass relaxes reachability entirely and takes the first
// structurally valid spot, so a mob in a pathfinding dead zone still gets a
// chance to sleep nearby.
func fallbackPass(req Request) (Result, bool) {
	s := req.Species.Sleep
	attempts := s.SearchAttempts
	if attempts <= 0 {
		attempts = 16
	}
	scale := s.RadiusScale
	if scale <= 0 {
		scale = 1
	}
	for i := 0; i < attempts; i++ {
		dx, dz := world.RandomPolarOffset(req.RNG, s.MinRadius*scale, s.MaxRadius*scale)
		cell, ok := req.World.FindStand(req.Anchor.Offset(dx, 0, dz), req.Profile)
		if !ok {
			continue
		}
		roofDepth, ok := validateSpot(req, cell)
		if !ok {
			continue
		}
		return Result{Pos: cell, Score: BaseScore(roofDepth, s.Headroom)}, true
	}
	return Result{}, false
}

func countBuddies(req Request, pos world.BlockPos) (sleeping, awake int) {
	s := req.Species.Sleep
	if req.Near == nil || s.BuddySearchRadius <= 0 {
		return 0, 0
	}
	for _, buddy := range req.Near.BuddiesNear(req.SelfID, pos, s.BuddySearchRadius) {
		if !s.BuddyAllowed(buddy.Species) {
			continue
		}
		if buddy.Sleeping {
			sleeping++
		} else {
			awake++
		}
	}
	return sleeping, awake
}

func (c candidate) better(other candidate) bool {
	if c.baseScore != other.baseScore {
		return c.baseScore < other.baseScore
	}
	return c.distSq < other.distSq
}

// insertCandidate keeps the buffer sorted ascending by cheap score and
// bounded to topCandidates entries.
func insertCandidate(buffer []candidate, cand candidate) []candidate {
	idx := len(buffer)
	for i, existing := range buffer {
		if cand.better(existing) {
			idx = i
			break
		}
	}
	if idx >= topCandidates {
		return buffer
	}
	if len(buffer) < topCandidates {
		buffer = append(buffer, candidate{})
	}
	copy(buffer[idx+1:], buffer[idx:])
	buffer[idx] = cand
	return buffer
}
