package sleep

import (
	"math/rand"
	"testing"

	"catoworld/server/internal/world"
	"catoworld/server/species"
)

type fakeSurroundings struct {
	buddies  []Buddy
	sleepers map[uint64]bool
}

func (f *fakeSurroundings) BuddiesNear(selfID string, center world.BlockPos, radius float64) []Buddy {
	var out []Buddy
	for _, b := range f.buddies {
		if b.ID == selfID {
			continue
		}
		if b.Pos.HorizontalDistSq(center) <= radius*radius {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeSurroundings) SleeperAt(pos world.BlockPos) bool {
	return f.sleepers[pos.Key()]
}

func flatWorld(t *testing.T) *world.World {
	t.Helper()
	return world.New(48, 16, 48, rand.New(rand.NewSource(7)))
}

func sleepTestConfig() *species.Config {
	return &species.Config{
		Name:        "marmot",
		Temperament: species.TemperamentPassive,
		Sleep: species.SleepTuning{
			Enabled:             true,
			AtDay:               true,
			AtNight:             true,
			Headroom:            2,
			RoofScanHeight:      6,
			MinRadius:           2,
			MaxRadius:           10,
			RadiusScale:         1,
			SearchAttempts:      24,
			PathBudget:          8,
			MemorySize:          4,
			MemoryMaxStrikes:    3,
			BlacklistMaxStrikes: 2,
			BlacklistDecayTicks: 1000,
			BlacklistCapacity:   32,
		},
	}
}

func baseRequest(w *world.World, cfg *species.Config) Request {
	anchor := world.BlockPos{X: 20, Y: 0, Z: 20}
	return Request{
		World:     w,
		SelfID:    "mob-1",
		MobPos:    anchor,
		Anchor:    anchor,
		Species:   cfg,
		Memory:    NewMemory(cfg.Sleep.MemorySize, cfg.Sleep.MemoryMaxStrikes),
		Blacklist: NewBlacklist(cfg.Sleep.BlacklistMaxStrikes, cfg.Sleep.BlacklistDecayTicks, cfg.Sleep.BlacklistCapacity),
		Near:      &fakeSurroundings{},
		Profile:   world.PathProfile{Headroom: 2},
		RNG:       rand.New(rand.NewSource(11)),
	}
}

func TestFindSpotOnOpenGround(t *testing.T) {
	w := flatWorld(t)
	req := baseRequest(w, sleepTestConfig())

	res, ok := FindSpot(req)
	if !ok {
		t.Fatalf("expected a spot on open flat ground")
	}
	if !w.Standable(res.Pos, 2) {
		t.Fatalf("chosen spot %v is not standable", res.Pos)
	}
}

func TestFindSpotStaysWithinPathBudget(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	cfg.Sleep.PathBudget = 2
	req := baseRequest(w, cfg)

	res, ok := FindSpot(req)
	if !ok {
		t.Fatalf("expected a spot")
	}
	if res.BudgetSpent > 2 {
		t.Fatalf("search spent %d reachability queries, budget was 2", res.BudgetSpent)
	}
}

func TestFindSpotPrefersRememberedRoofedSpot(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	cfg.Sleep.RequiresRoof = true
	req := baseRequest(w, cfg)

	// One roofed cell near the anchor; nothing else qualifies.
	den := world.BlockPos{X: 24, Y: 0, Z: 20}
	w.FillBox(den.Offset(-1, 3, -1), den.Offset(1, 3, 1), world.BlockStone)
	req.Memory.Remember(den)

	res, ok := FindSpot(req)
	if !ok {
		t.Fatalf("expected the remembered den to be found")
	}
	if res.Pos != den {
		t.Fatalf("got %v, want remembered den %v", res.Pos, den)
	}
	if !res.FromMemory {
		t.Fatalf("result should be flagged as remembered")
	}
}

func TestFindSpotSkipsBlacklistedSpot(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	cfg.Sleep.RequiresRoof = true
	req := baseRequest(w, cfg)

	den := world.BlockPos{X: 24, Y: 0, Z: 20}
	w.FillBox(den.Offset(-1, 3, -1), den.Offset(1, 3, 1), world.BlockStone)
	req.Memory.Remember(den)
	for i := 0; i < cfg.Sleep.BlacklistMaxStrikes; i++ {
		req.Blacklist.Strike(den, req.Tick)
	}

	if res, ok := FindSpot(req); ok && res.Pos == den {
		t.Fatalf("blacklisted den %v was still chosen", den)
	}
}

func TestFindSpotJoinsSleepingBuddy(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	cfg.Sleep.BuddySpecies = []string{"marmot"}
	cfg.Sleep.BuddySearchRadius = 12
	cfg.Sleep.BuddyRingRadius = 1
	cfg.Sleep.BuddyBonus = 10
	req := baseRequest(w, cfg)

	buddyPos := world.BlockPos{X: 26, Y: 0, Z: 24}
	near := &fakeSurroundings{
		buddies:  []Buddy{{ID: "mob-2", Pos: buddyPos, Species: "marmot", Sleeping: true}},
		sleepers: map[uint64]bool{buddyPos.Key(): true},
	}
	req.Near = near

	res, ok := FindSpot(req)
	if !ok {
		t.Fatalf("expected a buddy-adjacent spot")
	}
	dx := res.Pos.X - buddyPos.X
	dz := res.Pos.Z - buddyPos.Z
	if dx < -1 || dx > 1 || dz < -1 || dz > 1 || (dx == 0 && dz == 0) {
		t.Fatalf("spot %v is not adjacent to buddy at %v", res.Pos, buddyPos)
	}
}

func TestFindSpotAwakeBuddiesDoNotShortCircuit(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	cfg.Sleep.BuddySpecies = []string{"marmot"}
	cfg.Sleep.BuddySearchRadius = 12
	cfg.Sleep.BuddyRingRadius = 1
	req := baseRequest(w, cfg)
	req.Near = &fakeSurroundings{
		buddies: []Buddy{{ID: "mob-2", Pos: world.BlockPos{X: 26, Y: 0, Z: 24}, Species: "marmot", Sleeping: false}},
	}

	res, ok := FindSpot(req)
	if !ok {
		t.Fatalf("expected a spot from the general passes")
	}
	if res.BudgetSpent == 0 {
		t.Fatalf("general passes should have spent reachability budget")
	}
}

func TestFindSpotFallsBackWithoutBudget(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	cfg.Sleep.PathBudget = 0
	req := baseRequest(w, cfg)

	res, ok := FindSpot(req)
	if !ok {
		t.Fatalf("fallback pass should still produce a spot")
	}
	if res.BudgetSpent != 0 {
		t.Fatalf("no budget was available, yet %d was spent", res.BudgetSpent)
	}
}

func TestFindSpotRespectsHomeRadius(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	req := baseRequest(w, cfg)
	req.HomeRadius = 6

	res, ok := FindSpot(req)
	if !ok {
		t.Fatalf("expected a spot inside the home radius")
	}
	if res.Pos.HorizontalDistSq(req.Anchor) > 36 {
		t.Fatalf("spot %v is outside home radius 6 of %v", res.Pos, req.Anchor)
	}
}

func TestFindBuddySpotRequiresSleepingBuddy(t *testing.T) {
	w := flatWorld(t)
	cfg := sleepTestConfig()
	cfg.Sleep.BuddySpecies = []string{"marmot"}
	cfg.Sleep.BuddySearchRadius = 12
	cfg.Sleep.BuddyRingRadius = 1
	req := baseRequest(w, cfg)

	if _, ok := FindBuddySpot(req); ok {
		t.Fatalf("no sleeping buddy around, search should fail")
	}

	buddyPos := world.BlockPos{X: 22, Y: 0, Z: 22}
	req.Near = &fakeSurroundings{
		buddies:  []Buddy{{ID: "mob-2", Pos: buddyPos, Species: "marmot", Sleeping: true}},
		sleepers: map[uint64]bool{buddyPos.Key(): true},
	}
	res, ok := FindBuddySpot(req)
	if !ok {
		t.Fatalf("expected a buddy-adjacent spot")
	}
	if res.Pos.HorizontalDistSq(buddyPos) > 2 {
		t.Fatalf("spot %v too far from buddy %v", res.Pos, buddyPos)
	}
}
