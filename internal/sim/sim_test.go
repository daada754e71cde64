package sim

import (
	"testing"

	"catoworld/server/internal/world"
	"catoworld/server/species"
)

func testSim(t *testing.T) *Simulation {
	t.Helper()
	lib, err := species.Load()
	if err != nil {
		t.Fatalf("load species: %v", err)
	}
	return New(Config{Seed: "sim-test", SizeX: 64, SizeY: 24, SizeZ: 64}, lib, nil)
}

func TestGeneratedTerrainIsLivable(t *testing.T) {
	s := testSim(t)
	w := s.World()

	standable := 0
	water := 0
	roofed := 0
	for x := 0; x < 64; x += 2 {
		for z := 0; z < 64; z += 2 {
			surface, ok := w.SurfaceAt(x, z)
			if !ok {
				continue
			}
			if w.InFluid(surface) {
				water++
				continue
			}
			if w.Standable(surface, 2) {
				standable++
			}
			if _, ok := w.RoofAbove(surface, 8); ok {
				roofed++
			}
		}
	}
	if standable < 100 {
		t.Fatalf("only %d standable surface columns", standable)
	}
	if water == 0 {
		t.Fatalf("terrain has no pond")
	}
	if roofed == 0 {
		t.Fatalf("terrain has no covered spots")
	}
}

func TestSpawnAndStep(t *testing.T) {
	s := testSim(t)

	m, err := s.SpawnOnSurface("marmot", 40, 40)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if _, err := s.Spawn("dragon", world.Vec3{}); err == nil {
		t.Fatalf("unknown species spawned")
	}
	s.AddPlayer("player", world.Vec3{X: 10.5, Y: 10, Z: 10.5}, 20)

	for i := 0; i < 50; i++ {
		s.Step()
	}
	if !m.Alive() {
		t.Fatalf("mob died standing around")
	}
	if got, ok := s.Population().Get(m.ID()); !ok || got.ID() != m.ID() {
		t.Fatalf("mob missing from roster after stepping")
	}
	if s.World().Tick() != 50 {
		t.Fatalf("world tick = %d, want 50", s.World().Tick())
	}
}

func TestStepRemovesDeadMobs(t *testing.T) {
	s := testSim(t)
	m, err := s.SpawnOnSurface("marmot", 20, 20)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	m.Hurt(10000, nil)
	s.Step()

	if _, ok := s.Population().Get(m.ID()); ok {
		t.Fatalf("dead mob still on the roster")
	}
}
