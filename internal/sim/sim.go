// Package sim assembles a running world: terrain, weather, the mob
// population, and the fixed-timestep loop that drives it all.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catoworld/server/internal/mob"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	"catoworld/server/species"
)

const DefaultTickRate = 20 // ticks per second

// Config sizes the simulation.
type Config struct {
	Seed     string
	SizeX    int
	SizeY    int
	SizeZ    int
	TickRate int
}

func (c Config) withDefaults() Config {
	if c.Seed == "" {
		c.Seed = world.DefaultSeed
	}
	if c.SizeX <= 0 {
		c.SizeX = 128
	}
	if c.SizeY <= 0 {
		c.SizeY = 32
	}
	if c.SizeZ <= 0 {
		c.SizeZ = 128
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// Simulation owns the authoritative state. All mutation happens on the loop
// goroutine; external readers go through WithLock.
type Simulation struct {
	mu sync.Mutex

	cfg     Config
	w       *world.World
	pop     *mob.Population
	library *species.Library
	pub     logging.Publisher

	nextSpawnID int
}

func New(cfg Config, library *species.Library, pub logging.Publisher) *Simulation {
	cfg = cfg.withDefaults()
	if pub == nil {
		pub = logging.NopPublisher()
	}
	s := &Simulation{
		cfg:     cfg,
		w:       world.New(cfg.SizeX, cfg.SizeY, cfg.SizeZ, world.NewDeterministicRNG(cfg.Seed, "world")),
		pop:     mob.NewPopulation(),
		library: library,
		pub:     pub,
	}
	generateTerrain(s.w)
	return s
}

func (s *Simulation) World() *world.World         { return s.w }
func (s *Simulation) Population() *mob.Population { return s.pop }

// WithLock runs fn with exclusive access to simulation state. The websocket
// layer uses it to read overlays between ticks.
func (s *Simulation) WithLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Spawn creates a mob of the named species and adds it to the roster.
func (s *Simulation) Spawn(speciesName string, pos world.Vec3) (*mob.CatoMob, error) {
	cfg := s.library.ByName(speciesName)
	if cfg == nil {
		return nil, fmt.Errorf("sim: unknown species %q", speciesName)
	}
	s.nextSpawnID++
	id := fmt.Sprintf("%s-%d", speciesName, s.nextSpawnID)
	m := mob.New(id, cfg, s.w, s.pop, s.pub, pos, s.cfg.Seed)
	s.pop.Add(m)
	return m, nil
}

// SpawnOnSurface drops a mob onto the terrain surface of the column.
func (s *Simulation) SpawnOnSurface(speciesName string, x, z int) (*mob.CatoMob, error) {
	surface, ok := s.w.SurfaceAt(x, z)
	if !ok {
		return nil, fmt.Errorf("sim: no surface at %d,%d", x, z)
	}
	return s.Spawn(speciesName, surface.Center())
}

// AddPlayer registers a player stand-in.
func (s *Simulation) AddPlayer(name string, pos world.Vec3, hp float64) *mob.Player {
	p := mob.NewPlayer(name, pos, hp)
	s.pop.Add(p)
	return p
}

// Step advances the world clock and ticks every mob once.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Step()
	tick := s.w.Tick()
	for _, a := range s.pop.Actors() {
		if m, ok := a.(*mob.CatoMob); ok {
			m.Tick(tick)
			if !m.Alive() {
				s.pop.Remove(m.ID())
			}
		}
	}
}

// Run drives Step at the configured tick rate until ctx is canceled.
func (s *Simulation) Run(ctx context.Context) {
	interval := time.Second / time.Duration(s.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}
