// Package app wires the process together: logging router, species library,
// simulation, and the debug websocket endpoint.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"catoworld/server/internal/net/ws"
	"catoworld/server/internal/sim"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	loggingSinks "catoworld/server/logging/sinks"
	"catoworld/server/species"
)

// spawnTable seeds the demo world. Column coordinates are fractions of the
// world size so any configured dimensions work.
var spawnTable = []struct {
	species string
	count   int
	fx, fz  float64
}{
	{"marmot", 4, 0.6, 0.6},
	{"otter", 3, 0.3, 0.3},
	{"lynx", 2, 0.75, 0.25},
	{"boar", 2, 0.25, 0.75},
}

func Run(ctx context.Context) error {
	logConfig := logging.DefaultConfig()
	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console)},
	}
	if path := os.Getenv("CATOWORLD_LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()
		namedSinks = append(namedSinks, logging.NamedSink{
			Name: "json",
			Sink: loggingSinks.NewJSON(file, logConfig.JSON.FlushInterval),
		})
	}

	router, err := logging.NewRouter(nil, logConfig, namedSinks)
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		router.Close(closeCtx)
	}()

	library, err := species.Load()
	if err != nil {
		return fmt.Errorf("load species configs: %w", err)
	}

	simCfg := sim.Config{Seed: os.Getenv("CATOWORLD_SEED")}
	if raw := os.Getenv("CATOWORLD_TICK_RATE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			simCfg.TickRate = value
		}
	}
	simulation := sim.New(simCfg, library, router)
	if err := seedSpawns(simulation); err != nil {
		return err
	}

	hub := ws.NewHub(simulation)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				hub.Broadcast()
			}
		}
	}()
	go simulation.Run(runCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/ws", hub.Handler())

	srv := &http.Server{Addr: listenAddr(), Handler: mux}
	fmt.Printf("server listening on %s\n", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func listenAddr() string {
	if addr := os.Getenv("CATOWORLD_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

func seedSpawns(s *sim.Simulation) error {
	sizeX, _, sizeZ := s.World().Size()
	for _, row := range spawnTable {
		cx := int(float64(sizeX) * row.fx)
		cz := int(float64(sizeZ) * row.fz)
		for i := 0; i < row.count; i++ {
			if _, err := s.SpawnOnSurface(row.species, cx+i*2, cz+i); err != nil {
				return fmt.Errorf("spawn %s: %w", row.species, err)
			}
		}
	}
	s.AddPlayer("player-1", playerStart(s.World()), 20)
	return nil
}

func playerStart(w *world.World) world.Vec3 {
	sizeX, _, sizeZ := w.Size()
	if surface, ok := w.SurfaceAt(sizeX/2, sizeZ/2); ok {
		return surface.Center()
	}
	return world.Vec3{X: float64(sizeX) / 2, Z: float64(sizeZ) / 2}
}
