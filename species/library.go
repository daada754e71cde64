package species

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed species_configs/*.json
var embeddedConfigs embed.FS

// Library holds every compiled species config, keyed by name.
type Library struct {
	configsByName map[string]*Config
}

// MustLoad panics on malformed embedded configs; a bad authoring file is a
// build defect, not a runtime condition.
func MustLoad() *Library {
	lib, err := Load()
	if err != nil {
		panic(err)
	}
	return lib
}

func Load() (*Library, error) {
	entries, err := fs.ReadDir(embeddedConfigs, "species_configs")
	if err != nil {
		return nil, fmt.Errorf("read species configs: %w", err)
	}
	lib := &Library{configsByName: make(map[string]*Config)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := embeddedConfigs.ReadFile("species_configs/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		if err := compile(&cfg); err != nil {
			return nil, fmt.Errorf("compile %s: %w", entry.Name(), err)
		}
		if _, exists := lib.configsByName[cfg.Name]; exists {
			return nil, fmt.Errorf("duplicate species %q", cfg.Name)
		}
		lib.configsByName[cfg.Name] = &cfg
	}
	return lib, nil
}

func (l *Library) ByName(name string) *Config {
	if l == nil {
		return nil
	}
	return l.configsByName[name]
}

func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.configsByName))
	for name := range l.configsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// compile validates the authored config and normalizes the knobs that would
// otherwise need re-clamping on every read.
func compile(cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("species config missing name")
	}
	if !cfg.Temperament.Valid() {
		return fmt.Errorf("species %q: unknown temperament %q", cfg.Name, cfg.Temperament)
	}
	if cfg.MaxHealth <= 0 {
		cfg.MaxHealth = 10
	}

	s := &cfg.Sleep
	if s.MaxTicks < s.MinTicks {
		s.MaxTicks = s.MinTicks
	}
	if s.MaxRadius < s.MinRadius {
		s.MaxRadius = s.MinRadius
	}
	if s.RadiusScale <= 0 {
		s.RadiusScale = 1
	}
	if s.WindowGraceMaxTicks < s.WindowGraceMinTicks {
		s.WindowGraceMaxTicks = s.WindowGraceMinTicks
	}
	clampNonNegativeInts(
		&s.MinTicks, &s.AttemptIntervalTicks, &s.DesireWindowTicks,
		&s.Headroom, &s.RoofScanHeight, &s.SearchAttempts, &s.PathBudget,
		&s.SearchTimeoutTicks, &s.RetryCooldownTicks, &s.BuddyRingRadius,
		&s.MemorySize, &s.MemoryMaxStrikes, &s.BlacklistMaxStrikes,
		&s.BlacklistDecayTicks, &s.BlacklistCapacity, &s.WindowGraceMinTicks,
	)
	clampNonNegativeFloats(&s.MinRadius, &s.BuddySearchRadius, &s.BuddyBonus)
	clampUnit(&s.Chance)
	clampUnit(&s.ContinueChance)

	f := &cfg.Flee
	clampNonNegativeInts(&f.DurationTicks, &f.CooldownTicks, &f.GroupMaxAllies, &f.RepathIntervalTicks)
	clampNonNegativeFloats(&f.SafetyRadius, &f.GroupRadius, &f.RunSpeed)
	clampUnit(&f.LowHealthFraction)

	wd := &cfg.Wander
	if wd.MaxRadius < wd.MinRadius {
		wd.MaxRadius = wd.MinRadius
	}
	if wd.IntervalMaxTicks < wd.IntervalMinTicks {
		wd.IntervalMaxTicks = wd.IntervalMinTicks
	}
	clampNonNegativeFloats(&wd.WalkSpeed, &wd.RunSpeed, &wd.MinRadius, &wd.RunDistance, &wd.HomeRadius)
	clampNonNegativeInts(&wd.IntervalMinTicks, &wd.SampleCandidates)
	clampUnit(&wd.RunChance)

	sh := &cfg.Shelter
	clampNonNegativeInts(&sh.Attempts, &sh.MinCoverDepth, &sh.MaxCrowd, &sh.SettleTicks, &sh.PeekTicks, &sh.PathBudget)
	clampNonNegativeFloats(&sh.SearchRadius, &sh.CrowdRadius)
	clampUnit(&sh.PeekChance)

	sw := &cfg.Swim
	clampNonNegativeInts(&sw.MaxTicks, &sw.ExitSearchRadius)
	clampUnit(&sw.FunChance)

	c := &cfg.Combat
	clampNonNegativeInts(&c.SpecialAfterHits, &c.CooldownTicks, &c.AngerTicks)
	clampNonNegativeFloats(&c.AcquireRadius)
	clampUnit(&c.SpecialChance)
	normalizeAttack(&c.Normal)
	normalizeAttack(&c.Special)
	return nil
}

func normalizeAttack(a *AttackParams) {
	clampNonNegativeFloats(&a.Damage, &a.TriggerRange, &a.HitRange)
	clampNonNegativeInts(&a.WindupTicks, &a.AnimTicks, &a.MoveStartTick)
	if a.AnimTicks < a.WindupTicks {
		a.AnimTicks = a.WindupTicks
	}
	if a.MoveStopTick < a.MoveStartTick {
		a.MoveStopTick = a.MoveStartTick
	}
}

func clampNonNegativeInts(values ...*int) {
	for _, v := range values {
		if *v < 0 {
			*v = 0
		}
	}
}

func clampNonNegativeFloats(values ...*float64) {
	for _, v := range values {
		if *v < 0 {
			*v = 0
		}
	}
}

func clampUnit(v *float64) {
	if *v < 0 {
		*v = 0
	}
	if *v > 1 {
		*v = 1
	}
}
