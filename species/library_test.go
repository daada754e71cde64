package species

import "testing"

func TestLoadEmbeddedConfigs(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"boar", "lynx", "marmot", "otter"}
	got := lib.Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Fatalf("Names = %v, want %v", got, want)
		}
		cfg := lib.ByName(name)
		if cfg == nil {
			t.Fatalf("ByName(%q) = nil", name)
		}
		if cfg.MaxHealth <= 0 {
			t.Fatalf("%s: MaxHealth %v not normalized", name, cfg.MaxHealth)
		}
	}
	if lib.ByName("dragon") != nil {
		t.Fatalf("unknown species resolved")
	}
}

func TestCompileNormalizesKnobs(t *testing.T) {
	cfg := &Config{
		Name:        "testling",
		Temperament: TemperamentPassive,
		Sleep: SleepTuning{
			MinTicks: 100,
			MaxTicks: 50, // inverted, must be lifted to MinTicks
			Chance:   1.7,
		},
		Combat: CombatTuning{
			Normal: AttackParams{WindupTicks: 8, AnimTicks: 3},
		},
		Wander: WanderTuning{WalkSpeed: -1},
	}
	if err := compile(cfg); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if cfg.MaxHealth != 10 {
		t.Fatalf("MaxHealth = %v, want default 10", cfg.MaxHealth)
	}
	if cfg.Sleep.MaxTicks != 100 {
		t.Fatalf("inverted sleep range not lifted: %d", cfg.Sleep.MaxTicks)
	}
	if cfg.Sleep.Chance != 1 {
		t.Fatalf("chance %v not clamped to 1", cfg.Sleep.Chance)
	}
	if cfg.Combat.Normal.AnimTicks != 8 {
		t.Fatalf("anim shorter than windup not lifted: %d", cfg.Combat.Normal.AnimTicks)
	}
	if cfg.Wander.WalkSpeed != 0 {
		t.Fatalf("negative speed not clamped: %v", cfg.Wander.WalkSpeed)
	}
}

func TestCompileRejectsBadConfigs(t *testing.T) {
	if err := compile(&Config{Temperament: TemperamentNeutral}); err == nil {
		t.Fatalf("nameless config accepted")
	}
	if err := compile(&Config{Name: "x", Temperament: "grumpy"}); err == nil {
		t.Fatalf("unknown temperament accepted")
	}
}
