package species

// Temperament classifies how a species relates to other actors.
type Temperament string

const (
	TemperamentPassive Temperament = "passive"
	TemperamentNeutral Temperament = "neutral"
	TemperamentHostile Temperament = "hostile"
)

func (t Temperament) Valid() bool {
	switch t {
	case TemperamentPassive, TemperamentNeutral, TemperamentHostile:
		return true
	}
	return false
}

// Config is the immutable per-species tuning record. It is authored as JSON,
// compiled once by the library, and read-only afterwards. Numeric knobs are
// still clamped defensively at the point of use; nothing in the hot path
// assumes a stored value is sane.
type Config struct {
	Name        string      `json:"name" jsonschema:"title=Species name,pattern=^[a-z0-9_-]+$,description=Identifier used by spawning and ally/buddy filters"`
	Temperament Temperament `json:"temperament" jsonschema:"title=Temperament,enum=passive,enum=neutral,enum=hostile"`
	MaxHealth   float64     `json:"max_health" jsonschema:"minimum=0"`

	Combat  CombatTuning   `json:"combat"`
	Sleep   SleepTuning    `json:"sleep"`
	Flee    FleeTuning     `json:"flee"`
	Wander  WanderTuning   `json:"wander"`
	Shelter ShelterTuning  `json:"shelter"`
	Swim    SwimTuning     `json:"swim"`
	Surface SurfaceWeights `json:"surface"`
}

// AttackParams tunes one attack kind.
type AttackParams struct {
	Damage        float64 `json:"damage" jsonschema:"minimum=0"`
	TriggerRange  float64 `json:"trigger_range" jsonschema:"description=Max distance at which the attack may start"`
	HitRange      float64 `json:"hit_range" jsonschema:"description=Distance re-checked at the hit moment"`
	WindupTicks   int     `json:"windup_ticks" jsonschema:"description=Ticks from start until damage lands"`
	AnimTicks     int     `json:"anim_ticks" jsonschema:"description=Total animation length in ticks"`
	MoveStartTick int     `json:"move_start_tick" jsonschema:"description=First animation tick movement is allowed"`
	MoveStopTick  int     `json:"move_stop_tick" jsonschema:"description=Last animation tick movement is allowed"`
}

type CombatTuning struct {
	Normal           AttackParams `json:"normal"`
	Special          AttackParams `json:"special"`
	SpecialEnabled   bool         `json:"special_enabled"`
	SpecialAfterHits int          `json:"special_after_hits" jsonschema:"description=Normal hits required before the special unlocks"`
	SpecialChance    float64      `json:"special_chance" jsonschema:"minimum=0,maximum=1"`
	CooldownTicks    int          `json:"cooldown_ticks"`
	AngerTicks       int          `json:"anger_ticks" jsonschema:"description=How long retaliation anger lasts"`
	AcquireRadius    float64      `json:"acquire_radius" jsonschema:"description=Hostile target scan radius"`
}

type SleepTuning struct {
	Enabled              bool     `json:"enabled"`
	AtDay                bool     `json:"at_day"`
	AtNight              bool     `json:"at_night"`
	MinTicks             int      `json:"min_ticks"`
	MaxTicks             int      `json:"max_ticks"`
	AttemptIntervalTicks int      `json:"attempt_interval_ticks" jsonschema:"description=Minimum spacing between desire rolls"`
	Chance               float64  `json:"chance" jsonschema:"minimum=0,maximum=1"`
	ContinueChance       float64  `json:"continue_chance" jsonschema:"minimum=0,maximum=1,description=Chance to keep sleeping when the duration timer expires"`
	DesireWindowTicks    int      `json:"desire_window_ticks"`
	RequiresRoof         bool     `json:"requires_roof"`
	RequireSturdyGround  bool     `json:"require_sturdy_ground"`
	InWaterAllowed       bool     `json:"in_water_allowed"`
	Headroom             int      `json:"headroom"`
	RoofScanHeight       int      `json:"roof_scan_height"`
	MinRadius            float64  `json:"min_radius"`
	MaxRadius            float64  `json:"max_radius"`
	RadiusScale          float64  `json:"radius_scale"`
	SearchAttempts       int      `json:"search_attempts"`
	PathBudget           int      `json:"path_budget" jsonschema:"description=Reachability queries allowed per search"`
	SearchTimeoutTicks   int      `json:"search_timeout_ticks"`
	RetryCooldownTicks   int      `json:"retry_cooldown_ticks"`
	BuddySpecies         []string `json:"buddy_species,omitempty"`
	BuddySearchRadius    float64  `json:"buddy_search_radius"`
	BuddyRingRadius      int      `json:"buddy_ring_radius"`
	BuddyBonus           float64  `json:"buddy_bonus" jsonschema:"description=Score bonus per sleeping buddy near a candidate"`
	MemorySize           int      `json:"memory_size"`
	MemoryMaxStrikes     int      `json:"memory_max_strikes"`
	BlacklistMaxStrikes  int      `json:"blacklist_max_strikes"`
	BlacklistDecayTicks  int      `json:"blacklist_decay_ticks"`
	BlacklistCapacity    int      `json:"blacklist_capacity"`
	WakeOnDamage         bool     `json:"wake_on_damage"`
	WakeInSunlight       bool     `json:"wake_in_sunlight"`
	WakeUnderwater       bool     `json:"wake_underwater"`
	WakeTouchingWater    bool     `json:"wake_touching_water"`
	WakeAirborne         bool     `json:"wake_airborne"`
	WindowGraceMinTicks  int      `json:"window_grace_min_ticks"`
	WindowGraceMaxTicks  int      `json:"window_grace_max_ticks"`
}

type FleeTuning struct {
	Enabled             bool     `json:"enabled"`
	OnHurt              bool     `json:"on_hurt"`
	DurationTicks       int      `json:"duration_ticks"`
	CooldownTicks       int      `json:"cooldown_ticks"`
	LowHealthFraction   float64  `json:"low_health_fraction" jsonschema:"minimum=0,maximum=1"`
	SafetyRadius        float64  `json:"safety_radius"`
	GroupRadius         float64  `json:"group_radius"`
	GroupMaxAllies      int      `json:"group_max_allies"`
	AllySpecies         []string `json:"ally_species,omitempty"`
	RepathIntervalTicks int      `json:"repath_interval_ticks"`
	RunSpeed            float64  `json:"run_speed"`
}

type WanderTuning struct {
	WalkSpeed        float64 `json:"walk_speed"`
	RunSpeed         float64 `json:"run_speed"`
	RunChance        float64 `json:"run_chance" jsonschema:"minimum=0,maximum=1"`
	RunDistance      float64 `json:"run_distance" jsonschema:"description=Path length beyond which running is considered"`
	MinRadius        float64 `json:"min_radius"`
	MaxRadius        float64 `json:"max_radius"`
	IntervalMinTicks int     `json:"interval_min_ticks"`
	IntervalMaxTicks int     `json:"interval_max_ticks"`
	HomeRadius       float64 `json:"home_radius" jsonschema:"description=Zero disables bounded roaming"`
	SampleCandidates int     `json:"sample_candidates"`
}

type ShelterTuning struct {
	Enabled       bool    `json:"enabled"`
	SearchRadius  float64 `json:"search_radius"`
	Attempts      int     `json:"attempts"`
	MinCoverDepth int     `json:"min_cover_depth"`
	CrowdRadius   float64 `json:"crowd_radius"`
	MaxCrowd      int     `json:"max_crowd"`
	SettleTicks   int     `json:"settle_ticks"`
	PeekChance    float64 `json:"peek_chance" jsonschema:"minimum=0,maximum=1"`
	PeekTicks     int     `json:"peek_ticks"`
	PathBudget    int     `json:"path_budget"`
}

type SwimTuning struct {
	FunEnabled       bool    `json:"fun_enabled"`
	FunChance        float64 `json:"fun_chance" jsonschema:"minimum=0,maximum=1"`
	MaxTicks         int     `json:"max_ticks"`
	ExitSearchRadius int     `json:"exit_search_radius"`
	DislikesWater    bool    `json:"dislikes_water" jsonschema:"description=Forces an exit whenever the mob ends up in water"`
}

// SurfaceWeights bias wander candidate scoring by ground type.
type SurfaceWeights struct {
	Water float64 `json:"water"`
	Soft  float64 `json:"soft"`
	Hard  float64 `json:"hard"`
}

// BuddyAllowed reports whether the named species qualifies as a sleep buddy.
func (s SleepTuning) BuddyAllowed(name string) bool {
	for _, allowed := range s.BuddySpecies {
		if allowed == name {
			return true
		}
	}
	return false
}

// AllyAllowed reports whether the named species qualifies for group flee.
func (f FleeTuning) AllyAllowed(name string) bool {
	for _, allowed := range f.AllySpecies {
		if allowed == name {
			return true
		}
	}
	return false
}

// SleepsNow reports whether the time-of-day window matches.
func (s SleepTuning) SleepsNow(isDay bool) bool {
	if isDay {
		return s.AtDay
	}
	return s.AtNight
}
