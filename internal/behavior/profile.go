package behavior

import (
	"catoworld/server/internal/goal"
	"catoworld/server/species"
)

// Action goal priorities, lower wins. Target goals use their own scale.
const (
	PrioritySleepLock = iota + 1
	PriorityFlee
	PriorityAttack
	PrioritySleepSearch
	PriorityShelter
	PrioritySwim
	PriorityWander
)

const (
	TargetPriorityHurtBy = iota + 1
	TargetPriorityNearestThreat
)

// GoalSpec is one row of a priority profile: where the goal sorts, whether
// this species carries it, and how to build it.
type GoalSpec struct {
	Priority int
	Enabled  func(cfg *species.Config) bool
	Build    func(m Mob) goal.Goal
}

// PriorityProfile is the declarative wiring table for one temperament. The
// base mob consults it exactly once at construction; nothing re-evaluates
// temperament afterwards.
type PriorityProfile struct {
	Actions []GoalSpec
	Targets []GoalSpec
}

func canMelee(cfg *species.Config) bool {
	return cfg.Temperament != species.TemperamentPassive && cfg.Combat.Normal.Damage > 0
}

var baseActions = []GoalSpec{
	{
		Priority: PrioritySleepLock,
		Enabled:  func(cfg *species.Config) bool { return cfg.Sleep.Enabled },
		Build:    func(m Mob) goal.Goal { return NewSleepLockGoal(m) },
	},
	{
		Priority: PriorityFlee,
		Enabled:  func(cfg *species.Config) bool { return cfg.Flee.Enabled },
		Build:    func(m Mob) goal.Goal { return NewFleeGoal(m) },
	},
	{
		Priority: PriorityAttack,
		Enabled:  canMelee,
		Build:    func(m Mob) goal.Goal { return NewMeleeAttackGoal(m) },
	},
	{
		Priority: PrioritySleepSearch,
		Enabled:  func(cfg *species.Config) bool { return cfg.Sleep.Enabled },
		Build:    func(m Mob) goal.Goal { return NewSleepSearchGoal(m) },
	},
	{
		Priority: PriorityShelter,
		Enabled:  func(cfg *species.Config) bool { return cfg.Shelter.Enabled },
		Build:    func(m Mob) goal.Goal { return NewRainShelterGoal(m) },
	},
	{
		Priority: PrioritySwim,
		Enabled:  func(cfg *species.Config) bool { return cfg.Swim.FunEnabled || cfg.Swim.DislikesWater },
		Build:    func(m Mob) goal.Goal { return NewFunSwimGoal(m) },
	},
	{
		Priority: PriorityWander,
		Enabled:  func(*species.Config) bool { return true },
		Build:    func(m Mob) goal.Goal { return NewWanderGoal(m) },
	},
}

var baseTargets = []GoalSpec{
	{
		Priority: TargetPriorityHurtBy,
		Enabled:  canMelee,
		Build:    func(m Mob) goal.Goal { return NewHurtByTargetGoal(m) },
	},
	{
		Priority: TargetPriorityNearestThreat,
		Enabled: func(cfg *species.Config) bool {
			return cfg.Temperament == species.TemperamentHostile && cfg.Combat.AcquireRadius > 0
		},
		Build: func(m Mob) goal.Goal { return NewNearestThreatGoal(m) },
	},
}

// ProfileFor returns the wiring table for the species' temperament. Rows a
// species disables are filtered here rather than at tick time.
func ProfileFor(cfg *species.Config) PriorityProfile {
	return PriorityProfile{
		Actions: filterSpecs(baseActions, cfg),
		Targets: filterSpecs(baseTargets, cfg),
	}
}

func filterSpecs(specs []GoalSpec, cfg *species.Config) []GoalSpec {
	out := make([]GoalSpec, 0, len(specs))
	for _, spec := range specs {
		if spec.Enabled == nil || spec.Enabled(cfg) {
			out = append(out, spec)
		}
	}
	return out
}

// Register builds every profiled goal against the mob and adds it to the
// matching selector.
func (p PriorityProfile) Register(m Mob, actions, targets *goal.Selector) {
	for _, spec := range p.Actions {
		actions.Add(spec.Priority, spec.Build(m))
	}
	for _, spec := range p.Targets {
		targets.Add(spec.Priority, spec.Build(m))
	}
}
