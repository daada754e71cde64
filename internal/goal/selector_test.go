package goal

import "testing"

type scriptGoal struct {
	name      string
	flags     Flag
	canUse    bool
	keepGoing bool

	starts int
	stops  int
	ticks  int
}

func (g *scriptGoal) Name() string                  { return g.name }
func (g *scriptGoal) Flags() Flag                   { return g.flags }
func (g *scriptGoal) CanUse(Context) bool           { return g.canUse }
func (g *scriptGoal) CanContinueToUse(Context) bool { return g.keepGoing }
func (g *scriptGoal) Start(Context)                 { g.starts++ }
func (g *scriptGoal) Stop(Context)                  { g.stops++ }
func (g *scriptGoal) Tick(Context)                  { g.ticks++ }

func TestSelectorStartsEligibleGoal(t *testing.T) {
	s := NewSelector()
	g := &scriptGoal{name: "walk", flags: FlagMove, canUse: true, keepGoing: true}
	s.Add(3, g)

	s.Update(Context{})
	s.Update(Context{})

	if g.starts != 1 {
		t.Fatalf("starts = %d, want 1", g.starts)
	}
	if g.ticks != 2 {
		t.Fatalf("ticks = %d, want 2", g.ticks)
	}
	if g.stops != 0 {
		t.Fatalf("stops = %d, want 0", g.stops)
	}
}

func TestSelectorStrongerGoalPreempts(t *testing.T) {
	s := NewSelector()
	weak := &scriptGoal{name: "weak", flags: FlagMove, canUse: true, keepGoing: true}
	strong := &scriptGoal{name: "strong", flags: FlagMove | FlagLook, keepGoing: true}
	s.Add(1, strong)
	s.Add(5, weak)

	s.Update(Context{})
	if weak.starts != 1 || strong.starts != 0 {
		t.Fatalf("expected only weak running, got weak=%d strong=%d", weak.starts, strong.starts)
	}

	strong.canUse = true
	s.Update(Context{})

	if weak.stops != 1 {
		t.Fatalf("weak stops = %d, want 1", weak.stops)
	}
	if strong.starts != 1 {
		t.Fatalf("strong starts = %d, want 1", strong.starts)
	}
	if weak.ticks != 1 {
		t.Fatalf("weak kept ticking after preemption: ticks = %d", weak.ticks)
	}
}

func TestSelectorWeakerGoalBlockedByRunningStronger(t *testing.T) {
	s := NewSelector()
	strong := &scriptGoal{name: "strong", flags: FlagMove, canUse: true, keepGoing: true}
	weak := &scriptGoal{name: "weak", flags: FlagMove, canUse: true, keepGoing: true}
	s.Add(1, strong)
	s.Add(5, weak)

	s.Update(Context{})
	s.Update(Context{})

	if strong.starts != 1 {
		t.Fatalf("strong starts = %d, want 1", strong.starts)
	}
	if weak.starts != 0 {
		t.Fatalf("weak started despite conflicting stronger goal")
	}
}

func TestSelectorDisjointFlagsRunTogether(t *testing.T) {
	s := NewSelector()
	mover := &scriptGoal{name: "mover", flags: FlagMove, canUse: true, keepGoing: true}
	looker := &scriptGoal{name: "looker", flags: FlagLook, canUse: true, keepGoing: true}
	s.Add(1, mover)
	s.Add(5, looker)

	s.Update(Context{})

	if mover.starts != 1 || looker.starts != 1 {
		t.Fatalf("expected both goals running, got mover=%d looker=%d", mover.starts, looker.starts)
	}
}

func TestSelectorStopsWhenGoalFinishes(t *testing.T) {
	s := NewSelector()
	g := &scriptGoal{name: "walk", flags: FlagMove, canUse: true, keepGoing: true}
	s.Add(3, g)

	s.Update(Context{})
	g.canUse = false
	g.keepGoing = false
	s.Update(Context{})
	s.Update(Context{})

	if g.stops != 1 {
		t.Fatalf("stops = %d, want exactly 1", g.stops)
	}
}

func TestSelectorStopAll(t *testing.T) {
	s := NewSelector()
	a := &scriptGoal{name: "a", flags: FlagMove, canUse: true, keepGoing: true}
	b := &scriptGoal{name: "b", flags: FlagLook, canUse: true, keepGoing: true}
	s.Add(1, a)
	s.Add(2, b)

	s.Update(Context{})
	s.StopAll(Context{})

	if a.stops != 1 || b.stops != 1 {
		t.Fatalf("stops = %d/%d, want 1/1", a.stops, b.stops)
	}
	if _, ok := s.Holder(FlagMove); ok {
		t.Fatalf("holder reported after StopAll")
	}
}

func TestSelectorHolder(t *testing.T) {
	s := NewSelector()
	g := &scriptGoal{name: "walk", flags: FlagMove | FlagJump, canUse: true, keepGoing: true}
	s.Add(3, g)

	if _, ok := s.Holder(FlagMove); ok {
		t.Fatalf("holder reported before any update")
	}
	s.Update(Context{})

	got, ok := s.Holder(FlagJump)
	if !ok || got != g {
		t.Fatalf("Holder(FlagJump) = %v, %v", got, ok)
	}
	if _, ok := s.Holder(FlagTarget); ok {
		t.Fatalf("unexpected holder for unclaimed flag")
	}
}

func TestSelectorEnumerate(t *testing.T) {
	s := NewSelector()
	s.Add(5, &scriptGoal{name: "weak", flags: FlagMove, canUse: true, keepGoing: true})
	s.Add(1, &scriptGoal{name: "strong", flags: FlagLook})

	s.Update(Context{})

	statuses := s.Enumerate()
	if len(statuses) != 2 {
		t.Fatalf("len = %d, want 2", len(statuses))
	}
	if statuses[0].Name != "strong" || statuses[1].Name != "weak" {
		t.Fatalf("unexpected order: %q, %q", statuses[0].Name, statuses[1].Name)
	}
	if statuses[0].Running {
		t.Fatalf("strong reported running while CanUse is false")
	}
	if !statuses[1].Running {
		t.Fatalf("weak not reported running")
	}
}

func TestSelectorNilSafe(t *testing.T) {
	var s *Selector
	s.Add(1, &scriptGoal{})
	s.Update(Context{})
	s.StopAll(Context{})
	if got := s.Enumerate(); got != nil {
		t.Fatalf("Enumerate on nil = %v", got)
	}
	if _, ok := s.Holder(FlagMove); ok {
		t.Fatalf("Holder on nil reported a goal")
	}
}
