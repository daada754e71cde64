package goal

import "sort"

type entry struct {
	priority int
	goal     Goal
	running  bool
}

// Selector arbitrates a set of prioritized goals. Lower priority numbers win
// conflicts. A goal may start only when every running goal it shares a flag
// with has a strictly larger (weaker) priority; those goals are stopped
// first.
type Selector struct {
	entries []*entry
}

func NewSelector() *Selector {
	return &Selector{}
}

func (s *Selector) Add(priority int, g Goal) {
	if s == nil || g == nil {
		return
	}
	s.entries = append(s.entries, &entry{priority: priority, goal: g})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].priority < s.entries[j].priority
	})
}

// Update runs one arbitration round: stop stale goals, start newly eligible
// ones, tick everything still running.
func (s *Selector) Update(ctx Context) {
	if s == nil {
		return
	}

	for _, e := range s.entries {
		if e.running && !e.goal.CanContinueToUse(ctx) {
			e.running = false
			e.goal.Stop(ctx)
		}
	}

	for _, e := range s.entries {
		if e.running {
			continue
		}
		if !e.goal.CanUse(ctx) {
			continue
		}
		if !s.preempt(ctx, e) {
			continue
		}
		e.running = true
		e.goal.Start(ctx)
	}

	for _, e := range s.entries {
		if e.running {
			e.goal.Tick(ctx)
		}
	}
}

// preempt stops every weaker running goal conflicting with the candidate and
// reports whether the candidate may start.
func (s *Selector) preempt(ctx Context, candidate *entry) bool {
	flags := candidate.goal.Flags()
	for _, e := range s.entries {
		if !e.running || e == candidate {
			continue
		}
		if !e.goal.Flags().Overlaps(flags) {
			continue
		}
		if e.priority <= candidate.priority {
			return false
		}
	}
	for _, e := range s.entries {
		if !e.running || e == candidate {
			continue
		}
		if e.goal.Flags().Overlaps(flags) {
			e.running = false
			e.goal.Stop(ctx)
		}
	}
	return true
}

// StopAll force-stops every running goal, used when the owning mob despawns.
func (s *Selector) StopAll(ctx Context) {
	if s == nil {
		return
	}
	for _, e := range s.entries {
		if e.running {
			e.running = false
			e.goal.Stop(ctx)
		}
	}
}

// Holder returns the running goal currently claiming the flag, if any.
func (s *Selector) Holder(flag Flag) (Goal, bool) {
	if s == nil {
		return nil, false
	}
	for _, e := range s.entries {
		if e.running && e.goal.Flags().Has(flag) {
			return e.goal, true
		}
	}
	return nil, false
}

// Status describes one registered goal for debug introspection.
type Status struct {
	Name     string
	Priority int
	Flags    Flag
	Running  bool
}

// Enumerate reports every registered goal in priority order. This is the
// supported introspection surface; nothing reflects over selector internals.
func (s *Selector) Enumerate() []Status {
	if s == nil {
		return nil
	}
	statuses := make([]Status, 0, len(s.entries))
	for _, e := range s.entries {
		statuses = append(statuses, Status{
			Name:     e.goal.Name(),
			Priority: e.priority,
			Flags:    e.goal.Flags(),
			Running:  e.running,
		})
	}
	return statuses
}
