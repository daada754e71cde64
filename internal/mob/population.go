package mob

import (
	"sort"

	"catoworld/server/internal/sleep"
	"catoworld/server/internal/world"
)

// Population is the actor roster for one world. It answers the neighbor
// queries goals need (buddies, crowds, threats) and routes group-flee
// propagation. Single-threaded like everything else in the tick model.
type Population struct {
	actors map[string]Actor
	order  []string // stable iteration, insertion order
}

func NewPopulation() *Population {
	return &Population{actors: make(map[string]Actor)}
}

func (p *Population) Add(a Actor) {
	if p == nil || a == nil {
		return
	}
	if _, exists := p.actors[a.ID()]; !exists {
		p.order = append(p.order, a.ID())
	}
	p.actors[a.ID()] = a
}

func (p *Population) Remove(id string) {
	if p == nil {
		return
	}
	if _, exists := p.actors[id]; !exists {
		return
	}
	delete(p.actors, id)
	for i, got := range p.order {
		if got == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *Population) Get(id string) (Actor, bool) {
	if p == nil {
		return nil, false
	}
	a, ok := p.actors[id]
	return a, ok
}

// Actors returns the roster in insertion order. The returned slice is fresh
// per call; callers may not mutate the roster through it.
func (p *Population) Actors() []Actor {
	if p == nil {
		return nil
	}
	out := make([]Actor, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.actors[id])
	}
	return out
}

func (p *Population) Len() int {
	if p == nil {
		return 0
	}
	return len(p.actors)
}

// BuddiesNear implements the sleep search's neighbor query.
func (p *Population) BuddiesNear(selfID string, center world.BlockPos, radius float64) []sleep.Buddy {
	if p == nil || radius <= 0 {
		return nil
	}
	rSq := radius * radius
	var out []sleep.Buddy
	for _, id := range p.order {
		a := p.actors[id]
		if a.ID() == selfID || !a.Alive() {
			continue
		}
		m, ok := a.(*CatoMob)
		if !ok {
			continue
		}
		pos := a.Pos().Block()
		if pos.HorizontalDistSq(center) > rSq {
			continue
		}
		out = append(out, sleep.Buddy{
			ID:       a.ID(),
			Pos:      pos,
			Species:  a.SpeciesName(),
			Sleeping: m.Sleeping(),
		})
	}
	return out
}

// SleeperAt reports whether some mob already sleeps in the cell.
func (p *Population) SleeperAt(pos world.BlockPos) bool {
	if p == nil {
		return false
	}
	for _, id := range p.order {
		m, ok := p.actors[id].(*CatoMob)
		if !ok || !m.Sleeping() {
			continue
		}
		if m.SleepPos() == pos {
			return true
		}
	}
	return false
}

// CrowdNear counts living mobs of the given species within radius of
// center, excluding selfID. Shelter anti-crowding uses it.
func (p *Population) CrowdNear(selfID, speciesName string, center world.BlockPos, radius float64) int {
	if p == nil || radius <= 0 {
		return 0
	}
	rSq := radius * radius
	count := 0
	for _, id := range p.order {
		a := p.actors[id]
		if a.ID() == selfID || !a.Alive() || a.SpeciesName() != speciesName {
			continue
		}
		if a.Pos().Block().HorizontalDistSq(center) <= rSq {
			count++
		}
	}
	return count
}

// ThreatsNear lists living threat actors within radius of center, nearest
// first.
func (p *Population) ThreatsNear(selfID string, center world.Vec3, radius float64) []Actor {
	if p == nil || radius <= 0 {
		return nil
	}
	rSq := radius * radius
	var out []Actor
	for _, id := range p.order {
		a := p.actors[id]
		if a.ID() == selfID || !a.Alive() || !a.Threat() {
			continue
		}
		if a.Pos().HorizontalDistSq(center) <= rSq {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos().HorizontalDistSq(center) < out[j].Pos().HorizontalDistSq(center)
	})
	return out
}

// PropagateFlee starts fleeing on up to maxAllies qualifying neighbors of
// the frightened mob. Allies already fleeing do not count against the bound.
func (p *Population) PropagateFlee(from *CatoMob, threat Actor, radius float64, maxAllies int) {
	if p == nil || from == nil || radius <= 0 || maxAllies <= 0 {
		return
	}
	rSq := radius * radius
	center := from.Pos()
	started := 0
	for _, id := range p.order {
		if started >= maxAllies {
			return
		}
		ally, ok := p.actors[id].(*CatoMob)
		if !ok || ally == from || !ally.Alive() || ally.Fleeing() {
			continue
		}
		if !from.cfg.Flee.AllyAllowed(ally.SpeciesName()) {
			continue
		}
		if ally.Pos().HorizontalDistSq(center) > rSq {
			continue
		}
		if !from.w.LineOfSight(center, ally.Pos()) {
			continue
		}
		if ally.startFlee(threat, true, true, false) {
			started++
		}
	}
}
