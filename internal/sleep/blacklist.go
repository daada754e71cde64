package sleep

import (
	"sort"

	"catoworld/server/internal/world"
)

type blacklistEntry struct {
	strikes        int
	lastStrikeTick uint64
}

// Blacklist tracks failed positions shared across searches. Strikes only
// decrease through time-based decay; positions at or above the strike
// threshold are excluded from candidate selection until they decay back
// below it. The map is capacity-bounded with batch eviction so a long-lived
// mob cannot grow it without bound.
type Blacklist struct {
	entries    map[uint64]blacklistEntry
	maxStrikes int
	decayTicks int
	capacity   int
}

func NewBlacklist(maxStrikes, decayTicks, capacity int) *Blacklist {
	if maxStrikes <= 0 {
		maxStrikes = 3
	}
	if decayTicks <= 0 {
		decayTicks = 1200
	}
	if capacity <= 0 {
		capacity = 64
	}
	return &Blacklist{
		entries:    make(map[uint64]blacklistEntry),
		maxStrikes: maxStrikes,
		decayTicks: decayTicks,
		capacity:   capacity,
	}
}

// Strike records one failure against pos at the given tick.
func (b *Blacklist) Strike(pos world.BlockPos, tick uint64) int {
	if b == nil {
		return 0
	}
	key := pos.Key()
	entry, ok := b.entries[key]
	if ok {
		entry.strikes = b.decayedStrikes(entry, tick) + 1
	} else {
		entry.strikes = 1
	}
	entry.lastStrikeTick = tick
	b.entries[key] = entry
	if len(b.entries) > b.capacity {
		b.evictBatch(tick)
	}
	return entry.strikes
}

// Strikes returns the decayed strike count for pos.
func (b *Blacklist) Strikes(pos world.BlockPos, tick uint64) int {
	if b == nil {
		return 0
	}
	entry, ok := b.entries[pos.Key()]
	if !ok {
		return 0
	}
	return b.decayedStrikes(entry, tick)
}

// Banned reports whether pos has accumulated enough strikes to be excluded
// from candidate selection.
func (b *Blacklist) Banned(pos world.BlockPos, tick uint64) bool {
	if b == nil {
		return false
	}
	return b.Strikes(pos, tick) >= b.maxStrikes
}

func (b *Blacklist) decayedStrikes(entry blacklistEntry, tick uint64) int {
	if tick <= entry.lastStrikeTick {
		return entry.strikes
	}
	elapsed := tick - entry.lastStrikeTick
	decayed := entry.strikes - int(elapsed/uint64(b.decayTicks))
	if decayed < 0 {
		return 0
	}
	return decayed
}

// evictBatch clears fully-decayed entries in one sweep; if that is not
// enough it drops the stalest half so eviction stays amortized instead of
// firing on every insert.
func (b *Blacklist) evictBatch(tick uint64) {
	for key, entry := range b.entries {
		if b.decayedStrikes(entry, tick) == 0 {
			delete(b.entries, key)
		}
	}
	if len(b.entries) <= b.capacity {
		return
	}
	type aged struct {
		key  uint64
		tick uint64
	}
	ordered := make([]aged, 0, len(b.entries))
	for key, entry := range b.entries {
		ordered = append(ordered, aged{key: key, tick: entry.lastStrikeTick})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].tick < ordered[j].tick })
	for i := 0; i < len(ordered)/2; i++ {
		delete(b.entries, ordered[i].key)
	}
}

func (b *Blacklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
