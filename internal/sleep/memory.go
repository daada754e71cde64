// Package sleep implements the sleep-spot search pipeline: per-mob memory of
// good spots, a strike-counting blacklist of bad ones, pure scoring helpers,
// and the budgeted multi-pass finder that ties them together.
package sleep

import "catoworld/server/internal/world"

// MemoryEntry is one remembered sleep location with its failure count.
type MemoryEntry struct {
	Pos     world.BlockPos
	Strikes int
}

// Memory is a bounded most-recently-used list of spots the mob successfully
// slept at. Remembering an existing spot moves it to the front and clears
// its strikes; overflowing evicts the oldest entry.
type Memory struct {
	entries    []MemoryEntry // index 0 is oldest, last is most recent
	size       int
	maxStrikes int
}

func NewMemory(size, maxStrikes int) *Memory {
	if size < 0 {
		size = 0
	}
	if maxStrikes <= 0 {
		maxStrikes = 1
	}
	return &Memory{
		entries:    make([]MemoryEntry, 0, size),
		size:       size,
		maxStrikes: maxStrikes,
	}
}

func (m *Memory) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Remember records a successful sleep at pos.
func (m *Memory) Remember(pos world.BlockPos) {
	if m == nil || m.size == 0 {
		return
	}
	for i, e := range m.entries {
		if e.Pos == pos {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			m.entries = append(m.entries, MemoryEntry{Pos: pos})
			return
		}
	}
	m.entries = append(m.entries, MemoryEntry{Pos: pos})
	if len(m.entries) > m.size {
		m.entries = m.entries[len(m.entries)-m.size:]
	}
}

// Strike counts one failed re-validation against pos. The entry is evicted
// once it reaches the configured strike limit.
func (m *Memory) Strike(pos world.BlockPos) (strikes int, evicted bool) {
	if m == nil {
		return 0, false
	}
	for i := range m.entries {
		if m.entries[i].Pos != pos {
			continue
		}
		m.entries[i].Strikes++
		strikes = m.entries[i].Strikes
		if strikes >= m.maxStrikes {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return strikes, true
		}
		return strikes, false
	}
	return 0, false
}

// StrikesAt reports the strike count recorded against pos, zero if the spot
// is not remembered.
func (m *Memory) StrikesAt(pos world.BlockPos) int {
	if m == nil {
		return 0
	}
	for _, e := range m.entries {
		if e.Pos == pos {
			return e.Strikes
		}
	}
	return 0
}

// Entries returns the remembered spots, most recent first.
func (m *Memory) Entries() []MemoryEntry {
	if m == nil || len(m.entries) == 0 {
		return nil
	}
	out := make([]MemoryEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
	}
	return out
}
