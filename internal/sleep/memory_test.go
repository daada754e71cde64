package sleep

import (
	"testing"

	"catoworld/server/internal/world"
)

func TestMemoryRemembersMostRecentFirst(t *testing.T) {
	m := NewMemory(3, 3)
	a := world.BlockPos{X: 1, Y: 4, Z: 1}
	b := world.BlockPos{X: 2, Y: 4, Z: 2}
	c := world.BlockPos{X: 3, Y: 4, Z: 3}

	m.Remember(a)
	m.Remember(b)
	m.Remember(c)

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Pos != c || entries[2].Pos != a {
		t.Fatalf("expected newest-first order, got %+v", entries)
	}
}

func TestMemoryBoundedEviction(t *testing.T) {
	m := NewMemory(2, 3)
	a := world.BlockPos{X: 1, Y: 4, Z: 1}
	b := world.BlockPos{X: 2, Y: 4, Z: 2}
	c := world.BlockPos{X: 3, Y: 4, Z: 3}

	m.Remember(a)
	m.Remember(b)
	m.Remember(c)

	if m.Len() != 2 {
		t.Fatalf("expected capacity bound of 2, got %d", m.Len())
	}
	for _, entry := range m.Entries() {
		if entry.Pos == a {
			t.Fatalf("oldest entry should have been evicted")
		}
	}
}

func TestMemoryRememberResetsStrikes(t *testing.T) {
	m := NewMemory(4, 3)
	a := world.BlockPos{X: 5, Y: 10, Z: 5}

	m.Remember(a)
	m.Strike(a)
	m.Strike(a)
	if got := m.StrikesAt(a); got != 2 {
		t.Fatalf("expected 2 strikes, got %d", got)
	}

	m.Remember(a)
	if got := m.StrikesAt(a); got != 0 {
		t.Fatalf("re-remembering should reset strikes, got %d", got)
	}
}

func TestMemoryStrikeEvictsAtThreshold(t *testing.T) {
	m := NewMemory(4, 2)
	a := world.BlockPos{X: 5, Y: 10, Z: 5}

	m.Remember(a)
	if _, evicted := m.Strike(a); evicted {
		t.Fatalf("first strike should not evict")
	}
	if _, evicted := m.Strike(a); !evicted {
		t.Fatalf("strike at threshold should evict")
	}
	if m.Len() != 0 {
		t.Fatalf("evicted entry still present")
	}
	if got := m.StrikesAt(a); got != 0 {
		t.Fatalf("unknown position should report 0 strikes, got %d", got)
	}
}

func TestMemoryNilReceiverSafe(t *testing.T) {
	var m *Memory
	m.Remember(world.BlockPos{X: 1, Y: 1, Z: 1})
	if m.Len() != 0 || m.StrikesAt(world.BlockPos{}) != 0 || m.Entries() != nil {
		t.Fatalf("nil memory should behave as empty")
	}
}
