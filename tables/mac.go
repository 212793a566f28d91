package tables

import (
	"sync"

	"github.com/nettopo/simnet/addr"
)

// MACEntry maps a MAC address to the interface it was last learned on.
type MACEntry struct {
	MAC    addr.MAC
	IfName string
}

// MACTable is a node's learning-bridge forwarding table, keyed uniquely by
// MAC address. Unbounded; aging is out of scope.
type MACTable struct {
	mu      sync.RWMutex
	entries map[addr.MAC]MACEntry
}

// NewMACTable returns an empty MAC table.
func NewMACTable() *MACTable {
	return &MACTable{entries: make(map[addr.MAC]MACEntry)}
}

// Learn inserts or replaces the entry for mac.
func (t *MACTable) Learn(mac addr.MAC, ifName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[mac] = MACEntry{MAC: mac, IfName: ifName}
}

// Lookup returns the egress interface learned for mac, if any.
func (t *MACTable) Lookup(mac addr.MAC) (MACEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[mac]
	return e, ok
}

// Entries returns a snapshot of all learned entries, in no particular order.
func (t *MACTable) Entries() []MACEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]MACEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}

// Len returns the number of entries currently learned.
func (t *MACTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
