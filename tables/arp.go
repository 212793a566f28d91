// Package tables implements the per-node shared state: the ARP cache, the
// MAC-learning table, and the routing table. Each is protected by its own
// RWMutex since the receiver worker reads concurrently with CLI/operator
// writers.
package tables

import (
	"sync"

	"github.com/nettopo/simnet/addr"
)

// ARPEntry maps an IP address to the MAC address reachable through a named
// egress interface.
type ARPEntry struct {
	IP     addr.IP
	MAC    addr.MAC
	IfName string
}

// ARPCache is the per-node IP-to-MAC cache, keyed uniquely by IP.
type ARPCache struct {
	mu      sync.RWMutex
	entries map[addr.IP]ARPEntry
}

// NewARPCache returns an empty ARP cache.
func NewARPCache() *ARPCache {
	return &ARPCache{entries: make(map[addr.IP]ARPEntry)}
}

// Update inserts or replaces the entry for ip. Applying the same (ip, mac,
// ifName) twice leaves the cache unchanged (idempotent update).
func (c *ARPCache) Update(ip addr.IP, mac addr.MAC, ifName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ip] = ARPEntry{IP: ip, MAC: mac, IfName: ifName}
}

// Lookup returns the entry for ip, if any.
func (c *ARPCache) Lookup(ip addr.IP) (ARPEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[ip]
	return e, ok
}

// Delete removes the entry for ip, if present.
func (c *ARPCache) Delete(ip addr.IP) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ip)
}

// Entries returns a snapshot of all cache entries, in no particular order.
func (c *ARPCache) Entries() []ARPEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ARPEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}

// Len returns the number of entries currently cached.
func (c *ARPCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
