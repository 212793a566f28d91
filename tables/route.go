package tables

import (
	"sync"

	"github.com/nettopo/simnet/addr"
)

// routeKey identifies a route by its normalised (dest, mask) pair.
type routeKey struct {
	dest addr.IP
	mask uint8
}

// Route is a single routing-table entry. IsDirect means the subnet is
// directly attached to one of the node's own interfaces; no gateway applies.
type Route struct {
	Dest     addr.IP
	Mask     uint8
	IsDirect bool
	Gateway  addr.IP
	IfName   string

	seq uint64
}

// RoutingTable is a node's IPv4 forwarding table, supporting longest-
// prefix-match lookup. Keys are unique per (normalised dest, mask).
type RoutingTable struct {
	mu     sync.RWMutex
	routes map[routeKey]Route
	seq    uint64
}

// NewRoutingTable returns an empty routing table.
func NewRoutingTable() *RoutingTable {
	return &RoutingTable{routes: make(map[routeKey]Route)}
}

// AddDirect inserts a directly-attached subnet route: no gateway, no
// egress interface recorded (the egress is the attached interface itself).
func (t *RoutingTable) AddDirect(subnet addr.IP, mask uint8) {
	t.insert(Route{
		Dest:     subnet.ApplyMask(mask),
		Mask:     mask,
		IsDirect: true,
	})
}

// Add inserts or replaces a gateway route. IsDirect is always false for
// routes added through this entry point.
func (t *RoutingTable) Add(subnet addr.IP, mask uint8, gateway addr.IP, ifName string) {
	t.insert(Route{
		Dest:     subnet.ApplyMask(mask),
		Mask:     mask,
		IsDirect: false,
		Gateway:  gateway,
		IfName:   ifName,
	})
}

func (t *RoutingTable) insert(r Route) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	r.seq = t.seq
	t.routes[routeKey{dest: r.Dest, mask: r.Mask}] = r
}

// Delete removes the route for the exact (normalised dest, mask) pair.
func (t *RoutingTable) Delete(subnet addr.IP, mask uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.routes, routeKey{dest: subnet.ApplyMask(mask), mask: mask})
}

// LookupLPM returns the route whose masked destination matches ip with the
// greatest mask length. Ties resolve to the most recently inserted route.
// Returns false if no route matches.
func (t *RoutingTable) LookupLPM(ip addr.IP) (Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var best Route
	found := false
	for _, r := range t.routes {
		if r.Dest != ip.ApplyMask(r.Mask) {
			continue
		}
		if !found || r.Mask > best.Mask || (r.Mask == best.Mask && r.seq > best.seq) {
			best = r
			found = true
		}
	}
	return best, found
}

// Entries returns a snapshot of all routes, in no particular order.
func (t *RoutingTable) Entries() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Route, 0, len(t.routes))
	for _, r := range t.routes {
		out = append(out, r)
	}
	return out
}
