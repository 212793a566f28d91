package topology

import (
	"errors"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/tables"
)

// MaxInterfacesPerNode bounds the number of interface slots a node owns.
// Indices remain stable for the node's lifetime.
const MaxInterfacesPerNode = 10

var errTooManyInterfaces = errors.New("topology: node already has the maximum number of interface slots")

// Node is a logical host, router, or switch: a bounded set of interface
// slots plus the per-node shared tables.
type Node struct {
	name       string
	interfaces []*Interface
	hasLo      bool
	loopback   addr.IP

	ARP    *tables.ARPCache
	MAC    *tables.MACTable
	Routes *tables.RoutingTable

	// Port is this node's process-unique loopback endpoint port, assigned
	// by the physical-emulation layer's port allocator at construction.
	Port uint16
}

func newNode(name string, port uint16) *Node {
	if len(name) > MaxIfNameLen {
		name = name[:MaxIfNameLen]
	}
	return &Node{
		name:   name,
		ARP:    tables.NewARPCache(),
		MAC:    tables.NewMACTable(),
		Routes: tables.NewRoutingTable(),
		Port:   port,
	}
}

// Name returns the node's (possibly truncated) name.
func (n *Node) Name() string { return n.name }

// Loopback returns the node's management IP, if configured.
func (n *Node) Loopback() (addr.IP, bool) { return n.loopback, n.hasLo }

// SetLoopback sets the node's management IP, independent of any interface
// address.
func (n *Node) SetLoopback(ip addr.IP) {
	n.loopback = ip
	n.hasLo = true
}

// Interfaces returns the node's interface slots, in index order. Unused
// slots never occur; the slice always has len(n.interfaces) live entries.
func (n *Node) Interfaces() []*Interface {
	out := make([]*Interface, len(n.interfaces))
	copy(out, n.interfaces)
	return out
}

// InterfaceByName returns the interface with the given name, if any.
func (n *Node) InterfaceByName(name string) (*Interface, bool) {
	for _, i := range n.interfaces {
		if i.name == name {
			return i, true
		}
	}
	return nil, false
}

// addInterface allocates a new interface slot on the node. Returns an
// error once MaxInterfacesPerNode slots are in use.
func (n *Node) addInterface(name string) (*Interface, error) {
	if len(n.interfaces) >= MaxInterfacesPerNode {
		return nil, errTooManyInterfaces
	}
	idx := len(n.interfaces)
	iface := newInterface(name, n, idx)
	n.interfaces = append(n.interfaces, iface)
	return iface, nil
}

// matchingSubnetInterface returns the node's L3 interface whose subnet
// contains ip, used to resolve an egress interface by subnet match (§4.5,
// §4.8) when the caller does not supply one explicitly.
func (n *Node) matchingSubnetInterface(ip addr.IP) (*Interface, bool) {
	for _, i := range n.interfaces {
		ifIP, mask, ok := i.IP()
		if !ok {
			continue
		}
		if ifIP.ApplyMask(mask) == ip.ApplyMask(mask) {
			return i, true
		}
	}
	return nil, false
}

// MatchingSubnetInterface is the exported form of matchingSubnetInterface,
// used by the ARP and demote-to-L2 entry points.
func (n *Node) MatchingSubnetInterface(ip addr.IP) (*Interface, bool) {
	return n.matchingSubnetInterface(ip)
}

// OwnsIP reports whether ip is the node's loopback address or the address
// of any of its interfaces, used by L3 forwarding's local-delivery check.
func (n *Node) OwnsIP(ip addr.IP) bool {
	if n.hasLo && n.loopback == ip {
		return true
	}
	for _, i := range n.interfaces {
		if ifIP, _, ok := i.IP(); ok && ifIP == ip {
			return true
		}
	}
	return false
}
