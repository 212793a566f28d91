// Package topology models the simulator's graph of nodes, links, and
// interfaces, and each interface's L2/L3 network state.
package topology

import (
	"errors"
	"fmt"

	"github.com/nettopo/simnet/addr"
)

// MaxIfNameLen is the maximum interface name length; names longer than
// this are truncated at creation.
const MaxIfNameLen = 16

// MaxVLANsPerInterface bounds the VLAN membership set of a Trunk
// interface.
const MaxVLANsPerInterface = 10

// L2Mode is the VLAN-framing mode of an interface.
type L2Mode int

const (
	L2ModeUnknown L2Mode = iota
	L2ModeAccess
	L2ModeTrunk
)

func (m L2Mode) String() string {
	switch m {
	case L2ModeAccess:
		return "access"
	case L2ModeTrunk:
		return "trunk"
	default:
		return "unknown"
	}
}

var (
	errTrunkOnly       = errors.New("topology: operation only valid on a trunk interface")
	errAccessOnly      = errors.New("topology: operation only valid on an access interface")
	errVLANZero        = errors.New("topology: VLAN id 0 is reserved")
	errTooManyVLANs    = errors.New("topology: interface already carries the maximum VLAN count")
	errIPAndL2Conflict = errors.New("topology: interface cannot carry both an IP address and an L2 mode")
)

// RecvFunc is invoked by the physical-emulation receiver when a frame
// arrives on this interface. It is the entry point into the L2 ingress
// qualifier; topology itself has no notion of L2/L3 processing, only
// wiring, so the handler is registered by whatever package assembles the
// engine (normally package engine).
type RecvFunc func(iface *Interface, frame []byte, size int)

// Interface is one endpoint of a Link, owned by exactly one Node.
type Interface struct {
	name  string
	index int
	node  *Node
	link  *Link

	mac      addr.MAC
	hasIP    bool
	ip       addr.IP
	maskBits uint8

	l2Mode L2Mode
	vlans  []uint16 // access: at most 1 entry; trunk: membership set

	onRecv RecvFunc
}

func newInterface(name string, node *Node, index int) *Interface {
	if len(name) > MaxIfNameLen {
		name = name[:MaxIfNameLen]
	}
	return &Interface{name: name, node: node, index: index}
}

// Name returns the (possibly truncated) interface name.
func (i *Interface) Name() string { return i.name }

// Node returns the owning node.
func (i *Interface) Node() *Node { return i.node }

// Link returns the link this interface terminates, or nil if unattached.
func (i *Interface) Link() *Link { return i.link }

// MAC returns the interface's MAC address.
func (i *Interface) MAC() addr.MAC { return i.mac }

// IP returns the configured IPv4 address and mask length, and whether one
// is configured at all.
func (i *Interface) IP() (ip addr.IP, maskBits uint8, ok bool) {
	return i.ip, i.maskBits, i.hasIP
}

// IsL3Mode reports whether the interface has an IP address configured.
// An interface is in L3 mode exactly when it carries an IP address, so
// this is also the negation of "is an L2 interface".
func (i *Interface) IsL3Mode() bool { return i.hasIP }

// L2Mode returns the interface's VLAN-framing mode. Always Unknown when
// IsL3Mode is true.
func (i *Interface) L2Mode() L2Mode { return i.l2Mode }

// VLANs returns a copy of the interface's VLAN membership set.
func (i *Interface) VLANs() []uint16 {
	out := make([]uint16, len(i.vlans))
	copy(out, i.vlans)
	return out
}

// HasVLAN reports whether vid is in the interface's membership set.
func (i *Interface) HasVLAN(vid uint16) bool {
	for _, v := range i.vlans {
		if v == vid {
			return true
		}
	}
	return false
}

// SetIP assigns an IPv4 address and mask, clearing any L2 mode and VLAN
// membership (the two are mutually exclusive per the strict bidirectional
// rule: setting an IP clears L2 state and vice versa).
func (i *Interface) SetIP(ip addr.IP, maskBits uint8) {
	i.hasIP = true
	i.ip = ip
	i.maskBits = maskBits
	i.l2Mode = L2ModeUnknown
	i.vlans = nil
}

// ClearIP removes the interface's IP address, leaving it in L2-Unknown
// mode until a mode is explicitly set.
func (i *Interface) ClearIP() {
	i.hasIP = false
	i.ip = 0
	i.maskBits = 0
}

// SetL2Mode sets the interface's VLAN-framing mode, clearing any IP
// address (mutually exclusive with L3 mode). It also clears VLAN
// membership, even when mode equals the current mode.
func (i *Interface) SetL2Mode(mode L2Mode) {
	i.hasIP = false
	i.ip = 0
	i.maskBits = 0
	i.l2Mode = mode
	i.vlans = nil
}

// SetVLAN sets the single VLAN ID of an Access interface, replacing any
// previous value. Returns an error if the interface is not in Access mode
// or if vid is 0.
func (i *Interface) SetVLAN(vid uint16) error {
	if i.l2Mode != L2ModeAccess {
		return errAccessOnly
	}
	if vid == 0 {
		return errVLANZero
	}
	i.vlans = []uint16{vid}
	return nil
}

// AddTrunkVLAN adds vid to a Trunk interface's membership set.
func (i *Interface) AddTrunkVLAN(vid uint16) error {
	if i.l2Mode != L2ModeTrunk {
		return errTrunkOnly
	}
	if vid == 0 {
		return errVLANZero
	}
	if i.HasVLAN(vid) {
		return nil
	}
	if len(i.vlans) >= MaxVLANsPerInterface {
		return errTooManyVLANs
	}
	i.vlans = append(i.vlans, vid)
	return nil
}

// RemoveTrunkVLAN removes vid from a Trunk interface's membership set.
func (i *Interface) RemoveTrunkVLAN(vid uint16) error {
	if i.l2Mode != L2ModeTrunk {
		return errTrunkOnly
	}
	for idx, v := range i.vlans {
		if v == vid {
			i.vlans = append(i.vlans[:idx], i.vlans[idx+1:]...)
			return nil
		}
	}
	return nil
}

// SetRecvHandler registers the function invoked on frame arrival.
func (i *Interface) SetRecvHandler(fn RecvFunc) { i.onRecv = fn }

// Receive hands a raw frame (size logical bytes) to the registered
// RecvFunc, if any. Frames arriving before a handler is wired are dropped.
func (i *Interface) Receive(frame []byte, size int) {
	if i.onRecv == nil {
		return
	}
	i.onRecv(i, frame, size)
}

// PeerInterface returns the interface at the other end of this
// interface's link, or nil if unattached.
func (i *Interface) PeerInterface() *Interface {
	if i.link == nil {
		return nil
	}
	return i.link.Other(i)
}

func (i *Interface) String() string {
	return fmt.Sprintf("%s/%s", i.node.Name(), i.name)
}
