// Package l3 implements IPv4 forwarding: LPM route lookup, TTL handling,
// and the local-delivery/direct-host/forwarded disposition.
package l3

import (
	"errors"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/internal"
	"github.com/nettopo/simnet/ipv4"
	"github.com/nettopo/simnet/topology"
)

var errCannotRoute = errors.New("l3: no route to destination")

var log internal.Logger

// SetLogger installs the logger used for routing and TTL-drop reporting.
func SetLogger(l internal.Logger) { log = l }

// Disposition is the outcome of forwarding a received IPv4 packet.
type Disposition int

const (
	// Drop means the packet was silently discarded (no route, or TTL
	// reached zero).
	Drop Disposition = iota
	// Local means the destination is this node's own address; Protocol
	// identifies the upper-layer protocol to deliver to.
	Local
	// Demote means the packet must be handed down to L2 toward NextHop,
	// optionally via the named egress interface.
	Demote
)

// Result describes what a caller (the receive path, wired in package
// engine) should do with a forwarded packet.
type Result struct {
	Disposition Disposition
	Protocol    ipv4.Protocol
	NextHop     addr.IP
	Egress      *topology.Interface // nil: resolve by subnet match against NextHop
	Packet      []byte
	PacketLen   int
}

// Forward handles an IPv4 packet arriving from L2: LPM lookup, then
// local/direct/forwarded disposition.
func Forward(node *topology.Node, pkt []byte, totalLen int) Result {
	f, err := ipv4.NewFrame(pkt)
	if err != nil {
		return Result{Disposition: Drop}
	}
	dst := f.DestinationIP()
	route, ok := node.Routes.LookupLPM(dst)
	if !ok {
		log.Debug("l3: no route", "dst", dst.String())
		return Result{Disposition: Drop}
	}

	if route.IsDirect {
		if node.OwnsIP(dst) {
			return Result{Disposition: Local, Protocol: f.Protocol()}
		}
		return Result{
			Disposition: Demote,
			NextHop:     dst,
			Packet:      pkt,
			PacketLen:   totalLen,
		}
	}

	if f.TTL() <= 1 {
		f.SetTTL(0)
		log.Debug("l3: TTL exhausted", "dst", dst.String())
		return Result{Disposition: Drop}
	}
	f.DecTTL()
	egress, _ := node.InterfaceByName(route.IfName)
	return Result{
		Disposition: Demote,
		NextHop:     route.Gateway,
		Egress:      egress,
		Packet:      pkt,
		PacketLen:   totalLen,
	}
}

// Originate builds an IPv4 header for a packet this node generates
// (e.g. ping) and resolves its next hop via LPM.
func Originate(node *topology.Node, dst addr.IP, proto ipv4.Protocol, payload []byte) (pkt []byte, totalLen int, nextHop addr.IP, egress *topology.Interface, err error) {
	loopback, _ := node.Loopback()
	buf := make([]byte, ipv4.HeaderSize+len(payload))
	f, ferr := ipv4.Init(buf, proto, loopback, dst)
	if ferr != nil {
		return nil, 0, 0, nil, ferr
	}
	f.SetTotalLength(uint16(len(buf)))
	copy(buf[ipv4.HeaderSize:], payload)

	route, ok := node.Routes.LookupLPM(dst)
	if !ok {
		log.Warn("l3: cannot route", "dst", dst.String())
		return nil, 0, 0, nil, errCannotRoute
	}
	nextHop = dst
	if !route.IsDirect {
		nextHop = route.Gateway
		egress, _ = node.InterfaceByName(route.IfName)
	}
	return buf, len(buf), nextHop, egress, nil
}
