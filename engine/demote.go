// Package engine wires the L2, ARP, and L3 packages together: the
// upward/downward glue that promotes accepted L3 frames up to IPv4
// forwarding and demotes outbound IPv4 packets down to an Ethernet send.
package engine

import (
	"github.com/nettopo/simnet/arpengine"
	"github.com/nettopo/simnet/ethernet"
	"github.com/nettopo/simnet/internal"
	"github.com/nettopo/simnet/l2"
	"github.com/nettopo/simnet/l3"
	"github.com/nettopo/simnet/topology"

	"github.com/nettopo/simnet/addr"
)

var log internal.Logger

// SetLogger installs the logger used by the engine's glue functions and
// propagates it to the packages engine wires together.
func SetLogger(l internal.Logger) {
	log = l
	l2.SetLogger(l)
	arpengine.SetLogger(l)
	l3.SetLogger(l)
}

// DemoteToL2 resolves an egress interface by subnet match if one was
// not supplied, resolves nextHop via the ARP cache (triggering a
// resolve and dropping the pending packet on miss), and on a hit builds
// and sends an Ethernet frame carrying payload.
func DemoteToL2(node *topology.Node, nextHop addr.IP, egress *topology.Interface, payload []byte, protocol ethernet.Type, send l2.SendFunc) {
	if egress == nil {
		var ok bool
		egress, ok = node.MatchingSubnetInterface(nextHop)
		if !ok {
			log.Warn("engine: no egress interface for next hop", "nextHop", nextHop.String())
			return
		}
	}

	entry, ok := node.ARP.Lookup(nextHop)
	if !ok {
		reqFrame, reqSize, err := arpengine.BuildRequest(egress, nextHop)
		if err != nil {
			log.Warn("engine: cannot build ARP request", "err", err.Error())
			return
		}
		send(egress, reqFrame, reqSize)
		return
	}

	frameSize := ethernet.HeaderSizeNoVLAN + len(payload) + ethernet.FCSSize
	buf := make([]byte, frameSize)
	ef, err := ethernet.NewFrame(buf)
	if err != nil {
		return
	}
	*ef.DestinationMAC() = entry.MAC
	*ef.SourceMAC() = egress.MAC()
	ef.SetEtherType(protocol)
	copy(ef.Payload(frameSize), payload)
	send(egress, buf, frameSize)
}
