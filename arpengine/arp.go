// Package arpengine implements the ARP request/reply state machine:
// broadcast request construction, unicast reply, and cache update from
// replies.
package arpengine

import (
	"errors"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/arpwire"
	"github.com/nettopo/simnet/ethernet"
	"github.com/nettopo/simnet/internal"
	"github.com/nettopo/simnet/topology"
)

var errNoEligibleSubnet = errors.New("arpengine: no eligible subnet for requested IP")

var log internal.Logger

// SetLogger installs the logger used for configuration-error reporting.
func SetLogger(l internal.Logger) { log = l }

const frameSize = ethernet.HeaderSizeNoVLAN + arpwire.HeaderSize + ethernet.FCSSize

// ResolveEgress picks the egress interface for an ARP request to
// targetIP by subnet match, when the caller has not supplied one
// explicitly. Returns errNoEligibleSubnet if no interface's subnet
// contains targetIP.
func ResolveEgress(node *topology.Node, targetIP addr.IP) (*topology.Interface, error) {
	iface, ok := node.MatchingSubnetInterface(targetIP)
	if !ok {
		log.Warn("arpengine: no eligible subnet", "ip", targetIP.String())
		return nil, errNoEligibleSubnet
	}
	return iface, nil
}

// BuildRequest builds a broadcast Ethernet/ARP request out egress,
// asking who has targetIP.
func BuildRequest(egress *topology.Interface, targetIP addr.IP) ([]byte, int, error) {
	buf := make([]byte, frameSize, frameSize+ethernet.VLANShimSize)
	ef, err := ethernet.NewFrame(buf)
	if err != nil {
		return nil, 0, err
	}
	*ef.DestinationMAC() = addr.Broadcast
	*ef.SourceMAC() = egress.MAC()
	ef.SetEtherType(ethernet.TypeARP)

	senderIP, _, _ := egress.IP()
	if _, err := arpwire.BuildRequest(ef.Payload(frameSize), egress.MAC(), senderIP, targetIP); err != nil {
		return nil, 0, err
	}
	return buf, frameSize, nil
}

// HandleFrame dispatches a received ARP frame by opcode. recvIface must
// be in L3 mode. On a request targeting recvIface's own IP, reply is
// invoked with a unicast reply frame. On a reply, the sender's
// (IP, MAC) is recorded in the node's ARP cache.
func HandleFrame(node *topology.Node, recvIface *topology.Interface, raw []byte, size int, reply func(iface *topology.Interface, frame []byte, size int)) {
	af, err := arpwire.NewFrame(raw[ethernet.HeaderSizeNoVLAN:])
	if err != nil {
		return
	}
	switch af.Operation() {
	case arpwire.OpRequest:
		ifIP, _, ok := recvIface.IP()
		if !ok || af.TargetIP() != ifIP {
			return
		}
		// The request itself carries the sender's binding; record it so
		// the requester is resolvable without a reverse resolve.
		node.ARP.Update(af.SenderIP(), *af.SenderMAC(), recvIface.Name())
		out := make([]byte, frameSize, frameSize+ethernet.VLANShimSize)
		ef, err := ethernet.NewFrame(out)
		if err != nil {
			return
		}
		*ef.DestinationMAC() = *af.SenderMAC()
		*ef.SourceMAC() = recvIface.MAC()
		ef.SetEtherType(ethernet.TypeARP)
		_, err = arpwire.BuildReply(ef.Payload(frameSize), recvIface.MAC(), ifIP, *af.SenderMAC(), af.SenderIP())
		if err != nil {
			return
		}
		reply(recvIface, out, frameSize)
	case arpwire.OpReply:
		node.ARP.Update(af.SenderIP(), *af.SenderMAC(), recvIface.Name())
	}
}
