// Package ping implements the trivial L5 echo path: CLI/operator
// submission of an outbound ICMP packet, synthesised by L3 and handed
// down to L2 for demotion and send. Local delivery's "ping success" log
// line lives in package engine, where the promote-to-L3 path already
// handles it.
package ping

import (
	"errors"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/engine"
	"github.com/nettopo/simnet/ethernet"
	"github.com/nettopo/simnet/ipv4"
	"github.com/nettopo/simnet/l2"
	"github.com/nettopo/simnet/l3"
	"github.com/nettopo/simnet/topology"
)

var errNoLoopback = errors.New("ping: node has no loopback address configured")

// Send originates an ICMP packet toward destIP and hands it down
// through the demote-to-L2 glue. It runs on the calling goroutine
// (CLI/operator), not the shared ingress worker.
func Send(node *topology.Node, destIP addr.IP, send l2.SendFunc) error {
	if _, ok := node.Loopback(); !ok {
		return errNoLoopback
	}
	pkt, totalLen, nextHop, egress, err := l3.Originate(node, destIP, ipv4.ProtoICMP, nil)
	if err != nil {
		return err
	}
	engine.DemoteToL2(node, nextHop, egress, pkt[:totalLen], ethernet.TypeIPv4, send)
	return nil
}
