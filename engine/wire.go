package engine

import (
	"github.com/nettopo/simnet/l2"
	"github.com/nettopo/simnet/topology"
)

// Wire registers every interface of every node in g to dispatch received
// frames through Dispatch, using send as the shared outbound hook (the
// physical-emulation layer's Receiver.Send in normal operation). Call
// this once, after the topology is fully built and before the receiver
// worker starts; the node list is read-only from then on.
func Wire(g *topology.Graph, send l2.SendFunc) {
	for _, node := range g.Nodes() {
		node := node
		for _, iface := range node.Interfaces() {
			iface.SetRecvHandler(func(i *topology.Interface, frame []byte, size int) {
				Dispatch(node, i, frame, size, send)
			})
		}
	}
}
