//go:build linux

package phys

import "github.com/nettopo/simnet/topology"

// Send implements l2.SendFunc (and is passed to the ARP/L2/L3 engines as
// their outbound hook): it resolves the peer interface across iface's
// link and emits one datagram toward the peer node's endpoint. An
// interface with no attached peer is a silent drop.
func (r *Receiver) Send(iface *topology.Interface, frame []byte, size int) {
	peer := iface.PeerInterface()
	if peer == nil {
		return
	}
	ep, ok := r.EndpointForPort(iface.Node().Port)
	if !ok {
		r.log.Warn("phys: send from unregistered node", "node", iface.Node().Name())
		return
	}
	if err := ep.Send(peer.Node().Port, peer.Name(), frame[:size]); err != nil {
		r.log.Warn("phys: send failed", "node", iface.Node().Name(), "iface", iface.Name(), "err", err.Error())
	}
}
