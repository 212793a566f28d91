package engine

import (
	"github.com/nettopo/simnet/arpengine"
	"github.com/nettopo/simnet/ethernet"
	"github.com/nettopo/simnet/ipv4"
	"github.com/nettopo/simnet/l2"
	"github.com/nettopo/simnet/l3"
	"github.com/nettopo/simnet/topology"
)

// Dispatch is the engine's entry point from the physical-emulation
// receiver: it runs the L2 ingress qualifier and, on acceptance, either
// dispatches to the ARP engine, promotes to L3, or runs the L2 switch
// forward path, depending on the interface's mode.
func Dispatch(node *topology.Node, iface *topology.Interface, raw []byte, size int, send l2.SendFunc) {
	f, err := ethernet.NewFrame(raw)
	if err != nil {
		return
	}
	ok, vid := l2.Qualify(iface, f)
	if !ok {
		return
	}

	if iface.IsL3Mode() {
		switch f.EtherType() {
		case ethernet.TypeARP:
			arpengine.HandleFrame(node, iface, raw, size, func(i *topology.Interface, frame []byte, fsize int) {
				send(i, frame, fsize)
			})
		case ethernet.TypeIPv4:
			payload := f.Payload(size)
			PromoteToL3(node, iface, payload, len(payload), send)
		}
		return
	}

	l2.SwitchRecv(node, iface, raw, size, vid, send)
}

// PromoteToL3 hands an IPv4 packet accepted on an L3-mode interface to
// the L3 forwarding engine and acts on its disposition: local ICMP
// delivery logs "ping success"; a forwarded/direct-host disposition
// demotes back down to L2 toward the resolved next hop.
func PromoteToL3(node *topology.Node, iface *topology.Interface, ipPkt []byte, ipLen int, send l2.SendFunc) {
	res := l3.Forward(node, ipPkt, ipLen)
	switch res.Disposition {
	case l3.Local:
		if res.Protocol == ipv4.ProtoICMP {
			log.Info("ping success", "node", node.Name(), "iface", iface.Name())
		}
	case l3.Demote:
		DemoteToL2(node, res.NextHop, res.Egress, res.Packet[:res.PacketLen], ethernet.TypeIPv4, send)
	case l3.Drop:
	}
}
