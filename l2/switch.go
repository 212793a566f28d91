package l2

import (
	"github.com/nettopo/simnet/ethernet"
	"github.com/nettopo/simnet/topology"
)

// SendFunc delivers a fully-policy-applied frame out iface. Implemented
// by package phys.
type SendFunc func(iface *topology.Interface, frame []byte, size int)

// SwitchRecv implements the learning-bridge path for a frame accepted by
// Qualify on an Access or Trunk interface: learn the source MAC, then
// forward by unicast lookup or flood on broadcast/miss. vid is the
// effective VLAN ID Qualify computed; if the wire frame itself was
// untagged (Access ingress), it is tagged in place (using the buffer's
// trailing headroom) so every downstream egress decision, including
// across a Trunk link, operates on one canonical tagged representation.
func SwitchRecv(node *topology.Node, recvIface *topology.Interface, raw []byte, size int, vid uint16, send SendFunc) {
	f, err := ethernet.NewFrame(raw)
	if err != nil {
		return
	}
	canon := raw
	canonSize := size
	if !f.IsVLANTagged() {
		tagged, newSize, terr := f.TagWithVLAN(vid, size)
		if terr == nil {
			canon = tagged.RawData()
			canonSize = newSize
			f = tagged
		}
	}

	node.MAC.Learn(*f.SourceMAC(), recvIface.Name())

	dst := *f.DestinationMAC()
	if dst.IsBroadcast() {
		flood(node, recvIface, canon, canonSize, vid, send)
		return
	}
	entry, ok := node.MAC.Lookup(dst)
	if !ok {
		flood(node, recvIface, canon, canonSize, vid, send)
		return
	}
	egress, ok := node.InterfaceByName(entry.IfName)
	if !ok {
		return
	}
	sendOne(egress, canon, canonSize, vid, send)
}

func flood(node *topology.Node, recvIface *topology.Interface, raw []byte, size int, vid uint16, send SendFunc) {
	for _, i := range node.Interfaces() {
		// Flooding covers the node's L2 interfaces only; an L3 interface
		// on the same node belongs to the routed side of the box.
		if i == recvIface || i.IsL3Mode() {
			continue
		}
		sendOne(i, raw, size, vid, send)
	}
}

func sendOne(iface *topology.Interface, raw []byte, size int, vid uint16, send SendFunc) {
	out, outSize, ok := Egress(iface, raw, size, vid)
	if !ok {
		return
	}
	send(iface, out, outSize)
}
