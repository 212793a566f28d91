// Package l2 implements the Ethernet/VLAN ingress qualifier, the
// learning-bridge forward path, and the egress VLAN policy.
package l2

import (
	"github.com/nettopo/simnet/ethernet"
	"github.com/nettopo/simnet/topology"
)

// Qualify decides whether a received frame is accepted on iface and, if
// so, its effective VLAN ID (0 for an untagged frame accepted on an
// L3-mode interface, where VLANs do not apply).
func Qualify(iface *topology.Interface, f ethernet.Frame) (accept bool, vid uint16) {
	tagged := f.IsVLANTagged()
	if iface.IsL3Mode() {
		if tagged {
			return false, 0
		}
		dst := *f.DestinationMAC()
		if dst == iface.MAC() || dst.IsBroadcast() {
			return true, 0
		}
		return false, 0
	}

	switch iface.L2Mode() {
	case topology.L2ModeAccess:
		if tagged {
			return false, 0
		}
		vlans := iface.VLANs()
		if len(vlans) != 1 || vlans[0] == 0 {
			return false, 0
		}
		return true, vlans[0]
	case topology.L2ModeTrunk:
		if !tagged {
			return false, 0
		}
		vid := f.VLANTag().VID()
		if !iface.HasVLAN(vid) {
			return false, 0
		}
		return true, vid
	default: // Unknown
		return false, 0
	}
}
