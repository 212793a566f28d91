package l2

import (
	"github.com/nettopo/simnet/ethernet"
	"github.com/nettopo/simnet/internal"
	"github.com/nettopo/simnet/topology"
)

// AssertL2EgressMode controls how an attempt to egress an L2 switch frame
// through an L3-mode interface is handled: panic (development builds,
// catching a programmer error immediately) or a logged silent drop
// (production). cmd/simnet disables this at startup.
var AssertL2EgressMode = true

var log internal.Logger

// SetLogger installs the logger used for egress-policy drop reporting.
func SetLogger(l internal.Logger) { log = l }

// Egress applies the VLAN egress policy for iface to a frame of the given
// logical size and effective VLAN ID, returning the (possibly retagged or
// untagged) bytes to send and whether to send them at all. The input
// buffer is never mutated; Egress always transforms a defensive copy.
func Egress(iface *topology.Interface, raw []byte, size int, vid uint16) ([]byte, int, bool) {
	if iface.IsL3Mode() {
		if AssertL2EgressMode {
			panic("l2: attempted to egress a switched frame through an L3-mode interface")
		}
		log.Warn("l2: egress dropped, L3-mode interface", "iface", iface.String())
		return nil, 0, false
	}

	cp := make([]byte, size, size+ethernet.VLANShimSize)
	copy(cp, raw[:size])
	f, err := ethernet.NewFrame(cp)
	if err != nil {
		return nil, 0, false
	}

	switch iface.L2Mode() {
	case topology.L2ModeAccess:
		vlans := iface.VLANs()
		if len(vlans) != 1 || vlans[0] != vid {
			return nil, 0, false
		}
		if f.IsVLANTagged() {
			f2, newSize, err := f.Untag(size)
			if err != nil {
				return nil, 0, false
			}
			return f2.RawData(), newSize, true
		}
		return cp, size, true
	case topology.L2ModeTrunk:
		if !iface.HasVLAN(vid) {
			return nil, 0, false
		}
		return cp, size, true
	default: // Unknown
		return nil, 0, false
	}
}
