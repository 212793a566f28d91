package ethernet

// Type is the EtherType field of an Ethernet II frame.
type Type uint16

// EtherType values used by the simulator's stack.
const (
	TypeIPv4 Type = 0x0800
	TypeARP  Type = 0x0806
	TypeVLAN Type = 0x8100
)

func (t Type) String() string {
	switch t {
	case TypeIPv4:
		return "IPv4"
	case TypeARP:
		return "ARP"
	case TypeVLAN:
		return "VLAN"
	default:
		return "Type(0x" + hex16(uint16(t)) + ")"
	}
}

func hex16(v uint16) string {
	const digits = "0123456789abcdef"
	return string([]byte{
		digits[v>>12&0xf],
		digits[v>>8&0xf],
		digits[v>>4&0xf],
		digits[v&0xf],
	})
}

const (
	// HeaderSizeNoVLAN is the size in bytes of an untagged Ethernet II
	// header: dst(6) + src(6) + type(2).
	HeaderSizeNoVLAN = 14
	// HeaderSizeVLAN is the size in bytes of an 802.1Q-tagged Ethernet
	// header: dst(6) + src(6) + tpid/tci(4) + type(2).
	HeaderSizeVLAN = 18
	// FCSSize is the size in bytes of the (unused) frame-check-sequence
	// trailer. The simulator never computes or validates it; the field
	// exists only so wire sizes match real Ethernet framing.
	FCSSize = 4
	// VLANShimSize is the number of bytes a VLAN tag shim (TPID+TCI)
	// occupies and must be reserved as headroom before tagging in place.
	VLANShimSize = 4
)

// VLANTag holds the PCP/DEI/VID fields of an 802.1Q tag control
// information word, as packed on the wire (big-endian uint16).
type VLANTag uint16

// NewVLANTag packs a VLAN ID (12 bits) into a tag with PCP=0, DEI=0.
func NewVLANTag(vid uint16) VLANTag { return VLANTag(vid & 0x0fff) }

// VID returns the 12-bit VLAN identifier.
func (t VLANTag) VID() uint16 { return uint16(t) & 0x0fff }

// PCP returns the 3-bit priority code point.
func (t VLANTag) PCP() uint8 { return uint8(t>>13) & 0x7 }

// DEI returns the drop-eligible-indicator bit.
func (t VLANTag) DEI() bool { return t&(1<<12) != 0 }
