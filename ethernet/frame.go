package ethernet

import (
	"encoding/binary"
	"errors"

	"github.com/nettopo/simnet/addr"
)

var (
	errShort      = errors.New("ethernet: frame shorter than minimum header size")
	errNoHeadroom = errors.New("ethernet: insufficient headroom to insert VLAN shim")
)

// Frame is a byte-exact view over an Ethernet II frame buffer, with or
// without an 802.1Q shim. It never copies; every accessor reads or writes
// directly into buf.
type Frame struct {
	buf []byte
}

// NewFrame wraps buf as an Ethernet frame view. buf must be at least
// HeaderSizeNoVLAN bytes; callers that intend to insert a VLAN tag later
// must additionally reserve VLANShimSize bytes of spare capacity past the
// frame's logical length (see TagWithVLAN).
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < HeaderSizeNoVLAN {
		return Frame{}, errShort
	}
	return Frame{buf: buf}, nil
}

// RawData returns the underlying buffer backing the frame.
func (f Frame) RawData() []byte { return f.buf }

// DestinationMAC returns a pointer to the 6-byte destination address field.
func (f Frame) DestinationMAC() *addr.MAC { return (*addr.MAC)(f.buf[0:6]) }

// SourceMAC returns a pointer to the 6-byte source address field.
func (f Frame) SourceMAC() *addr.MAC { return (*addr.MAC)(f.buf[6:12]) }

// IsVLANTagged reports whether the two bytes at offset 12 equal the 802.1Q
// TPID (0x8100).
func (f Frame) IsVLANTagged() bool {
	return len(f.buf) >= 14 && binary.BigEndian.Uint16(f.buf[12:14]) == uint16(TypeVLAN)
}

// HeaderLen returns 14 for an untagged frame or 18 for a VLAN-tagged one.
func (f Frame) HeaderLen() int {
	if f.IsVLANTagged() {
		return HeaderSizeVLAN
	}
	return HeaderSizeNoVLAN
}

// EtherType returns the frame's EtherType field, skipping over the VLAN
// shim if present.
func (f Frame) EtherType() Type {
	if f.IsVLANTagged() {
		return Type(binary.BigEndian.Uint16(f.buf[16:18]))
	}
	return Type(binary.BigEndian.Uint16(f.buf[12:14]))
}

// SetEtherType sets the frame's EtherType field, skipping over the VLAN
// shim if present.
func (f Frame) SetEtherType(t Type) {
	if f.IsVLANTagged() {
		binary.BigEndian.PutUint16(f.buf[16:18], uint16(t))
		return
	}
	binary.BigEndian.PutUint16(f.buf[12:14], uint16(t))
}

// VLANTag returns the VLAN tag control information field. Only valid when
// IsVLANTagged reports true.
func (f Frame) VLANTag() VLANTag {
	return VLANTag(binary.BigEndian.Uint16(f.buf[14:16]))
}

// Payload returns the frame's payload, after the header and before the
// FCS trailer. size is the total number of meaningful bytes in buf
// (header + payload + FCS), since buf's capacity may exceed its logical
// length.
func (f Frame) Payload(size int) []byte {
	hl := f.HeaderLen()
	end := size - FCSSize
	if end < hl {
		return nil
	}
	return f.buf[hl:end]
}

// TagWithVLAN inserts (or, if already tagged, overwrites) an 802.1Q shim
// with the given VLAN ID. size is the frame's current logical length
// (header+payload+FCS). If the frame is untagged, dst/src stay at their
// current offset and the type/payload/FCS are shifted 4 bytes further
// into the buffer to make room for the shim; this requires the backing
// array to have at least VLANShimSize bytes of spare capacity past size.
// If already tagged, only the VID is overwritten and size is unchanged.
//
// Callers must allocate buf with at least VLANShimSize bytes of trailing
// headroom past its logical length for this to succeed untagged.
func (f Frame) TagWithVLAN(vid uint16, size int) (Frame, int, error) {
	if f.IsVLANTagged() {
		binary.BigEndian.PutUint16(f.buf[14:16], uint16(NewVLANTag(vid)))
		return f, size, nil
	}
	if cap(f.buf) < size+VLANShimSize {
		return Frame{}, 0, errNoHeadroom
	}
	newBuf := f.buf[:size+VLANShimSize]
	// dst/src stay put; the EtherType is rewritten after the shim and
	// payload+FCS (currently at buf[14:size]) moves right by 4 bytes. Copy
	// through a temporary since source and destination overlap.
	var hdr [12]byte
	copy(hdr[:], f.buf[0:12])
	etype := f.EtherType()
	payloadAndFCS := append([]byte(nil), f.buf[HeaderSizeNoVLAN:size]...)
	copy(newBuf[0:12], hdr[:])
	binary.BigEndian.PutUint16(newBuf[12:14], uint16(TypeVLAN))
	binary.BigEndian.PutUint16(newBuf[14:16], uint16(NewVLANTag(vid)))
	binary.BigEndian.PutUint16(newBuf[16:18], uint16(etype))
	copy(newBuf[18:], payloadAndFCS)
	return Frame{buf: newBuf}, size + VLANShimSize, nil
}

// Untag removes the 802.1Q shim, if present, keeping dst/src MAC in place
// and shifting EtherType+payload+FCS 4 bytes to the left over it. size is
// the frame's current logical length; the
// returned size is size-4 if a shim was removed, or size unchanged
// otherwise.
func (f Frame) Untag(size int) (Frame, int, error) {
	if !f.IsVLANTagged() {
		return f, size, nil
	}
	if size < HeaderSizeVLAN {
		return Frame{}, 0, errShort
	}
	// dst(6)+src(6) stay at buf[0:12]; EtherType+payload+FCS (currently at
	// buf[16:size]) moves left over the 4-byte shim. Copy through a
	// temporary since the source and destination ranges overlap.
	tail := append([]byte(nil), f.buf[16:size]...)
	copy(f.buf[12:], tail)
	return Frame{buf: f.buf[:size-VLANShimSize]}, size - VLANShimSize, nil
}

// ClearHeader zeros the fixed-size header fields (dst, src, type/VLAN shim).
func (f Frame) ClearHeader() {
	n := f.HeaderLen()
	for i := range f.buf[:n] {
		f.buf[i] = 0
	}
}
