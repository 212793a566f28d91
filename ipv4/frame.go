// Package ipv4 implements the byte-exact IPv4 header codec used by the
// simulator. Only the fixed 20-byte header (no options, IHL always 5) is
// supported, matching the simulator's scope.
package ipv4

import (
	"encoding/binary"
	"errors"

	"github.com/nettopo/simnet/addr"
)

// HeaderSize is the fixed size in bytes of an IPv4 header with no options.
const HeaderSize = 20

// Protocol identifies the payload protocol carried by an IPv4 packet.
type Protocol uint8

const (
	ProtoICMP Protocol = 1
	ProtoTCP  Protocol = 6
	ProtoUDP  Protocol = 17
)

// DefaultTTL is the TTL the simulator assigns to packets it originates.
const DefaultTTL = 64

var errShort = errors.New("ipv4: buffer shorter than header size")

// Frame is a byte-exact view over an IPv4 packet buffer.
type Frame struct {
	buf []byte
}

// NewFrame wraps buf as an IPv4 frame view. buf must be at least HeaderSize
// bytes.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < HeaderSize {
		return Frame{}, errShort
	}
	return Frame{buf: buf}, nil
}

// RawData returns the underlying buffer backing the frame.
func (f Frame) RawData() []byte { return f.buf }

// VersionAndIHL returns the version and internet-header-length nibbles.
func (f Frame) VersionAndIHL() (version, ihl uint8) {
	v := f.buf[0]
	return v >> 4, v & 0xf
}

// SetVersionAndIHL sets the version and IHL nibbles. The simulator always
// writes version=4, ihl=5 (no options).
func (f Frame) SetVersionAndIHL(version, ihl uint8) { f.buf[0] = version<<4 | ihl&0xf }

// ToS returns the type-of-service byte. The simulator carries it on the
// wire but never inspects it.
func (f Frame) ToS() uint8 { return f.buf[1] }

// SetToS sets the type-of-service byte.
func (f Frame) SetToS(v uint8) { f.buf[1] = v }

// TotalLength returns the total packet length in bytes, header included.
func (f Frame) TotalLength() uint16 { return binary.BigEndian.Uint16(f.buf[2:4]) }

// SetTotalLength sets the total packet length field.
func (f Frame) SetTotalLength(v uint16) { binary.BigEndian.PutUint16(f.buf[2:4], v) }

// ID returns the fragment identification field. The simulator never
// fragments, but carries the field for wire fidelity.
func (f Frame) ID() uint16 { return binary.BigEndian.Uint16(f.buf[4:6]) }

// SetID sets the identification field.
func (f Frame) SetID(v uint16) { binary.BigEndian.PutUint16(f.buf[4:6], v) }

// FlagsAndFragOffset returns the packed flags+fragment-offset field.
func (f Frame) FlagsAndFragOffset() uint16 { return binary.BigEndian.Uint16(f.buf[6:8]) }

// SetFlagsAndFragOffset sets the packed flags+fragment-offset field.
func (f Frame) SetFlagsAndFragOffset(v uint16) { binary.BigEndian.PutUint16(f.buf[6:8], v) }

// TTL returns the time-to-live field.
func (f Frame) TTL() uint8 { return f.buf[8] }

// SetTTL sets the time-to-live field.
func (f Frame) SetTTL(v uint8) { f.buf[8] = v }

// DecTTL decrements the TTL field by one and returns the new value. Callers
// must check for zero themselves; this method does not clamp.
func (f Frame) DecTTL() uint8 {
	f.buf[8]--
	return f.buf[8]
}

// Protocol returns the upper-layer protocol field.
func (f Frame) Protocol() Protocol { return Protocol(f.buf[9]) }

// SetProtocol sets the upper-layer protocol field.
func (f Frame) SetProtocol(p Protocol) { f.buf[9] = uint8(p) }

// Checksum returns the header checksum field. The simulator carries this
// field on the wire for fidelity but never computes or validates it.
func (f Frame) Checksum() uint16 { return binary.BigEndian.Uint16(f.buf[10:12]) }

// SetChecksum sets the header checksum field.
func (f Frame) SetChecksum(v uint16) { binary.BigEndian.PutUint16(f.buf[10:12], v) }

// SourceIP returns the source address field.
func (f Frame) SourceIP() addr.IP { return addr.IP(binary.BigEndian.Uint32(f.buf[12:16])) }

// SetSourceIP sets the source address field.
func (f Frame) SetSourceIP(ip addr.IP) { binary.BigEndian.PutUint32(f.buf[12:16], uint32(ip)) }

// DestinationIP returns the destination address field.
func (f Frame) DestinationIP() addr.IP { return addr.IP(binary.BigEndian.Uint32(f.buf[16:20])) }

// SetDestinationIP sets the destination address field.
func (f Frame) SetDestinationIP(ip addr.IP) { binary.BigEndian.PutUint32(f.buf[16:20], uint32(ip)) }

// Payload returns the bytes following the fixed header, up to totalLength.
func (f Frame) Payload(totalLength int) []byte {
	if totalLength < HeaderSize {
		return nil
	}
	return f.buf[HeaderSize:totalLength]
}

// Init fills in version=4, IHL=5, TTL=DefaultTTL and the given protocol and
// addresses, zeroes ToS, ID, flags/fragment offset and checksum, and leaves
// the total length to the caller.
func Init(buf []byte, proto Protocol, src, dst addr.IP) (Frame, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return Frame{}, err
	}
	f.SetVersionAndIHL(4, 5)
	f.SetToS(0)
	f.SetID(0)
	f.SetFlagsAndFragOffset(0)
	f.SetTTL(DefaultTTL)
	f.SetProtocol(proto)
	f.SetChecksum(0)
	f.SetSourceIP(src)
	f.SetDestinationIP(dst)
	return f, nil
}
