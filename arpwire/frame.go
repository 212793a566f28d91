// Package arpwire implements the byte-exact ARP packet codec used by the
// simulator. Unlike a general-purpose ARP implementation, the wire format
// here is fixed to Ethernet hardware addresses and IPv4 protocol addresses,
// matching the simulator's L2/L3 stack.
package arpwire

import (
	"encoding/binary"
	"errors"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/ethernet"
)

// Operation is the ARP opcode field.
type Operation uint16

const (
	OpRequest Operation = 1
	OpReply   Operation = 2
)

func (op Operation) String() string {
	switch op {
	case OpRequest:
		return "request"
	case OpReply:
		return "reply"
	default:
		return "unknown"
	}
}

// HeaderSize is the fixed size in bytes of an Ethernet/IPv4 ARP packet:
// hwtype(2)+ptype(2)+hwlen(1)+plen(1)+op(2)+sha(6)+spa(4)+tha(6)+tpa(4).
const HeaderSize = 28

const (
	hwTypeEthernet = 1
	hwLen          = 6
	protoLen       = 4
)

var errShort = errors.New("arpwire: buffer shorter than ARP header size")

// Frame is a byte-exact view over an ARP packet buffer.
type Frame struct {
	buf []byte
}

// NewFrame wraps buf as an ARP frame view. buf must be at least HeaderSize
// bytes.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < HeaderSize {
		return Frame{}, errShort
	}
	return Frame{buf: buf[:HeaderSize]}, nil
}

// RawData returns the underlying buffer backing the frame.
func (f Frame) RawData() []byte { return f.buf }

// Init fills in the fixed hardware/protocol type and length fields for an
// Ethernet/IPv4 ARP packet and sets the operation to op. The address
// fields are left as they are.
func (f Frame) Init(op Operation) {
	binary.BigEndian.PutUint16(f.buf[0:2], hwTypeEthernet)
	binary.BigEndian.PutUint16(f.buf[2:4], uint16(ethernet.TypeIPv4))
	f.buf[4] = hwLen
	f.buf[5] = protoLen
	binary.BigEndian.PutUint16(f.buf[6:8], uint16(op))
}

// Operation returns the ARP opcode.
func (f Frame) Operation() Operation {
	return Operation(binary.BigEndian.Uint16(f.buf[6:8]))
}

// SetOperation sets the ARP opcode.
func (f Frame) SetOperation(op Operation) {
	binary.BigEndian.PutUint16(f.buf[6:8], uint16(op))
}

// SenderMAC returns a pointer to the sender hardware address field.
func (f Frame) SenderMAC() *addr.MAC { return (*addr.MAC)(f.buf[8:14]) }

// SenderIP returns the sender protocol address field.
func (f Frame) SenderIP() addr.IP { return addr.IP(binary.BigEndian.Uint32(f.buf[14:18])) }

// SetSenderIP sets the sender protocol address field.
func (f Frame) SetSenderIP(ip addr.IP) { binary.BigEndian.PutUint32(f.buf[14:18], uint32(ip)) }

// TargetMAC returns a pointer to the target hardware address field.
func (f Frame) TargetMAC() *addr.MAC { return (*addr.MAC)(f.buf[18:24]) }

// TargetIP returns the target protocol address field.
func (f Frame) TargetIP() addr.IP { return addr.IP(binary.BigEndian.Uint32(f.buf[24:28])) }

// SetTargetIP sets the target protocol address field.
func (f Frame) SetTargetIP(ip addr.IP) { binary.BigEndian.PutUint32(f.buf[24:28], uint32(ip)) }

// IsEthernetIPv4 reports whether the header's hardware/protocol type and
// length fields match the simulator's fixed Ethernet/IPv4 ARP format.
func (f Frame) IsEthernetIPv4() bool {
	hwType := binary.BigEndian.Uint16(f.buf[0:2])
	ptype := ethernet.Type(binary.BigEndian.Uint16(f.buf[2:4]))
	return hwType == hwTypeEthernet && ptype == ethernet.TypeIPv4 &&
		f.buf[4] == hwLen && f.buf[5] == protoLen
}

// BuildRequest fills buf (which must be at least HeaderSize bytes) with an
// ARP request asking who has targetIP, from senderMAC/senderIP.
func BuildRequest(buf []byte, senderMAC addr.MAC, senderIP, targetIP addr.IP) (Frame, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return Frame{}, err
	}
	f.Init(OpRequest)
	*f.SenderMAC() = senderMAC
	f.SetSenderIP(senderIP)
	*f.TargetMAC() = addr.MAC{}
	f.SetTargetIP(targetIP)
	return f, nil
}

// BuildReply fills buf (which must be at least HeaderSize bytes) with an
// ARP reply to a request, asserting that ip is reachable at mac.
func BuildReply(buf []byte, mac addr.MAC, ip addr.IP, targetMAC addr.MAC, targetIP addr.IP) (Frame, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return Frame{}, err
	}
	f.Init(OpReply)
	*f.SenderMAC() = mac
	f.SetSenderIP(ip)
	*f.TargetMAC() = targetMAC
	f.SetTargetIP(targetIP)
	return f, nil
}
