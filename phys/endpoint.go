package phys

import (
	"net"

	"github.com/nettopo/simnet/topology"
)

// MaxFrameSize is the single fixed buffer size (including the interface-
// name tag) the physical-emulation layer reads and writes.
const MaxFrameSize = 2048

// MaxIntfNameLen is the fixed width, NUL-padded, of the destination-
// interface-name tag prepended to every on-wire datagram.
const MaxIntfNameLen = topology.MaxIfNameLen

// Endpoint is a node's private loopback UDP socket.
type Endpoint struct {
	node *topology.Node
	conn *net.UDPConn
}

func newEndpoint(node *topology.Node, conn *net.UDPConn) *Endpoint {
	return &Endpoint{node: node, conn: conn}
}

// Node returns the endpoint's owning node.
func (e *Endpoint) Node() *topology.Node { return e.node }

// Send prepends the 16-byte, NUL-padded destination interface name to
// frame and sends it as a single datagram to the peer's port.
func (e *Endpoint) Send(toPort uint16, dstIfName string, frame []byte) error {
	out := make([]byte, MaxIntfNameLen+len(frame))
	copy(out, dstIfName)
	copy(out[MaxIntfNameLen:], frame)
	_, err := e.conn.WriteToUDP(out, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: int(toPort)})
	return err
}

// Close releases the endpoint's socket.
func (e *Endpoint) Close() error { return e.conn.Close() }
