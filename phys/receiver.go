//go:build linux

// Package phys implements the shared physical-emulation floor: a private
// loopback UDP endpoint per node and a single receiver worker that
// multiplexes all of them over one epoll instance, demultiplexes by
// socket, strips the per-frame interface-name tag, and dispatches into
// the addressed interface's receive path.
package phys

import (
	"bytes"
	"net"
	"sync"

	"github.com/nettopo/simnet/internal"
	"github.com/nettopo/simnet/topology"
	"golang.org/x/sys/unix"
)

// Receiver is the single detached worker watching every registered
// node's endpoint. There is no clean shutdown in this core; Stop exists
// for tests only and is not part of the normal process lifecycle.
type Receiver struct {
	mu        sync.Mutex
	epfd      int
	endpoints map[int32]*Endpoint
	byPort    map[uint16]*Endpoint
	stop      chan struct{}
	log       internal.Logger
}

// NewReceiver creates the shared epoll instance. Call Register for every
// node before calling Start.
func NewReceiver(log internal.Logger) (*Receiver, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	return &Receiver{
		epfd:      epfd,
		endpoints: make(map[int32]*Endpoint),
		byPort:    make(map[uint16]*Endpoint),
		stop:      make(chan struct{}),
		log:       log,
	}, nil
}

// Register opens node's loopback UDP socket and adds it to the epoll set.
func (r *Receiver) Register(node *topology.Node) (*Endpoint, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: int(node.Port)})
	if err != nil {
		r.log.Error("phys: cannot bind node endpoint", "node", node.Name(), "port", node.Port, "err", err.Error())
		return nil, err
	}
	rawConn, err := conn.SyscallConn()
	if err != nil {
		conn.Close()
		return nil, err
	}
	var fd int
	ctlErr := rawConn.Control(func(fdv uintptr) { fd = int(fdv) })
	if ctlErr != nil {
		conn.Close()
		return nil, ctlErr
	}

	ep := newEndpoint(node, conn)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoints[int32(fd)] = ep
	r.byPort[node.Port] = ep
	return ep, unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	})
}

// EndpointForPort returns the registered endpoint for a port, if any.
func (r *Receiver) EndpointForPort(port uint16) (*Endpoint, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ep, ok := r.byPort[port]
	return ep, ok
}

// Start launches the detached receive loop. It never returns during
// normal operation; callers typically run it in its own goroutine.
func (r *Receiver) Start() {
	events := make([]unix.EpollEvent, 32)
	buf := make([]byte, MaxFrameSize)
	for {
		select {
		case <-r.stop:
			return
		default:
		}
		n, err := unix.EpollWait(r.epfd, events, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			r.log.Error("phys: epoll_wait failed", "err", err.Error())
			return
		}
		for i := 0; i < n; i++ {
			r.handleReady(events[i].Fd, buf)
		}
	}
}

func (r *Receiver) handleReady(fd int32, buf []byte) {
	r.mu.Lock()
	ep, ok := r.endpoints[fd]
	r.mu.Unlock()
	if !ok {
		return
	}
	nRead, _, err := ep.conn.ReadFromUDP(buf)
	if err != nil || nRead < MaxIntfNameLen {
		return
	}
	ifName := trimTag(buf[:MaxIntfNameLen])
	iface, ok := ep.node.InterfaceByName(ifName)
	if !ok {
		r.log.Warn("phys: unknown destination interface", "node", ep.node.Name(), "iface", ifName)
		return
	}
	size := nRead - MaxIntfNameLen
	// Copy into a fresh buffer with trailing headroom so VLAN tagging
	// downstream (ethernet.Frame.TagWithVLAN) has room to grow into.
	frame := make([]byte, size, MaxFrameSize-MaxIntfNameLen)
	copy(frame, buf[MaxIntfNameLen:nRead])
	iface.Receive(frame, size)
}

func trimTag(tag []byte) string {
	if i := bytes.IndexByte(tag, 0); i >= 0 {
		tag = tag[:i]
	}
	return string(tag)
}

// Stop halts the receive loop. Not part of the simulator's normal
// lifecycle (the worker is meant to run for the process's lifetime); it
// exists so tests can shut down cleanly.
func (r *Receiver) Stop() {
	close(r.stop)
	unix.Close(r.epfd)
}
