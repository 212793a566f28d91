package phys

import "sync/atomic"

// BasePort is the first port number handed out by a PortAllocator.
const BasePort = 40000

// PortAllocator hands out process-unique, monotonically increasing
// loopback port numbers for node receive endpoints, starting at BasePort.
// Implements topology.PortAllocator.
type PortAllocator struct {
	next uint32
}

// NewPortAllocator returns an allocator starting at BasePort.
func NewPortAllocator() *PortAllocator {
	return &PortAllocator{next: BasePort}
}

// Next returns the next unused port number.
func (a *PortAllocator) Next() uint16 {
	return uint16(atomic.AddUint32(&a.next, 1) - 1)
}
