package topology

import "errors"

var (
	errStarted       = errors.New("topology: graph is read-only after the receiver has started")
	errDupNode       = errors.New("topology: node name already in use")
	errNodeNotFound  = errors.New("topology: no such node")
	errIfaceNotFound = errors.New("topology: no such interface")
)

// PortAllocator assigns the next process-unique loopback port to a new
// node. Implemented by package phys; declared here as an interface so
// topology does not import phys.
type PortAllocator interface {
	Next() uint16
}

// Graph is the named, insertion-ordered collection of nodes that makes up
// a topology. Node/link lifecycle is owned here.
type Graph struct {
	ports   PortAllocator
	order   []string
	nodes   map[string]*Node
	started bool
}

// NewGraph returns an empty topology graph whose nodes draw loopback ports
// from ports.
func NewGraph(ports PortAllocator) *Graph {
	return &Graph{ports: ports, nodes: make(map[string]*Node)}
}

// MarkStarted freezes the node list: AddNode returns an error after this
// is called. The receiver worker reads the node list without locking, so
// it must not change once the worker is running.
func (g *Graph) MarkStarted() { g.started = true }

// AddNode creates a new node with the given name and returns it. Returns
// an error if the name is already in use or the graph has been marked
// started.
func (g *Graph) AddNode(name string) (*Node, error) {
	if g.started {
		return nil, errStarted
	}
	if len(name) > MaxIfNameLen {
		name = name[:MaxIfNameLen]
	}
	if _, exists := g.nodes[name]; exists {
		return nil, errDupNode
	}
	n := newNode(name, g.ports.Next())
	g.nodes[name] = n
	g.order = append(g.order, name)
	return n, nil
}

// GetNodeByName returns the node with the given name, if any.
func (g *Graph) GetNodeByName(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

// AddInterface allocates a new, unattached interface slot on the named
// node.
func (g *Graph) AddInterface(nodeName, ifName string) (*Interface, error) {
	n, ok := g.nodes[nodeName]
	if !ok {
		return nil, errNodeNotFound
	}
	return n.addInterface(ifName)
}

// AddLink creates a link between two existing (by node+interface name)
// interfaces, assigning both endpoints their derived MACs.
func (g *Graph) AddLink(nodeA, ifA, nodeB, ifB string, cost int) (*Link, error) {
	na, ok := g.nodes[nodeA]
	if !ok {
		return nil, errNodeNotFound
	}
	nb, ok := g.nodes[nodeB]
	if !ok {
		return nil, errNodeNotFound
	}
	a, ok := na.InterfaceByName(ifA)
	if !ok {
		return nil, errIfaceNotFound
	}
	b, ok := nb.InterfaceByName(ifB)
	if !ok {
		return nil, errIfaceNotFound
	}
	return newLink(a, b, cost), nil
}
