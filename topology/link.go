package topology

import "github.com/nettopo/simnet/addr"

// Link connects two interfaces on (possibly distinct) nodes. MACs are
// derived and assigned to both endpoints at link-creation time.
type Link struct {
	a, b *Interface
	cost int
}

func newLink(a, b *Interface, cost int) *Link {
	l := &Link{a: a, b: b, cost: cost}
	a.link = l
	b.link = l
	a.mac = addr.DeriveMAC(a.name, a.node.name)
	b.mac = addr.DeriveMAC(b.name, b.node.name)
	return l
}

// Endpoints returns the link's two terminating interfaces.
func (l *Link) Endpoints() (*Interface, *Interface) { return l.a, l.b }

// Cost returns the link's configured integer cost. No core operation
// consumes this value, and `show topology` does not print it.
func (l *Link) Cost() int { return l.cost }

// Other returns the interface at the opposite end of self, or nil if self
// is not one of the link's endpoints.
func (l *Link) Other(self *Interface) *Interface {
	switch self {
	case l.a:
		return l.b
	case l.b:
		return l.a
	default:
		return nil
	}
}

// Detach removes the link from both of its endpoint interfaces. The
// interfaces themselves remain owned by their nodes.
func (l *Link) Detach() {
	l.a.link = nil
	l.b.link = nil
}
