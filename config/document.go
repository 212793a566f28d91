// Package config loads a topology declaration from a YAML document into
// a topology.Graph: a plain unmarshal into a typed document, followed by
// a cross-reference validation pass as the document is applied.
package config

// Document is the top-level shape of a topology YAML file.
type Document struct {
	Nodes  []NodeSpec  `yaml:"nodes"`
	Links  []LinkSpec  `yaml:"links"`
	Routes []RouteSpec `yaml:"routes,omitempty"`
}

// NodeSpec declares one node and its interfaces.
type NodeSpec struct {
	Name       string          `yaml:"name"`
	Loopback   string          `yaml:"loopback,omitempty"`
	Interfaces []InterfaceSpec `yaml:"interfaces,omitempty"`
}

// InterfaceSpec declares one interface slot on a node. An interface is
// either L3 (IP+Mask set) or L2 (L2Mode set); never both, matching
// topology.Interface's mutual-exclusion rule.
type InterfaceSpec struct {
	Name string `yaml:"name"`

	IP   string `yaml:"ip,omitempty"`
	Mask uint8  `yaml:"mask,omitempty"`

	L2Mode     string   `yaml:"l2_mode,omitempty"` // "access" | "trunk"
	VLAN       uint16   `yaml:"vlan,omitempty"`    // access: single VID
	TrunkVLANs []uint16 `yaml:"trunk_vlans,omitempty"`
}

// LinkSpec declares one link between two node interfaces.
type LinkSpec struct {
	A    EndpointSpec `yaml:"a"`
	Z    EndpointSpec `yaml:"z"`
	Cost int          `yaml:"cost,omitempty"`
}

// EndpointSpec names one side of a link.
type EndpointSpec struct {
	Node      string `yaml:"node"`
	Interface string `yaml:"interface"`
}

// RouteSpec declares one configured (non-direct) route on a node, matching
// the `config route <node> <dest> <mask> <gw-ip> <oif>` CLI verb.
type RouteSpec struct {
	Node      string `yaml:"node"`
	Dest      string `yaml:"dest"`
	Mask      uint8  `yaml:"mask"`
	Gateway   string `yaml:"gateway"`
	Interface string `yaml:"interface"`
}
