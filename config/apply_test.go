package config

import (
	"testing"

	"github.com/nettopo/simnet/addr"
)

type seqPorts struct{ next uint16 }

func (p *seqPorts) Next() uint16 {
	p.next++
	return 40000 + p.next - 1
}

func TestApplyBuildsLinkedHosts(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{
			{Name: "A", Loopback: "127.0.0.1", Interfaces: []InterfaceSpec{
				{Name: "eth0", IP: "10.0.0.1", Mask: 24},
			}},
			{Name: "B", Interfaces: []InterfaceSpec{
				{Name: "eth0", IP: "10.0.0.2", Mask: 24},
			}},
		},
		Links: []LinkSpec{
			{A: EndpointSpec{Node: "A", Interface: "eth0"}, Z: EndpointSpec{Node: "B", Interface: "eth0"}, Cost: 1},
		},
	}

	g, err := Apply(doc, &seqPorts{})
	if err != nil {
		t.Fatal(err)
	}
	a, ok := g.GetNodeByName("A")
	if !ok {
		t.Fatal("node A missing")
	}
	iface, ok := a.InterfaceByName("eth0")
	if !ok {
		t.Fatal("A.eth0 missing")
	}
	if !iface.IsL3Mode() {
		t.Fatal("A.eth0 should be L3 mode after IP config")
	}
	if peer := iface.PeerInterface(); peer == nil || peer.Node().Name() != "B" {
		t.Fatal("A.eth0 should be linked to B.eth0")
	}
	if _, ok := a.Routes.LookupLPM(addr.MustParseIP("10.0.0.2")); !ok {
		t.Fatal("expected an implicit direct route for A's configured subnet")
	}
}

func TestApplyVLANConfig(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{
			{Name: "SW", Interfaces: []InterfaceSpec{
				{Name: "eth0/1", L2Mode: "access", VLAN: 10},
				{Name: "eth0/2", L2Mode: "trunk", TrunkVLANs: []uint16{10, 11}},
			}},
		},
	}
	g, err := Apply(doc, &seqPorts{})
	if err != nil {
		t.Fatal(err)
	}
	sw, _ := g.GetNodeByName("SW")
	access, _ := sw.InterfaceByName("eth0/1")
	if !access.HasVLAN(10) {
		t.Fatal("expected access port in VLAN 10")
	}
	trunk, _ := sw.InterfaceByName("eth0/2")
	if !trunk.HasVLAN(10) || !trunk.HasVLAN(11) {
		t.Fatal("expected trunk membership {10, 11}")
	}
}

func TestApplyUnknownLinkEndpointFails(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{{Name: "A", Interfaces: []InterfaceSpec{{Name: "eth0"}}}},
		Links: []LinkSpec{
			{A: EndpointSpec{Node: "A", Interface: "eth0"}, Z: EndpointSpec{Node: "GHOST", Interface: "eth0"}},
		},
	}
	if _, err := Apply(doc, &seqPorts{}); err == nil {
		t.Fatal("expected an error referencing an unknown node")
	}
}

func TestApplyRoutes(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{
			{Name: "R", Interfaces: []InterfaceSpec{{Name: "eth0", IP: "10.0.0.1", Mask: 24}}},
		},
		Routes: []RouteSpec{
			{Node: "R", Dest: "192.168.0.0", Mask: 16, Gateway: "10.0.0.254", Interface: "eth0"},
		},
	}
	g, err := Apply(doc, &seqPorts{})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := g.GetNodeByName("R")
	route, ok := r.Routes.LookupLPM(addr.MustParseIP("192.168.5.5"))
	if !ok || route.IsDirect {
		t.Fatal("expected a configured gateway route to match")
	}
	if route.Gateway != addr.MustParseIP("10.0.0.254") {
		t.Fatalf("unexpected gateway %s", route.Gateway)
	}
}
