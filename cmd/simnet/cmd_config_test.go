package main

import (
	"testing"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/phys"
	"github.com/nettopo/simnet/topology"
)

func newTestGraph(t *testing.T) *topology.Graph {
	t.Helper()
	g := topology.NewGraph(phys.NewPortAllocator())
	if _, err := g.AddNode("R1"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode("R2"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddInterface("R1", "eth0"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddInterface("R2", "eth0"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddLink("R1", "eth0", "R2", "eth0", 1); err != nil {
		t.Fatal(err)
	}
	return g
}

func withTestGraph(t *testing.T, g *topology.Graph) {
	t.Helper()
	prev := a.graph
	a.graph = g
	t.Cleanup(func() { a.graph = prev })
}

func TestApplyRouteAddAndRemove(t *testing.T) {
	withTestGraph(t, newTestGraph(t))

	if err := applyRoute([]string{"R1", "10.0.0.0", "24", "10.0.0.2", "eth0"}, false); err != nil {
		t.Fatal(err)
	}
	n, _ := a.graph.GetNodeByName("R1")
	route, ok := n.Routes.LookupLPM(addr.MustParseIP("10.0.0.5"))
	if !ok || route.IfName != "eth0" {
		t.Fatalf("expected route via eth0, got %+v ok=%v", route, ok)
	}

	if err := applyRoute([]string{"R1", "10.0.0.0", "24", "10.0.0.2", "eth0"}, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := n.Routes.LookupLPM(addr.MustParseIP("10.0.0.5")); ok {
		t.Fatal("expected route to be removed")
	}
}

func TestApplyRouteRejectsUnknownInterface(t *testing.T) {
	withTestGraph(t, newTestGraph(t))
	err := applyRoute([]string{"R1", "10.0.0.0", "24", "10.0.0.2", "eth9"}, false)
	if err == nil {
		t.Fatal("expected an error for an unknown egress interface")
	}
}

func TestApplyVLANAccessThenTrunk(t *testing.T) {
	withTestGraph(t, newTestGraph(t))
	n, _ := a.graph.GetNodeByName("R1")

	if err := applyVLAN([]string{"R1", "eth0", "access", "10"}); err != nil {
		t.Fatal(err)
	}
	iface, _ := n.InterfaceByName("eth0")
	if iface.L2Mode() != topology.L2ModeAccess || !iface.HasVLAN(10) {
		t.Fatalf("expected access/VLAN10, got mode=%v vlans=%v", iface.L2Mode(), iface.VLANs())
	}

	if err := applyVLAN([]string{"R1", "eth0", "trunk", "10"}); err != nil {
		t.Fatal(err)
	}
	if err := applyVLAN([]string{"R1", "eth0", "trunk", "11"}); err != nil {
		t.Fatal(err)
	}
	if !iface.HasVLAN(10) || !iface.HasVLAN(11) {
		t.Fatalf("expected trunk membership {10,11}, got %v", iface.VLANs())
	}

	if err := applyVLAN([]string{"R1", "eth0", "trunk", "10", "remove"}); err != nil {
		t.Fatal(err)
	}
	if iface.HasVLAN(10) || !iface.HasVLAN(11) {
		t.Fatalf("expected trunk membership {11} after removing 10, got %v", iface.VLANs())
	}
}
