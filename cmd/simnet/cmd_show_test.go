package main

import (
	"testing"

	"github.com/nettopo/simnet/addr"
)

func TestModeAndAddrStringReflectInterfaceState(t *testing.T) {
	withTestGraph(t, newTestGraph(t))
	n, _ := a.graph.GetNodeByName("R1")
	iface, _ := n.InterfaceByName("eth0")

	if got := modeString(iface); got != "unknown" {
		t.Fatalf("fresh interface mode = %q, want unknown", got)
	}
	if got := addrString(iface); got != "-" {
		t.Fatalf("fresh interface addr = %q, want -", got)
	}

	iface.SetIP(addr.MustParseIP("10.0.0.1"), 24)
	if got := modeString(iface); got != "l3" {
		t.Fatalf("L3 interface mode = %q, want l3", got)
	}
	if got := addrString(iface); got != "10.0.0.1/24" {
		t.Fatalf("L3 interface addr = %q, want 10.0.0.1/24", got)
	}
}

func TestPeerStringReflectsLink(t *testing.T) {
	withTestGraph(t, newTestGraph(t))
	n, _ := a.graph.GetNodeByName("R1")
	iface, _ := n.InterfaceByName("eth0")
	if got := peerString(iface); got != "R2/eth0" {
		t.Fatalf("peerString = %q, want R2/eth0", got)
	}
}
