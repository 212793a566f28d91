package tables

import (
	"testing"

	"github.com/nettopo/simnet/addr"
)

func TestRoutingTableDeleteThenLookup(t *testing.T) {
	rt := NewRoutingTable()
	dest := addr.MustParseIP("10.0.0.0")
	rt.Add(dest, 8, addr.MustParseIP("10.0.0.254"), "eth0")
	rt.Delete(dest, 8)
	if _, ok := rt.LookupLPM(addr.MustParseIP("10.1.2.3")); ok {
		t.Fatal("expected no match after delete")
	}
}

func TestRoutingTableReplaceMostRecentWins(t *testing.T) {
	rt := NewRoutingTable()
	dest := addr.MustParseIP("10.0.0.0")
	rt.Add(dest, 8, addr.MustParseIP("10.0.0.1"), "eth0")
	rt.Add(dest, 8, addr.MustParseIP("10.0.0.2"), "eth1")
	r, ok := rt.LookupLPM(addr.MustParseIP("10.5.5.5"))
	if !ok {
		t.Fatal("expected match")
	}
	if r.Gateway != addr.MustParseIP("10.0.0.2") || r.IfName != "eth1" {
		t.Fatalf("got %+v, want most recently added route for the key", r)
	}
}

// TestLPMTiebreak checks that the most-specific prefix wins across
// nested /8, /16, and /24 routes.
func TestLPMTiebreak(t *testing.T) {
	rt := NewRoutingTable()
	rt.Add(addr.MustParseIP("10.0.0.0"), 8, addr.MustParseIP("0.0.0.1"), "oif1")
	rt.Add(addr.MustParseIP("10.1.0.0"), 16, addr.MustParseIP("0.0.0.2"), "oif2")
	rt.Add(addr.MustParseIP("10.1.2.0"), 24, addr.MustParseIP("0.0.0.3"), "oif3")

	cases := []struct {
		ip       string
		wantMask uint8
		wantMiss bool
	}{
		{"10.1.2.7", 24, false},
		{"10.1.3.7", 16, false},
		{"11.0.0.1", 0, true},
	}
	for _, c := range cases {
		r, ok := rt.LookupLPM(addr.MustParseIP(c.ip))
		if ok == c.wantMiss {
			t.Fatalf("LookupLPM(%s): ok = %v, want miss=%v", c.ip, ok, c.wantMiss)
		}
		if !c.wantMiss && r.Mask != c.wantMask {
			t.Fatalf("LookupLPM(%s).Mask = %d, want %d", c.ip, r.Mask, c.wantMask)
		}
	}
}

func TestLPMEmptyTableMisses(t *testing.T) {
	rt := NewRoutingTable()
	if _, ok := rt.LookupLPM(addr.MustParseIP("1.2.3.4")); ok {
		t.Fatal("expected miss on empty table")
	}
}

func TestAddDirect(t *testing.T) {
	rt := NewRoutingTable()
	rt.AddDirect(addr.MustParseIP("192.168.1.0"), 24)
	r, ok := rt.LookupLPM(addr.MustParseIP("192.168.1.5"))
	if !ok || !r.IsDirect {
		t.Fatalf("expected direct route match, got %+v, %v", r, ok)
	}
}
