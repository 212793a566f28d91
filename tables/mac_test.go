package tables

import (
	"testing"

	"github.com/nettopo/simnet/addr"
)

func TestMACTableLearn(t *testing.T) {
	tab := NewMACTable()
	mac := addr.MAC{1, 2, 3, 4, 5, 6}
	tab.Learn(mac, "eth0/1")
	e, ok := tab.Lookup(mac)
	if !ok || e.IfName != "eth0/1" {
		t.Fatalf("Lookup() = %+v, %v", e, ok)
	}
}

func TestMACTableRelearn(t *testing.T) {
	tab := NewMACTable()
	mac := addr.MAC{1, 2, 3, 4, 5, 6}
	tab.Learn(mac, "eth0/1")
	tab.Learn(mac, "eth0/2")
	if tab.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after relearn", tab.Len())
	}
	e, _ := tab.Lookup(mac)
	if e.IfName != "eth0/2" {
		t.Fatalf("IfName = %q, want eth0/2", e.IfName)
	}
}
