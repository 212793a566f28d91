package addr

import "testing"

func TestParseMACRoundTrip(t *testing.T) {
	s := "DE:AD:BE:EF:00:01"
	m, err := ParseMAC(s)
	if err != nil {
		t.Fatalf("ParseMAC: %v", err)
	}
	if got := m.String(); got != s {
		t.Errorf("String() = %q, want %q", got, s)
	}
}

func TestBroadcast(t *testing.T) {
	if !Broadcast.IsBroadcast() {
		t.Fatal("Broadcast.IsBroadcast() = false")
	}
	if Broadcast.String() != "FF:FF:FF:FF:FF:FF" {
		t.Fatalf("unexpected broadcast string %s", Broadcast.String())
	}
}

func TestDeriveMACDeterministic(t *testing.T) {
	m1 := DeriveMAC("eth0", "A")
	m2 := DeriveMAC("eth0", "A")
	if m1 != m2 {
		t.Fatal("DeriveMAC not deterministic for identical inputs")
	}
	m3 := DeriveMAC("eth0", "B")
	if m1 == m3 {
		t.Fatal("DeriveMAC collided across distinct node names")
	}
	if m1.IsBroadcast() || m1.IsZero() {
		t.Fatal("derived MAC should not be broadcast or zero")
	}
}
