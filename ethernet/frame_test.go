package ethernet

import (
	"bytes"
	"testing"

	"github.com/nettopo/simnet/addr"
)

func buildUntagged(payload []byte) []byte {
	buf := make([]byte, HeaderSizeNoVLAN+len(payload)+FCSSize)
	dst := addr.MAC{1, 2, 3, 4, 5, 6}
	src := addr.MAC{6, 5, 4, 3, 2, 1}
	copy(buf[0:6], dst[:])
	copy(buf[6:12], src[:])
	buf[12], buf[13] = 0x08, 0x00 // IPv4
	copy(buf[14:], payload)
	return buf
}

func TestHeaderLenUntagged(t *testing.T) {
	buf := buildUntagged([]byte("hello"))
	f, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	if f.IsVLANTagged() {
		t.Fatal("expected untagged")
	}
	if f.HeaderLen() != HeaderSizeNoVLAN {
		t.Fatalf("HeaderLen() = %d, want %d", f.HeaderLen(), HeaderSizeNoVLAN)
	}
	if f.EtherType() != TypeIPv4 {
		t.Fatalf("EtherType() = %v, want IPv4", f.EtherType())
	}
}

func TestTagUntagRoundTrip(t *testing.T) {
	payload := []byte("payload-data")
	size := HeaderSizeNoVLAN + len(payload) + FCSSize
	// Reserve VLANShimSize bytes of trailing headroom, as the physical-
	// emulation boundary does for every received frame.
	buf := make([]byte, size, size+VLANShimSize)
	orig := buildUntagged(payload)
	copy(buf, orig)

	f, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	tagged, newSize, err := f.TagWithVLAN(10, size)
	if err != nil {
		t.Fatalf("TagWithVLAN: %v", err)
	}
	if newSize != size+ethVLANShim() {
		t.Fatalf("newSize = %d, want %d", newSize, size+ethVLANShim())
	}
	if !tagged.IsVLANTagged() {
		t.Fatal("expected tagged frame")
	}
	if tagged.VLANTag().VID() != 10 {
		t.Fatalf("VID = %d, want 10", tagged.VLANTag().VID())
	}
	if tagged.EtherType() != TypeIPv4 {
		t.Fatalf("EtherType() after tag = %v, want IPv4", tagged.EtherType())
	}

	untagged, restoredSize, err := tagged.Untag(newSize)
	if err != nil {
		t.Fatalf("Untag: %v", err)
	}
	if restoredSize != size {
		t.Fatalf("restoredSize = %d, want %d", restoredSize, size)
	}
	if !bytes.Equal(untagged.RawData()[:restoredSize], orig) {
		t.Fatalf("untag(tag(f)) != f byte-for-byte:\ngot  %x\nwant %x", untagged.RawData()[:restoredSize], orig)
	}
}

func TestUntagNoOpWhenUntagged(t *testing.T) {
	orig := buildUntagged([]byte("x"))
	f, err := NewFrame(orig)
	if err != nil {
		t.Fatal(err)
	}
	f2, size, err := f.Untag(len(orig))
	if err != nil {
		t.Fatal(err)
	}
	if size != len(orig) || !bytes.Equal(f2.RawData(), orig) {
		t.Fatal("Untag on untagged frame must be a no-op")
	}
}

func TestRetagOverwritesInPlace(t *testing.T) {
	payload := []byte("p")
	size := HeaderSizeNoVLAN + len(payload) + FCSSize
	buf := make([]byte, size, size+VLANShimSize)
	copy(buf, buildUntagged(payload))
	f, _ := NewFrame(buf)
	tagged, size1, err := f.TagWithVLAN(5, size)
	if err != nil {
		t.Fatal(err)
	}
	retagged, size2, err := tagged.TagWithVLAN(7, size1)
	if err != nil {
		t.Fatal(err)
	}
	if size2 != size1 {
		t.Fatalf("retagging an already-tagged frame must not change size: %d != %d", size2, size1)
	}
	if retagged.VLANTag().VID() != 7 {
		t.Fatalf("VID = %d, want 7", retagged.VLANTag().VID())
	}
}

func ethVLANShim() int { return VLANShimSize }
