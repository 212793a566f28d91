package arpwire

import "github.com/nettopo/simnet/addr"
import "testing"

func TestBuildRequestFields(t *testing.T) {
	buf := make([]byte, HeaderSize)
	sender := addr.MAC{1, 2, 3, 4, 5, 6}
	senderIP := addr.MustParseIP("10.0.0.1")
	targetIP := addr.MustParseIP("10.0.0.2")
	f, err := BuildRequest(buf, sender, senderIP, targetIP)
	if err != nil {
		t.Fatal(err)
	}
	if f.Operation() != OpRequest {
		t.Fatalf("Operation() = %v, want request", f.Operation())
	}
	if !f.IsEthernetIPv4() {
		t.Fatal("expected Ethernet/IPv4 ARP format")
	}
	if *f.SenderMAC() != sender {
		t.Fatalf("SenderMAC() = %v, want %v", f.SenderMAC(), sender)
	}
	if f.SenderIP() != senderIP {
		t.Fatalf("SenderIP() = %v, want %v", f.SenderIP(), senderIP)
	}
	if f.TargetIP() != targetIP {
		t.Fatalf("TargetIP() = %v, want %v", f.TargetIP(), targetIP)
	}
	if f.TargetMAC().IsZero() == false {
		t.Fatal("request target MAC should be zero")
	}
}

func TestBuildReplyFields(t *testing.T) {
	buf := make([]byte, HeaderSize)
	mac := addr.MAC{9, 9, 9, 9, 9, 9}
	ip := addr.MustParseIP("192.168.0.1")
	reqMAC := addr.MAC{1, 1, 1, 1, 1, 1}
	reqIP := addr.MustParseIP("192.168.0.2")
	f, err := BuildReply(buf, mac, ip, reqMAC, reqIP)
	if err != nil {
		t.Fatal(err)
	}
	if f.Operation() != OpReply {
		t.Fatalf("Operation() = %v, want reply", f.Operation())
	}
	if *f.SenderMAC() != mac || f.SenderIP() != ip {
		t.Fatal("reply sender fields mismatch")
	}
	if *f.TargetMAC() != reqMAC || f.TargetIP() != reqIP {
		t.Fatal("reply target fields mismatch")
	}
}

func TestNewFrameTooShort(t *testing.T) {
	if _, err := NewFrame(make([]byte, HeaderSize-1)); err == nil {
		t.Fatal("expected error for short buffer")
	}
}
