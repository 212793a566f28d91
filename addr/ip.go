// Package addr implements the IPv4 and MAC address value types shared by
// every layer of the simulator.
package addr

import (
	"errors"
	"strconv"
	"strings"
)

// IP is a 32-bit IPv4 address stored in host-natural (not wire) order.
type IP uint32

// ParseIP parses a dotted-decimal string such as "10.0.0.1" into an IP.
func ParseIP(s string) (IP, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, errors.New("addr: malformed IPv4 address " + strconv.Quote(s))
	}
	var v uint32
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, errors.New("addr: malformed IPv4 address " + strconv.Quote(s))
		}
		v = v<<8 | uint32(n)
	}
	return IP(v), nil
}

// MustParseIP is like ParseIP but panics on error. Intended for tests and
// statically-known topology declarations.
func MustParseIP(s string) IP {
	ip, err := ParseIP(s)
	if err != nil {
		panic(err)
	}
	return ip
}

// String returns the dotted-decimal representation of the address.
func (ip IP) String() string {
	var sb strings.Builder
	sb.Grow(15)
	for i := 3; i >= 0; i-- {
		if i != 3 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(int(ip >> (8 * i) & 0xff)))
	}
	return sb.String()
}

// ApplyMask clears the low 32-maskBits bits, normalizing the address to its
// network prefix. maskBits must be in [0, 32].
func (ip IP) ApplyMask(maskBits uint8) IP {
	if maskBits >= 32 {
		return ip
	}
	return ip &^ (IP(1)<<(32-maskBits) - 1)
}

// IsZero reports whether the address is 0.0.0.0.
func (ip IP) IsZero() bool { return ip == 0 }
