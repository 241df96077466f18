package host

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies which variant a Host holds.
type Kind uint8

const (
	// KindNull is the zero Kind: no host at all.
	KindNull Kind = iota
	KindDomain
	KindIPv4
	KindIPv6
	KindOpaque
	// KindEmpty is the empty host, distinct from null. file URLs use it.
	KindEmpty
)

var kindNames = [...]string{
	KindNull:   "null",
	KindDomain: "domain",
	KindIPv4:   "ipv4",
	KindIPv6:   "ipv6",
	KindOpaque: "opaque",
	KindEmpty:  "empty",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Host is a parsed URL host. The zero value is the null host. Hosts are
// comparable with ==.
type Host struct {
	kind Kind
	name string
	ipv4 uint32
	ipv6 [8]uint16
}

// NewDomain returns an ASCII domain host.
func NewDomain(domain string) Host { return Host{kind: KindDomain, name: domain} }

// NewIPv4 returns an IPv4 host.
func NewIPv4(addr uint32) Host { return Host{kind: KindIPv4, ipv4: addr} }

// NewIPv6 returns an IPv6 host.
func NewIPv6(addr [8]uint16) Host { return Host{kind: KindIPv6, ipv6: addr} }

// NewOpaque returns an opaque host. The value must already be percent-encoded.
func NewOpaque(value string) Host { return Host{kind: KindOpaque, name: value} }

// Empty returns the empty host.
func Empty() Host { return Host{kind: KindEmpty} }

// Kind returns the variant held by h.
func (h Host) Kind() Kind { return h.kind }

// IsNull reports whether h is the null host.
func (h Host) IsNull() bool { return h.kind == KindNull }

// IsEmpty reports whether h is the empty host.
func (h Host) IsEmpty() bool { return h.kind == KindEmpty }

// Name returns the domain or opaque host string, and "" for other kinds.
func (h Host) Name() string { return h.name }

// IPv4 returns the address of an IPv4 host, most significant octet first.
func (h Host) IPv4() uint32 { return h.ipv4 }

// IPv6 returns the eight 16-bit pieces of an IPv6 host.
func (h Host) IPv6() [8]uint16 { return h.ipv6 }

// String serializes h. IPv6 addresses are bracketed and compressed, null and
// empty hosts serialize to "".
func (h Host) String() string {
	switch h.kind {
	case KindDomain, KindOpaque:
		return h.name
	case KindIPv4:
		return serializeIPv4(h.ipv4)
	case KindIPv6:
		return "[" + serializeIPv6(h.ipv6) + "]"
	}
	return ""
}

// MarshalJSON encodes the null host as null and every other host as its
// serialization.
func (h Host) MarshalJSON() ([]byte, error) {
	if h.kind == KindNull {
		return []byte("null"), nil
	}
	return json.Marshal(h.String())
}

func serializeIPv4(addr uint32) string {
	var sb strings.Builder
	for i := 3; i >= 0; i-- {
		sb.WriteString(strconv.FormatUint(uint64(addr>>(8*uint(i))&0xFF), 10))
		if i > 0 {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// serializeIPv6 compresses the first longest run of two or more zero pieces.
func serializeIPv6(addr [8]uint16) string {
	compress, best := -1, 1
	for i := 0; i < 8; {
		if addr[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && addr[j] == 0 {
			j++
		}
		if j-i > best {
			compress, best = i, j-i
		}
		i = j
	}

	var sb strings.Builder
	ignore0 := false
	for i := 0; i < 8; i++ {
		if ignore0 && addr[i] == 0 {
			continue
		}
		ignore0 = false
		if compress == i {
			if i == 0 {
				sb.WriteString("::")
			} else {
				sb.WriteByte(':')
			}
			ignore0 = true
			continue
		}
		sb.WriteString(strconv.FormatUint(uint64(addr[i]), 16))
		if i != 7 {
			sb.WriteByte(':')
		}
	}
	return sb.String()
}
