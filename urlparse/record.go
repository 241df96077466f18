package urlparse

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jongio/urlkit/host"
)

// URL is a parsed URL record.
//
// Host uses host.KindNull for a URL without a host and host.KindEmpty for the
// empty host of "file:///". A nil Port, Query or Fragment is null, which is
// distinct from an empty string.
type URL struct {
	Scheme   string    `json:"scheme"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Host     host.Host `json:"host"`
	Port     *uint16   `json:"port"`
	Path     Path      `json:"path"`
	Query    *string   `json:"query"`
	Fragment *string   `json:"fragment"`
}

// specialSchemes maps each special scheme to its default port, -1 for none.
var specialSchemes = map[string]int{
	"ftp":   21,
	"file":  -1,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// IsSpecialScheme reports whether scheme is one of ftp, file, http, https, ws
// and wss.
func IsSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

// DefaultPort returns the default port of a special scheme. ok is false for
// file and for non-special schemes.
func DefaultPort(scheme string) (port uint16, ok bool) {
	p, found := specialSchemes[scheme]
	if !found || p < 0 {
		return 0, false
	}
	return uint16(p), true
}

// Clone returns a deep copy of u.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	c := *u
	c.Path = u.Path.clone()
	if u.Port != nil {
		p := *u.Port
		c.Port = &p
	}
	c.Query = cloneString(u.Query)
	c.Fragment = cloneString(u.Fragment)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// IsSpecial reports whether u has a special scheme.
func (u *URL) IsSpecial() bool { return IsSpecialScheme(u.Scheme) }

// HasCredentials reports whether u has a non-empty username or password.
func (u *URL) HasCredentials() bool { return u.Username != "" || u.Password != "" }

// CannotHaveCredentialsOrPort reports whether u's host is null or empty, or
// its scheme is file.
func (u *URL) CannotHaveCredentialsOrPort() bool {
	return u.Host.IsNull() || u.Host.IsEmpty() || u.Scheme == "file"
}

// Protocol returns the scheme followed by ':'.
func (u *URL) Protocol() string { return u.Scheme + ":" }

// Hostname returns the serialized host, or "" when it is null.
func (u *URL) Hostname() string { return u.Host.String() }

// PortString returns the decimal port, or "" when it is null.
func (u *URL) PortString() string {
	if u.Port == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*u.Port), 10)
}

// HostString returns the host followed by ":port" when the port is non-null.
func (u *URL) HostString() string {
	if u.Host.IsNull() {
		return ""
	}
	if u.Port == nil {
		return u.Host.String()
	}
	return u.Host.String() + ":" + u.PortString()
}

// Pathname returns the serialized path.
func (u *URL) Pathname() string { return u.Path.String() }

// Search returns "?" followed by the query, or "" when the query is null or
// empty.
func (u *URL) Search() string {
	if u.Query == nil || *u.Query == "" {
		return ""
	}
	return "?" + *u.Query
}

// Hash returns "#" followed by the fragment, or "" when the fragment is null
// or empty.
func (u *URL) Hash() string {
	if u.Fragment == nil || *u.Fragment == "" {
		return ""
	}
	return "#" + *u.Fragment
}

// String serializes u.
func (u *URL) String() string {
	var sb strings.Builder
	sb.WriteString(u.Scheme)
	sb.WriteByte(':')
	if !u.Host.IsNull() {
		sb.WriteString("//")
		if u.HasCredentials() {
			sb.WriteString(u.Username)
			if u.Password != "" {
				sb.WriteByte(':')
				sb.WriteString(u.Password)
			}
			sb.WriteByte('@')
		}
		sb.WriteString(u.HostString())
	} else if !u.Path.IsOpaque() && len(u.Path.segments) > 1 && u.Path.segments[0] == "" {
		sb.WriteString("/.")
	}
	sb.WriteString(u.Path.String())
	if u.Query != nil {
		sb.WriteByte('?')
		sb.WriteString(*u.Query)
	}
	if u.Fragment != nil {
		sb.WriteByte('#')
		sb.WriteString(*u.Fragment)
	}
	return sb.String()
}

// Path is either a list of segments or, for URLs such as "mailto:x", a single
// opaque string. The zero value is the empty segment list.
type Path struct {
	segments []string
	opaque   string
	isOpaque bool
}

// NewSegmentsPath returns a segment-list path.
func NewSegmentsPath(segments ...string) Path {
	return Path{segments: append([]string(nil), segments...)}
}

// NewOpaquePath returns an opaque path.
func NewOpaquePath(s string) Path {
	return Path{opaque: s, isOpaque: true}
}

// IsOpaque reports whether p is an opaque path.
func (p Path) IsOpaque() bool { return p.isOpaque }

// Segments returns a copy of the segments of a list path.
func (p Path) Segments() []string {
	if p.isOpaque {
		return nil
	}
	return append([]string(nil), p.segments...)
}

// Opaque returns the value of an opaque path.
func (p Path) Opaque() string { return p.opaque }

// Len returns the number of segments, or 1 for an opaque path.
func (p Path) Len() int {
	if p.isOpaque {
		return 1
	}
	return len(p.segments)
}

// String serializes p: the opaque value as is, otherwise "/" before each
// segment.
func (p Path) String() string {
	if p.isOpaque {
		return p.opaque
	}
	var sb strings.Builder
	for _, s := range p.segments {
		sb.WriteByte('/')
		sb.WriteString(s)
	}
	return sb.String()
}

// MarshalJSON encodes an opaque path as a string and a list path as an array.
func (p Path) MarshalJSON() ([]byte, error) {
	if p.isOpaque {
		return json.Marshal(p.opaque)
	}
	if p.segments == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.segments)
}

func (p Path) clone() Path {
	p.segments = append([]string(nil), p.segments...)
	return p
}

func (p *Path) push(segment string) {
	p.segments = append(p.segments, segment)
}

func (p *Path) appendOpaque(s string) {
	p.opaque += s
}

func (p *Path) reset() {
	*p = Path{}
}
