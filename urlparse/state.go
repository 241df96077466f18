package urlparse

import "fmt"

// State is a state of the URL parsing state machine. The names returned by
// String follow the URL Standard, for example "special-authority-slashes".
type State int

// Scheme states. SchemeStart is where a parse without an override begins.
const (
	SchemeStart State = iota + 1
	Scheme
	NoScheme
)

// Relative and authority states. Host and Hostname share a handler;
// Hostname as an override rejects a port.
const (
	SpecialRelativeOrAuthority State = iota + 4
	PathOrAuthority
	Relative
	RelativeSlash
	SpecialAuthoritySlashes
	SpecialAuthorityIgnoreSlashes
	Authority
	Host
	Hostname
	Port
)

// File states, entered for the "file" scheme.
const (
	File State = iota + 14
	FileSlash
	FileHost
)

// Path, query and fragment states. PathState is named apart from the Path
// record type.
const (
	PathStart State = iota + 17
	PathState
	OpaquePath
	Query
	Fragment
)

var stateNames = map[State]string{
	SchemeStart:                   "scheme-start",
	Scheme:                        "scheme",
	NoScheme:                      "no-scheme",
	SpecialRelativeOrAuthority:    "special-relative-or-authority",
	PathOrAuthority:               "path-or-authority",
	Relative:                      "relative",
	RelativeSlash:                 "relative-slash",
	SpecialAuthoritySlashes:       "special-authority-slashes",
	SpecialAuthorityIgnoreSlashes: "special-authority-ignore-slashes",
	Authority:                     "authority",
	Host:                          "host",
	Hostname:                      "hostname",
	Port:                          "port",
	File:                          "file",
	FileSlash:                     "file-slash",
	FileHost:                      "file-host",
	PathStart:                     "path-start",
	PathState:                     "path",
	OpaquePath:                    "opaque-path",
	Query:                         "query",
	Fragment:                      "fragment",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState returns the State with the given kebab-case name.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown state %q", ErrInvalidArgument, name)
}
