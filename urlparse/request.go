package urlparse

import "fmt"

// Request describes a parse in string form, as received by the CLI, the HTTP
// API and the MCP tools.
type Request struct {
	Input string `json:"input"`
	Base  string `json:"base,omitempty"`
	// State, when set, is a state name such as "port" or "hostname". The
	// input then overrides that component of Base.
	State string `json:"state,omitempty"`
}

// Run parses r.Base, then runs the machine over r.Input. A base that fails to
// parse is reported as an error wrapping ErrFailure.
func (r Request) Run(opts ...Option) (*Machine, error) {
	var base *URL
	if r.Base != "" {
		b, err := Parse(r.Base, nil)
		if err != nil {
			return nil, fmt.Errorf("base: %w", err)
		}
		base = b
	}

	if r.State != "" {
		state, err := ParseState(r.State)
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, fmt.Errorf("%w: state override %q needs a base URL", ErrInvalidArgument, r.State)
		}
		opts = append(opts, WithURL(base.Clone()), WithStateOverride(state))
		base = nil
	}
	return New(r.Input, base, opts...)
}
