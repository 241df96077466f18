package conformance

import (
	"fmt"

	"github.com/jongio/urlkit/urlparse"
)

// Status is the outcome of one case.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Result is the outcome of one case. Mismatches lists "component: got x,
// want y" lines for failed cases.
type Result struct {
	Index      int      `json:"index"`
	Input      string   `json:"input"`
	Base       *string  `json:"base"`
	Status     Status   `json:"status"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// Report summarizes a run.
type Report struct {
	Total   int      `json:"total"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Results []Result `json:"results"`
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFail {
			out = append(out, res)
		}
	}
	return out
}

// Run evaluates every case.
func Run(cases []Case, opts ...urlparse.Option) *Report {
	r := &Report{Total: len(cases), Results: make([]Result, 0, len(cases))}
	for i, c := range cases {
		res := Check(c, opts...)
		res.Index = i
		switch res.Status {
		case StatusPass:
			r.Passed++
		case StatusFail:
			r.Failed++
		case StatusSkip:
			r.Skipped++
		}
		r.Results = append(r.Results, res)
	}
	return r
}

// Check evaluates a single case.
func Check(c Case, opts ...urlparse.Option) Result {
	res := Result{Input: c.Input, Base: c.Base, Status: StatusPass}
	if c.Input == "" {
		res.Status = StatusSkip
		return res
	}

	var base *urlparse.URL
	if c.Base != nil {
		b, err := urlparse.Parse(*c.Base, nil)
		if err != nil {
			if !c.Failure {
				res.fail("base: %v", err)
			}
			return res
		}
		base = b
	}

	m, err := urlparse.New(c.Input, base, opts...)
	if err != nil {
		res.fail("%v", err)
		return res
	}
	switch {
	case m.Failed() && c.Failure:
		return res
	case m.Failed():
		res.fail("unexpected failure: %v", m.Err())
		return res
	case c.Failure:
		res.fail("expected failure, got %s", m.URL().String())
		return res
	}

	u := m.URL()
	res.compare("href", u.String(), c.Href)
	res.compare("protocol", u.Protocol(), c.Protocol)
	res.compare("username", u.Username, c.Username)
	res.compare("password", u.Password, c.Password)
	res.compare("host", u.HostString(), c.Host)
	res.compare("hostname", u.Hostname(), c.Hostname)
	res.compare("port", u.PortString(), c.Port)
	res.compare("pathname", u.Pathname(), c.Pathname)
	res.compare("search", u.Search(), c.Search)
	res.compare("hash", u.Hash(), c.Hash)
	return res
}

func (r *Result) fail(format string, args ...any) {
	r.Status = StatusFail
	r.Mismatches = append(r.Mismatches, fmt.Sprintf(format, args...))
}

func (r *Result) compare(component, got, want string) {
	if got != want {
		r.fail("%s: got %q, want %q", component, got, want)
	}
}
