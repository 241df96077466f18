// Package mcptool serves the URL and host parsers as Model Context Protocol
// tools over stdio.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"

	"github.com/jongio/urlkit/host"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/metrics"
	"github.com/jongio/urlkit/security"
	"github.com/jongio/urlkit/urlparse"
)

const (
	source = "mcp"

	// Tool names.
	ParseURLTool  = "parse_url"
	ParseHostTool = "parse_host"
)

// Options configures Tools.
type Options struct {
	// RateLimit is calls per second across all tools. Zero disables limiting.
	RateLimit      float64
	Burst          int
	MaxInputLength int
}

// Tools holds the tool handlers and their shared limiter.
type Tools struct {
	opts    Options
	limiter *rate.Limiter
	logger  *logutil.ComponentLogger
}

// New returns Tools configured by opts.
func New(opts Options) *Tools {
	t := &Tools{opts: opts, logger: logutil.NewLogger("mcp")}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return t
}

// HostResult is the parse_host response.
type HostResult struct {
	Input            string   `json:"input"`
	Kind             string   `json:"kind,omitempty"`
	Host             string   `json:"host,omitempty"`
	Failure          bool     `json:"failure"`
	Error            string   `json:"error,omitempty"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
}

// NewServer registers both tools on a new MCP server.
func (t *Tools) NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer("urlkit", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool(ParseURLTool,
		mcp.WithDescription("Parse a URL with the WHATWG URL Standard parser. Returns the URL record, its serialization, and any validation errors."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The URL string to parse")),
		mcp.WithString("base", mcp.Description("Optional base URL for relative input")),
		mcp.WithString("state", mcp.Description("Optional state override such as \"port\" or \"hostname\"; the input then replaces that component of base")),
	), t.HandleParseURL)

	s.AddTool(mcp.NewTool(ParseHostTool,
		mcp.WithDescription("Parse a host as a domain, IPv4 address, IPv6 address or opaque host."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The host string, IPv6 addresses in brackets")),
		mcp.WithBoolean("opaque", mcp.Description("Parse as the opaque host of a non-special URL")),
	), t.HandleParseHost)

	return s
}

// Serve runs the MCP server on stdin and stdout until the client disconnects.
func (t *Tools) Serve(version string) error {
	t.logger.Info("serving MCP over stdio")
	return server.ServeStdio(t.NewServer(version))
}

// HandleParseURL implements the parse_url tool.
func (t *Tools) HandleParseURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.checkRateLimit(ParseURLTool); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := urlparse.Request{
		Input: request.GetString("input", ""),
		Base:  request.GetString("base", ""),
		State: request.GetString("state", ""),
	}

	if err := t.validate(req.Input, req.Base); err != nil {
		metrics.RecordInvalid(source)
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	m, err := req.Run()
	if err != nil {
		metrics.RecordInvalid(source)
		return mcp.NewToolResultError(err.Error()), nil
	}
	metrics.RecordParse(source, m, time.Since(start))
	t.logger.Debug("parse_url", "input", req.Input, "failure", m.Failed())

	return marshalToolResult(m.Result()), nil
}

// HandleParseHost implements the parse_host tool.
func (t *Tools) HandleParseHost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.checkRateLimit(ParseHostTool); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opaque := request.GetBool("opaque", false)
	if err := t.validate(input); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := HostResult{Input: input}
	p := host.Parser{Report: func(err error) {
		res.ValidationErrors = append(res.ValidationErrors, err.Error())
	}}
	h, err := p.Parse(input, opaque)
	if err != nil {
		res.Failure = true
		res.Error = err.Error()
	} else {
		res.Kind = h.Kind().String()
		res.Host = h.String()
	}
	t.logger.Debug("parse_host", "input", input, "failure", res.Failure)

	return marshalToolResult(res), nil
}

func (t *Tools) checkRateLimit(tool string) error {
	if t.limiter == nil || t.limiter.Allow() {
		return nil
	}
	metrics.RecordRateLimited(source)
	return fmt.Errorf("rate limit exceeded for tool %q, please wait before retrying", tool)
}

func (t *Tools) validate(values ...string) error {
	for _, v := range values {
		if err := security.ValidateInput("input", v, t.opts.MaxInputLength); err != nil {
			return err
		}
	}
	return nil
}

// marshalToolResult returns data as indented JSON text.
func marshalToolResult(data any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal result: " + err.Error())
	}
	return mcp.NewToolResultText(string(jsonData))
}
