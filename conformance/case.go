package conformance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jongio/urlkit/security"
)

// Case is one object entry of urltestdata.json.
type Case struct {
	Input    string  `json:"input"`
	Base     *string `json:"base"`
	Href     string  `json:"href,omitempty"`
	Protocol string  `json:"protocol,omitempty"`
	Username string  `json:"username,omitempty"`
	Password string  `json:"password,omitempty"`
	Host     string  `json:"host,omitempty"`
	Hostname string  `json:"hostname,omitempty"`
	Port     string  `json:"port,omitempty"`
	Pathname string  `json:"pathname,omitempty"`
	Search   string  `json:"search,omitempty"`
	Hash     string  `json:"hash,omitempty"`
	Failure  bool    `json:"failure,omitempty"`
}

// Decode parses a urltestdata.json document, dropping comment strings.
func Decode(data []byte) ([]Case, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode test data: %w", err)
	}

	cases := make([]Case, 0, len(entries))
	for i, raw := range entries {
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '"' {
			continue
		}
		var c Case
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("failed to decode entry %d: %w", i, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// LoadFile reads and decodes a local test data file.
func LoadFile(path string) ([]Case, error) {
	if err := security.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read test data: %w", err)
	}
	return Decode(data)
}
