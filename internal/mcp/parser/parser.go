// Package parser loads canonical MCP server lists from JSON or YAML input.
// It is the input boundary for the pipeline and the verifier: both consume
// the []*mcp.Server it produces and impose no syntax of their own.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mcpsync/mcpsync/internal/mcp"
	"github.com/mcpsync/mcpsync/pkg/fileutil"
)

// ErrInvalidInput indicates the input is not valid JSON or YAML.
// The map-shaped input makes duplicate server names unrepresentable, so
// uniqueness needs no separate check here.
var ErrInvalidInput = errors.New("invalid server list")

// ParseError wraps errors that occur during parsing with path context.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parsing server list %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parsing server list: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// fileConfig is the accepted file shape: a map of server name to definition
// under the conventional "mcpServers" key.
type fileConfig struct {
	MCPServers map[string]*serverSpec `json:"mcpServers" yaml:"mcpServers"`
}

// serverSpec mirrors mcp.Server for file decoding. YAML cannot reuse the
// canonical type's custom JSON unmarshaler, so both formats decode through
// this intermediate.
type serverSpec struct {
	Kind    string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Command string            `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	URL     string            `json:"url,omitempty" yaml:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

func (s *serverSpec) toServer(name string) *mcp.Server {
	return &mcp.Server{
		Name:    name,
		Kind:    s.Kind,
		Command: s.Command,
		Args:    s.Args,
		Env:     s.Env,
		URL:     s.URL,
		Headers: s.Headers,
	}
}

// Parse reads a canonical server list from JSON bytes.
// Accepts {"mcpServers": {...}} or a bare name->definition map.
// Servers are returned sorted by name so downstream output is deterministic.
func Parse(data []byte) ([]*mcp.Server, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if cfg.MCPServers == nil {
		var servers map[string]*serverSpec
		if err := json.Unmarshal(data, &servers); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		cfg.MCPServers = servers
	}

	return toList(cfg.MCPServers), nil
}

// ParseYAML reads a canonical server list from YAML bytes.
// Accepts the same shapes as Parse.
func ParseYAML(data []byte) ([]*mcp.Server, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if cfg.MCPServers == nil {
		var servers map[string]*serverSpec
		if err := yaml.Unmarshal(data, &servers); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		cfg.MCPServers = servers
	}

	return toList(cfg.MCPServers), nil
}

// ParseFile reads a server list from a file, choosing the format by
// extension (.yaml/.yml for YAML, anything else JSON).
func ParseFile(path string) ([]*mcp.Server, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var servers []*mcp.Server
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		servers, err = ParseYAML(data)
	default:
		servers, err = Parse(data)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return servers, nil
}

func toList(specs map[string]*serverSpec) []*mcp.Server {
	names := slices.Sorted(maps.Keys(specs))
	servers := make([]*mcp.Server, 0, len(names))
	for _, name := range names {
		if specs[name] == nil {
			continue
		}
		servers = append(servers, specs[name].toServer(name))
	}
	return servers
}
