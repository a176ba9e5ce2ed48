package verify

import (
	"time"

	"github.com/mcpsync/mcpsync/internal/mcp"
)

// Status classifies the outcome of verifying a single server.
type Status string

const (
	// StatusSuccess means the server completed the initialize handshake.
	StatusSuccess Status = "success"

	// StatusError means the connection or handshake failed.
	StatusError Status = "error"

	// StatusTimeout means the per-server deadline expired first.
	StatusTimeout Status = "timeout"
)

// ToolSummary describes one tool a server advertises, with an estimate of
// the context tokens its definition will consume.
type ToolSummary struct {
	Name        string
	Description string
	Tokens      int
}

// CapabilitySet holds what a live server reported during introspection.
// Resource and prompt listings are best-effort; a server that rejects those
// requests still verifies successfully with the corresponding slice empty.
type CapabilitySet struct {
	ServerName    string
	ServerVersion string

	Tools     []ToolSummary
	Resources []string
	Prompts   []string

	// TotalToolTokens is the sum over Tools.
	TotalToolTokens int
}

// Result is the outcome of verifying one server. Exactly one Result is
// produced per input server, and ConnectionTime is always populated.
type Result struct {
	Server *mcp.Server
	Status Status

	// Capabilities is set only on success.
	Capabilities *CapabilitySet

	// Err is set on error and timeout.
	Err error

	ConnectionTime time.Duration
}

// OK reports whether the server verified successfully.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}
