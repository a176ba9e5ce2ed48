// Package assistant binds each supported AI coding assistant to its
// capability profile, its transform/filter behavior over canonical MCP
// servers, and its native configuration format.
//
// The assistant set is closed and small, so adapters are plain values in a
// lookup table rather than an interface hierarchy: each [Adapter] carries a
// [CapabilityProfile] plus optional transform and emit functions. The
// [Registry] built by [NewRegistry] is immutable and safe to share across
// concurrent pipeline runs and verification tasks.
package assistant

import (
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// CapabilityProfile describes which connection kinds an assistant accepts
// natively, plus feature flags unrelated to server adaptation.
type CapabilityProfile struct {
	// Stdio, HTTP, and SSE report native support for each connection kind.
	Stdio bool
	HTTP  bool
	SSE   bool

	// Rules reports support for instruction/rules files.
	Rules bool

	// Hooks reports support for lifecycle hooks.
	Hooks bool
}

// Supports reports whether the profile accepts the given connection kind.
func (p CapabilityProfile) Supports(kind string) bool {
	switch kind {
	case mcp.KindStdio:
		return p.Stdio
	case mcp.KindHTTP:
		return p.HTTP
	case mcp.KindSSE:
		return p.SSE
	default:
		return false
	}
}

// TransformFunc rewrites a single server into a form the assistant accepts,
// or returns it unchanged.
type TransformFunc func(*mcp.Server) *mcp.Server

// EmitFunc renders the assistant's native configuration for a server list.
type EmitFunc func([]*mcp.Server) ([]byte, error)

// Adapter binds one assistant to its profile and behavior. The zero
// transform means identity; Filter then drops whatever the profile still
// rejects.
type Adapter struct {
	name       string
	configFile string
	profile    CapabilityProfile
	transform  TransformFunc
	emit       EmitFunc
}

// Name returns the assistant identifier (claude, codex, cursor, gemini, windsurf).
func (a *Adapter) Name() string {
	return a.name
}

// ConfigFile returns the file name the assistant reads its MCP configuration from.
func (a *Adapter) ConfigFile() string {
	return a.configFile
}

// Profile returns the assistant's capability profile.
func (a *Adapter) Profile() CapabilityProfile {
	return a.profile
}

// Filter returns the subset of servers whose kind the profile accepts,
// preserving input order.
func (a *Adapter) Filter(servers []*mcp.Server) []*mcp.Server {
	filtered := make([]*mcp.Server, 0, len(servers))
	for _, s := range servers {
		if a.profile.Supports(s.EffectiveKind()) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Transform returns a same-length, order-preserving slice where each element
// is either the input server or a rewritten replacement of an accepted kind.
func (a *Adapter) Transform(servers []*mcp.Server) []*mcp.Server {
	out := make([]*mcp.Server, len(servers))
	for i, s := range servers {
		if a.transform != nil {
			out[i] = a.transform(s)
		} else {
			out[i] = s
		}
	}
	return out
}

// Emit renders the native configuration bytes for the given servers.
func (a *Adapter) Emit(servers []*mcp.Server) ([]byte, error) {
	return a.emit(servers)
}
