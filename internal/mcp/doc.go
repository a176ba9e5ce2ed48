// Package mcp provides the canonical MCP (Model Context Protocol) server
// model shared by the adapter pipeline and the connection verifier.
//
// # Server Configuration
//
// The [Server] type represents a single MCP server in one of three
// connection kinds:
//
//	// Local stdio server
//	server := &mcp.Server{
//	    Name:    "github",
//	    Command: "npx",
//	    Args:    []string{"-y", "@modelcontextprotocol/server-github"},
//	    Env:     map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
//	}
//
//	// Remote streamable-HTTP server
//	server := &mcp.Server{
//	    Name:    "remote-api",
//	    Kind:    mcp.KindHTTP,
//	    URL:     "https://api.example.com/mcp",
//	    Headers: map[string]string{"Authorization": "Bearer ${API_KEY}"},
//	}
//
// When Kind is unset it is inferred: a Command implies stdio, a bare URL
// implies sse. Use [Server.IsLocal] and [Server.IsRemote] to branch.
//
// # Validation
//
// [Server.Validate] enforces the kind/required-field invariant before any
// I/O happens: stdio requires a command, remote kinds require a URL. It
// returns a typed [*ValidationError] naming the offending server, wrapping
// one of the package sentinels for errors.Is checks.
//
// # Forward Compatibility
//
// [Server] preserves unknown JSON fields through marshal/unmarshal cycles so
// configs written by newer tools survive a round-trip.
package mcp
