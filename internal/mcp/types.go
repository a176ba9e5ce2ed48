package mcp

import (
	"encoding/json"
	"maps"
	"slices"
)

// Connection kind constants for MCP server communication.
const (
	// KindStdio indicates a local process spoken to via stdin/stdout.
	// This is the default kind when a Command is specified.
	KindStdio = "stdio"

	// KindHTTP indicates a remote server using streamable HTTP.
	KindHTTP = "http"

	// KindSSE indicates a remote server using Server-Sent Events.
	KindSSE = "sse"
)

// Kinds lists the valid connection kinds in canonical order.
func Kinds() []string {
	return []string{KindStdio, KindHTTP, KindSSE}
}

// ValidKind reports whether kind names a known connection kind.
func ValidKind(kind string) bool {
	return kind == KindStdio || kind == KindHTTP || kind == KindSSE
}

// Server is the canonical, assistant-neutral description of one MCP server.
// Adapters translate it into each assistant's native configuration shape and
// the verifier connects to it directly.
type Server struct {
	// Name is the server's unique identifier within a list.
	Name string `json:"name"`

	// Kind is the connection kind: "stdio", "http", or "sse".
	// Defaults to "stdio" if Command is set, "sse" if only URL is set.
	Kind string `json:"kind,omitempty"`

	// Command is the executable path for stdio servers.
	Command string `json:"command,omitempty"`

	// Args are command-line arguments passed to Command.
	Args []string `json:"args,omitempty"`

	// Env contains environment variables for the server process.
	Env map[string]string `json:"env,omitempty"`

	// URL is the endpoint for http and sse servers.
	URL string `json:"url,omitempty"`

	// Headers contains HTTP headers for remote connections.
	Headers map[string]string `json:"headers,omitempty"`

	// unknownFields stores JSON fields not explicitly defined in this struct.
	// This ensures forward compatibility when MCP adds new server fields.
	unknownFields map[string]json.RawMessage
}

// EffectiveKind returns the server's kind, inferring it from the populated
// fields when Kind is unset.
func (s *Server) EffectiveKind() string {
	if s.Kind != "" {
		return s.Kind
	}
	if s.Command != "" {
		return KindStdio
	}
	if s.URL != "" {
		return KindSSE
	}
	return ""
}

// IsLocal returns true if this server runs as a local process.
func (s *Server) IsLocal() bool {
	return s.EffectiveKind() == KindStdio
}

// IsRemote returns true if this server is reached over HTTP or SSE.
func (s *Server) IsRemote() bool {
	k := s.EffectiveKind()
	return k == KindHTTP || k == KindSSE
}

// Clone returns a deep copy of the server. Transforms operate on clones so
// the caller's input stays untouched.
func (s *Server) Clone() *Server {
	c := &Server{
		Name:    s.Name,
		Kind:    s.Kind,
		Command: s.Command,
		URL:     s.URL,
		Args:    slices.Clone(s.Args),
	}
	if s.Env != nil {
		c.Env = maps.Clone(s.Env)
	}
	if s.Headers != nil {
		c.Headers = maps.Clone(s.Headers)
	}
	if s.unknownFields != nil {
		c.unknownFields = maps.Clone(s.unknownFields)
	}
	return c
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (s *Server) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)

	// Copy unknown fields first (so known fields take precedence)
	for k, v := range s.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		result[k] = val
	}

	result["name"] = s.Name
	if s.Kind != "" {
		result["kind"] = s.Kind
	}
	if s.Command != "" {
		result["command"] = s.Command
	}
	if len(s.Args) > 0 {
		result["args"] = s.Args
	}
	if len(s.Env) > 0 {
		result["env"] = s.Env
	}
	if s.URL != "" {
		result["url"] = s.URL
	}
	if len(s.Headers) > 0 {
		result["headers"] = s.Headers
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (s *Server) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	known := map[string]any{
		"name":    &s.Name,
		"kind":    &s.Kind,
		"command": &s.Command,
		"args":    &s.Args,
		"env":     &s.Env,
		"url":     &s.URL,
		"headers": &s.Headers,
	}
	for key, dst := range known {
		if v, ok := raw[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return err
			}
			delete(raw, key)
		}
	}

	if len(raw) > 0 {
		s.unknownFields = raw
	}

	return nil
}
