package assistant

import (
	"encoding/json"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// claudeServer is Claude Code's native server record. Remote servers carry a
// "type" discriminator ("http" or "sse"); stdio servers omit it, matching
// the format's default.
type claudeServer struct {
	Type    string            `json:"type,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

type claudeConfig struct {
	MCPServers map[string]*claudeServer `json:"mcpServers"`
}

// newClaude builds the Claude Code adapter. Claude accepts all three
// connection kinds, so its transform is the identity.
func newClaude() *Adapter {
	return &Adapter{
		name:       "claude",
		configFile: ".mcp.json",
		profile: CapabilityProfile{
			Stdio: true,
			HTTP:  true,
			SSE:   true,
			Rules: true,
			Hooks: true,
		},
		emit: emitClaude,
	}
}

func emitClaude(servers []*mcp.Server) ([]byte, error) {
	cfg := claudeConfig{
		MCPServers: make(map[string]*claudeServer, len(servers)),
	}

	for _, s := range servers {
		record := &claudeServer{
			Command: s.Command,
			Args:    s.Args,
			Env:     s.Env,
			URL:     s.URL,
			Headers: s.Headers,
		}
		switch s.EffectiveKind() {
		case mcp.KindHTTP:
			record.Type = "http"
		case mcp.KindSSE:
			record.Type = "sse"
		}
		cfg.MCPServers[s.Name] = record
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling Claude Code MCP config")
	}
	return append(data, '\n'), nil
}
