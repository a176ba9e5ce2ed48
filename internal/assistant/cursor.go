package assistant

import (
	"encoding/json"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// cursorServer is Cursor's native server record. The format has no kind
// discriminator; the reader infers it from which fields are present.
type cursorServer struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

type cursorConfig struct {
	MCPServers map[string]*cursorServer `json:"mcpServers"`
}

// newCursor builds the Cursor adapter. Cursor accepts stdio and sse servers;
// streamable-http servers are filtered out.
func newCursor() *Adapter {
	return &Adapter{
		name:       "cursor",
		configFile: "mcp.json",
		profile: CapabilityProfile{
			Stdio: true,
			SSE:   true,
			Rules: true,
		},
		emit: emitCursor,
	}
}

func emitCursor(servers []*mcp.Server) ([]byte, error) {
	cfg := cursorConfig{
		MCPServers: make(map[string]*cursorServer, len(servers)),
	}

	for _, s := range servers {
		cfg.MCPServers[s.Name] = &cursorServer{
			Command: s.Command,
			Args:    s.Args,
			Env:     s.Env,
			URL:     s.URL,
			Headers: s.Headers,
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling Cursor MCP config")
	}
	return append(data, '\n'), nil
}
