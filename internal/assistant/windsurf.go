package assistant

import (
	"encoding/json"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// windsurfServer is Windsurf's native server record. Remote servers use the
// "serverUrl" field name rather than "url".
type windsurfServer struct {
	Command   string            `json:"command,omitempty"`
	Args      []string          `json:"args,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	ServerURL string            `json:"serverUrl,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

type windsurfConfig struct {
	MCPServers map[string]*windsurfServer `json:"mcpServers"`
}

// newWindsurf builds the Windsurf adapter. Windsurf accepts stdio and sse
// servers; streamable-http servers are filtered out.
func newWindsurf() *Adapter {
	return &Adapter{
		name:       "windsurf",
		configFile: "mcp_config.json",
		profile: CapabilityProfile{
			Stdio: true,
			SSE:   true,
		},
		emit: emitWindsurf,
	}
}

func emitWindsurf(servers []*mcp.Server) ([]byte, error) {
	cfg := windsurfConfig{
		MCPServers: make(map[string]*windsurfServer, len(servers)),
	}

	for _, s := range servers {
		cfg.MCPServers[s.Name] = &windsurfServer{
			Command:   s.Command,
			Args:      s.Args,
			Env:       s.Env,
			ServerURL: s.URL,
			Headers:   s.Headers,
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling Windsurf MCP config")
	}
	return append(data, '\n'), nil
}
