package assistant

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// geminiServer is Gemini CLI's native server record in its TOML settings.
type geminiServer struct {
	Command string            `toml:"command,omitempty"`
	Args    []string          `toml:"args,omitempty"`
	Env     map[string]string `toml:"env,omitempty"`
	URL     string            `toml:"url,omitempty"`
	Headers map[string]string `toml:"headers,omitempty"`
}

type geminiConfig struct {
	MCPServers map[string]*geminiServer `toml:"mcpServers"`
}

// newGemini builds the Gemini CLI adapter. Gemini accepts stdio and
// streamable-http servers; sse servers are filtered out.
func newGemini() *Adapter {
	return &Adapter{
		name:       "gemini",
		configFile: "settings.toml",
		profile: CapabilityProfile{
			Stdio: true,
			HTTP:  true,
			Rules: true,
		},
		emit: emitGemini,
	}
}

func emitGemini(servers []*mcp.Server) ([]byte, error) {
	cfg := geminiConfig{
		MCPServers: make(map[string]*geminiServer, len(servers)),
	}

	for _, s := range servers {
		cfg.MCPServers[s.Name] = &geminiServer{
			Command: s.Command,
			Args:    s.Args,
			Env:     s.Env,
			URL:     s.URL,
			Headers: s.Headers,
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling Gemini CLI MCP config")
	}
	return data, nil
}
