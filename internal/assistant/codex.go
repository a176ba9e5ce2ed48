package assistant

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// codexServer is Codex CLI's native server record. Codex only launches local
// processes, so the record has no remote fields; remote servers reach it
// through the mcp-remote bridge.
type codexServer struct {
	Command string            `toml:"command"`
	Args    []string          `toml:"args,omitempty"`
	Env     map[string]string `toml:"env,omitempty"`
}

type codexConfig struct {
	MCPServers map[string]*codexServer `toml:"mcp_servers"`
}

// newCodex builds the Codex CLI adapter. Codex accepts only stdio servers;
// its transform bridges http/sse servers through mcp-remote so they survive
// the subsequent filter instead of being dropped.
func newCodex() *Adapter {
	return &Adapter{
		name:       "codex",
		configFile: "config.toml",
		profile: CapabilityProfile{
			Stdio: true,
			Rules: true,
		},
		transform: bridgeRemote,
		emit:      emitCodex,
	}
}

func emitCodex(servers []*mcp.Server) ([]byte, error) {
	cfg := codexConfig{
		MCPServers: make(map[string]*codexServer, len(servers)),
	}

	for _, s := range servers {
		cfg.MCPServers[s.Name] = &codexServer{
			Command: s.Command,
			Args:    s.Args,
			Env:     s.Env,
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling Codex CLI MCP config")
	}
	return data, nil
}
