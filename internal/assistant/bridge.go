package assistant

import (
	"maps"
	"strings"

	"github.com/mcpsync/mcpsync/internal/mcp"
)

// Bridging constants. Remote servers are wrapped in the mcp-remote proxy,
// which speaks stdio to the assistant and forwards to the original URL.
const (
	// BridgeCommand launches the proxy.
	BridgeCommand = "npx"

	// bridgeFlag avoids an install prompt.
	bridgeFlag = "-y"

	// bridgePackage is the proxy package reference.
	bridgePackage = "mcp-remote"

	// HeaderEnvPrefix prefixes env keys derived from HTTP headers. The proxy
	// reads these and replays them as headers on the outbound connection.
	HeaderEnvPrefix = "MCP_HEADER_"
)

// HeaderEnvName converts an HTTP header name to its bridge env key:
// every non-alphanumeric character becomes '_', then the result is
// upper-cased and prefixed. Example: "X-API-Key" -> "MCP_HEADER_X_API_KEY".
// The mapping must stay bit-exact; the proxy applies the same convention.
func HeaderEnvName(header string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, header)
	return HeaderEnvPrefix + strings.ToUpper(sanitized)
}

// bridgeRemote converts a remote server into an equivalent stdio server via
// the mcp-remote proxy. Stdio servers pass through unchanged. The original
// URL becomes the final argument; headers are carried as MCP_HEADER_* env
// entries. Pre-existing env keys are preserved unless a header maps onto the
// same key, in which case the header wins.
func bridgeRemote(s *mcp.Server) *mcp.Server {
	if s.IsLocal() {
		return s
	}

	bridged := &mcp.Server{
		Name:    s.Name,
		Kind:    mcp.KindStdio,
		Command: BridgeCommand,
		Args:    []string{bridgeFlag, bridgePackage, s.URL},
	}

	if len(s.Env) > 0 {
		bridged.Env = maps.Clone(s.Env)
	}
	if len(s.Headers) > 0 {
		if bridged.Env == nil {
			bridged.Env = make(map[string]string, len(s.Headers))
		}
		for name, value := range s.Headers {
			bridged.Env[HeaderEnvName(name)] = value
		}
	}

	return bridged
}
