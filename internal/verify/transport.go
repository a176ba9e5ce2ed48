package verify

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mark3labs/mcp-go/client/transport"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// newTransport builds the wire transport for a server. The server must
// already have passed validation; an unexpected kind here is a bug.
//
// Headers are attached on the SSE path. The streamable HTTP transport does
// not carry custom headers yet, so servers behind header-authenticated HTTP
// endpoints will fail the handshake rather than silently skip auth.
func newTransport(srv *mcp.Server) (transport.Interface, error) {
	switch kind := srv.EffectiveKind(); kind {
	case mcp.KindStdio:
		return transport.NewStdio(srv.Command, envSlice(srv.Env), srv.Args...), nil
	case mcp.KindHTTP:
		t, err := transport.NewStreamableHTTP(srv.URL)
		if err != nil {
			return nil, errors.Wrapf(err, "http transport for %q", srv.Name)
		}
		return t, nil
	case mcp.KindSSE:
		var opts []transport.ClientOption
		if len(srv.Headers) > 0 {
			opts = append(opts, transport.WithHeaders(srv.Headers))
		}
		t, err := transport.NewSSE(srv.URL, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "sse transport for %q", srv.Name)
		}
		return t, nil
	default:
		return nil, errors.Newf("unsupported transport kind %q for %q", kind, srv.Name)
	}
}

// envSlice converts an env map to KEY=VALUE form, sorted so subprocess
// environments are reproducible across runs.
func envSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for _, key := range slices.Sorted(maps.Keys(env)) {
		out = append(out, fmt.Sprintf("%s=%s", key, env[key]))
	}
	return out
}
