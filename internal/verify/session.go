package verify

import (
	"bufio"
	"context"
	"log/slog"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

const (
	clientName    = "mcpsync"
	clientVersion = "1.0.0"
)

// session is one verification attempt against a single server. The
// interface exists so the verifier's timeout and cancellation behavior can
// be exercised without spawning processes or opening sockets.
type session interface {
	// connect performs the transport start, the initialize handshake, and
	// capability introspection.
	connect(ctx context.Context) (*CapabilitySet, error)

	// close releases the transport. It must be safe to call more than once
	// and concurrently with connect.
	close() error
}

// sessionFactory builds a session for a server. The verifier owns exactly
// one default implementation; tests swap in stubs.
type sessionFactory func(srv *mcp.Server, debug bool, logger *slog.Logger) (session, error)

// mcpSession is the real session backed by an mcp-go client.
type mcpSession struct {
	server *mcp.Server
	client *mcpclient.Client
	stdio  *transport.Stdio
	debug  bool
	logger *slog.Logger
}

func newMCPSession(srv *mcp.Server, debug bool, logger *slog.Logger) (session, error) {
	t, err := newTransport(srv)
	if err != nil {
		return nil, err
	}
	s := &mcpSession{
		server: srv,
		client: mcpclient.NewClient(t),
		debug:  debug,
		logger: logger,
	}
	if stdio, ok := t.(*transport.Stdio); ok {
		s.stdio = stdio
	}
	return s, nil
}

func (s *mcpSession) connect(ctx context.Context) (*CapabilitySet, error) {
	if err := s.client.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "start transport")
	}
	if s.debug && s.stdio != nil {
		go s.streamStderr()
	}

	initReq := mcpgo.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpgo.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}
	initReq.Params.Capabilities = mcpgo.ClientCapabilities{}

	initResult, err := s.client.Initialize(ctx, initReq)
	if err != nil {
		return nil, errors.Wrap(err, "initialize")
	}

	caps := &CapabilitySet{
		ServerName:    initResult.ServerInfo.Name,
		ServerVersion: initResult.ServerInfo.Version,
	}

	// The three listings are each best-effort. Plenty of servers advertise
	// a capability and then reject the list request, so a failure here
	// downgrades to a debug log and an empty category instead of failing
	// the server.
	if initResult.Capabilities.Tools != nil {
		toolsResult, err := s.client.ListTools(ctx, mcpgo.ListToolsRequest{})
		if err != nil {
			s.logger.Debug("tool listing failed",
				slog.String("server", s.server.Name),
				slog.Any("err", err))
		} else {
			for _, tool := range toolsResult.Tools {
				summary := ToolSummary{
					Name:        tool.Name,
					Description: tool.Description,
					Tokens:      estimateToolTokens(tool),
				}
				caps.Tools = append(caps.Tools, summary)
				caps.TotalToolTokens += summary.Tokens
			}
		}
	}
	if initResult.Capabilities.Resources != nil {
		resourcesResult, err := s.client.ListResources(ctx, mcpgo.ListResourcesRequest{})
		if err != nil {
			s.logger.Debug("resource listing failed",
				slog.String("server", s.server.Name),
				slog.Any("err", err))
		} else {
			for _, res := range resourcesResult.Resources {
				caps.Resources = append(caps.Resources, res.Name)
			}
		}
	}
	if initResult.Capabilities.Prompts != nil {
		promptsResult, err := s.client.ListPrompts(ctx, mcpgo.ListPromptsRequest{})
		if err != nil {
			s.logger.Debug("prompt listing failed",
				slog.String("server", s.server.Name),
				slog.Any("err", err))
		} else {
			for _, prompt := range promptsResult.Prompts {
				caps.Prompts = append(caps.Prompts, prompt.Name)
			}
		}
	}

	return caps, nil
}

// streamStderr forwards the subprocess stderr to the debug log, one line
// per record. It exits when the process side of the pipe closes.
func (s *mcpSession) streamStderr() {
	scanner := bufio.NewScanner(s.stdio.Stderr())
	for scanner.Scan() {
		s.logger.Debug("server stderr",
			slog.String("server", s.server.Name),
			slog.String("line", scanner.Text()))
	}
}

func (s *mcpSession) close() error {
	return s.client.Close()
}
