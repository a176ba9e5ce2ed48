package mcp

import (
	"errors"
	"fmt"
)

// Sentinel errors for server validation.
var (
	// ErrMissingName indicates a server has no name.
	ErrMissingName = errors.New("server name is required")

	// ErrMissingCommand indicates a stdio server has no command.
	ErrMissingCommand = errors.New("stdio server requires command")

	// ErrMissingURL indicates a remote server has no URL.
	ErrMissingURL = errors.New("remote server requires url")

	// ErrInvalidKind indicates an unrecognized connection kind.
	ErrInvalidKind = errors.New("invalid connection kind")
)

// ValidationError reports a single invalid server with field context.
// It always names the offending server so batch callers can attribute it.
type ValidationError struct {
	// ServerName identifies which server has the issue.
	ServerName string

	// Field identifies which field has the issue.
	Field string

	// Message is a human-readable description of the problem.
	Message string

	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.ServerName != "" && e.Field != "" {
		return fmt.Sprintf("server %q field %q: %s", e.ServerName, e.Field, e.Message)
	}
	if e.ServerName != "" {
		return fmt.Sprintf("server %q: %s", e.ServerName, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the kind/required-field invariant: a stdio server needs a
// command, a remote server needs a URL. It performs no I/O; consumers call it
// before acquiring any resource.
func (s *Server) Validate() error {
	if s.Name == "" {
		return &ValidationError{
			Field:   "name",
			Message: "missing name",
			Err:     ErrMissingName,
		}
	}

	if s.Kind != "" && !ValidKind(s.Kind) {
		return &ValidationError{
			ServerName: s.Name,
			Field:      "kind",
			Message:    fmt.Sprintf("unknown kind %q (valid: stdio, http, sse)", s.Kind),
			Err:        ErrInvalidKind,
		}
	}

	switch s.EffectiveKind() {
	case KindStdio:
		if s.Command == "" {
			return &ValidationError{
				ServerName: s.Name,
				Field:      "command",
				Message:    "missing command",
				Err:        ErrMissingCommand,
			}
		}
	case KindHTTP, KindSSE:
		if s.URL == "" {
			return &ValidationError{
				ServerName: s.Name,
				Field:      "url",
				Message:    "missing url",
				Err:        ErrMissingURL,
			}
		}
	default:
		return &ValidationError{
			ServerName: s.Name,
			Field:      "command/url",
			Message:    "server must have command (stdio) or url (http/sse)",
			Err:        ErrInvalidKind,
		}
	}

	return nil
}
