// Package verify connects to configured servers over their declared
// transports and reports whether each one completes the protocol handshake,
// what capabilities it advertises, and how long the connection took.
package verify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// DefaultTimeout bounds a single server verification when the caller does
// not choose one.
const DefaultTimeout = 30 * time.Second

// Config controls verifier behavior.
type Config struct {
	// Timeout is the per-server deadline. Zero means [DefaultTimeout].
	Timeout time.Duration

	// Debug streams subprocess stderr into the debug log for local servers.
	Debug bool

	// Logger receives progress and diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Verifier checks servers for liveness. A single Verifier is safe for
// concurrent use.
type Verifier struct {
	timeout time.Duration
	debug   bool
	logger  *slog.Logger

	// newSession is swapped out by tests.
	newSession sessionFactory
}

// NewVerifier builds a verifier from cfg, applying defaults for unset
// fields.
func NewVerifier(cfg Config) *Verifier {
	v := &Verifier{
		timeout:    cfg.Timeout,
		debug:      cfg.Debug,
		logger:     cfg.Logger,
		newSession: newMCPSession,
	}
	if v.timeout <= 0 {
		v.timeout = DefaultTimeout
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	return v
}

// Verify checks a single server. It never panics and always returns a
// result with ConnectionTime set, even on validation failure. Servers that
// fail validation are rejected before any process is spawned or socket
// opened.
func (v *Verifier) Verify(ctx context.Context, srv *mcp.Server) Result {
	start := time.Now()
	fail := func(status Status, err error) Result {
		return Result{
			Server:         srv,
			Status:         status,
			Err:            err,
			ConnectionTime: time.Since(start),
		}
	}

	if err := srv.Validate(); err != nil {
		return fail(StatusError, err)
	}

	sess, err := v.newSession(srv, v.debug, v.logger)
	if err != nil {
		return fail(StatusError, err)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	v.logger.Debug("verifying server",
		slog.String("server", srv.Name),
		slog.String("kind", string(srv.EffectiveKind())))

	type outcome struct {
		caps *CapabilitySet
		err  error
	}
	done := make(chan outcome, 1)

	// close may race between the timeout path and the connect goroutine's
	// cleanup; Once keeps the transport from being torn down twice.
	var closeOnce sync.Once
	closeSession := func() {
		closeOnce.Do(func() {
			if err := sess.close(); err != nil {
				v.logger.Debug("session close failed",
					slog.String("server", srv.Name),
					slog.Any("err", err))
			}
		})
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: errors.Newf("connection panicked: %v", r)}
				closeSession()
			}
		}()
		caps, err := sess.connect(ctx)
		done <- outcome{caps: caps, err: err}
		if err != nil {
			closeSession()
		}
	}()

	select {
	case <-ctx.Done():
		// Unblock the connect goroutine's transport calls, then reap it in
		// the background so a wedged subprocess cannot stall the caller.
		// The result is stamped now, so a timeout's ConnectionTime covers
		// the attempt up to the deadline but not the backgrounded close.
		go func() {
			<-done
			closeSession()
		}()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fail(StatusTimeout,
				errors.Newf("connection timed out after %dms", v.timeout.Milliseconds()))
		}
		return fail(StatusError, errors.Wrap(ctx.Err(), "verification canceled"))

	case out := <-done:
		closeSession()
		if out.err != nil {
			return fail(StatusError, out.err)
		}
		// Both channels can be ready at once; a connect that resolves after
		// the deadline fired still counts as a timeout.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fail(StatusTimeout,
				errors.Newf("connection timed out after %dms", v.timeout.Milliseconds()))
		}
		return Result{
			Server:         srv,
			Status:         StatusSuccess,
			Capabilities:   out.caps,
			ConnectionTime: time.Since(start),
		}
	}
}
