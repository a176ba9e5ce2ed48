package verify

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/logging"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// stubSession fakes a server connection without any process or socket.
type stubSession struct {
	caps  *CapabilitySet
	err   error
	delay time.Duration
	block bool
	panic bool

	closeOnce sync.Once
	closed    chan struct{}
}

func newStubSession() *stubSession {
	return &stubSession{closed: make(chan struct{})}
}

func (s *stubSession) connect(ctx context.Context) (*CapabilitySet, error) {
	if s.panic {
		panic("stub blew up")
	}
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.caps, s.err
}

func (s *stubSession) close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func newTestVerifier(t *testing.T, timeout time.Duration, sessions map[string]*stubSession, calls *atomic.Int32) *Verifier {
	t.Helper()
	v := NewVerifier(Config{Timeout: timeout, Logger: logging.NewDiscard()})
	v.newSession = func(srv *mcp.Server, debug bool, logger *slog.Logger) (session, error) {
		if calls != nil {
			calls.Add(1)
		}
		s, ok := sessions[srv.Name]
		if !ok {
			t.Fatalf("no stub session for %q", srv.Name)
		}
		return s, nil
	}
	return v
}

func TestVerify_Success(t *testing.T) {
	sess := newStubSession()
	sess.caps = &CapabilitySet{
		ServerName:    "echo-server",
		ServerVersion: "1.0.0",
		Tools:         []ToolSummary{{Name: "echo", Tokens: 20}},
	}
	v := newTestVerifier(t, time.Second, map[string]*stubSession{"echo": sess}, nil)

	r := v.Verify(t.Context(), &mcp.Server{Name: "echo", Command: "echo"})

	if r.Status != StatusSuccess {
		t.Fatalf("Status = %q (%v), want success", r.Status, r.Err)
	}
	if r.Capabilities.ServerName != "echo-server" {
		t.Errorf("ServerName = %q", r.Capabilities.ServerName)
	}
	if r.ConnectionTime <= 0 {
		t.Error("ConnectionTime not set")
	}

	select {
	case <-sess.closed:
	case <-time.After(time.Second):
		t.Error("session never closed after success")
	}
}

func TestVerify_InvalidServerNoSession(t *testing.T) {
	var calls atomic.Int32
	v := newTestVerifier(t, time.Second, nil, &calls)

	tests := []struct {
		name   string
		server *mcp.Server
		want   string
	}{
		{"stdio without command", &mcp.Server{Name: "s", Kind: mcp.KindStdio}, "missing command"},
		{"http without url", &mcp.Server{Name: "s", Kind: mcp.KindHTTP}, "missing url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := v.Verify(t.Context(), tt.server)
			if r.Status != StatusError {
				t.Fatalf("Status = %q, want error", r.Status)
			}
			if !strings.Contains(r.Err.Error(), tt.want) {
				t.Errorf("Err = %v, want substring %q", r.Err, tt.want)
			}
		})
	}

	if calls.Load() != 0 {
		t.Errorf("invalid servers opened %d sessions, want 0", calls.Load())
	}
}

func TestVerify_Timeout(t *testing.T) {
	sess := newStubSession()
	sess.block = true
	v := newTestVerifier(t, 50*time.Millisecond, map[string]*stubSession{"slow": sess}, nil)

	start := time.Now()
	r := v.Verify(t.Context(), &mcp.Server{Name: "slow", Command: "sleep"})

	if r.Status != StatusTimeout {
		t.Fatalf("Status = %q, want timeout", r.Status)
	}
	if !strings.Contains(r.Err.Error(), "timed out after 50ms") {
		t.Errorf("Err = %v, want the deadline in the message", r.Err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Verify took %v, should return promptly on timeout", elapsed)
	}

	select {
	case <-sess.closed:
	case <-time.After(time.Second):
		t.Error("session never closed after timeout")
	}
}

func TestVerify_ConnectError(t *testing.T) {
	sess := newStubSession()
	sess.err = errors.New("connection refused")
	v := newTestVerifier(t, time.Second, map[string]*stubSession{"bad": sess}, nil)

	r := v.Verify(t.Context(), &mcp.Server{Name: "bad", Kind: mcp.KindHTTP, URL: "https://bad.example/mcp"})

	if r.Status != StatusError {
		t.Fatalf("Status = %q, want error", r.Status)
	}
	if !strings.Contains(r.Err.Error(), "connection refused") {
		t.Errorf("Err = %v", r.Err)
	}
}

func TestVerify_ParentCancellation(t *testing.T) {
	sess := newStubSession()
	sess.block = true
	v := newTestVerifier(t, time.Minute, map[string]*stubSession{"s": sess}, nil)

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	r := v.Verify(ctx, &mcp.Server{Name: "s", Command: "sleep"})

	if r.Status != StatusError {
		t.Fatalf("Status = %q, want error for explicit cancel", r.Status)
	}
	if !errors.Is(r.Err, context.Canceled) {
		t.Errorf("Err = %v, want wrapped context.Canceled", r.Err)
	}
}

func TestVerifyAll_OrderAndIsolation(t *testing.T) {
	fast := newStubSession()
	fast.caps = &CapabilitySet{ServerName: "fast"}
	hung := newStubSession()
	hung.block = true
	slow := newStubSession()
	slow.delay = 30 * time.Millisecond
	slow.caps = &CapabilitySet{ServerName: "slow"}

	v := newTestVerifier(t, 100*time.Millisecond, map[string]*stubSession{
		"a": fast, "b": hung, "c": slow,
	}, nil)

	servers := []*mcp.Server{
		{Name: "a", Command: "a"},
		{Name: "b", Command: "b"},
		{Name: "c", Command: "c"},
	}
	results := VerifyAll(t.Context(), v, servers)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, srv := range servers {
		if results[i].Server.Name != srv.Name {
			t.Errorf("results[%d] is %q, want %q", i, results[i].Server.Name, srv.Name)
		}
	}
	if results[0].Status != StatusSuccess {
		t.Errorf("a: %q (%v), want success", results[0].Status, results[0].Err)
	}
	if results[1].Status != StatusTimeout {
		t.Errorf("b: %q, want timeout", results[1].Status)
	}
	if results[2].Status != StatusSuccess {
		t.Errorf("c: %q (%v), want success despite b hanging", results[2].Status, results[2].Err)
	}
}

func TestVerifyAll_PanicIsolated(t *testing.T) {
	boom := newStubSession()
	boom.panic = true
	ok := newStubSession()
	ok.caps = &CapabilitySet{}

	v := newTestVerifier(t, time.Second, map[string]*stubSession{
		"boom": boom, "ok": ok,
	}, nil)

	results := VerifyAll(t.Context(), v, []*mcp.Server{
		{Name: "boom", Command: "boom"},
		{Name: "ok", Command: "ok"},
	})

	if results[0].Status != StatusError {
		t.Errorf("boom: %q, want error", results[0].Status)
	}
	if results[0].Err == nil || !strings.Contains(results[0].Err.Error(), "panic") {
		t.Errorf("boom err = %v, want panic converted to error", results[0].Err)
	}
	if results[0].ConnectionTime <= 0 {
		t.Error("boom: ConnectionTime not set on panic result")
	}
	if results[1].Status != StatusSuccess {
		t.Errorf("ok: %q (%v), want success", results[1].Status, results[1].Err)
	}
}

func TestVerifyAll_FactoryPanicIsolated(t *testing.T) {
	ok := newStubSession()
	ok.caps = &CapabilitySet{}

	v := NewVerifier(Config{Timeout: time.Second, Logger: logging.NewDiscard()})
	v.newSession = func(srv *mcp.Server, debug bool, logger *slog.Logger) (session, error) {
		if srv.Name == "boom" {
			panic("factory blew up")
		}
		return ok, nil
	}

	results := VerifyAll(t.Context(), v, []*mcp.Server{
		{Name: "boom", Command: "boom"},
		{Name: "ok", Command: "ok"},
	})

	if results[0].Status != StatusError {
		t.Errorf("boom: %q, want error", results[0].Status)
	}
	if results[0].Err == nil || !strings.Contains(results[0].Err.Error(), "panic") {
		t.Errorf("boom err = %v, want panic converted to error", results[0].Err)
	}
	if results[0].ConnectionTime <= 0 {
		t.Error("boom: ConnectionTime not set on panic result")
	}
	if results[1].Status != StatusSuccess {
		t.Errorf("ok: %q (%v), want success", results[1].Status, results[1].Err)
	}
}

func TestVerifyAll_Empty(t *testing.T) {
	v := newTestVerifier(t, time.Second, nil, nil)
	if results := VerifyAll(t.Context(), v, nil); len(results) != 0 {
		t.Errorf("got %d results for empty input", len(results))
	}
}
