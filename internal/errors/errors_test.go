package errors

import (
	"errors"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(New("boom"), ExitSystem),
			want: "boom",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	underlying := ErrInvalidConfig
	err := NewUserError(underlying, "fix it")

	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("errors.Is should find the underlying sentinel through ExitError")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As should extract *ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
	if exitErr.Suggestion != "fix it" {
		t.Errorf("Suggestion = %q, want %q", exitErr.Suggestion, "fix it")
	}
}

func TestNewSystemError(t *testing.T) {
	err := NewSystemError(New("disk full"), "free some space")
	if err.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystem)
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrUnknownAssistant, "looking up adapter")
	if !Is(err, ErrUnknownAssistant) {
		t.Error("wrapped sentinel should still match with Is")
	}
}
