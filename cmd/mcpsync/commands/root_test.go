package commands

import (
	"log/slog"
	"testing"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelInfo},
		{"verbose (1)", 1, slog.LevelDebug},
		{"trace (2)", 2, slog.LevelDebug - 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if logger.Enabled(t.Context(), tt.wantLevel-4) {
				t.Errorf("expected level %v to be disabled", tt.wantLevel-4)
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"MCPSYNC_DEBUG=1", "1", slog.LevelDebug - 4},
		{"MCPSYNC_DEBUG=true", "true", slog.LevelDebug - 4},
		{"MCPSYNC_DEBUG=unknown", "foo", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("MCPSYNC_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			if !slog.Default().Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
		})
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	origVerbosity := verbosity
	origQuiet := quiet
	defer func() {
		verbosity = origVerbosity
		quiet = origQuiet
	}()

	verbosity = 1
	quiet = true

	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error when both quiet and verbose are set")
	}
}

func TestValidateAssistantFlag(t *testing.T) {
	origFlag := assistantFlag
	defer func() { assistantFlag = origFlag }()

	assistantFlag = []string{"claude", "codex"}
	if err := validateAssistantFlag(rootCmd, nil); err != nil {
		t.Errorf("valid assistants rejected: %v", err)
	}

	assistantFlag = []string{"claude", "emacs"}
	if err := validateAssistantFlag(rootCmd, nil); err == nil {
		t.Error("expected error for unknown assistant")
	}
}

func TestTargetAssistants(t *testing.T) {
	origFlag := assistantFlag
	origConfig := loadedConfig
	defer func() {
		assistantFlag = origFlag
		loadedConfig = origConfig
	}()

	assistantFlag = nil
	loadedConfig = nil
	if got := targetAssistants(); len(got) != 5 {
		t.Errorf("with no flag and no config, want all 5 assistants, got %v", got)
	}

	assistantFlag = []string{"gemini"}
	if got := targetAssistants(); len(got) != 1 || got[0] != "gemini" {
		t.Errorf("flag should win: %v", got)
	}
}
