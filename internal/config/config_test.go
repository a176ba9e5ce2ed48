package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestInit(t *testing.T) {
	viper.Reset()

	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}

	assistants := viper.GetStringSlice("default_assistants")
	if len(assistants) != 5 {
		t.Errorf("expected 5 default assistants, got %v", assistants)
	}

	if viper.GetDuration("verify_timeout") != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", viper.GetDuration("verify_timeout"))
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	Init()

	cfg, err := Load("")
	if err != nil {
		t.Errorf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config to be returned")
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want default 1", cfg.Version)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("default_assistants:\n  - claude\n  - codex\nverify_timeout: 5s\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.DefaultAssistants) != 2 {
		t.Errorf("expected 2 assistants, got %v", cfg.DefaultAssistants)
	}
	if cfg.VerifyTimeout != 5*time.Second {
		t.Errorf("VerifyTimeout = %v, want 5s", cfg.VerifyTimeout)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{
			name: "valid",
			cfg: &Config{
				Version:           1,
				DefaultAssistants: []string{"claude", "gemini"},
				VerifyTimeout:     30 * time.Second,
			},
		},
		{
			name:    "version too low",
			cfg:     &Config{Version: 0},
			wantErr: ErrVersionTooLow,
		},
		{
			name: "unknown assistant",
			cfg: &Config{
				Version:           1,
				DefaultAssistants: []string{"emacs"},
			},
			wantErr: ErrInvalidAssistant,
		},
		{
			name: "unknown override key",
			cfg: &Config{
				Version:    1,
				Assistants: map[string]AssistantOverride{"emacs": {}},
			},
			wantErr: ErrInvalidAssistant,
		},
		{
			name: "malformed override path",
			cfg: &Config{
				Version:    1,
				Assistants: map[string]AssistantOverride{"claude": {ConfigPath: "."}},
			},
			wantErr: ErrInvalidPath,
		},
		{
			name:    "negative timeout",
			cfg:     &Config{Version: 1, VerifyTimeout: -time.Second},
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.cfg)
			if tt.wantErr == nil {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			found := false
			for _, err := range errs {
				if errors.Is(err, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want error wrapping %v", errs, tt.wantErr)
			}
		})
	}
}
