package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcpsync/mcpsync/internal/mcp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		wantNames []string
		check     func(t *testing.T, servers []*mcp.Server)
	}{
		{
			name: "mcpServers wrapper",
			input: `{
				"mcpServers": {
					"github": {
						"command": "npx",
						"args": ["-y", "@modelcontextprotocol/server-github"],
						"env": {"GITHUB_TOKEN": "token123"}
					}
				}
			}`,
			wantNames: []string{"github"},
			check: func(t *testing.T, servers []*mcp.Server) {
				t.Helper()
				s := servers[0]
				if s.Command != "npx" {
					t.Errorf("Command = %q, want npx", s.Command)
				}
				if len(s.Args) != 2 {
					t.Errorf("len(Args) = %d, want 2", len(s.Args))
				}
				if s.Env["GITHUB_TOKEN"] != "token123" {
					t.Errorf("Env[GITHUB_TOKEN] = %q", s.Env["GITHUB_TOKEN"])
				}
			},
		},
		{
			name: "bare servers map",
			input: `{
				"remote": {"kind": "http", "url": "https://api.example.com/mcp"}
			}`,
			wantNames: []string{"remote"},
			check: func(t *testing.T, servers []*mcp.Server) {
				t.Helper()
				if servers[0].Kind != mcp.KindHTTP {
					t.Errorf("Kind = %q, want http", servers[0].Kind)
				}
			},
		},
		{
			name: "output sorted by name",
			input: `{
				"mcpServers": {
					"zeta": {"command": "z"},
					"alpha": {"command": "a"}
				}
			}`,
			wantNames: []string{"alpha", "zeta"},
		},
		{
			name:    "malformed json",
			input:   `{not json`,
			wantErr: true,
		},
		{
			name:      "empty input",
			input:     "",
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			servers, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("error should wrap ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(servers) != len(tt.wantNames) {
				t.Fatalf("got %d servers, want %d", len(servers), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if servers[i].Name != name {
					t.Errorf("servers[%d].Name = %q, want %q", i, servers[i].Name, name)
				}
			}
			if tt.check != nil {
				tt.check(t, servers)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	input := `
mcpServers:
  docs:
    kind: sse
    url: https://docs.example.com/mcp
    headers:
      X-API-Key: k1
  local:
    command: echo
    args: [hi]
`
	servers, err := ParseYAML([]byte(input))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(servers))
	}
	if servers[0].Name != "docs" || servers[0].Headers["X-API-Key"] != "k1" {
		t.Errorf("unexpected first server: %+v", servers[0])
	}
	if servers[1].Command != "echo" || servers[1].Args[0] != "hi" {
		t.Errorf("unexpected second server: %+v", servers[1])
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "servers.json")
	if err := os.WriteFile(jsonPath, []byte(`{"mcpServers":{"a":{"command":"cmd"}}}`), 0644); err != nil {
		t.Fatal(err)
	}
	servers, err := ParseFile(jsonPath)
	if err != nil {
		t.Fatalf("ParseFile json: %v", err)
	}
	if len(servers) != 1 || servers[0].Name != "a" {
		t.Errorf("unexpected servers: %+v", servers)
	}

	yamlPath := filepath.Join(dir, "servers.yaml")
	if err := os.WriteFile(yamlPath, []byte("mcpServers:\n  b:\n    command: cmd\n"), 0644); err != nil {
		t.Fatal(err)
	}
	servers, err = ParseFile(yamlPath)
	if err != nil {
		t.Fatalf("ParseFile yaml: %v", err)
	}
	if len(servers) != 1 || servers[0].Name != "b" {
		t.Errorf("unexpected servers: %+v", servers)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should error")
	} else {
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("error should be *ParseError, got %T", err)
		}
	}
}
