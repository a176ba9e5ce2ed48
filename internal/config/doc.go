// Package config provides configuration management for the mcpsync CLI.
//
// This package handles loading and validating the tool's own configuration
// file. It is distinct from the per-assistant configurations produced by the
// assistant adapters.
//
// # Configuration File
//
// The default configuration file location is ~/.config/mcpsync/config.yaml.
// The configuration file uses YAML format with the following structure:
//
//	version: 1
//	default_assistants:
//	  - claude
//	  - codex
//	verify_timeout: 30s
//	assistants:
//	  claude:
//	    config_path: /custom/.mcp.json   # optional
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//
// An empty path searches the default locations and falls back to defaults
// when no file exists; a non-empty path must name an existing file.
//
// # Validation
//
// Use [Validate] to check a loaded configuration:
//
//	errs := config.Validate(cfg)
//	if len(errs) > 0 {
//	    for _, e := range errs {
//	        fmt.Println(e)
//	    }
//	}
package config
