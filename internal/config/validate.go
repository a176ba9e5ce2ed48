package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/mcpsync/mcpsync/internal/assistant"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidAssistant indicates an unrecognized assistant name.
	ErrInvalidAssistant = errors.New("invalid assistant")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidTimeout indicates a non-positive verify timeout.
	ErrInvalidTimeout = errors.New("verify_timeout must be positive")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.VerifyTimeout < 0 {
		errs = append(errs, ErrInvalidTimeout)
	}

	for _, name := range cfg.DefaultAssistants {
		if !assistant.ValidName(name) {
			errs = append(errs, &AssistantError{
				Assistant: name,
				Err:       ErrInvalidAssistant,
			})
		}
	}

	for name, override := range cfg.Assistants {
		if !assistant.ValidName(name) {
			errs = append(errs, &AssistantError{
				Assistant: name,
				Err:       ErrInvalidAssistant,
			})
		}
		if override.ConfigPath != "" {
			if err := validatePath(override.ConfigPath); err != nil {
				errs = append(errs, &PathError{
					Field: name + ".config_path",
					Path:  override.ConfigPath,
					Err:   err,
				})
			}
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return nil
	}

	// Null bytes are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// AssistantError represents an error for a specific assistant name.
type AssistantError struct {
	Assistant string
	Err       error
}

func (e *AssistantError) Error() string {
	return e.Err.Error() + ": " + e.Assistant
}

func (e *AssistantError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
