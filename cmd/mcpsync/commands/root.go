// Package commands implements the CLI commands for mcpsync.
package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpsync/mcpsync/internal/assistant"
	"github.com/mcpsync/mcpsync/internal/config"
	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// assistantFlag holds the value of the --assistant flag.
var assistantFlag []string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// cfgFile holds the value of the --config flag.
var cfgFile string

// loadedConfig is the tool configuration resolved at startup.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&assistantFlag, "assistant", "a", nil,
		`target assistant(s): claude, codex, cursor, gemini, windsurf (default: all)`)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: $XDG_CONFIG_HOME/mcpsync/config.yaml)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mcpsync version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(cfgFile)
}

var rootCmd = &cobra.Command{
	Use:   "mcpsync",
	Short: "Sync and verify MCP server configurations across AI assistants",
	Long: `mcpsync translates a single canonical list of MCP servers into the
native configuration format of each AI coding assistant, and verifies
that configured servers are actually reachable.

Define your servers once in a neutral JSON or YAML file. mcpsync adapts
each server to what every assistant supports: remote servers are bridged
through a local process for assistants that only speak stdio, and
anything still unsupported is dropped with an explanation.

Use the --assistant flag to target specific assistants, or omit it to
target all of them.`,
	Example: `  # Write every assistant's config from one server list
  mcpsync apply -f servers.json

  # Preview what codex would receive, without writing
  mcpsync apply -f servers.json --assistant codex --dry-run

  # Check that every server answers the protocol handshake
  mcpsync verify -f servers.json --timeout 10s`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateAssistantFlag(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("MCPSYNC_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// validateAssistantFlag checks that all specified assistants are valid.
func validateAssistantFlag(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	if len(assistantFlag) == 0 {
		return nil
	}

	var invalid []string
	for _, a := range assistantFlag {
		if !assistant.ValidName(a) {
			invalid = append(invalid, a)
		}
	}

	if len(invalid) > 0 {
		err := errors.Newf("invalid assistant(s): %s (valid: %s)",
			strings.Join(invalid, ", "),
			strings.Join(assistant.Names(), ", "))
		return errors.NewUserError(err, "Run 'mcpsync --help' to see valid assistants")
	}

	return nil
}

// targetAssistants resolves which assistants a command should act on:
// the --assistant flag when given, otherwise the configured defaults,
// otherwise every supported assistant.
func targetAssistants() []string {
	if len(assistantFlag) > 0 {
		return assistantFlag
	}
	if loadedConfig != nil && len(loadedConfig.DefaultAssistants) > 0 {
		return loadedConfig.DefaultAssistants
	}
	return assistant.Names()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
