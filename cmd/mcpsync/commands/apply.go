package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcpsync/mcpsync/internal/assistant"
	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/logging"
	"github.com/mcpsync/mcpsync/internal/mcp"
	"github.com/mcpsync/mcpsync/internal/mcp/parser"
	"github.com/mcpsync/mcpsync/internal/pipeline"
	"github.com/mcpsync/mcpsync/pkg/fileutil"
)

var (
	applyFile   string
	applyOutDir string
	applyDryRun bool
)

func init() {
	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "",
		"canonical server list (JSON or YAML)")
	_ = applyCmd.MarkFlagRequired("file")
	applyCmd.Flags().StringVarP(&applyOutDir, "output", "o", ".",
		"directory to write assistant configs into")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false,
		"print configs to stdout instead of writing files")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Write assistant configurations from a canonical server list",
	Long: `Apply translates the canonical server list into each target
assistant's native configuration file.

Servers an assistant cannot reach natively are adapted where possible:
remote servers become a local bridge process for stdio-only assistants.
Every adaptation is logged with the reason. Servers that still cannot be
represented are dropped from that assistant's config.

Files are written atomically; an interrupted run never leaves a
half-written config behind.

Examples:
  # Write configs for every assistant into the current directory
  mcpsync apply -f servers.json

  # Only claude and codex, into a project directory
  mcpsync apply -f servers.yaml -a claude,codex -o ~/src/project

  # Show what would be written
  mcpsync apply -f servers.json --dry-run`,
	RunE: runApply,
}

func runApply(cmd *cobra.Command, _ []string) error {
	return runApplyWithWriter(cmd, cmd.OutOrStdout())
}

// runApplyWithWriter allows injecting a writer for testing.
func runApplyWithWriter(cmd *cobra.Command, w io.Writer) error {
	servers, err := parser.ParseFile(applyFile)
	if err != nil {
		return errors.NewUserError(err, "Check the server list file syntax")
	}
	if err := validateServers(servers); err != nil {
		return errors.NewUserError(err, "Fix the listed server definitions and re-run")
	}

	logger := logging.FromContext(cmd.Context())
	registry := assistant.NewRegistry()

	for _, name := range targetAssistants() {
		adapter, err := registry.Get(name)
		if err != nil {
			return errors.NewUserError(err, "Run 'mcpsync --help' to see valid assistants")
		}

		result := pipeline.Run(adapter, servers)
		for _, rec := range result.Transformations {
			logger.Info("adapted server",
				slog.String("assistant", name),
				slog.String("server", rec.Original.Name),
				slog.String("reason", rec.Reason))
		}
		if dropped := len(servers) - len(result.Servers); dropped > 0 {
			logger.Warn("dropped unsupported servers",
				slog.String("assistant", name),
				slog.Int("count", dropped))
		}

		data, err := adapter.Emit(result.Servers)
		if err != nil {
			return errors.NewSystemError(err, "")
		}

		path := configPath(adapter)
		if applyDryRun {
			fmt.Fprintf(w, "--- %s (%s)\n%s", name, path, data)
			continue
		}

		if err := fileutil.AtomicWriteFile(path, data, 0644); err != nil {
			return errors.NewSystemError(err,
				fmt.Sprintf("Check that %s is writable", filepath.Dir(path)))
		}
		logger.Info("wrote config",
			slog.String("assistant", name),
			slog.String("path", path),
			slog.Int("servers", len(result.Servers)))
	}

	return nil
}

// configPath resolves where an assistant's config is written: an explicit
// per-assistant override from the tool config wins, otherwise the output
// directory plus the assistant's conventional file name.
func configPath(adapter *assistant.Adapter) string {
	if loadedConfig != nil {
		if override, ok := loadedConfig.Assistants[adapter.Name()]; ok && override.ConfigPath != "" {
			return override.ConfigPath
		}
	}
	return filepath.Join(applyOutDir, adapter.ConfigFile())
}

// validateServers checks every server and reports all failures at once.
func validateServers(servers []*mcp.Server) error {
	var errs []error
	for _, s := range servers {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
