package commands

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/logging"
	"github.com/mcpsync/mcpsync/internal/mcp/parser"
	"github.com/mcpsync/mcpsync/internal/verify"
)

var (
	verifyFile    string
	verifyTimeout time.Duration
	verifyDebug   bool
	verifyNoColor bool
)

func init() {
	verifyCmd.Flags().StringVarP(&verifyFile, "file", "f", "",
		"canonical server list (JSON or YAML)")
	_ = verifyCmd.MarkFlagRequired("file")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 0,
		"per-server connection deadline (default: from config, 30s)")
	verifyCmd.Flags().BoolVar(&verifyDebug, "debug", false,
		"stream local server stderr into the debug log")
	verifyCmd.Flags().BoolVar(&verifyNoColor, "no-color", false,
		"disable colored output")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that configured MCP servers are reachable",
	Long: `Verify connects to every server in the canonical list over its
declared transport, performs the protocol handshake, and reports the
tools, resources, and prompts each one exposes.

Servers are verified concurrently; one hanging or crashing server never
blocks the others. Each server gets its own deadline. Tool listings are
annotated with an estimate of the context tokens their definitions will
consume.

The exit code is nonzero when any server fails.

Examples:
  # Verify every server with the default deadline
  mcpsync verify -f servers.json

  # Impatient verification with subprocess stderr in the log
  mcpsync verify -f servers.json --timeout 5s --debug -v`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, _ []string) error {
	return runVerifyWithWriter(cmd, cmd.OutOrStdout())
}

// runVerifyWithWriter allows injecting a writer for testing.
func runVerifyWithWriter(cmd *cobra.Command, w io.Writer) error {
	servers, err := parser.ParseFile(verifyFile)
	if err != nil {
		return errors.NewUserError(err, "Check the server list file syntax")
	}
	if len(servers) == 0 {
		return errors.NewUserError(errors.New("no servers to verify"),
			"Add servers to the list file first")
	}

	timeout := verifyTimeout
	if timeout <= 0 && loadedConfig != nil {
		timeout = loadedConfig.VerifyTimeout
	}

	verifier := verify.NewVerifier(verify.Config{
		Timeout: timeout,
		Debug:   verifyDebug,
		Logger:  logging.FromContext(cmd.Context()),
	})

	results := verify.VerifyAll(cmd.Context(), verifier, servers)

	colored := !verifyNoColor && logging.SupportsColor(w)
	verify.NewFormatter(w, colored).Format(results)

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return errors.NewExitError(
			errors.Newf("%d of %d servers failed verification", failed, len(results)),
			errors.ExitUser)
	}
	return nil
}
