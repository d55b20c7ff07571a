package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/draglist/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Error output formats for --error-format.
const (
	errorFormatText    = "text"
	errorFormatCompact = "compact"
	errorFormatJSON    = "json"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and reports any error on stderr in the requested
// format. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var errorFormat string
	rootCmd := newRootCmd()
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", errorFormatText, "Error output format (text, compact, json)")
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	reportError(stderr, errors.FromError(err, errors.CodeCLIArgs), errorFormat)
	return 1
}

// reportError writes err in the given format. Unknown formats fall back to
// the full terminal format.
func reportError(w io.Writer, err *errors.DraglistError, format string) {
	switch format {
	case errorFormatJSON:
		fmt.Fprintln(w, err.FormatJSON())
	case errorFormatCompact:
		fmt.Fprintln(w, err.FormatCompact())
	default:
		errors.PrintError(w, err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "draglist",
		Short: "Server-driven drag-and-drop list reordering",
		Long: `draglist serves a reorderable list over HTTP and WebSocket.

The browser runs a thin client that forwards native drag events;
the server tracks the gesture, sends preview classes back as
patches and commits the new order on drop.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		reorderCmd(),
		initCmd(),
		errorsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
