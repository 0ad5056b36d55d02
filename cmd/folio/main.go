package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/folio/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┬  ┬┌─┐
  ├┤ │ ││  ││ │
  └  └─┘┴─┘┴└─┘
`

// errQuiet signals a failure that was already reported.
var errQuiet = stderrors.New("quiet failure")

// colorOutput controls the ANSI colors of the CLI helpers.
var colorOutput = true

func main() {
	errors.DetectColors(os.Stderr)
	colorOutput = term.IsTerminal(int(os.Stdout.Fd()))

	if err := newRootCmd().Execute(); err != nil {
		if !stderrors.Is(err, errQuiet) {
			errors.PrintError(err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "A two-page personal site with client-side navigation",
		Long: `folio serves a home page and a CV.

The route table maps / to the home view and /cv to the CV view.
Pages load over HTTP; after that, links are followed over a
WebSocket and the address bar is updated in place.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

func paint(code, text string) string {
	if !colorOutput {
		return text
	}
	return code + text + "\033[0m"
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", paint("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}
