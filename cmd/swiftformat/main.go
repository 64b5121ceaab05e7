package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"swiftformat/internal/version"
)

var log = commonlog.GetLogger("swiftformat.cli")

var rootCmd = &cobra.Command{
	Use:   "swiftformat",
	Short: "Rule-based formatter for Swift source code",
	Long: `swiftformat rewrites Swift source files by applying formatting rules to
their token stream until no rule changes anything.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
}

// main registers subcommands and persistent flags, then executes the root
// command. If command execution returns an error, the process exits with
// status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-rule timing information")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().String("log", "", "write logs to this file instead of stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupGlobals(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	colorMode, err := flags.GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(colorMode) {
	case "on", "always":
		color.NoColor = false
	case "off", "never":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	verbose, err := flags.GetCount("verbose")
	if err != nil {
		return err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	logPath, err := flags.GetString("log")
	if err != nil {
		return err
	}
	verbosity := verbose
	if quiet {
		verbosity = -1
	}
	var path *string
	if logPath != "" {
		path = &logPath
	}
	commonlog.Configure(verbosity, path)
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
