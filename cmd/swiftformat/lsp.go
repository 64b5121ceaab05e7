package main

import (
	"github.com/spf13/cobra"

	"swiftformat/internal/driver"
	"swiftformat/internal/format"
	"swiftformat/internal/lsp"
	"swiftformat/internal/version"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the formatting language server over stdio",
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().StringSlice("rules", nil, "apply only these rules")
	lspCmd.Flags().StringSlice("enable", nil, "enable additional rules")
	lspCmd.Flags().StringSlice("disable", nil, "disable rules")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	var opts driver.Options
	opts.Rules, _ = cmd.Flags().GetStringSlice("rules")
	opts.Enable, _ = cmd.Flags().GetStringSlice("enable")
	opts.Disable, _ = cmd.Flags().GetStringSlice("disable")
	return lsp.NewServer(version.Version, opts, format.RunOptions{}).RunStdio()
}
