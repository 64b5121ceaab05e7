package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swiftformat/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available formatting rules",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "text", "output format (text|json)")
}

type ruleInfo struct {
	Name         string   `json:"name"`
	Help         string   `json:"help"`
	Options      []string `json:"options,omitempty"`
	Default      bool     `json:"default"`
	RunsOnlyOnce bool     `json:"runs_only_once,omitempty"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	all := rules.All().Rules()
	infos := make([]ruleInfo, 0, len(all))
	for _, r := range all {
		infos = append(infos, ruleInfo{
			Name:         r.Name(),
			Help:         r.Help(),
			Options:      r.Options(),
			Default:      !r.IsDisabledByDefault(),
			RunsOnlyOnce: r.IsRunOnlyOnce(),
		})
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "text":
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, info := range infos {
			name := info.Name
			if !info.Default {
				name += " (disabled)"
			}
			opts := ""
			if len(info.Options) > 0 {
				opts = "[" + strings.Join(info.Options, ", ") + "]"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", color.New(color.Bold).Sprint(name), info.Help, opts)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", outputFormat)
	}
}
