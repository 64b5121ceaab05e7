package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swiftformat/internal/config"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the formatting options and their defaults",
	RunE:  runOptions,
}

func init() {
	optionsCmd.Flags().String("format", "text", "output format (text|json)")
}

type optionInfo struct {
	Name     string `json:"name"`
	Default  string `json:"default"`
	Help     string `json:"help"`
	Inferred bool   `json:"inferred,omitempty"`
}

func runOptions(cmd *cobra.Command, _ []string) error {
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	descriptors := config.Descriptors()
	infos := make([]optionInfo, 0, len(descriptors))
	for _, d := range descriptors {
		infos = append(infos, optionInfo{Name: d.Name, Default: d.Default, Help: d.Help, Inferred: d.Infer != nil})
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "text":
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, info := range infos {
			def := info.Default
			if info.Inferred {
				def += " (inferred)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", color.New(color.Bold).Sprint(info.Name), def, info.Help)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", outputFormat)
	}
}
