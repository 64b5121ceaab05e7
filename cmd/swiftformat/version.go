package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"swiftformat/internal/config"
	"swiftformat/internal/format"
	"swiftformat/internal/rules"
	"swiftformat/internal/version"
)

// buildReport describes the binary and the formatting surface compiled into
// it: which rules exist, which of them run without --enable, and where
// configuration is looked up.
type buildReport struct {
	Tool          string      `json:"tool"`
	Version       string      `json:"version"`
	GitCommit     string      `json:"git_commit,omitempty"`
	BuildDate     string      `json:"build_date,omitempty"`
	Rules         ruleSummary `json:"rules"`
	ConfigFiles   []string    `json:"config_files"`
	MaxIterations int         `json:"max_iterations"`
}

type ruleSummary struct {
	Total   int      `json:"total"`
	Default []string `json:"default"`
	OptIn   []string `json:"opt_in"`
}

var (
	versionFormat    string
	versionShowBuild bool
	versionShowRules bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowBuild, "build", false, "include git commit and build date")
	versionCmd.Flags().BoolVar(&versionShowRules, "rules", false, "list default and opt-in rules")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version, build and rule set information",
	RunE: func(cmd *cobra.Command, args []string) error {
		report := newBuildReport(rules.All())
		switch strings.ToLower(versionFormat) {
		case "json":
			// json always carries the whole report
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		case "pretty":
			report.renderPretty(cmd.OutOrStdout(), versionShowBuild, versionShowRules)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func newBuildReport(reg *rules.Registry) buildReport {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	report := buildReport{
		Tool:          "swiftformat",
		Version:       v,
		GitCommit:     valueOrUnknown(strings.TrimSpace(version.GitCommit)),
		BuildDate:     valueOrUnknown(strings.TrimSpace(version.BuildDate)),
		ConfigFiles:   config.FileNames,
		MaxIterations: format.DefaultMaxIterations,
		Rules:         ruleSummary{Total: reg.Len(), Default: []string{}, OptIn: []string{}},
	}
	for _, r := range reg.Rules() {
		if r.IsDisabledByDefault() {
			report.Rules.OptIn = append(report.Rules.OptIn, r.Name())
		} else {
			report.Rules.Default = append(report.Rules.Default, r.Name())
		}
	}
	return report
}

func (r buildReport) renderPretty(out io.Writer, build, ruleNames bool) {
	fmt.Fprintf(out, "swiftformat %s (%d rules, %d default, %d opt-in)\n",
		version.Colored(), r.Rules.Total, len(r.Rules.Default), len(r.Rules.OptIn))
	if build {
		fmt.Fprintf(out, "commit: %s\n", r.GitCommit)
		fmt.Fprintf(out, "built:  %s\n", r.BuildDate)
	}
	if ruleNames {
		fmt.Fprintf(out, "default: %s\n", strings.Join(r.Rules.Default, ", "))
		fmt.Fprintf(out, "opt-in:  %s\n", strings.Join(r.Rules.OptIn, ", "))
		fmt.Fprintf(out, "config:  %s\n", strings.Join(r.ConfigFiles, ", "))
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
