package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rewind/internal/version"
)

const versionTagline = "step anywhere in time"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rewind build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "rewind %s — %s\n", v, versionTagline)
		if commit := strings.TrimSpace(version.GitCommit); commit != "" {
			fmt.Fprintf(out, "commit: %s\n", commit)
		}
		if date := strings.TrimSpace(version.BuildDate); date != "" {
			fmt.Fprintf(out, "built:  %s\n", date)
		}
		return nil
	},
}
