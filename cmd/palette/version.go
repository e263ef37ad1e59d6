package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version information about the palette CLI.`,
		Example: `  # Show version
  palette version

  # Show version in JSON format
  palette version --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if a.settings.Output != textFormat {
				return writeStructured(w, a.settings.Output, map[string]string{
					"version":   version,
					"commit":    commit,
					"buildDate": buildDate,
					"goVersion": goVersion,
				})
			}

			fmt.Fprintf(w, "palette version %s\n", version)
			if version != "dev" {
				fmt.Fprintf(w, "  commit:     %s\n", commit)
				fmt.Fprintf(w, "  built:      %s\n", buildDate)
				fmt.Fprintf(w, "  go version: %s\n", goVersion)
			}
			return nil
		},
	}
}
