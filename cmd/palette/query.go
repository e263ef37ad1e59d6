package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/palette/document"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <file> <jsonpath>",
		Short: "Query a workflow document with JSONPath",
		Example: `  # Titles of all tool nodes
  palette query flow.yaml "$.nodes[?(@.type == 'tool')].data.title"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			results, err := doc.Query(args[1])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.settings.Output != textFormat {
				return writeStructured(w, a.settings.Output, results)
			}
			for _, r := range results {
				if s, ok := r.(string); ok {
					fmt.Fprintln(w, s)
					continue
				}
				if err := writeStructured(w, jsonFormat, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
