package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/palette/document"
	"github.com/agentstation/palette/schema"
)

func newValidateCmd(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a workflow document",
		Long: `Check a document's structure (unique ids, edges between existing nodes)
and every node's input values against its input schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			err = doc.ValidateInputs(cmd.Context(), reg, concurrency)
			if err == nil {
				fmt.Fprintf(w, "%s: %d nodes valid\n", args[0], len(doc.Nodes))
				return nil
			}

			var verr *schema.ValidationError
			if !errors.As(err, &verr) {
				return err
			}
			fmt.Fprintf(w, "%s: invalid\n", args[0])
			fmt.Fprintln(w, err)
			return fmt.Errorf("document %s has invalid node inputs", args[0])
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Nodes validated in parallel (0 = GOMAXPROCS)")
	return cmd
}
