package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/document"
	"github.com/agentstation/palette/schema"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		count   int
		docFile string
		connect string
	)

	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Create default node instances",
		Long: `Create node instances the way the editor does when a node is dropped
on the canvas.

With --document the instances are appended to a document file, which is
created when missing. Title numbering continues from the document.`,
		Example: `  # Print a new agent node
  palette add agent --output json

  # Add two tools to a document and connect them to an agent
  palette add tool --count 2 --document flow.yaml --connect agent_x1Y2z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := palette.ParseNodeType(args[0])
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if connect != "" && docFile == "" {
				return errors.New("--connect requires --document")
			}

			reg, err := a.registry()
			if err != nil {
				return err
			}

			var doc *document.Document
			if docFile != "" {
				doc, err = openDocument(docFile)
				if err != nil {
					return err
				}
				reg.RestoreCounters(doc.Counters)
			}

			ctx := cmd.Context()
			created := make([]palette.NodeInstance, 0, count)
			var invalid []error
			for i := 0; i < count; i++ {
				inst, err := reg.Add(ctx, t)
				var verr *schema.ValidationError
				if err != nil && !errors.As(err, &verr) {
					return err
				}
				// Under the on-add policy the instance is kept and its
				// violations are reported after it is written.
				if err != nil {
					invalid = append(invalid, err)
				}
				created = append(created, inst)
			}

			if doc != nil {
				for _, inst := range created {
					if err := doc.AddNode(inst); err != nil {
						return err
					}
					if connect != "" {
						if err := doc.Connect(inst.ID, connect); err != nil {
							return err
						}
					}
				}
				doc.Counters = reg.Counters()
				if err := doc.Save(docFile); err != nil {
					return fmt.Errorf("save %s: %w", docFile, err)
				}
				a.logger.Info(ctx, "document updated", "file", docFile, "added", len(created))
			}

			w := cmd.OutOrStdout()
			if a.settings.Output != textFormat {
				if err := writeStructured(w, a.settings.Output, created); err != nil {
					return err
				}
			} else {
				for _, inst := range created {
					fmt.Fprintf(w, "%s\t%s\n", inst.ID, inst.Data.Title)
				}
			}

			if len(invalid) > 0 {
				for _, err := range invalid {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
				return fmt.Errorf("%d of %d new nodes have invalid inputs", len(invalid), len(created))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of instances to create")
	cmd.Flags().StringVarP(&docFile, "document", "d", "", "Document file to append the instances to")
	cmd.Flags().StringVar(&connect, "connect", "", "Connect each new node to this node id (requires --document)")
	return cmd
}

// openDocument loads filename or starts a new document named after it.
func openDocument(filename string) (*document.Document, error) {
	_, err := os.Stat(filename)
	if errors.Is(err, fs.ErrNotExist) {
		base := filepath.Base(filename)
		return document.New(strings.TrimSuffix(base, filepath.Ext(base))), nil
	}
	if err != nil {
		return nil, err
	}
	return document.Load(filename)
}
