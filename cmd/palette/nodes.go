package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/registry"
	"github.com/agentstation/palette/schema"
)

// nodeSummary is the printable description of a node kind.
type nodeSummary struct {
	Type         palette.NodeType             `json:"type"`
	Description  string                       `json:"description"`
	Icon         string                       `json:"icon"`
	Size         palette.Size                 `json:"size"`
	Inputs       schema.Object                `json:"inputs"`
	Outputs      schema.Object                `json:"outputs"`
	InputsValues map[string]palette.FlowValue `json:"inputsValues"`
}

// summarize describes every registered kind from one default instance each.
// This advances the title counters of reg, so pass a registry that is not
// used for anything else.
func summarize(reg *registry.Registry) []nodeSummary {
	entries := reg.All()
	out := make([]nodeSummary, 0, len(entries))
	for _, entry := range entries {
		sample := entry.OnAdd()
		out = append(out, nodeSummary{
			Type:         entry.Type(),
			Description:  entry.Info().Description,
			Icon:         entry.Info().Icon,
			Size:         entry.Meta().Size,
			Inputs:       sample.Data.Inputs,
			Outputs:      sample.Data.Outputs,
			InputsValues: sample.Data.InputsValues,
		})
	}
	return out
}

func newNodesCmd(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List available node types",
		Long:  `List the node kinds offered by the editor palette.`,
		Example: `  # List all node types
  palette nodes

  # Show only the tool node in YAML
  palette nodes --type tool --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			summaries := summarize(reg)
			if filter != "" {
				filtered := summaries[:0]
				for _, s := range summaries {
					if string(s.Type) == filter {
						filtered = append(filtered, s)
					}
				}
				summaries = filtered
			}

			if a.settings.Output == textFormat {
				return outputTable(cmd.OutOrStdout(), summaries)
			}
			return writeStructured(cmd.OutOrStdout(), a.settings.Output, summaries)
		},
	}
	cmd.Flags().StringVar(&filter, "type", "", "Filter by node type")

	cmd.AddCommand(newNodesInfoCmd(a))
	return cmd
}

func newNodesInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <type>",
		Short: "Show detailed info about a node type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := palette.ParseNodeType(args[0])
			if err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			if _, ok := reg.Get(t); !ok {
				return fmt.Errorf("node type '%s' not found", t)
			}

			for _, s := range summarize(reg) {
				if s.Type != t {
					continue
				}
				if a.settings.Output != textFormat {
					return writeStructured(cmd.OutOrStdout(), a.settings.Output, s)
				}
				return outputInfo(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

// outputTable prints one line per node kind.
func outputTable(w io.Writer, summaries []nodeSummary) error {
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Type < summaries[j].Type })

	for _, s := range summaries {
		fmt.Fprintf(w, "  %-10s %4dx%-4d %s\n", s.Type, s.Size.Width, s.Size.Height, s.Description)
	}
	fmt.Fprintf(w, "\nTotal: %d node types\n", len(summaries))
	fmt.Fprintln(w, "\nUse 'palette nodes info <type>' for detailed information about a specific node.")
	return nil
}

// outputInfo prints the detailed text view of one node kind.
func outputInfo(w io.Writer, s nodeSummary) error {
	fmt.Fprintf(w, "Node Type: %s\n", s.Type)
	fmt.Fprintf(w, "Description: %s\n", s.Description)
	fmt.Fprintf(w, "Icon: %s\n", s.Icon)
	fmt.Fprintf(w, "Default Size: %dx%d\n\n", s.Size.Width, s.Size.Height)

	fmt.Fprintln(w, "Inputs:")
	required := make(map[string]bool)
	for _, name := range s.Inputs.Required() {
		required[name] = true
	}
	for _, p := range s.Inputs.Properties() {
		line := fmt.Sprintf("  %s (%s", p.Name, p.Field.Kind())
		if required[p.Name] {
			line += ", required"
		}
		line += ")"
		if v, ok := s.InputsValues[p.Name]; ok {
			line += fmt.Sprintf(" default %s %q", v.Type, v.Content)
		}
		fmt.Fprintln(w, line)
		if d := p.Field.Description(); d != "" {
			fmt.Fprintf(w, "      %s\n", d)
		}
		if e, ok := p.Field.(schema.Enum); ok {
			fmt.Fprintf(w, "      allowed: %s\n", strings.Join(e.Values(), ", "))
		}
	}

	fmt.Fprintln(w, "\nOutputs:")
	raw, err := json.MarshalIndent(s.Outputs, "  ", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  %s\n", raw)
	return nil
}
