package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/palette/schema"
)

func newDocsCmd(a *app) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate documentation",
		Long: `Generate a Markdown reference of the node palette.

The reference includes descriptions, default sizes, schemas and default
input values of every node kind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			summaries := summarize(reg)

			w := cmd.OutOrStdout()
			if outFile != "" {
				path, err := expandPath(outFile)
				if err != nil {
					return err
				}
				// #nosec G304 - output path is chosen by the user
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if a.settings.Output != textFormat {
				return writeStructured(w, a.settings.Output, map[string]any{
					"title": "Palette Node Reference",
					"nodes": summaries,
				})
			}
			return generateMarkdownDocs(w, summaries)
		},
	}
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write documentation to a file")
	return cmd
}

// generateMarkdownDocs writes the Markdown reference.
func generateMarkdownDocs(w io.Writer, summaries []nodeSummary) error {
	var sb strings.Builder

	sb.WriteString("# Palette Node Reference\n\n")
	sb.WriteString("## Table of Contents\n\n")
	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", s.Type, s.Type))
	}
	sb.WriteString("\n---\n\n")

	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf("## %s\n\n", s.Type))
		sb.WriteString(fmt.Sprintf("%s\n\n", s.Description))
		sb.WriteString(fmt.Sprintf("**Icon:** `%s`  \n", s.Icon))
		sb.WriteString(fmt.Sprintf("**Default size:** %d x %d\n\n", s.Size.Width, s.Size.Height))

		sb.WriteString("### Inputs\n\n")
		required := make(map[string]bool)
		for _, name := range s.Inputs.Required() {
			required[name] = true
		}
		for _, p := range s.Inputs.Properties() {
			sb.WriteString(fmt.Sprintf("- **%s**", p.Name))
			if required[p.Name] {
				sb.WriteString(" *(required)*")
			}
			sb.WriteString(fmt.Sprintf(": %s\n", p.Field.Description()))
			sb.WriteString(fmt.Sprintf("  - Type: `%s`\n", p.Field.Kind()))
			if v, ok := s.InputsValues[p.Name]; ok {
				sb.WriteString(fmt.Sprintf("  - Default: `%s` `%q`\n", v.Type, v.Content))
			}
			if e, ok := p.Field.(schema.Enum); ok {
				values := make([]string, 0, len(e.Values()))
				for _, v := range e.Values() {
					values = append(values, fmt.Sprintf("`%s`", v))
				}
				sb.WriteString(fmt.Sprintf("  - Allowed values: %s\n", strings.Join(values, ", ")))
			}
		}
		sb.WriteString("\n")

		sb.WriteString("### Output Schema\n\n")
		sb.WriteString("```json\n")
		schemaJSON, err := json.MarshalIndent(s.Outputs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal outputs of %s: %w", s.Type, err)
		}
		sb.WriteString(string(schemaJSON))
		sb.WriteString("\n```\n\n---\n\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
