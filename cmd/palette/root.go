package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/palette/registry"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfgFile  string
	settings settings
	logger   *zapLogger
}

// registry builds a registry configured from the loaded settings.
func (a *app) registry() (*registry.Registry, error) {
	return registry.Default(
		registry.WithPolicy(a.settings.Policy),
		registry.WithLogger(a.logger),
		registry.WithModelType(a.settings.ModelType),
		registry.WithToolNames(a.settings.ToolNames...),
	)
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "palette",
		Short: "Node palette for the visual workflow editor",
		Long: `palette describes the node kinds of the visual workflow editor.

It lists node kinds with their icon, description and default size, creates
default node instances, and validates and queries workflow documents.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(viper.New(), cmd.Flags(), a.cfgFile)
			if err != nil {
				return err
			}
			a.settings = s
			a.logger = newLogger(cmd.ErrOrStderr(), s.Verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default ~/.palette/config.yaml)")
	rootCmd.PersistentFlags().BoolP(keyVerbose, "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String(keyOutput, textFormat, "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().String(keyPolicy, "deferred", "Input validation timing (deferred, on-add)")

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newNodesCmd(a),
		newDocsCmd(a),
		newAddCmd(a),
		newValidateCmd(a),
		newQueryCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}
