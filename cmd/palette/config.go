package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/palette/nodes"
	"github.com/agentstation/palette/registry"
)

const (
	defaultConfigFile = "~/.palette/config.yaml"
	envPrefix         = "PALETTE"
)

// Configuration keys.
const (
	keyOutput    = "output"
	keyVerbose   = "verbose"
	keyPolicy    = "policy"
	keyModelType = "agent.model_type"
	keyToolNames = "tool.names"
)

// settings is the resolved CLI configuration.
type settings struct {
	Output    string
	Verbose   bool
	Policy    registry.Policy
	ModelType string
	ToolNames []string
}

// loadSettings layers flags over environment over the config file over
// defaults. A missing default config file is not an error; a missing
// explicit one is.
func loadSettings(v *viper.Viper, flags *pflag.FlagSet, cfgFile string) (settings, error) {
	v.SetDefault(keyOutput, textFormat)
	v.SetDefault(keyPolicy, registry.PolicyDeferred.String())
	v.SetDefault(keyModelType, nodes.DefaultModelType)
	v.SetDefault(keyToolNames, nodes.DefaultToolNames)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyOutput, keyVerbose, keyPolicy} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return settings{}, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	explicit := cfgFile != ""
	if !explicit {
		cfgFile = defaultConfigFile
	}
	path, err := expandPath(cfgFile)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return settings{}, fmt.Errorf("config file %s: %w", path, err)
	}

	policy, err := registry.ParsePolicy(v.GetString(keyPolicy))
	if err != nil {
		return settings{}, err
	}

	output := v.GetString(keyOutput)
	switch output {
	case textFormat, jsonFormat, yamlFormat:
	default:
		return settings{}, fmt.Errorf("unsupported output format %q", output)
	}

	return settings{
		Output:    output,
		Verbose:   v.GetBool(keyVerbose),
		Policy:    policy,
		ModelType: v.GetString(keyModelType),
		ToolNames: splitList(v.GetStringSlice(keyToolNames)),
	}, nil
}

// splitList splits comma separated entries, as given through the
// environment, and trims the parts.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
