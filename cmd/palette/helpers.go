package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// expandPath expands ~ to home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// writeStructured writes v as JSON or YAML. Values go through their JSON
// form so custom JSON marshalers shape the YAML output too.
func writeStructured(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if format == yamlFormat {
		data, err = yaml.JSONToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to convert output to yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
