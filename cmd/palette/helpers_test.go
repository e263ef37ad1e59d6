package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home directory: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde only", "~", home},
		{"tilde with path", "~/test/path", filepath.Join(home, "test", "path")},
		{"absolute path", "/absolute/path", "/absolute/path"},
		{"relative path", "relative/path", "relative/path"},
		{"empty path", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("expandPath() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWriteStructured(t *testing.T) {
	value := map[string]any{"title": "Agent_1", "size": map[string]int{"width": 360}}

	var buf bytes.Buffer
	if err := writeStructured(&buf, yamlFormat, value); err != nil {
		t.Fatalf("writeStructured(yaml) failed: %v", err)
	}
	if !strings.Contains(buf.String(), "title: Agent_1") || !strings.Contains(buf.String(), "width: 360") {
		t.Errorf("unexpected yaml output:\n%s", buf.String())
	}

	buf.Reset()
	if err := writeStructured(&buf, jsonFormat, value); err != nil {
		t.Fatalf("writeStructured(json) failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"title": "Agent_1"`) {
		t.Errorf("unexpected json output:\n%s", buf.String())
	}
}
