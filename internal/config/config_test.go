// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoad_Defaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	c, err := Load(cmd, "")
	if err != nil {
		t.Fatalf("load with defaults failed: %v", err)
	}
	if c.Server.URL != "http://127.0.0.1:8080" {
		t.Fatalf("unexpected default server url: %q", c.Server.URL)
	}
	if c.Language != "en" {
		t.Fatalf("unexpected default language: %q", c.Language)
	}
	if c.Debug {
		t.Fatal("debug must default to false")
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paneldir.yaml")
	content := "server:\n  url: https://panel.example.com\n  token: abc123\nlanguage: de\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cmd := &cobra.Command{Use: "test"}
	c, err := Load(cmd, path)
	if err != nil {
		t.Fatalf("load explicit file failed: %v", err)
	}
	if c.Server.URL != "https://panel.example.com" || c.Server.Token != "abc123" {
		t.Fatalf("server section not loaded: %+v", c.Server)
	}
	if c.Language != "de" {
		t.Fatalf("language not loaded, got %q", c.Language)
	}
}

func TestLoad_FlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paneldir.yaml")
	if err := os.WriteFile(path, []byte("language: de\n"), 0600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("language", "", "ui language")
	if err := cmd.Flags().Set("language", "en"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	c, err := Load(cmd, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Language != "en" {
		t.Fatalf("flag must override file, got %q", c.Language)
	}
}
