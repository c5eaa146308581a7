// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"
)

// runCommand executes a fresh root command with args and returns its output.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "paneldir") {
		t.Fatalf("expected version output, got %q", out)
	}
}

func TestAccountListDemoMode(t *testing.T) {
	out, _, err := runCommand(t, "", "--demo", "account", "list")
	if err != nil {
		t.Fatalf("account list failed: %v", err)
	}
	// The demo directory ships with seeded accounts.
	if !strings.Contains(out, "alice") {
		t.Fatalf("expected seeded demo account in output, got %q", out)
	}
	if !strings.Contains(out, "USERNAME") {
		t.Fatalf("expected table header, got %q", out)
	}
}

func TestAccountCreateDemoMode(t *testing.T) {
	out, errOut, err := runCommand(t, "", "--demo", "account", "create",
		"--username", "newuser", "--password", "hunter2", "--limit", "25", "--days", "7")
	if err != nil {
		t.Fatalf("account create failed: %v (stderr: %q)", err, errOut)
	}
	if !strings.Contains(out, "newuser") {
		t.Fatalf("expected success notification naming the account, got %q", out)
	}
}

func TestAccountCreateDuplicateFails(t *testing.T) {
	// alice is seeded in the demo directory.
	_, errOut, err := runCommand(t, "", "--demo", "account", "create",
		"--username", "alice", "--password", "hunter2")
	if err == nil {
		t.Fatal("expected duplicate create to fail")
	}
	if !strings.Contains(errOut, "already exists") {
		t.Fatalf("expected server detail in error output, got %q", errOut)
	}
}

func TestAccountDeleteDeclined(t *testing.T) {
	assumeYes = false
	out, _, err := runCommand(t, "n\n", "--demo", "account", "delete", "some-id")
	if err != nil {
		t.Fatalf("declined delete must be a no-op, got error: %v", err)
	}
	if !strings.Contains(out, "Are you sure you want to delete this user?") {
		t.Fatalf("expected confirmation prompt, got %q", out)
	}
}

func TestAccountDeleteUnknownIDFails(t *testing.T) {
	_, errOut, err := runCommand(t, "", "--demo", "account", "delete", "--yes", "missing-id")
	if err == nil {
		t.Fatal("expected delete of unknown id to fail")
	}
	if !strings.Contains(errOut, "Failed to delete account") {
		t.Fatalf("expected generic delete failure message, got %q", errOut)
	}
}
