package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gomod := "module example.com/app\n\ngo 1.24.0\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatal(err)
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
	return dir
}

func TestRunInit_WritesConfig(t *testing.T) {
	dir := initProject(t)

	if err := runInit(nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "beacon.yaml"))
	if err != nil {
		t.Fatalf("expected beacon.yaml written: %v", err)
	}
	if !strings.Contains(string(data), "app") {
		t.Errorf("unexpected config contents:\n%s", data)
	}
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	dir := initProject(t)
	marker := "app:\n  name: handcrafted\n"
	if err := os.WriteFile(filepath.Join(dir, "beacon.yaml"), []byte(marker), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runInit(nil); err == nil {
		t.Fatal("expected init to refuse overwriting an existing beacon.yaml")
	}

	// The existing file is untouched after the refusal.
	data, err := os.ReadFile(filepath.Join(dir, "beacon.yaml"))
	if err != nil || string(data) != marker {
		t.Errorf("expected existing config preserved, got (%q, %v)", data, err)
	}

	// --force opts into the overwrite.
	if err := runInit([]string{"--force"}); err != nil {
		t.Fatalf("expected forced init to succeed: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "beacon.yaml"))
	if string(data) == marker {
		t.Error("expected forced init to rewrite the config")
	}
}

func TestRunInit_UnknownFlag(t *testing.T) {
	initProject(t)
	if err := runInit([]string{"--bogus"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
