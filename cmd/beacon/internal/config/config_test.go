package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, modulePath, yamlBody string) string {
	t.Helper()
	dir := t.TempDir()
	gomod := "module " + modulePath + "\n\ngo 1.24.0\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatal(err)
	}
	if yamlBody != "" {
		if err := os.WriteFile(filepath.Join(dir, "beacon.yaml"), []byte(yamlBody), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadOptional_MissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("missing beacon.yaml should not be an error: %v", err)
	}
	if cfg.App.Name != "" || cfg.Debug.Port != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadOptional_Malformed(t *testing.T) {
	dir := writeProject(t, "example.com/app", "app: [not a mapping\n")
	if _, err := LoadOptional(dir); err == nil {
		t.Error("expected parse error for malformed beacon.yaml")
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := writeProject(t, "example.com/team/checkout", "")
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.ModulePath != "example.com/team/checkout" {
		t.Errorf("unexpected module path %q", r.ModulePath)
	}
	if r.AppName != "checkout" {
		t.Errorf("expected app name from module path, got %q", r.AppName)
	}
	if r.DebugPort != 0 || r.Verbose || r.Shared || r.Freeze {
		t.Errorf("expected zero-valued settings, got %+v", r)
	}
}

func TestResolve_ExplicitConfig(t *testing.T) {
	body := "app:\n  name: storefront\ndebug:\n  port: 9380\n  verbose: true\nregistry:\n  shared: true\n  freeze: true\n"
	dir := writeProject(t, "example.com/app/v2", body)
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.AppName != "storefront" {
		t.Errorf("expected configured app name, got %q", r.AppName)
	}
	if r.DebugPort != 9380 || !r.Verbose || !r.Shared || !r.Freeze {
		t.Errorf("unexpected resolved settings: %+v", r)
	}
}

func TestResolve_NoGoMod(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Error("expected error when go.mod is absent")
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &Config{}
	in.App.Name = "demo"
	in.Debug.Port = 9380
	if err := Write(dir, in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional failed: %v", err)
	}
	if out.App.Name != "demo" || out.Debug.Port != 9380 {
		t.Errorf("round-trip mismatch: %+v", out)
	}
}
