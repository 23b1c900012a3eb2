// Package config loads and resolves the optional beacon.yaml project
// configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional beacon.yaml configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Debug    DebugConfig    `yaml:"debug"`
	Registry RegistryConfig `yaml:"registry"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// DebugConfig controls the debug server and error verbosity.
type DebugConfig struct {
	// Port enables the HTTP debug server when >0; 0 disables it.
	Port int `yaml:"port,omitempty"`
	// Verbose enables stack traces in the error log handler.
	Verbose bool `yaml:"verbose,omitempty"`
}

// RegistryConfig contains registry settings.
type RegistryConfig struct {
	// Shared selects the mutex-guarded registry form for multi-threaded hosts.
	Shared bool `yaml:"shared,omitempty"`
	// Freeze marks the registry read-only once boot wiring completes.
	Freeze bool `yaml:"freeze,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	DebugPort  int
	Verbose    bool
	Shared     bool
	Freeze     bool
}

// LoadOptional reads beacon.yaml if present. A missing file is not an
// error; it resolves to the zero config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "beacon.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read beacon.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse beacon.yaml: %w", err)
	}

	return &cfg, nil
}

// Write saves cfg as beacon.yaml in dir.
func Write(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode beacon.yaml: %w", err)
	}
	path := filepath.Join(dir, "beacon.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write beacon.yaml: %w", err)
	}
	return nil
}

// Resolve loads beacon.yaml (if present) and resolves defaults against the
// host module's go.mod.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}
	if err := module.CheckPath(modulePath); err != nil {
		return nil, fmt.Errorf("invalid module path %q: %w", modulePath, err)
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		DebugPort:  cfg.Debug.Port,
		Verbose:    cfg.Debug.Verbose,
		Shared:     cfg.Registry.Shared,
		Freeze:     cfg.Registry.Freeze,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "beacon_app"
	}
	return base
}
