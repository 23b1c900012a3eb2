// Command beacon is the developer CLI for Beacon projects.
//
// The command structure follows standard Go CLI patterns with a root
// command that dispatches to subcommands (init, doctor).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/beacon/cmd/beacon/internal/config"
)

// Version information set at build time.
var Version = "0.1.0-dev"

// command represents a CLI command.
type command struct {
	name  string
	short string
	usage string
	run   func(args []string) error
}

var commands = []*command{
	{
		name:  "init",
		short: "Write a beacon.yaml skeleton into the current project",
		usage: "beacon init [--force]",
		run:   runInit,
	},
	{
		name:  "doctor",
		short: "Resolve and print the project's Beacon configuration",
		usage: "beacon doctor",
		run:   runDoctor,
	},
	{
		name:  "version",
		short: "Print the CLI version",
		usage: "beacon version",
		run: func(args []string) error {
			fmt.Println("beacon", Version)
			return nil
		},
	},
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printHelp()
		return
	}

	for _, cmd := range commands {
		if cmd.name == args[0] {
			if err := cmd.run(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "beacon %s: %v\n", cmd.name, err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "beacon: unknown command %q\n", args[0])
	printHelp()
	os.Exit(1)
}

func printHelp() {
	fmt.Println("Beacon - presenter lifecycle and service registry runtime")
	fmt.Println()
	fmt.Println("Usage: beacon <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-10s %s\n", cmd.name, cmd.short)
	}
}

func runInit(args []string) error {
	force := false
	for _, arg := range args {
		switch arg {
		case "--force", "-f":
			force = true
		default:
			return fmt.Errorf("unknown flag %q", arg)
		}
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(filepath.Join(root, "beacon.yaml")); err == nil {
			return fmt.Errorf("beacon.yaml already exists in %s (use --force to overwrite)", root)
		}
	}

	resolved, err := config.Resolve(root)
	if err != nil {
		return err
	}

	cfg := &config.Config{}
	cfg.App.Name = resolved.AppName
	if err := config.Write(root, cfg); err != nil {
		return err
	}

	fmt.Printf("wrote %s/beacon.yaml for module %s\n", root, resolved.ModulePath)
	return nil
}

func runDoctor(args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	resolved, err := config.Resolve(root)
	if err != nil {
		return err
	}

	fmt.Printf("project root:  %s\n", resolved.Root)
	fmt.Printf("module path:   %s\n", resolved.ModulePath)
	fmt.Printf("app name:      %s\n", resolved.AppName)
	if resolved.DebugPort > 0 {
		fmt.Printf("debug server:  port %d\n", resolved.DebugPort)
	} else {
		fmt.Printf("debug server:  disabled\n")
	}
	fmt.Printf("verbose errors: %v\n", resolved.Verbose)
	if resolved.Shared {
		fmt.Printf("registry:      shared (mutex-guarded)\n")
	} else {
		fmt.Printf("registry:      single-writer\n")
	}
	if resolved.Freeze {
		fmt.Printf("               frozen after boot\n")
	}
	return nil
}
