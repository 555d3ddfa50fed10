// Package main is the entry point for the listik application.
// It loads configuration, initializes the task store, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"listik/internal/config"
	"listik/internal/store"
	"listik/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `listik - Saisie rapide de tâches, dates comprises

USAGE:
    listik [OPTIONS]
    listik <command> [ARGS]

COMMANDS:
    backup           Create a backup of your tasks
    backup --list    List available backups
    backup --prune N Keep only the N most recent backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    listik is a terminal task app built around one idea: type the task the
    way you would say it. Dates ("demain", "lundi", "le 15 mars") and
    priorities ("urgent", "plus tard") are picked out of the text as you
    type, so adding a dated task is a single line and a single enter.

KEYBINDINGS:
    Global:
        Tab          Switch between today and the planner
        ?            Show help overlay
        Ctrl+C       Quit

    Today:
        j/k, ↓/↑     Navigate
        a, i         Add a task
        d/Space      Toggle done
        g/G          Go to top/bottom

    Capture:
        Enter        Add the task
        Esc          Cancel
        Ctrl+T       Set date to today
        Ctrl+N       Set date to tomorrow
        Ctrl+←/→     Shift the date one day
        Ctrl+D       Clear the date
        Ctrl+P       Cycle priority

    Planner:
        h/l          Previous / next week
        t            Back to the current week
        v            Toggle week grid / all tasks

DATA STORAGE:
    Tasks are stored as plain JSON in ~/.listik/tasks.json.
    Backups live in ~/.listik/backups/.

CONFIGURATION:
    Optional config file: ~/.config/listik/config.yaml
    Covers theme colors, key bindings, locale (fr/en), and extra
    priority trigger phrases.

EXAMPLES:
    # Start the app
    listik

    # Create a backup
    listik backup

    # Restore from the most recent backup
    listik restore --latest

    # Show version
    listik --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("listik version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/listik/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize the task store with the configured data directory
	st, err := store.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
		os.Exit(1)
	}

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	// Run the TUI
	if err := ui.Run(st, styles, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
