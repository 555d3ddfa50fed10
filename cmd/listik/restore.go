// Package main is the entry point for the listik application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"listik/internal/backup"
	"listik/internal/config"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `listik restore - Restore tasks from a backup

USAGE:
    listik restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-12-15_143022_000)
                   Use 'listik backup --list' to see available backups.

DESCRIPTION:
    Restores the task file from a specific backup. A safety backup is
    automatically created before restoring.

EXAMPLES:
    # Restore from a specific backup
    listik restore 2025-12-15_143022_000

    # Restore from the most recent backup
    listik restore --latest

    # Restore without confirmation prompt
    listik restore --force 2025-12-15_143022_000
`

// runRestore handles the "listik restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	// Determine which backup to restore
	var info *backup.Info
	if *latestFlag {
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
		info = &backups[0]
	} else if fs.NArg() > 0 {
		name := fs.Arg(0)
		for i := range backups {
			if backups[i].Name == name {
				info = &backups[i]
				break
			}
		}
		if info == nil {
			fmt.Fprintf(os.Stderr, "Error: backup not found: %s\n", name)
			fmt.Fprintln(os.Stderr, "Run 'listik backup --list' to see available backups.")
			os.Exit(1)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'listik restore BACKUP_NAME' or 'listik restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'listik backup --list' to see available backups.")
		os.Exit(1)
	}

	// Display backup info
	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Tasks: %d (%d pending, %d completed)\n",
		info.Stats["tasks"], info.Stats["pending"], info.Stats["completed"])
	fmt.Println()

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Println("⚠ This will overwrite your current tasks.")
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	// Perform restore
	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(info.Name); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", info.Name)
}
