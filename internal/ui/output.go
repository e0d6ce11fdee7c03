package ui

import (
	"fmt"

	"github.com/byterings/gus/internal/profile"
)

// PrintProfilesList prints the profiles in a formatted way, marking the one
// the current repository uses
func PrintProfilesList(profiles []profile.Profile, active string) {
	if len(profiles) == 0 {
		fmt.Println("No profiles configured yet.")
		fmt.Println("\nAdd your first profile with: gus add")
		return
	}

	fmt.Println("\nConfigured profiles:")
	fmt.Println()

	for _, p := range profiles {
		indicator := " "
		if p.Name == active {
			indicator = "→"
		}

		fmt.Printf("%s %-20s %-30s %s\n",
			indicator,
			p.Name,
			p.Email(),
			p.UserName(),
		)
	}

	fmt.Println()
	if active == "" {
		fmt.Println("This repository uses no profile. Use 'gus use <profile>' to set one.")
	}
}

// Success prints a success message with checkmark
func Success(message string) {
	fmt.Printf("✓ %s\n", message)
}

// Error prints an error message
func Error(message string) {
	fmt.Printf("✗ %s\n", message)
}

// Info prints an info message
func Info(message string) {
	fmt.Printf("ℹ %s\n", message)
}

// Warning prints a warning message
func Warning(message string) {
	fmt.Printf("⚠ %s\n", message)
}
