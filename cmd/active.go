package cmd

import (
	"errors"
	"fmt"

	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/identity"
	"github.com/byterings/gus/internal/keys"
	"github.com/spf13/cobra"
)

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the identity this repository uses",
	Long: `Display the identity stored in the repository's .git/config and the profile
it belongs to. Without one, the global git identity is shown.`,
	Args: cobra.NoArgs,
	RunE: runActive,
}

func init() {
	rootCmd.AddCommand(activeCmd)
}

func runActive(cmd *cobra.Command, args []string) error {
	_, cat, err := loadCatalog()
	if err != nil {
		return err
	}

	target := targetPath()
	resolution, err := identity.Resolve(cat, target)
	if err != nil {
		if errors.Is(err, git.ErrTargetNotFound) {
			reportMissingTarget(target)
			return nil
		}
		return fmt.Errorf("failed to resolve identity: %w", err)
	}

	if resolution == nil {
		fmt.Println("No repository identity set (global)")
		if global, err := git.GlobalIdentity(); err == nil && !global.IsEmpty() {
			fmt.Printf("  Name: %s\n", global.Name)
			fmt.Printf("  Email: %s\n", global.Email)
		}
		fmt.Println("\nSet one with: gus use <profile>")
		return nil
	}

	source := "(no matching profile)"
	if resolution.Profile != nil {
		source = resolution.Profile.Name
	}

	fmt.Printf("Active profile: %s\n", source)
	fmt.Printf("  Name: %s\n", resolution.Identity.Name)
	fmt.Printf("  Email: %s\n", resolution.Identity.Email)
	if resolution.Identity.SSHCommand != "" {
		fmt.Printf("  SSH command: %s\n", resolution.Identity.SSHCommand)
	}
	if resolution.KeyPath != "" {
		if fp, err := keys.Fingerprint(resolution.KeyPath); err == nil {
			fmt.Printf("  Key fingerprint: %s\n", fp)
		}
	}

	return nil
}
