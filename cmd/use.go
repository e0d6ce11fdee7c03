package cmd

import (
	"errors"
	"fmt"

	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/profile"
	"github.com/byterings/gus/internal/selection"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <profile>",
	Short: "Apply a profile to this repository",
	Long: `Write the profile's name and email to user.name and user.email and point
core.sshCommand at its SSH key in the repository's .git/config.`,
	Args: cobra.ExactArgs(1),
	Example: `  gus use work
  gus use -C ~/src/widgets personal`,
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	_, cat, err := loadCatalog()
	if err != nil {
		return err
	}

	p, err := cat.Get(args[0])
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return fmt.Errorf("profile '%s' not found\nRun: gus list", args[0])
		}
		return err
	}

	target := targetPath()
	err = git.NewApplier(newLogger()).Apply(target, p)
	return report(selection.ApplyRequested, p.Name, err, target)
}
