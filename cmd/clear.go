package cmd

import (
	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/selection"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"global"},
	Short:   "Remove the profile identity from this repository",
	Long: `Remove user.name, user.email and core.sshCommand from the repository's
.git/config so the global git identity applies again. Sections left empty are
removed.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	target := targetPath()
	err := git.NewApplier(newLogger()).Clear(target)
	return report(selection.ClearRequested, "", err, target)
}
