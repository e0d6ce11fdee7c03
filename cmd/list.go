package cmd

import (
	"github.com/byterings/gus/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all credential profiles",
	Long:    `Display all credential profiles and highlight the one this repository uses.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, cat, err := loadCatalog()
	if err != nil {
		return err
	}

	ui.PrintProfilesList(cat.Profiles(), currentProfileName(cat, targetPath()))

	return nil
}
