package cmd

import (
	"fmt"

	"github.com/byterings/gus/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the profile store",
	Long:  `Create ~/.gus/config. This is optional - gus creates it on first use.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return err
	}

	created, err := config.Init(path)
	if err != nil {
		return err
	}

	if !created {
		fmt.Printf("gus is already initialized at: %s\n", path)
		return nil
	}

	fmt.Printf("✓ gus initialized at: %s\n", path)
	fmt.Println("\nNext: gus add")

	return nil
}
