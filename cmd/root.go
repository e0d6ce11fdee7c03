package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/platform"
	"github.com/byterings/gus/internal/selection"
	"github.com/byterings/gus/internal/tui"
	"github.com/byterings/gus/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags
	configPath string
	repoDir    string
	debug      bool

	version = "0.1.0" // Set during build
)

// rootCmd opens the interactive profile picker when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "gus",
	Short: "Git User Switcher - pick the git identity for this repository",
	Long: `gus keeps named credential profiles (name, email and SSH key) in ~/.gus/config
and writes the selected one into the current repository's .git/config.

Run without arguments to pick a profile interactively. "Global" removes the
repository identity so the global git configuration applies again.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSelect,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gus %s (%s)\n", version, platform.GetPlatformName())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Profile store (default ~/.gus/config)")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "C", ".", "Repository whose .git/config is changed")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write diagnostic logs to stderr")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and prints any error once
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		return err
	}
	return nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	if !platform.IsInteractive(os.Stdin) {
		return fmt.Errorf("the profile picker needs a terminal\nRun: gus use <profile> or gus clear")
	}

	storePath, cat, err := loadCatalog()
	if err != nil {
		return err
	}

	log := newLogger()
	target := targetPath()

	fmt.Println("Git User Switcher (GUS)")
	fmt.Println("=========================")

	session := selection.NewSession(cat, git.NewApplier(log), target, log)
	for {
		outcome, err := tui.Run(session, currentProfileName(cat, target))
		if err != nil {
			return err
		}
		if outcome == nil {
			return nil
		}

		if outcome.Result.Kind != selection.CreateRequested {
			return report(outcome.Result.Kind, outcome.Profile, outcome.Err, target)
		}

		fmt.Println("Please enter your credential information:")
		if _, err := createProfile(storePath, cat, addOptions{}); err != nil {
			return err
		}
		session.Rebuild(cat)
	}
}

// report prints the result of a clear or apply. A missing target is
// reported and ends the command without an error.
func report(kind selection.ResultKind, profileName string, err error, target string) error {
	if err != nil {
		if errors.Is(err, git.ErrTargetNotFound) {
			reportMissingTarget(target)
			return nil
		}
		return err
	}

	switch kind {
	case selection.ClearRequested:
		ui.Success("Cleared git credential, the global identity applies")
	case selection.ApplyRequested:
		ui.Success(fmt.Sprintf("Switched git credential to %s", profileName))
	}
	return nil
}
