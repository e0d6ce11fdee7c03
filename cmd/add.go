package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/byterings/gus/internal/config"
	"github.com/byterings/gus/internal/keys"
	"github.com/byterings/gus/internal/platform"
	"github.com/byterings/gus/internal/profile"
	"github.com/byterings/gus/internal/ui"
	"github.com/spf13/cobra"
)

type addOptions struct {
	profile     string
	name        string
	email       string
	sshKey      string
	generateKey bool
}

// fromFlags reports whether every field was given on the command line
func (o addOptions) fromFlags() bool {
	return o.profile != "" && o.name != "" && o.email != "" && (o.sshKey != "" || o.generateKey)
}

var addFlags addOptions

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new credential profile",
	Long:  `Create a new credential profile with a name, email and SSH key.`,
	Example: `  # Interactive mode
  gus add

  # Using flags
  gus add --profile work --name "John Doe" --email john@work.com --ssh-key ~/.ssh/id_work
  gus add --profile oss --name "John Doe" --email john@oss.dev --generate-key`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addFlags.profile, "profile", "", "Profile name shown in the list (e.g., work, personal)")
	addCmd.Flags().StringVar(&addFlags.name, "name", "", "Author name for Git commits")
	addCmd.Flags().StringVar(&addFlags.email, "email", "", "Author email for Git commits")
	addCmd.Flags().StringVar(&addFlags.sshKey, "ssh-key", "", "Path to an existing SSH private key")
	addCmd.Flags().BoolVar(&addFlags.generateKey, "generate-key", false, "Generate a new ed25519 key in ~/.ssh")
	addCmd.MarkFlagsMutuallyExclusive("ssh-key", "generate-key")
}

func runAdd(cmd *cobra.Command, args []string) error {
	storePath, cat, err := loadCatalog()
	if err != nil {
		return err
	}

	if !addFlags.fromFlags() {
		if !platform.IsInteractive(os.Stdin) {
			return fmt.Errorf("missing flags: --profile, --name, --email and --ssh-key or --generate-key are required without a terminal")
		}
		fmt.Println("Adding new credential profile")
		fmt.Println()
	}

	p, err := createProfile(storePath, cat, addFlags)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Next: gus use %s\n", p.Name)
	return nil
}

// createProfile collects a profile from flags or prompts, appends it to cat
// and saves the store
func createProfile(storePath string, cat *profile.Catalog, opts addOptions) (profile.Profile, error) {
	var name, userName, email string
	if opts.fromFlags() {
		name = strings.TrimSpace(opts.profile)
		userName = strings.TrimSpace(opts.name)
		email = strings.TrimSpace(opts.email)
		if name == "" || userName == "" || email == "" {
			return profile.Profile{}, fmt.Errorf("profile name, name and email cannot be empty")
		}
	} else {
		var err error
		name, userName, email, err = ui.PromptProfileInfo(cat)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("failed to get profile info: %w", err)
		}
	}

	// Reject duplicates before a key is generated for them
	if _, err := cat.Get(name); err == nil {
		return profile.Profile{}, fmt.Errorf("%w: '%s'", profile.ErrDuplicateName, name)
	}

	sshKey, err := resolveSSHKey(name, opts)
	if err != nil {
		return profile.Profile{}, err
	}

	if keys.HasInsecurePermissions(sshKey) {
		ui.Warning(fmt.Sprintf("Key file has insecure permissions: %s", sshKey))
		if err := offerPermissionFix(sshKey, opts.fromFlags()); err != nil {
			return profile.Profile{}, err
		}
	}

	p := profile.New(name, userName, email, sshKey)
	if err := cat.Append(p); err != nil {
		return profile.Profile{}, fmt.Errorf("failed to add profile: %w", err)
	}

	if err := config.SaveCatalog(storePath, cat); err != nil {
		return profile.Profile{}, err
	}

	ui.Success(fmt.Sprintf("Success to create new credentials profile: %s", name))
	return p, nil
}

func resolveSSHKey(name string, opts addOptions) (string, error) {
	generate := opts.generateKey
	keyPath := opts.sshKey

	if !opts.fromFlags() {
		choice, err := ui.PromptSSHKeyOption()
		if err != nil {
			return "", fmt.Errorf("failed to get SSH key option: %w", err)
		}
		generate = choice == ui.KeyOptionGenerate
		if !generate {
			keyPath, err = ui.PromptExistingKeyPath()
			if err != nil {
				return "", fmt.Errorf("failed to get key path: %w", err)
			}
		}
	}

	if !generate {
		return keys.ValidateKeyPath(strings.TrimSpace(keyPath))
	}

	privateKey, _, err := keys.Generate(name)
	if err != nil {
		return "", err
	}
	ui.Success(fmt.Sprintf("SSH key generated: %s", privateKey))

	if fp, err := keys.Fingerprint(privateKey); err == nil {
		fmt.Println("\n" + strings.Repeat("-", 70))
		fmt.Printf("Public key: %s.pub\n", privateKey)
		fmt.Printf("Fingerprint: %s\n", fp)
		fmt.Println("Add the public key to your git host before pushing.")
		fmt.Println(strings.Repeat("-", 70))
	}
	return privateKey, nil
}

func offerPermissionFix(keyPath string, nonInteractive bool) error {
	if nonInteractive || !platform.IsInteractive(os.Stdin) {
		fmt.Printf("  Run: %s\n", platform.GetPermissionFixCommand(keyPath))
		return nil
	}

	confirmed, err := ui.PromptConfirmation("Restrict the key to your user now?")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	if err := platform.FixFilePermissions(keyPath); err != nil {
		return fmt.Errorf("failed to fix key permissions: %w", err)
	}
	ui.Success("Key permissions fixed")
	return nil
}
