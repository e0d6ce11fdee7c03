package ui

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/byterings/gus/internal/keys"
	"github.com/byterings/gus/internal/profile"
)

// SSH key setup choices offered by PromptSSHKeyOption
const (
	KeyOptionExisting = "Use an existing key"
	KeyOptionGenerate = "Generate new key pair"
)

// PromptProfileInfo prompts for the identity fields of a new profile
func PromptProfileInfo(cat *profile.Catalog) (name, userName, email string, err error) {
	namePrompt := &survey.Input{
		Message: "Profile name (e.g., work, personal):",
		Help:    "Shown in the profile list; must be unique",
	}
	if err := survey.AskOne(namePrompt, &name, survey.WithValidator(ProfileNameValidator(cat))); err != nil {
		return "", "", "", err
	}

	userPrompt := &survey.Input{
		Message: "Name:",
		Help:    "Author name for Git commits (e.g., John Doe)",
	}
	if err := survey.AskOne(userPrompt, &userName, survey.WithValidator(NotBlank)); err != nil {
		return "", "", "", err
	}

	emailPrompt := &survey.Input{
		Message: "Email:",
		Help:    "Author email for Git commits (e.g., john@example.com)",
	}
	if err := survey.AskOne(emailPrompt, &email, survey.WithValidator(NotBlank)); err != nil {
		return "", "", "", err
	}

	return strings.TrimSpace(name), strings.TrimSpace(userName), strings.TrimSpace(email), nil
}

// PromptSSHKeyOption asks whether to reuse or generate a key
func PromptSSHKeyOption() (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: "How do you want to set up the SSH key?",
		Options: []string{KeyOptionExisting, KeyOptionGenerate},
		Default: KeyOptionExisting,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

// PromptExistingKeyPath prompts for an existing SSH private key
func PromptExistingKeyPath() (string, error) {
	var path string
	prompt := &survey.Input{
		Message: "SSH Key Path:",
		Help:    "Full path to your private key file (e.g., ~/.ssh/id_ed25519)",
	}
	if err := survey.AskOne(prompt, &path, survey.WithValidator(KeyPathValidator)); err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

// PromptConfirmation prompts for yes/no confirmation
func PromptConfirmation(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

// NotBlank rejects empty and whitespace-only answers
func NotBlank(val interface{}) error {
	if str, ok := val.(string); ok && strings.TrimSpace(str) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

// ProfileNameValidator rejects blank names and names already in cat
func ProfileNameValidator(cat *profile.Catalog) survey.Validator {
	return func(val interface{}) error {
		if err := NotBlank(val); err != nil {
			return fmt.Errorf("profile name cannot be empty")
		}
		name, _ := val.(string)
		if _, err := cat.Get(strings.TrimSpace(name)); err == nil {
			return fmt.Errorf("%w: '%s'", profile.ErrDuplicateName, strings.TrimSpace(name))
		}
		return nil
	}
}

// KeyPathValidator requires the key file to exist
func KeyPathValidator(val interface{}) error {
	if err := NotBlank(val); err != nil {
		return fmt.Errorf("SSH key path cannot be empty")
	}
	path, _ := val.(string)
	_, err := keys.ValidateKeyPath(strings.TrimSpace(path))
	return err
}
