package git

import (
	"fmt"

	gogitconfig "github.com/go-git/go-git/v5/config"
)

// GlobalIdentity returns the identity from the user's global git config,
// which is what a repository falls back to once gus clears its local identity
func GlobalIdentity() (Identity, error) {
	cfg, err := gogitconfig.LoadConfig(gogitconfig.GlobalScope)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to load global git config: %w", err)
	}

	return Identity{
		Name:       cfg.User.Name,
		Email:      cfg.User.Email,
		SSHCommand: cfg.Raw.Section(SectionCore).Option(KeySSHCommand),
	}, nil
}
