package identity

import (
	"strings"

	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/platform"
	"github.com/byterings/gus/internal/profile"
	"github.com/kballard/go-shellquote"
)

// Resolution is the identity a repository config carries and the profile
// it came from. Profile is nil when no profile matches.
type Resolution struct {
	Identity git.Identity
	KeyPath  string
	Profile  *profile.Profile
}

// Resolve reads the target config and matches its identity against cat.
// It returns nil when the config has no identity keys.
func Resolve(cat *profile.Catalog, target string) (*Resolution, error) {
	id, err := git.ReadIdentity(target)
	if err != nil {
		return nil, err
	}
	if id.IsEmpty() {
		return nil, nil
	}

	res := &Resolution{
		Identity: id,
		KeyPath:  KeyFromSSHCommand(id.SSHCommand),
	}
	for _, p := range cat.Profiles() {
		if matches(p, res) {
			p := p
			res.Profile = &p
			break
		}
	}
	return res, nil
}

func matches(p profile.Profile, res *Resolution) bool {
	if p.Email() != res.Identity.Email || p.UserName() != res.Identity.Name {
		return false
	}
	if res.Identity.SSHCommand == "" || res.Identity.SSHCommand == git.SSHCommand(p.SSHKey()) {
		return true
	}
	return res.KeyPath != "" && samePath(res.KeyPath, p.SSHKey())
}

func samePath(a, b string) bool {
	ea, err := platform.ExpandTilde(a)
	if err != nil {
		return a == b
	}
	eb, err := platform.ExpandTilde(b)
	if err != nil {
		return a == b
	}
	return ea == eb
}

// KeyFromSSHCommand returns the identity file passed with -i, if any
func KeyFromSSHCommand(command string) string {
	words, err := shellquote.Split(command)
	if err != nil {
		return ""
	}

	for i, w := range words {
		switch {
		case w == "-i" && i+1 < len(words):
			return words[i+1]
		case strings.HasPrefix(w, "-i") && len(w) > 2:
			return w[2:]
		}
	}
	return ""
}
