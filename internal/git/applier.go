package git

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/byterings/gus/internal/profile"
	"github.com/moby/sys/atomicwriter"
)

// TargetPath returns the repository config path inside repoDir
func TargetPath(repoDir string) string {
	return filepath.Join(repoDir, ".git", "config")
}

// Applier writes profile credentials into a repository config file.
//
// Every call reads the file fresh and writes it back in full through a
// temp file and rename, so a failed write leaves the old content in place.
// Only the lines holding user.email, user.name and core.sshCommand change.
// There is no locking: an edit made by another process between the read
// and the write is lost.
type Applier struct {
	log *slog.Logger
}

// NewApplier returns an applier that logs to log (nil discards)
func NewApplier(log *slog.Logger) *Applier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Applier{log: log}
}

// Clear removes user.email, user.name and core.sshCommand from the config
// at path. Clearing a config without those keys succeeds without writing.
func (a *Applier) Clear(path string) error {
	return a.update(path, func(t *TargetConfig) bool {
		return t.ClearCredential()
	})
}

// Apply writes the profile's identity into the config at path. A missing
// target is reported before an incomplete profile; neither reads or writes.
func (a *Applier) Apply(path string, p profile.Profile) error {
	if _, err := statTarget(path); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return a.update(path, func(t *TargetConfig) bool {
		return t.ApplyCredential(p.Email(), p.UserName(), p.SSHKey())
	})
}

func (a *Applier) update(path string, mutate func(*TargetConfig) bool) error {
	info, err := statTarget(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	target, err := ParseTarget(data)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	if !mutate(target) {
		a.log.Debug("git config unchanged", "path", path)
		return nil
	}

	out, err := target.Encode()
	if err != nil {
		return err
	}

	if err := atomicwriter.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.log.Debug("git config written", "path", path, "bytes", len(out))
	return nil
}

// ReadIdentity returns the credential keys of the config at path
func ReadIdentity(path string) (Identity, error) {
	if _, err := statTarget(path); err != nil {
		return Identity{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	target, err := ParseTarget(data)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return target.Identity(), nil
}

// TargetExists checks for the config file without creating anything
func TargetExists(path string) (bool, error) {
	_, err := statTarget(path)
	if errors.Is(err, ErrTargetNotFound) {
		return false, nil
	}
	return err == nil, err
}

func statTarget(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, path)
		}
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}
	return info, nil
}

// FindRepoRoot walks up from dir to the first directory holding .git
func FindRepoRoot(dir string) string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil && info.IsDir() {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			return ""
		}
		current = parent
	}
}
