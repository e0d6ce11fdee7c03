package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/byterings/gus/internal/config"
	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/identity"
	"github.com/byterings/gus/internal/profile"
	"github.com/byterings/gus/internal/ui"
)

// loadCatalog resolves the profile store and loads it, creating an empty
// store on first use
func loadCatalog() (string, *profile.Catalog, error) {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return "", nil, err
	}

	cat, err := config.LoadCatalog(path)
	if err != nil {
		return "", nil, err
	}
	newLogger().Debug("profiles loaded", "path", path, "count", cat.Len())
	return path, cat, nil
}

func targetPath() string {
	return git.TargetPath(repoDir)
}

func newLogger() *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// currentProfileName returns the profile the target already uses, or ""
func currentProfileName(cat *profile.Catalog, target string) string {
	res, err := identity.Resolve(cat, target)
	if err != nil || res == nil || res.Profile == nil {
		return ""
	}
	return res.Profile.Name
}

func reportMissingTarget(target string) {
	fmt.Printf("%s does not exist!\n", target)

	dir, err := filepath.Abs(repoDir)
	if err != nil {
		return
	}
	if root := git.FindRepoRoot(dir); root != "" && root != dir {
		ui.Info(fmt.Sprintf("Repository root is %s; run gus there or pass -C %s", root, root))
	}
}
