package cmd

import (
	"errors"
	"fmt"

	"github.com/byterings/gus/internal/config"
	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/identity"
	"github.com/byterings/gus/internal/keys"
	"github.com/byterings/gus/internal/platform"
	"github.com/byterings/gus/internal/profile"
	"github.com/byterings/gus/internal/ui"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose profile and repository issues",
	Long: `Check the profile store and the repository config.

Runs checks on:
- Profile store validity
- Required fields of every profile
- SSH key existence and permissions
- Repository .git/config and its current identity

Examples:
  gus doctor          # Run diagnostics
  gus doctor --fix    # Auto-fix key permission issues`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVarP(&doctorFix, "fix", "f", false, "Auto-fix key permission issues")
}

type checkResult struct {
	passed  bool
	message string
	fix     string // Suggested fix command
}

// warning reports a failed check that has a suggested fix
func (r checkResult) warning() bool {
	return !r.passed && r.fix != ""
}

type doctorSummary struct {
	errors   int
	warnings int
	fixed    int
}

func (s *doctorSummary) add(results []checkResult) {
	for _, r := range results {
		printCheckResult(r)
		switch {
		case r.warning():
			s.warnings++
		case !r.passed:
			s.errors++
		}
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println("Checking gus configuration...")
	fmt.Println()

	var summary doctorSummary

	fmt.Println("Profiles")
	fmt.Println("────────")

	path, err := config.ResolvePath(configPath)
	if err != nil {
		return err
	}
	storeResults, cat := checkStore(path)
	summary.add(storeResults)

	if cat != nil {
		fmt.Println()
		fmt.Println("SSH Keys")
		fmt.Println("────────")

		keyResults, fixed := checkKeys(cat, doctorFix)
		summary.add(keyResults)
		summary.fixed += fixed
	}

	fmt.Println()
	fmt.Println("Repository")
	fmt.Println("──────────")
	summary.add(checkRepository(cat, targetPath()))

	// Summary
	fmt.Println()
	fmt.Println("─────────")

	if summary.fixed > 0 {
		ui.Success(fmt.Sprintf("Auto-fixed %d issue(s)", summary.fixed))
	}

	switch {
	case summary.errors == 0 && summary.warnings == 0:
		ui.Success("All checks passed!")
	case summary.errors == 0:
		ui.Warning(fmt.Sprintf("%d warning(s)", summary.warnings))
	default:
		ui.Error(fmt.Sprintf("%d error(s), %d warning(s)", summary.errors, summary.warnings))
	}

	return nil
}

func printCheckResult(r checkResult) {
	if r.passed {
		fmt.Printf("  ✓ %s\n", r.message)
	} else if r.fix != "" {
		fmt.Printf("  ⚠ %s\n", r.message)
		fmt.Printf("    → %s\n", r.fix)
	} else {
		fmt.Printf("  ✗ %s\n", r.message)
	}
}

// checkStore never creates the store; a missing one is only reported
func checkStore(path string) ([]checkResult, *profile.Catalog) {
	exists, err := config.ConfigExists(path)
	if err != nil {
		return []checkResult{{message: fmt.Sprintf("Error checking profile store: %v", err)}}, nil
	}
	if !exists {
		return []checkResult{{message: fmt.Sprintf("Profile store not found: %s", path), fix: "Run: gus init"}}, nil
	}

	results := []checkResult{{passed: true, message: "Profile store exists"}}

	cat, err := config.LoadCatalog(path)
	if err != nil {
		return append(results, checkResult{message: fmt.Sprintf("Profile store is invalid: %v", err)}), nil
	}
	results = append(results, checkResult{passed: true, message: fmt.Sprintf("%d profile(s) configured", cat.Len())})

	for _, p := range cat.Profiles() {
		if err := p.Validate(); err != nil {
			var mf *profile.MissingFieldError
			if errors.As(err, &mf) {
				results = append(results, checkResult{
					message: fmt.Sprintf("Profile '%s' has no %s", p.Name, mf.Field),
					fix:     fmt.Sprintf("Add %s = \"...\" under [%s] in %s", mf.Field, p.Name, path),
				})
				continue
			}
		}
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("Profile '%s' is complete", p.Name)})
	}

	return results, cat
}

func checkKeys(cat *profile.Catalog, fix bool) ([]checkResult, int) {
	var results []checkResult
	fixed := 0

	for _, p := range cat.Profiles() {
		if p.SSHKey() == "" {
			continue
		}

		keyPath, err := keys.ValidateKeyPath(p.SSHKey())
		if err != nil {
			results = append(results, checkResult{
				message: fmt.Sprintf("SSH key for '%s': %v", p.Name, err),
			})
			continue
		}

		if keys.HasInsecurePermissions(keyPath) {
			if fix {
				if err := platform.FixFilePermissions(keyPath); err == nil {
					results = append(results, checkResult{passed: true, message: fmt.Sprintf("Fixed permissions: %s", keyPath)})
					fixed++
					continue
				}
			}
			results = append(results, checkResult{
				message: fmt.Sprintf("SSH key for '%s' has insecure permissions", p.Name),
				fix:     platform.GetPermissionFixCommand(keyPath),
			})
			continue
		}

		results = append(results, checkResult{passed: true, message: fmt.Sprintf("SSH key for '%s' exists", p.Name)})
	}

	return results, fixed
}

func checkRepository(cat *profile.Catalog, target string) []checkResult {
	exists, err := git.TargetExists(target)
	if err != nil {
		return []checkResult{{message: fmt.Sprintf("Error checking %s: %v", target, err)}}
	}
	if !exists {
		return []checkResult{{message: fmt.Sprintf("%s does not exist", target), fix: "Run gus inside a repository or pass -C <repo>"}}
	}

	results := []checkResult{{passed: true, message: fmt.Sprintf("%s exists", target)}}
	if cat == nil {
		cat = profile.NewCatalog()
	}

	res, err := identity.Resolve(cat, target)
	switch {
	case err != nil:
		results = append(results, checkResult{message: fmt.Sprintf("Cannot read %s: %v", target, err)})
	case res == nil:
		results = append(results, checkResult{passed: true, message: "No repository identity (global applies)"})
	case res.Profile == nil:
		results = append(results, checkResult{
			message: fmt.Sprintf("Identity %s <%s> matches no profile", res.Identity.Name, res.Identity.Email),
			fix:     "Run: gus use <profile> or gus clear",
		})
	default:
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("Using profile '%s'", res.Profile.Name)})
	}

	return results
}
