package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/ui"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Backup file housekeeping",
}

var backupsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete backup files whose original still exists",
	Long: `Find every .bak and .backup file in the vault and delete the ones
whose original note still exists. Orphaned backups, whose original is gone,
are kept and listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		opts := runOptions(dryRun, false)

		var deleted, kept []string
		for _, ext := range []string{".bak", ".backup"} {
			walkOpts := walker.Options{Ext: ext, ExcludeDirs: opts.ExcludeDirs}
			err := walker.Walk(opts.VaultPath, walkOpts, func(path string) error {
				rel, relErr := filepath.Rel(opts.VaultPath, path)
				if relErr != nil {
					rel = path
				}
				rel = filepath.ToSlash(rel)

				if originalFor(path) == "" {
					kept = append(kept, rel)
					return nil
				}
				if !dryRun {
					if err := os.Remove(path); err != nil {
						logger.Debug().Str("path", rel).Err(err).Msg("delete failed")
						kept = append(kept, rel)
						return nil
					}
				}
				deleted = append(deleted, rel)
				return nil
			})
			if err != nil {
				return err
			}
		}

		verb := "deleted"
		if dryRun {
			verb = "would delete"
		}
		for _, rel := range deleted {
			fmt.Printf("  %s %s %s\n", ui.SymbolSuccess, verb, ui.FilePath(rel))
		}
		for _, rel := range kept {
			fmt.Printf("  %s keeping %s %s\n", ui.SymbolWarning, ui.FilePath(rel),
				ui.Hint("(no original file)"))
		}

		fmt.Println()
		fmt.Printf("%d backup %s %s, %d kept\n",
			len(deleted), ui.Pluralize("file", len(deleted)), verb, len(kept))
		return nil
	},
}

// originalFor resolves the note a backup belongs to, or "" when none exists.
// Both bare "note.md.bak" and labeled "note.md.tags.bak" forms are handled.
func originalFor(backupPath string) string {
	stem := strings.TrimSuffix(strings.TrimSuffix(backupPath, ".bak"), ".backup")
	if _, err := os.Stat(stem); err == nil {
		return stem
	}
	// Labeled backups carry the rule label as an extra extension.
	if ext := filepath.Ext(stem); ext != "" {
		labeled := strings.TrimSuffix(stem, ext)
		if _, err := os.Stat(labeled); err == nil {
			return labeled
		}
	}
	return ""
}

func init() {
	backupsCleanCmd.Flags().Bool("dry-run", false, "Preview without deleting")

	backupsCmd.AddCommand(backupsCleanCmd)
	rootCmd.AddCommand(backupsCmd)
}
