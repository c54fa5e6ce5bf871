package cli

import (
	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/batch"
	"github.com/aidanlsb/vaultmend/internal/pattern"
	"github.com/aidanlsb/vaultmend/internal/rewrite"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Wikilink maintenance across the vault",
}

var linksSimplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Strip folder paths from wikilink targets",
	Long: `Rewrite path-qualified wikilinks to bare note names:
[[Projects/Work/Report]] becomes [[Report]], and [[Projects/Report|the
report]] keeps its alias. Already-simple links are untouched, so the
rewrite is idempotent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		noBackup, _ := cmd.Flags().GetBool("no-backup")
		maxSize, _ := cmd.Flags().GetInt("max-size")
		startAt, _ := cmd.Flags().GetInt("start-at")
		maxFiles, _ := cmd.Flags().GetInt("max-files")

		opts := runOptions(dryRun, !noBackup)
		update, finish := reportProgress("Simplifying wikilinks")
		runner := &batch.Runner{
			Root:          opts.VaultPath,
			Walk:          walker.Options{ExcludeDirs: opts.ExcludeDirs},
			Pattern:       pattern.NewPathedWikilink(),
			Rule:          rewrite.SimplifyLink{},
			Scope:         batch.ScopeBody,
			Label:         "links",
			Backup:        opts.Backup,
			DryRun:        opts.DryRun,
			MaxFileSizeKB: maxSize,
			StartAt:       startAt,
			MaxFiles:      maxFiles,
			Progress:      update,
			Log:           logger,
		}

		report, err := runner.Run()
		finish()
		if err != nil {
			return err
		}
		printReport(report, dryRun)
		return nil
	},
}

func init() {
	linksSimplifyCmd.Flags().Bool("dry-run", false, "Preview without writing")
	linksSimplifyCmd.Flags().Bool("no-backup", false, "Skip per-file backups")
	linksSimplifyCmd.Flags().Int("max-size", 0, "Skip files larger than this many KB")
	linksSimplifyCmd.Flags().Int("start-at", 0, "Skip the first N candidate files")
	linksSimplifyCmd.Flags().Int("max-files", 0, "Process at most N files")

	linksCmd.AddCommand(linksSimplifyCmd)
	rootCmd.AddCommand(linksCmd)
}
