package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/batch"
	"github.com/aidanlsb/vaultmend/internal/pattern"
	"github.com/aidanlsb/vaultmend/internal/rewrite"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Tag maintenance across the vault",
}

var tagsConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a tag to a wikilink everywhere",
	Long: `Convert every occurrence of a tag to a wikilink.

By default the tag matches hierarchically: --tag '#project' also rewrites
'#project/alpha'. With --exact only the standalone tag is rewritten; both
'#project2' and '#project/alpha' are left alone.

Front matter is skipped unless --frontmatter is given, so structural tag
lists survive a body rewrite.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")
		target, _ := cmd.Flags().GetString("target")
		exact, _ := cmd.Flags().GetBool("exact")
		frontmatter, _ := cmd.Flags().GetBool("frontmatter")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		if target == "" {
			return fmt.Errorf("--target is required")
		}
		p, err := pattern.NewTag(tag, exact)
		if err != nil {
			return err
		}

		scope := batch.ScopeBody
		if frontmatter {
			scope = batch.ScopeWhole
		}

		opts := runOptions(dryRun, !noBackup)
		update, finish := reportProgress(fmt.Sprintf("Converting %s", tag))
		runner := &batch.Runner{
			Root:     opts.VaultPath,
			Walk:     walker.Options{ExcludeDirs: opts.ExcludeDirs},
			Pattern:  p,
			Rule:     rewrite.Wikilink{Target: target},
			Scope:    scope,
			Label:    "tags",
			Backup:   opts.Backup,
			DryRun:   opts.DryRun,
			Progress: update,
			Log:      logger,
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

var tagsCleanDoneCmd = &cobra.Command{
	Use:   "clean-done",
	Short: "Remove #done tags and their parenthesized dates",
	Long: `Remove every '#done' tag from the vault, including the
'#done(2023-04-01)' form with a completion date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		opts := runOptions(dryRun, !noBackup)
		update, finish := reportProgress("Cleaning #done tags")
		runner := &batch.Runner{
			Root:     opts.VaultPath,
			Walk:     walker.Options{ExcludeDirs: opts.ExcludeDirs},
			Pattern:  pattern.NewDoneTag(),
			Rule:     rewrite.Remove{},
			Scope:    batch.ScopeBody,
			Label:    "done",
			Backup:   opts.Backup,
			DryRun:   opts.DryRun,
			Progress: update,
			Log:      logger,
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
	tagsConvertCmd.Flags().String("tag", "", "Tag to convert, with leading # (required)")
	tagsConvertCmd.Flags().String("target", "", "Wikilink target note name (required)")
	tagsConvertCmd.Flags().Bool("exact", false, "Match only the standalone tag, not nested variants")
	tagsConvertCmd.Flags().Bool("frontmatter", false, "Also rewrite tags inside front matter")
	tagsConvertCmd.Flags().Bool("dry-run", false, "Preview without writing")
	tagsConvertCmd.Flags().Bool("no-backup", false, "Skip per-file backups")
	_ = tagsConvertCmd.MarkFlagRequired("tag")

	tagsCleanDoneCmd.Flags().Bool("dry-run", false, "Preview without writing")
	tagsCleanDoneCmd.Flags().Bool("no-backup", false, "Skip per-file backups")

	tagsCmd.AddCommand(tagsConvertCmd)
	tagsCmd.AddCommand(tagsCleanDoneCmd)
	tagsCmd.AddCommand(tagsInventoryCmd)
	rootCmd.AddCommand(tagsCmd)
}
