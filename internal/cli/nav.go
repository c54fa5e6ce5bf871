package cli

import (
	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/batch"
	"github.com/aidanlsb/vaultmend/internal/pattern"
	"github.com/aidanlsb/vaultmend/internal/rewrite"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Daily note navigation rows",
}

var navFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair broken navigation rows in daily notes",
	Long: `Rebuild the '←← [[...]] / [[...]] ... →→' navigation row at the top
of each daily note, restoring the folder prefixes the links need to resolve.
Rows that already carry prefixes do not match and are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		opts := runOptions(dryRun, !noBackup)
		c := getConfig()

		weeklyDir := c.Calendar.Weekly
		if weeklyDir == "" {
			weeklyDir = "Calendar/Weekly"
		}
		dailyDir := c.Calendar.Daily
		if dailyDir == "" {
			dailyDir = "Calendar/Daily"
		}

		update, finish := reportProgress("Fixing navigation rows")
		runner := &batch.Runner{
			Root:    c.CalendarDirs(opts.VaultPath)["daily"],
			Walk:    walker.Options{ExcludeDirs: opts.ExcludeDirs},
			Pattern: pattern.NewNavRow(),
			Rule: rewrite.NavRow{
				WeeklyDir: weeklyDir,
				DailyDir:  dailyDir,
			},
			Scope:    batch.ScopeBody,
			Label:    "nav",
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
	navFixCmd.Flags().Bool("dry-run", false, "Preview without writing")
	navFixCmd.Flags().Bool("no-backup", false, "Skip per-file backups")

	navCmd.AddCommand(navFixCmd)
	rootCmd.AddCommand(navCmd)
}
