package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/migrate"
	"github.com/aidanlsb/vaultmend/internal/ui"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import notes from other tools",
}

var migrateNotePlanCmd = &cobra.Command{
	Use:   "noteplan SRC",
	Short: "Import a NotePlan calendar backup",
	Long: `Import calendar notes from a NotePlan backup directory into the
vault's calendar folders.

Daily notes are renamed from 20220325.md to 2022-03-25.md; weekly, monthly,
quarterly, and yearly notes are normalized similarly. When the destination
note already exists the imported content is appended under a dated
separator. Attachment folders are routed into the vault's media folders by
file type. Source files are copied, never moved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		skipAttachments, _ := cmd.Flags().GetBool("skip-attachments")

		opts := runOptions(dryRun, false)
		c := getConfig()

		calendarDirs := c.CalendarDirs(opts.VaultPath)
		attachmentDirs := c.AttachmentDirs(opts.VaultPath)

		m := &migrate.Migrator{
			Source: args[0],
			CalendarDirs: map[migrate.Kind]string{
				migrate.KindDaily:     calendarDirs["daily"],
				migrate.KindWeekly:    calendarDirs["weekly"],
				migrate.KindMonthly:   calendarDirs["monthly"],
				migrate.KindQuarterly: calendarDirs["quarterly"],
				migrate.KindYearly:    calendarDirs["yearly"],
			},
			AttachmentDirs: map[migrate.Category]string{
				migrate.CategoryAudio:    attachmentDirs["audio"],
				migrate.CategoryImage:    attachmentDirs["image"],
				migrate.CategoryDocument: attachmentDirs["document"],
				migrate.CategoryVideo:    attachmentDirs["video"],
			},
			DryRun:          dryRun,
			SkipAttachments: skipAttachments,
			Log:             logger,
		}

		stats, err := m.Run()
		if err != nil {
			return err
		}

		fmt.Println()
		if dryRun {
			fmt.Println(ui.Header("Dry run - no files were modified"))
		}
		fmt.Println(ui.Header("Migration summary"))
		tbl := ui.NewTable(3)
		for _, kind := range migrate.Kinds {
			ks := stats.Notes[kind]
			tbl.AddRow(kind.String(), fmt.Sprintf("%d processed", ks.Processed),
				fmt.Sprintf("%d errors", ks.Errors))
		}
		tbl.AddRow("attachments", fmt.Sprintf("%d processed", stats.Attachments.Processed),
			fmt.Sprintf("%d errors", stats.Attachments.Errors))
		fmt.Print(tbl.String())
		fmt.Printf("\n%d files skipped (unrecognized format)\n", stats.Skipped)
		if !dryRun {
			fmt.Printf("%d created, %d merged, %d attachments moved\n",
				len(stats.Created), len(stats.Merged), len(stats.AttachmentsMoved))
		}
		return nil
	},
}

func init() {
	migrateNotePlanCmd.Flags().Bool("dry-run", false, "Preview without writing")
	migrateNotePlanCmd.Flags().Bool("skip-attachments", false, "Skip attachment folders")

	migrateCmd.AddCommand(migrateNotePlanCmd)
	rootCmd.AddCommand(migrateCmd)
}
