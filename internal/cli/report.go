package cli

import (
	"fmt"
	"time"

	"github.com/aidanlsb/vaultmend/internal/batch"
	"github.com/aidanlsb/vaultmend/internal/ui"
)

// printReport renders a batch report to stdout.
func printReport(report *batch.Report, dryRun bool) {
	fmt.Println()
	if dryRun {
		fmt.Println(ui.Header("Dry run - no files were modified"))
	}

	verb := "modified"
	if dryRun {
		verb = "would modify"
	}

	for _, outcome := range report.Modified {
		fmt.Printf("  %s %s %s\n", ui.SymbolSuccess, ui.FilePath(outcome.Path),
			ui.Hint(ui.Count(outcome.Changes, "change", "changes")))
	}
	for _, outcome := range report.Errored {
		fmt.Printf("  %s %s: %v\n", ui.SymbolError, ui.FilePath(outcome.Path), outcome.Err)
	}

	fmt.Println()
	fmt.Printf("%d files scanned, %s %d (%d %s), %d skipped, %d errored in %s\n",
		report.Total, verb, len(report.Modified),
		report.Changes, ui.Pluralize("change", report.Changes),
		report.Skipped, len(report.Errored),
		report.Elapsed.Round(time.Millisecond))
}

// reportProgress adapts the ui progress indicator to the batch callback.
func reportProgress(message string) (func(done, total int), func()) {
	var p *ui.Progress
	update := func(done, total int) {
		if p == nil {
			p = ui.NewProgress(message, total)
		}
		p.Update(done)
	}
	finish := func() {
		if p != nil {
			p.Done()
		}
	}
	return update, finish
}
