package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/batch"
	"github.com/aidanlsb/vaultmend/internal/pattern"
	"github.com/aidanlsb/vaultmend/internal/safewrite"
	"github.com/aidanlsb/vaultmend/internal/ui"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

const defaultInventoryOutput = "Meta/Tag Conversion Plan.md"

var tagsInventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory every tag in the vault",
	Long: `Scan the whole vault for tags and write a conversion plan note:
summary counts, the tag hierarchy breakdown, and a frequency table with a
suggested wikilink per tag.

The report is written inside the vault and excluded from its own scan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		minCount, _ := cmd.Flags().GetInt("min-count")
		excludes, _ := cmd.Flags().GetStringSlice("exclude")
		preview, _ := cmd.Flags().GetBool("preview")

		opts := runOptions(false, false)
		outputPath := filepath.Join(opts.VaultPath, filepath.FromSlash(output))

		update, finish := reportProgress("Scanning for tags")
		agg := &batch.Aggregator{
			Root: opts.VaultPath,
			Walk: walker.Options{
				ExcludeDirs:  opts.ExcludeDirs,
				ExcludeFiles: []string{outputPath},
			},
			Pattern:  pattern.NewAnyTag(),
			Progress: update,
			Log:      logger,
		}

		inv, err := agg.Run()
		finish()
		if err != nil {
			return err
		}

		report := buildInventoryReport(inv, minCount, excludes, time.Now())

		if preview {
			rendered, err := ui.RenderMarkdown(report, ui.TerminalWidth())
			if err != nil {
				return fmt.Errorf("render preview: %w", err)
			}
			fmt.Print(rendered)
		}

		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
		if err := safewrite.WriteFile(outputPath, []byte(report), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		fmt.Println(ui.Successf("scanned %d files, %d unique tags", inv.TotalFiles, len(inv.Counts)))
		fmt.Printf("report written to %s\n", ui.FilePath(outputPath))
		return nil
	},
}

// buildInventoryReport renders the conversion plan markdown from an
// aggregation result.
func buildInventoryReport(inv *batch.Inventory, minCount int, excludes []string, now time.Time) string {
	entries := inv.Entries()

	filtered := entries[:0:0]
	for _, e := range entries {
		if e.Count < minCount || excludedTag(e.Text, excludes) {
			continue
		}
		filtered = append(filtered, e)
	}

	var b strings.Builder
	b.WriteString("# Tag to Wikilink Conversion Plan\n\n")
	fmt.Fprintf(&b, "*Generated on %s*\n\n", now.Format("2006-01-02 15:04"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total files scanned: %d\n", inv.TotalFiles)
	fmt.Fprintf(&b, "- Unique tags found: %d\n", len(inv.Counts))
	fmt.Fprintf(&b, "- Tags listed below: %d\n\n", len(filtered))

	writeHierarchySection(&b, filtered)

	b.WriteString("## Complete Tag List (sorted by frequency)\n\n")
	b.WriteString("| Tag | Occurrences | Suggested Wikilink | Note File |\n")
	b.WriteString("|-----|-------------|--------------------|-----------|\n")
	for _, e := range filtered {
		link := suggestedWikilink(e.Text)
		fmt.Fprintf(&b, "| `%s` | %d | [[%s]] | %s.md |\n", e.Text, e.Count, link, slug.Make(link))
	}

	b.WriteString("\n## Conversion Instructions\n\n")
	b.WriteString("1. Review the tag list above and adjust the suggested wikilinks as needed\n")
	b.WriteString("2. For each tag, create a corresponding note if it does not exist\n")
	b.WriteString("3. Run `vmd tags convert --tag <tag> --target <note>` for each tag\n")

	return b.String()
}

// writeHierarchySection groups tags by their root segment and lists nested
// variants under each root.
func writeHierarchySection(b *strings.Builder, entries []batch.Entry) {
	counts := make(map[string]int, len(entries))
	roots := make(map[string][]string)
	for _, e := range entries {
		counts[e.Text] = e.Count
		root := e.Text
		if i := strings.Index(e.Text, "/"); i >= 0 {
			root = e.Text[:i]
		}
		if root != e.Text {
			roots[root] = append(roots[root], e.Text)
		} else if _, ok := roots[root]; !ok {
			roots[root] = nil
		}
	}

	names := make([]string, 0, len(roots))
	for root := range roots {
		names = append(names, root)
	}
	sort.Strings(names)

	b.WriteString("## Tag Hierarchies\n\n")
	for _, root := range names {
		fmt.Fprintf(b, "### %s\n\n", root)
		nested := roots[root]
		if len(nested) == 0 {
			fmt.Fprintf(b, "No nested tags. Root occurrence count: %d\n\n", counts[root])
			continue
		}
		sort.Strings(nested)
		b.WriteString("Nested tags:\n")
		for _, tag := range nested {
			fmt.Fprintf(b, "- %s (%d occurrences)\n", tag, counts[tag])
		}
		b.WriteString("\n")
	}
}

func suggestedWikilink(tag string) string {
	return strings.ReplaceAll(strings.TrimPrefix(tag, "#"), "/", " - ")
}

func excludedTag(tag string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(tag, prefix) {
			return true
		}
	}
	return false
}

func init() {
	tagsInventoryCmd.Flags().String("output", defaultInventoryOutput, "Vault-relative path for the report")
	tagsInventoryCmd.Flags().Int("min-count", 1, "Minimum occurrences to include a tag")
	tagsInventoryCmd.Flags().StringSlice("exclude", nil, "Tag prefixes to exclude (e.g. '#done')")
	tagsInventoryCmd.Flags().Bool("preview", false, "Render the report in the terminal")
}
