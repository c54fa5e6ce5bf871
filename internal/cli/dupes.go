package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/ui"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "Find notes sharing a filename across folders",
	Long: `List every note filename that appears in more than one folder.
Duplicate names break bare wikilinks, which resolve by filename alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(false, false)

		byName := make(map[string][]string)
		err := walker.Walk(opts.VaultPath, walker.Options{ExcludeDirs: opts.ExcludeDirs}, func(path string) error {
			rel, relErr := filepath.Rel(opts.VaultPath, path)
			if relErr != nil {
				rel = path
			}
			name := strings.ToLower(filepath.Base(path))
			byName[name] = append(byName[name], filepath.ToSlash(rel))
			return nil
		})
		if err != nil {
			return err
		}

		names := make([]string, 0, len(byName))
		for name, paths := range byName {
			if len(paths) > 1 {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		if len(names) == 0 {
			fmt.Println(ui.Success("no duplicate note names found"))
			return nil
		}

		fmt.Printf("%s %s\n\n", ui.Header("Duplicate note names"),
			ui.Count(len(names), "name", "names"))
		for _, name := range names {
			fmt.Printf("%s\n", ui.AccentBold.Render(name))
			for _, rel := range byName[name] {
				fmt.Printf("  - %s\n", rel)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dupesCmd)
}
