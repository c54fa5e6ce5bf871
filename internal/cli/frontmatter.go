package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/document"
	"github.com/aidanlsb/vaultmend/internal/genmeta"
	"github.com/aidanlsb/vaultmend/internal/safewrite"
	"github.com/aidanlsb/vaultmend/internal/textenc"
	"github.com/aidanlsb/vaultmend/internal/ui"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

// apiKeyEnv names the environment variable holding the generator API key.
const apiKeyEnv = "VAULTMEND_API_KEY"

var frontmatterCmd = &cobra.Command{
	Use:   "frontmatter",
	Short: "Front matter audits and generation",
}

var frontmatterCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List notes missing front matter",
	Long: `Probe the head of every note for a front matter block and report
the ones missing it, with coverage percentages for the whole vault.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(false, false)

		var total int
		var missing []string
		err := walker.Walk(opts.VaultPath, walker.Options{ExcludeDirs: opts.ExcludeDirs}, func(path string) error {
			total++
			has, err := document.HasFrontMatterHead(path)
			if err != nil {
				logger.Debug().Str("path", path).Err(err).Msg("head probe failed")
				return nil
			}
			if !has {
				rel, relErr := filepath.Rel(opts.VaultPath, path)
				if relErr != nil {
					rel = path
				}
				missing = append(missing, filepath.ToSlash(rel))
			}
			return nil
		})
		if err != nil {
			return err
		}

		withFM := total - len(missing)
		pct := 0.0
		if total > 0 {
			pct = float64(withFM) / float64(total) * 100
		}

		fmt.Println(ui.Header("Front matter coverage"))
		fmt.Printf("  %d notes scanned\n", total)
		fmt.Printf("  %d with front matter (%.1f%%)\n", withFM, pct)
		fmt.Printf("  %d missing\n\n", len(missing))

		for _, rel := range missing {
			fmt.Printf("  %s %s\n", ui.SymbolWarning, ui.FilePath(rel))
		}
		return nil
	},
}

var frontmatterGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate front matter for notes missing it",
	Long: `Generate a front matter block for every note that lacks one, using
the configured generation service and the vault's front matter rules note.
When the service fails, a minimal deterministic block is written instead.

Each file is backed up before its first write; generation cannot destroy
content.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		rulesFlag, _ := cmd.Flags().GetString("rules")
		maxFiles, _ := cmd.Flags().GetInt("max-files")

		opts := runOptions(dryRun, true)
		c := getConfig()

		rulesPath := rulesFlag
		if rulesPath == "" {
			rulesPath = c.Generator.RulesFile
		}
		rules, rulesAbs := loadRules(opts.VaultPath, rulesPath)

		gen := &genmeta.Client{
			BaseURL: c.Generator.BaseURL,
			Model:   c.Generator.Model,
			APIKey:  os.Getenv(apiKeyEnv),
		}

		walkOpts := walker.Options{ExcludeDirs: opts.ExcludeDirs}
		if rulesAbs != "" {
			walkOpts.ExcludeFiles = []string{rulesAbs}
		}

		var generated, fallbacks, skipped int
		ctx := cmd.Context()
		err := walker.Walk(opts.VaultPath, walkOpts, func(path string) error {
			if maxFiles > 0 && generated+fallbacks >= maxFiles {
				return nil
			}
			outcome, err := generateFor(ctx, gen, opts.VaultPath, path, rules, dryRun)
			switch {
			case err != nil:
				logger.Debug().Str("path", path).Err(err).Msg("generation skipped")
				skipped++
			case outcome == generatedRemote:
				generated++
			case outcome == generatedFallback:
				fallbacks++
			}
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Println()
		if dryRun {
			fmt.Println(ui.Header("Dry run - no files were modified"))
		}
		fmt.Println(ui.Successf("%d generated, %d fallback blocks, %d skipped",
			generated, fallbacks, skipped))
		return nil
	},
}

type generateOutcome int

const (
	generatedNone generateOutcome = iota
	generatedRemote
	generatedFallback
)

// generateFor writes a front matter block for one note when it has none.
// The remote generator is tried first; its failure downgrades to the
// deterministic fallback rather than aborting.
func generateFor(ctx context.Context, gen genmeta.Generator, vaultPath, path, rules string, dryRun bool) (generateOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return generatedNone, err
	}
	text, enc := textenc.Decode(data)

	doc := document.Split(text)
	if doc.HasFrontMatter {
		return generatedNone, nil
	}

	rel, err := filepath.Rel(vaultPath, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	req := genmeta.BuildRequest(filepath.ToSlash(rel), "", doc.Body, rules)

	outcome := generatedRemote
	block, err := gen.Generate(ctx, req)
	if err != nil {
		block = genmeta.Fallback(req, doc.Body, time.Now())
		outcome = generatedFallback
	}
	if block == "" {
		return generatedNone, fmt.Errorf("empty front matter block")
	}

	updated := document.Reassemble(block, doc.Body)
	if _, err := safewrite.Commit(path, text, updated, safewrite.Options{
		Backup:   true,
		DryRun:   dryRun,
		Label:    "yaml",
		Encoding: enc,
	}); err != nil {
		return generatedNone, err
	}
	return outcome, nil
}

// loadRules reads the rules note. A missing or unset rules file is not an
// error; generation proceeds with empty rules text.
func loadRules(vaultPath, rulesPath string) (content, abs string) {
	if rulesPath == "" {
		return "", ""
	}
	abs = rulesPath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(vaultPath, filepath.FromSlash(rulesPath))
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		logger.Warn().Str("path", abs).Err(err).Msg("rules file unreadable")
		return "", abs
	}
	return string(data), abs
}

func init() {
	frontmatterGenerateCmd.Flags().Bool("dry-run", false, "Preview without writing")
	frontmatterGenerateCmd.Flags().String("rules", "", "Vault-relative path of the rules note")
	frontmatterGenerateCmd.Flags().Int("max-files", 0, "Generate for at most N notes")

	frontmatterCmd.AddCommand(frontmatterCheckCmd)
	frontmatterCmd.AddCommand(frontmatterGenerateCmd)
	rootCmd.AddCommand(frontmatterCmd)
}
