package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/vaultmend/internal/safewrite"
)

type persistedConfig struct {
	DefaultVault *string              `toml:"default_vault,omitempty"`
	Vaults       map[string]string    `toml:"vaults,omitempty"`
	ExcludeDirs  []string             `toml:"exclude_dirs,omitempty"`
	Calendar     *CalendarConfig      `toml:"calendar,omitempty"`
	Attachments  *AttachmentConfig    `toml:"attachments,omitempty"`
	Generator    *GeneratorConfig     `toml:"generator,omitempty"`
	UI           *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DefaultVault: nonEmptyPtr(cfg.DefaultVault),
	}
	if len(cfg.Vaults) > 0 {
		out.Vaults = cfg.Vaults
	}
	if len(cfg.ExcludeDirs) > 0 {
		out.ExcludeDirs = cfg.ExcludeDirs
	}
	if cfg.Calendar != (CalendarConfig{}) {
		calendar := cfg.Calendar
		out.Calendar = &calendar
	}
	if cfg.Attachments != (AttachmentConfig{}) {
		attachments := cfg.Attachments
		out.Attachments = &attachments
	}
	if cfg.Generator != (GeneratorConfig{}) {
		generator := cfg.Generator
		out.Generator = &generator
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := safewrite.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
