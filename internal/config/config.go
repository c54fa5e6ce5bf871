// Package config handles global vaultmend configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global vaultmend configuration.
type Config struct {
	// DefaultVault is the name of the default vault (from Vaults map).
	DefaultVault string `toml:"default_vault"`

	// Vaults is a map of vault names to paths.
	Vaults map[string]string `toml:"vaults"`

	// ExcludeDirs are directory names skipped by every tree scan.
	ExcludeDirs []string `toml:"exclude_dirs"`

	// Calendar holds the vault-relative calendar folder layout.
	Calendar CalendarConfig `toml:"calendar"`

	// Attachments holds the vault-relative attachment folder layout.
	Attachments AttachmentConfig `toml:"attachments"`

	// Generator configures the front matter generation service.
	Generator GeneratorConfig `toml:"generator"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// CalendarConfig names the calendar note folders, relative to the vault root.
type CalendarConfig struct {
	Daily     string `toml:"daily"`
	Weekly    string `toml:"weekly"`
	Monthly   string `toml:"monthly"`
	Quarterly string `toml:"quarterly"`
	Yearly    string `toml:"yearly"`
}

// AttachmentConfig names the attachment folders, relative to the vault root.
type AttachmentConfig struct {
	Audio     string `toml:"audio"`
	Images    string `toml:"images"`
	Documents string `toml:"documents"`
	Videos    string `toml:"videos"`
}

// GeneratorConfig configures the external front matter generator.
// The API key is never stored in the file; it comes from the environment.
type GeneratorConfig struct {
	// BaseURL overrides the API base for compatible servers.
	BaseURL string `toml:"base_url"`

	// Model names the chat model to use.
	Model string `toml:"model"`

	// RulesFile is the vault-relative path of the front matter rules note.
	RulesFile string `toml:"rules_file"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255") or
	// hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks.
	CodeTheme string `toml:"code_theme"`
}

// defaultExcludeDirs are skipped when the config names none.
var defaultExcludeDirs = []string{".git", ".obsidian", ".trash"}

// GetVaultPath returns the path for a named vault.
// If name is empty, returns the default vault path.
func (c *Config) GetVaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		return "", fmt.Errorf("no default vault configured")
	}
	if path, ok := c.Vaults[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("vault '%s' not found in config", name)
}

// ListVaults returns all configured vaults with their paths.
func (c *Config) ListVaults() map[string]string {
	result := make(map[string]string, len(c.Vaults))
	for name, path := range c.Vaults {
		result[name] = path
	}
	return result
}

// ExcludedDirs returns the configured directory exclusions, or the defaults
// when none are set.
func (c *Config) ExcludedDirs() []string {
	if len(c.ExcludeDirs) > 0 {
		return c.ExcludeDirs
	}
	return append([]string(nil), defaultExcludeDirs...)
}

// CalendarDirs resolves the calendar folder layout against a vault root,
// falling back to the standard layout for unset entries.
func (c *Config) CalendarDirs(vaultPath string) map[string]string {
	pick := func(configured, fallback string) string {
		if configured != "" {
			return filepath.Join(vaultPath, filepath.FromSlash(configured))
		}
		return filepath.Join(vaultPath, filepath.FromSlash(fallback))
	}
	return map[string]string{
		"daily":     pick(c.Calendar.Daily, "Calendar/Daily"),
		"weekly":    pick(c.Calendar.Weekly, "Calendar/Weekly"),
		"monthly":   pick(c.Calendar.Monthly, "Calendar/Monthly"),
		"quarterly": pick(c.Calendar.Quarterly, "Calendar/Quarterly"),
		"yearly":    pick(c.Calendar.Yearly, "Calendar/Yearly"),
	}
}

// AttachmentDirs resolves the attachment folder layout against a vault root,
// falling back to the standard layout for unset entries.
func (c *Config) AttachmentDirs(vaultPath string) map[string]string {
	pick := func(configured, fallback string) string {
		if configured != "" {
			return filepath.Join(vaultPath, filepath.FromSlash(configured))
		}
		return filepath.Join(vaultPath, filepath.FromSlash(fallback))
	}
	return map[string]string{
		"audio":    pick(c.Attachments.Audio, "Files/Audio"),
		"image":    pick(c.Attachments.Images, "Files/Images"),
		"document": pick(c.Attachments.Documents, "Files/Documents"),
		"video":    pick(c.Attachments.Videos, "Files/Videos"),
	}
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/vaultmend/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "vaultmend", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "vaultmend", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# vaultmend configuration

# Default vault name (must exist in [vaults] below)
# default_vault = "personal"

# Named vaults
# [vaults]
# personal = "/path/to/your/notes"
# work = "/path/to/work/notes"

# Directory names skipped by every scan
# exclude_dirs = [".git", ".obsidian", ".trash"]

# Calendar note folders, relative to the vault root
# [calendar]
# daily = "Calendar/Daily"
# weekly = "Calendar/Weekly"
# monthly = "Calendar/Monthly"
# quarterly = "Calendar/Quarterly"
# yearly = "Calendar/Yearly"

# Attachment folders, relative to the vault root
# [attachments]
# audio = "Files/Audio"
# images = "Files/Images"
# documents = "Files/Documents"
# videos = "Files/Videos"

# Front matter generation service (API key comes from $VAULTMEND_API_KEY)
# [generator]
# base_url = "https://api.openai.com/v1"
# model = "gpt-4o"
# rules_file = "Meta/Front Matter Rules.md"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
