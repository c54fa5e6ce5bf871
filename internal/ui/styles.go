// Package ui provides terminal output helpers: status symbols, lipgloss
// styles, a plain table renderer, and markdown rendering for reports.
package ui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): highlights, paths
// - Muted (gray): secondary info, counts
// - No colored success/error/warning - unicode symbols only

const defaultAccent = "#A78BFA"

var (
	accentColor = defaultAccent
	codeTheme   = ""

	// Accent style for file paths and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, counts
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

var (
	ansiColorRe = regexp.MustCompile(`^\d{1,3}$`)
	hexColorRe  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// ConfigureTheme applies config-level theming. Invalid accent values are
// ignored and the default palette stays in effect.
func ConfigureTheme(accent, theme string) {
	if normalized, ok := normalizeAccentColor(accent); ok {
		accentColor = normalized
		Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(normalized))
		AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(normalized)).Bold(true)
	}
	codeTheme = strings.TrimSpace(theme)
}

// AccentColor returns the active accent color when one is set.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// CodeTheme returns the configured chroma theme for code blocks, or "".
func CodeTheme() string {
	return codeTheme
}

// normalizeAccentColor validates an accent value from config. Accepted forms
// are ANSI color codes "0" to "255" and hex colors "#RRGGBB".
func normalizeAccentColor(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if ansiColorRe.MatchString(value) {
		if n, err := strconv.Atoi(value); err == nil && n <= 255 {
			return value, true
		}
		return "", false
	}
	if hexColorRe.MatchString(value) {
		return value, true
	}
	return "", false
}
