// Package ui is the interactive terminal front end of a session.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI. Themes are plain values handed
// to NewModel; nothing in the package holds a current theme.
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor

	// Special colors
	Insight  lipgloss.AdaptiveColor
	Progress lipgloss.AdaptiveColor
}

// pair is a light/dark color pair
type pair [2]string

func (p pair) color() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: p[0], Dark: p[1]}
}

// palette lists a theme's colors in Theme field order
type palette struct {
	primary, secondary, accent         pair
	success, warning, errorColor, info pair
	border, foreground, muted          pair
	insight, progress                  pair
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, p palette) Theme {
	return Theme{
		Name:       name,
		Primary:    p.primary.color(),
		Secondary:  p.secondary.color(),
		Accent:     p.accent.color(),
		Success:    p.success.color(),
		Warning:    p.warning.color(),
		Error:      p.errorColor.color(),
		Info:       p.info.color(),
		Border:     p.border.color(),
		Foreground: p.foreground.color(),
		Muted:      p.muted.color(),
		Insight:    p.insight.color(),
		Progress:   p.progress.color(),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default", palette{
		primary: pair{"#1E40AF", "#3B82F6"}, secondary: pair{"#6B7280", "#9CA3AF"}, accent: pair{"#7C3AED", "#A855F7"},
		success: pair{"#059669", "#10B981"}, warning: pair{"#D97706", "#F59E0B"}, errorColor: pair{"#DC2626", "#EF4444"},
		info: pair{"#0891B2", "#06B6D4"}, border: pair{"#D1D5DB", "#374151"}, foreground: pair{"#111827", "#F9FAFB"},
		muted: pair{"#6B7280", "#9CA3AF"}, insight: pair{"#7C3AED", "#A855F7"}, progress: pair{"#059669", "#10B981"},
	})

	HighContrastTheme = buildTheme("high-contrast", palette{
		primary: pair{"#000000", "#FFFFFF"}, secondary: pair{"#666666", "#BBBBBB"}, accent: pair{"#000080", "#8080FF"},
		success: pair{"#006600", "#00FF00"}, warning: pair{"#CC6600", "#FFAA00"}, errorColor: pair{"#CC0000", "#FF4444"},
		info: pair{"#0066CC", "#4499FF"}, border: pair{"#000000", "#FFFFFF"}, foreground: pair{"#000000", "#FFFFFF"},
		muted: pair{"#666666", "#BBBBBB"}, insight: pair{"#800080", "#FF80FF"}, progress: pair{"#006600", "#00FF00"},
	})

	MinimalTheme = buildTheme("minimal", palette{
		primary: pair{"#2D3748", "#E2E8F0"}, secondary: pair{"#718096", "#A0AEC0"}, accent: pair{"#4A5568", "#CBD5E0"},
		success: pair{"#2F855A", "#68D391"}, warning: pair{"#C05621", "#F6AD55"}, errorColor: pair{"#C53030", "#FC8181"},
		info: pair{"#2B6CB0", "#63B3ED"}, border: pair{"#E2E8F0", "#2D3748"}, foreground: pair{"#2D3748", "#F7FAFC"},
		muted: pair{"#A0AEC0", "#718096"}, insight: pair{"#553C9A", "#B794F6"}, progress: pair{"#2F855A", "#68D391"},
	})
)

// ThemeByName looks a theme up by name
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "default", "":
		return DefaultTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return Theme{}, false
	}
}

// AvailableThemes returns list of available theme names
func AvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// ColorDisabledByEnv reports whether NO_COLOR is set
func ColorDisabledByEnv() bool {
	return os.Getenv("NO_COLOR") != ""
}

// NewStyles builds the styles for a theme. With color false every style
// renders plain text.
func NewStyles(theme Theme, color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Theme:    theme,
			Title:    plain.Bold(true),
			Header:   plain.Bold(true),
			Body:     plain,
			Muted:    plain,
			Success:  plain.Bold(true),
			Warning:  plain.Bold(true),
			Error:    plain.Bold(true),
			Info:     plain,
			Box:      plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			Progress: plain,
			Insight:  plain.Bold(true),
			ListItem: plain.Padding(0, 2),
			Key:      plain.Bold(true),
		}
	}

	return Styles{
		Theme: theme,

		// Base styles
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		// Status styles
		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		// Layout styles
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		// Special styles
		Progress: lipgloss.NewStyle().
			Foreground(theme.Progress).
			Bold(true),

		Insight: lipgloss.NewStyle().
			Foreground(theme.Insight).
			Bold(true),

		ListItem: lipgloss.NewStyle().
			Padding(0, 2),

		Key: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	// Base styles
	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Layout styles
	Box lipgloss.Style

	// Special styles
	Progress lipgloss.Style
	Insight  lipgloss.Style
	ListItem lipgloss.Style
	Key      lipgloss.Style
}
