package color

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv forces the dark or light palette.
const ThemeEnv = "VAULTS_THEME"

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#404040"}
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	NameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	AuthStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// Initialize selects the dark or light palette.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// InitializeFromEnv honours VAULTS_THEME=dark|light and otherwise keeps the detected background.
func InitializeFromEnv() {
	switch strings.ToLower(os.Getenv(ThemeEnv)) {
	case "dark":
		Initialize(true)
	case "light":
		Initialize(false)
	}
}
