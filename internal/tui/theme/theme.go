// Package theme defines color themes for the couple-budget dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Accent-colored borders for focus states
	TextDim      lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted    lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Primary accent (links, active states)
	AccentBright lipgloss.Color // Brighter accent for emphasis
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
	Yellow       lipgloss.Color
	Cyan         lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Yellow:       lipgloss.Color("#D0A215"),
	Cyan:         lipgloss.Color("#24837B"),
}

// CatppuccinMocha is a warm pastel theme with soft, soothing colors.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Green:        lipgloss.Color("#A6E3A1"),
	Orange:       lipgloss.Color("#FAB387"),
	Red:          lipgloss.Color("#F38BA8"),
	Yellow:       lipgloss.Color("#F9E2AF"),
	Cyan:         lipgloss.Color("#94E2D5"),
}

// All lists the available themes in selection order.
var All = []Theme{FlexokiDark, CatppuccinMocha}

// SetActive switches the active theme by name. Unknown names are ignored.
func SetActive(name string) {
	for _, t := range All {
		if t.Name == name {
			Active = t
			return
		}
	}
}
