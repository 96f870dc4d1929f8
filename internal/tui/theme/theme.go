// Package theme defines color themes for the spend dashboard and forms.
package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Selected row, active tab
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focus borders
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
	Yellow       lipgloss.Color
	// Series colors category bars cycle through.
	Series []lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
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
	Series: []lipgloss.Color{
		"#3AA99F", "#DA702C", "#4385BE", "#879A39", "#CE5D97", "#D0A215", "#8B7EC8",
	},
}

// CatppuccinMocha is a warm pastel theme with soft, soothing colors.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
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
	Series: []lipgloss.Color{
		"#89B4FA", "#FAB387", "#A6E3A1", "#F5C2E7", "#94E2D5", "#F9E2AF", "#CBA6F7",
	},
}

// TokyoNight is a cool blue/purple theme inspired by Tokyo city lights.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#343A52"),
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Green:        lipgloss.Color("#9ECE6A"),
	Orange:       lipgloss.Color("#FF9E64"),
	Red:          lipgloss.Color("#F7768E"),
	Yellow:       lipgloss.Color("#E0AF68"),
	Series: []lipgloss.Color{
		"#7AA2F7", "#FF9E64", "#9ECE6A", "#BB9AF7", "#7DCFFF", "#E0AF68", "#F7768E",
	},
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Yellow:       lipgloss.Color("3"),
	Series: []lipgloss.Color{
		"6", "3", "4", "2", "5", "11", "12",
	},
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// SeriesColor returns the i-th series color, wrapping around.
func (t Theme) SeriesColor(i int) lipgloss.Color {
	if len(t.Series) == 0 {
		return t.Accent
	}
	if i < 0 {
		i = -i
	}
	return t.Series[i%len(t.Series)]
}

// Huh builds a form theme from the palette so forms match the dashboard.
func (t Theme) Huh() *huh.Theme {
	h := huh.ThemeBase()

	h.Focused.Base = h.Focused.Base.BorderForeground(t.BorderAccent)
	h.Focused.Title = h.Focused.Title.Foreground(t.Accent).Bold(true)
	h.Focused.Description = h.Focused.Description.Foreground(t.TextMuted)
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(t.Red)
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(t.Red)
	h.Focused.SelectSelector = h.Focused.SelectSelector.Foreground(t.Accent)
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(t.AccentBright)
	h.Focused.UnselectedOption = h.Focused.UnselectedOption.Foreground(t.TextPrimary)
	h.Focused.FocusedButton = h.Focused.FocusedButton.Foreground(t.Background).Background(t.Accent)
	h.Focused.BlurredButton = h.Focused.BlurredButton.Foreground(t.TextMuted).Background(t.SurfaceHover)
	h.Focused.TextInput.Cursor = h.Focused.TextInput.Cursor.Foreground(t.AccentBright)
	h.Focused.TextInput.Placeholder = h.Focused.TextInput.Placeholder.Foreground(t.TextDim)
	h.Focused.TextInput.Prompt = h.Focused.TextInput.Prompt.Foreground(t.Accent)

	h.Blurred = h.Focused
	h.Blurred.Base = h.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Blurred.Title = h.Blurred.Title.Foreground(t.TextMuted).Bold(false)

	return h
}
