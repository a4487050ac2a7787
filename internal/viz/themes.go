package viz

import "github.com/charmbracelet/lipgloss"

// Theme assigns a colour to every role a step can give an element, plus the
// chrome around the player.
type Theme struct {
	Name string

	Title lipgloss.Color
	Text  lipgloss.Color
	Muted lipgloss.Color

	// element roles, in render precedence order
	Swapped     lipgloss.Color
	Compared    lipgloss.Color
	Current     lipgloss.Color
	Highlighted lipgloss.Color
	Sorted      lipgloss.Color
	Bar         lipgloss.Color

	// playback status
	Playing lipgloss.Color
	Paused  lipgloss.Color
	Invalid lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:        "cyberpunk",
		Title:       lipgloss.Color("#00ffff"),
		Text:        lipgloss.Color("#ffffff"),
		Muted:       lipgloss.Color("#666666"),
		Swapped:     lipgloss.Color("#ff0055"),
		Compared:    lipgloss.Color("#ffff00"),
		Current:     lipgloss.Color("#ff00ff"),
		Highlighted: lipgloss.Color("#00aaff"),
		Sorted:      lipgloss.Color("#00ff66"),
		Bar:         lipgloss.Color("#8888aa"),
		Playing:     lipgloss.Color("#00ff66"),
		Paused:      lipgloss.Color("#ff8800"),
		Invalid:     lipgloss.Color("#ff0000"),
	}

	// ThemeRetroGreen is a phosphor palette; roles differ by brightness.
	ThemeRetroGreen = Theme{
		Name:        "retro",
		Title:       lipgloss.Color("#88ff88"),
		Text:        lipgloss.Color("#00ff00"),
		Muted:       lipgloss.Color("#005500"),
		Swapped:     lipgloss.Color("#ffffff"),
		Compared:    lipgloss.Color("#ccffcc"),
		Current:     lipgloss.Color("#aaff00"),
		Highlighted: lipgloss.Color("#66dd66"),
		Sorted:      lipgloss.Color("#00cc00"),
		Bar:         lipgloss.Color("#007700"),
		Playing:     lipgloss.Color("#88ff88"),
		Paused:      lipgloss.Color("#ffff00"),
		Invalid:     lipgloss.Color("#ff3300"),
	}

	ThemeMinimal = Theme{
		Name:        "minimal",
		Title:       lipgloss.Color("#ffffff"),
		Text:        lipgloss.Color("#dddddd"),
		Muted:       lipgloss.Color("#888888"),
		Swapped:     lipgloss.Color("#ff5555"),
		Compared:    lipgloss.Color("#ffaa00"),
		Current:     lipgloss.Color("#0088ff"),
		Highlighted: lipgloss.Color("#aaaaaa"),
		Sorted:      lipgloss.Color("#55cc55"),
		Bar:         lipgloss.Color("#bbbbbb"),
		Playing:     lipgloss.Color("#55cc55"),
		Paused:      lipgloss.Color("#ffaa00"),
		Invalid:     lipgloss.Color("#ff5555"),
	}

	// ThemeOcean keeps swapped and sorted apart for red-green colour blindness.
	ThemeOcean = Theme{
		Name:        "ocean",
		Title:       lipgloss.Color("#00a8cc"),
		Text:        lipgloss.Color("#e0f0ff"),
		Muted:       lipgloss.Color("#4488aa"),
		Swapped:     lipgloss.Color("#ff8c42"),
		Compared:    lipgloss.Color("#ffd700"),
		Current:     lipgloss.Color("#ffffff"),
		Highlighted: lipgloss.Color("#66ccff"),
		Sorted:      lipgloss.Color("#0077be"),
		Bar:         lipgloss.Color("#336688"),
		Playing:     lipgloss.Color("#00ff88"),
		Paused:      lipgloss.Color("#ffcc00"),
		Invalid:     lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:        "sunset",
		Title:       lipgloss.Color("#feca57"),
		Text:        lipgloss.Color("#fff5f5"),
		Muted:       lipgloss.Color("#8b6b8c"),
		Swapped:     lipgloss.Color("#ff4757"),
		Compared:    lipgloss.Color("#ffc048"),
		Current:     lipgloss.Color("#ff9ff3"),
		Highlighted: lipgloss.Color("#ff6b6b"),
		Sorted:      lipgloss.Color("#5fd068"),
		Bar:         lipgloss.Color("#b08aa0"),
		Playing:     lipgloss.Color("#5fd068"),
		Paused:      lipgloss.Color("#ffc048"),
		Invalid:     lipgloss.Color("#ff4757"),
	}

	DefaultTheme = ThemeCyberpunk

	themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to DefaultTheme
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return DefaultTheme
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

