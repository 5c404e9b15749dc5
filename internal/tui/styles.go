package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme carries the palette and derived styles for one color scheme
type Theme struct {
	Name string

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Info      lipgloss.Style
	Selected  lipgloss.Style
	Box       lipgloss.Style
	Modal     lipgloss.Style
	ToastErr  lipgloss.Style
	ToastOK   lipgloss.Style
	ToastInfo lipgloss.Style
	StepDone  lipgloss.Style
	StepTodo  lipgloss.Style
}

// DarkTheme is the default scheme
func DarkTheme() Theme {
	accent := lipgloss.Color("208")
	subtle := lipgloss.Color("241")
	return Theme{
		Name:      "dark",
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Label:     lipgloss.NewStyle().Foreground(subtle),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Help:      lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(1, 2),
		Modal:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 3),
		ToastErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")).Padding(0, 1),
		ToastOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("42")).Padding(0, 1),
		ToastInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Padding(0, 1),
		StepDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StepTodo:  lipgloss.NewStyle().Foreground(subtle),
	}
}

// LightTheme is the alternate scheme toggled at runtime
func LightTheme() Theme {
	accent := lipgloss.Color("166")
	subtle := lipgloss.Color("245")
	return Theme{
		Name:      "light",
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Label:     lipgloss.NewStyle().Foreground(subtle),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("232")),
		Help:      lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(1, 2),
		Modal:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 3),
		ToastErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")).Padding(0, 1),
		ToastOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("28")).Padding(0, 1),
		ToastInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("26")).Padding(0, 1),
		StepDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		StepTodo:  lipgloss.NewStyle().Foreground(subtle),
	}
}

// ThemeByName returns the named theme, defaulting to dark
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}
