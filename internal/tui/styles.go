package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibconv/internal/ui"
)

// Style variables for the converter dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	focusPanelStyle  lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	labelStyle       lipgloss.Style
	valueStyle       lipgloss.Style
	errorStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	sparklineStyle   lipgloss.Style
	statusBusyStyle  lipgloss.Style
	statusReadyStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dim).
		Foreground(t.Text).
		Padding(0, 1)

	focusPanelStyle = panelStyle.
		BorderForeground(t.Border)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	statusBusyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusReadyStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)
}
