package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version and active algorithm.
type HeaderModel struct {
	version   string
	algorithm string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetAlgorithm updates the algorithm shown on the right.
func (h *HeaderModel) SetAlgorithm(name string) {
	h.algorithm = name
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "fibconv"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) + versionStyle.Render(" | celsius → fahrenheit · fibonacci")
	right := versionStyle.Render(h.algorithm)

	// headerStyle pads one cell on each side.
	gap := h.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}
