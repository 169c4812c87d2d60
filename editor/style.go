package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// MarkLabel is the base style of bookmark labels; the mark's colors are
	// layered on top.
	MarkLabel lipgloss.Style
	// MarkFallback is used for marks that carry no color.
	MarkFallback lipgloss.Color
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		MarkLabel:     lipgloss.NewStyle().Padding(0, 1).Bold(true),
		MarkFallback:  lipgloss.Color("63"),
	}
}
