package cmd

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	stateStyles = map[string]lipgloss.Style{
		"loaded":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"default":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"pinned":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"required": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"removed":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		"not found": lipgloss.NewStyle().Faint(true),
		"optional":  lipgloss.NewStyle().Faint(true),
		"not set":   lipgloss.NewStyle().Faint(true),
	}
)

// header renders a section heading.
func header(s string) string {
	if noColor {
		return s
	}
	return headerStyle.Render(s)
}

// styled renders s in the style registered for state. Unknown states and
// --no-color leave s unchanged.
func styled(state, s string) string {
	if noColor {
		return s
	}
	if st, ok := stateStyles[state]; ok {
		return st.Render(s)
	}
	return s
}
