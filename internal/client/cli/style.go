package cli

import "github.com/charmbracelet/lipgloss"

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

func renderError(msg string) string {
	return errorStyle.Render("✖ " + msg)
}

func renderSuccess(msg string) string {
	return successStyle.Render("✔ " + msg)
}

func renderBadge(text string) string {
	return badgeStyle.Render(text)
}

func renderHeading(text string) string {
	return headingStyle.Render(text)
}

func renderMuted(text string) string {
	return mutedStyle.Render(text)
}
