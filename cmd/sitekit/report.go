package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/page"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#62B880"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9AD8B3")).Width(12)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#29693F")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D9534F")).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#143D2A")).Padding(0, 1)
)

func stateReport(title string, state page.State) string {
	lines := []string{
		titleStyle.Render(title),
		keyStyle.Render("theme") + state.Theme.Mode.String(),
		keyStyle.Render("font size") + state.FontSize.CSS(),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func submissionReport(p *page.Page) string {
	lines := []string{titleStyle.Render("submission")}
	if notices := p.Texts("." + form.SuccessMessageClass); len(notices) > 0 {
		for _, notice := range notices {
			lines = append(lines, okStyle.Render("✓ "+notice))
		}
		return boxStyle.Render(strings.Join(lines, "\n"))
	}
	for _, message := range p.Texts("." + form.ErrorMessageClass) {
		lines = append(lines, errStyle.Render("✗ "+message))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func printReport(w io.Writer, report string) {
	fmt.Fprintln(w, report)
}
