package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const (
	wrapAt       = 78
	indentAmount = 2
)

func keyword(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render(s)
}

func paragraph(s string) string {
	return lipgloss.NewStyle().Width(wrapAt).Padding(0, 0, 0, indentAmount).Render(s)
}

func formatBlock(s string) string {
	return indent.String(wordwrap.String(s, wrapAt-indentAmount), indentAmount)
}
