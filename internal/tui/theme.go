package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the color set of the terminal front end.
type Theme struct {
	NormalText         lipgloss.Color
	FaintText          lipgloss.Color
	HeaderForeground   lipgloss.Color
	FocusBorder        lipgloss.Color
	BorderColor        lipgloss.Color
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
	InfoText           lipgloss.Color
	ErrorText          lipgloss.Color
	HelpText           lipgloss.Color
}

var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	HeaderForeground:   lipgloss.Color("39"),
	FocusBorder:        lipgloss.Color("39"),
	BorderColor:        lipgloss.Color("238"),
	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("255"),
	InfoText:           lipgloss.Color("114"),
	ErrorText:          lipgloss.Color("203"),
	HelpText:           lipgloss.Color("241"),
}

type styles struct {
	header   lipgloss.Style
	normal   lipgloss.Style
	faint    lipgloss.Style
	cursor   lipgloss.Style
	info     lipgloss.Style
	errorMsg lipgloss.Style
	help     lipgloss.Style
	box      lipgloss.Style
	focused  lipgloss.Style
}

func newStyles(theme Theme) styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1)
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		normal:   lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		cursor:   lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground),
		info:     lipgloss.NewStyle().Foreground(theme.InfoText),
		errorMsg: lipgloss.NewStyle().Bold(true).Foreground(theme.ErrorText),
		help:     lipgloss.NewStyle().Foreground(theme.HelpText),
		box:      box,
		focused:  box.BorderForeground(theme.FocusBorder),
	}
}
