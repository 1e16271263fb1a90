package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	activeStyle  = filterStyle.Bold(true).Underline(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	markSelected = "[x]"
	markEmpty    = "[ ]"
)
