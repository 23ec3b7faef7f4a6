package ui

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	cream           = lipgloss.AdaptiveColor{Light: "#FFFDF5", Dark: "#FFFDF5"}
	fuchsia         = lipgloss.Color("#EE6FF8")
	midGray         = lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"}
	red             = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	mintGreen       = lipgloss.AdaptiveColor{Light: "#89F0CB", Dark: "#89F0CB"}
	darkGreen       = lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#1C8760"}
	statusBarNoteFg = lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"}
	statusBarBg     = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"}
)

var (
	logoStyle             = lipgloss.NewStyle().Foreground(cream).Background(fuchsia).Bold(true).Render
	statusBarNoteStyle    = lipgloss.NewStyle().Foreground(statusBarNoteFg).Background(statusBarBg).Render
	statusBarPageStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#949494", Dark: "#5A5A5A"}).Background(statusBarBg).Render
	statusBarHelpStyle    = lipgloss.NewStyle().Foreground(statusBarNoteFg).Background(lipgloss.AdaptiveColor{Light: "#DCDCDC", Dark: "#323232"}).Render
	statusBarMessageStyle = lipgloss.NewStyle().Foreground(mintGreen).Background(darkGreen).Render
	statusBarErrorStyle   = lipgloss.NewStyle().Foreground(cream).Background(red).Render
	errorTitleStyle       = lipgloss.NewStyle().Foreground(cream).Background(red).Padding(0, 1)
	pageBreakStyle        = lipgloss.NewStyle().Foreground(midGray).Render
	helpViewStyle         = lipgloss.NewStyle().Foreground(statusBarNoteFg)
)
