package ui

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	TurnIcon  = "👉"
	HumanIcon = "🧑"
	CPUIcon   = "🤖"
)

// Lipgloss styles
var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
	blackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
	manilhaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("228")).Bold(true).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
