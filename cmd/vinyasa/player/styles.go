package player

import "github.com/charmbracelet/lipgloss"

var (
	ColorGreen   = lipgloss.Color("#04B575")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	PoseNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)

	RunningBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	PausedBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	IdleBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	TimerBarStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
