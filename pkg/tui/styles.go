package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorOrange      = lipgloss.Color("#D19A66")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	StreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorOrange)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Checklist styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)

	CompleteStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	IncompleteStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	DoneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Strikethrough(true)

	PhaseHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)
)

// Priority badge styles
var (
	PriorityCriticalStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorRed)

	PriorityImportantStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	PriorityNormalStyle = lipgloss.NewStyle().
				Foreground(ColorGray)
)

// Details panel styles
var (
	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPurple)

	GoalLabelStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite).
			Width(14)

	GoalValueStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	MilestoneAchievedStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	MilestoneLockedStyle = lipgloss.NewStyle().
				Foreground(ColorGrayDim)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)
)

// Status icons
const (
	IconComplete   = "✓"
	IconIncomplete = "○"
	IconNext       = "→"
	IconLocked     = "·"
)

func priorityStyle(p string) lipgloss.Style {
	switch p {
	case "critical":
		return PriorityCriticalStyle
	case "important":
		return PriorityImportantStyle
	default:
		return PriorityNormalStyle
	}
}

// barColor maps a goal's color name onto the palette.
func barColor(name string) lipgloss.Color {
	switch name {
	case "green":
		return ColorGreen
	case "blue":
		return ColorBlue
	case "orange":
		return ColorOrange
	case "red":
		return ColorRed
	case "yellow":
		return ColorYellow
	case "cyan":
		return ColorCyan
	default:
		return ColorPurple
	}
}
