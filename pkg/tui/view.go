package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/stefanpenner/ninety/pkg/plan"
)

const minWidth = 60
const minHeight = 12

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderOverall(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 2
	if m.isGoalInput {
		footerLines++
	}
	contentHeight := h - headerLines - footerLines

	leftWidth := m.leftWidth()
	rightWidth := w - leftWidth - 1
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftPanel := m.renderChecklist(leftWidth, contentHeight)
	rightPanel := m.renderDetails(rightWidth, contentHeight)

	sepColor := ColorGrayDim
	if m.focusedPane == 1 {
		sepColor = ColorPurple
	}
	sep := lipgloss.NewStyle().Foreground(sepColor).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	if m.isGoalInput {
		b.WriteString(InputPromptStyle.Render("goal> ") + m.textInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("90-Day Plan")
	if m.dash == nil {
		return title
	}
	d := m.dash

	stats := HeaderCountStyle.Render(fmt.Sprintf("%d/%d done  ", d.Completed, d.Total)) +
		StreakStyle.Render(fmt.Sprintf("🔥 %d", d.Streak)) +
		HeaderCountStyle.Render(fmt.Sprintf("  day %d · %d left", d.DaysElapsed+1, d.DaysRemaining))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = lipgloss.NewStyle().Foreground(ColorCyan).Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderOverall(width int) string {
	if m.dash == nil {
		return ""
	}
	label := FooterStyle.Render(fmt.Sprintf("Overall %3d%% ", m.dash.Percent))
	barWidth := width - lipgloss.Width(label)
	if barWidth < 10 {
		barWidth = 10
	}
	return label + renderBar(string(ColorPurple), barWidth, float64(m.dash.Percent)/100)
}

func (m Model) renderChecklist(width, height int) string {
	var lines []string

	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.visibleItems) == 0 {
		lines = append(lines, FooterStyle.Render("The catalog is empty."))
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.visibleItems)
	if len(m.visibleItems) > listHeight {
		half := listHeight / 2
		startIdx = m.cursor - half
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + listHeight
		if endIdx > len(m.visibleItems) {
			endIdx = len(m.visibleItems)
			startIdx = endIdx - listHeight
			if startIdx < 0 {
				startIdx = 0
			}
		}
	}

	var nextID string
	if m.dash != nil && m.dash.Next != nil {
		nextID = m.dash.Next.ID
	}
	for i := startIdx; i < endIdx; i++ {
		item := m.visibleItems[i]
		if item.IsSectionHeader {
			lines = append(lines, m.renderPhaseHeader(item, width))
			continue
		}
		lines = append(lines, m.renderListItem(item, i == m.cursor, item.ID == nextID, width))
	}

	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	pathLine := lipgloss.NewStyle().Foreground(ColorGrayDim).Render(fileHyperlink(m.dataDir))
	lines = append(lines, pathLine)

	return strings.Join(lines, "\n")
}

func (m Model) renderPhaseHeader(item ListItem, width int) string {
	p := item.PhaseProgress
	label := PhaseHeaderStyle.Render("── " + item.Name + " ")
	count := FooterStyle.Render(fmt.Sprintf(" %d/%d", p.Completed, p.Total))
	barWidth := width - lipgloss.Width(label) - lipgloss.Width(count)
	if barWidth < 4 {
		return label + count
	}
	return label + renderBar(string(ColorCyan), barWidth, p.Ratio) + count
}

func (m Model) renderListItem(item ListItem, isSelected, isNext bool, width int) string {
	var statusIcon, name string
	if item.Completed {
		statusIcon = CompleteStyle.Render(IconComplete)
		name = DoneTitleStyle.Render(item.Name)
	} else {
		statusIcon = IncompleteStyle.Render(IconIncomplete)
		name = item.Name
	}

	marker := "  "
	if isNext {
		marker = StreakStyle.Render(IconNext) + " "
	}

	line := marker + statusIcon + " " + name
	if !item.Completed && item.Item.Priority != plan.PriorityNormal {
		line += " " + priorityStyle(string(item.Item.Priority)).Render("●")
	}
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}
	if isSelected {
		line = SelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderDetails(width, height int) string {
	if m.dash == nil {
		return FooterStyle.Render(" Loading...")
	}

	var lines []string
	lines = append(lines, m.renderMarkdown(m.detailMarkdown())...)
	lines = append(lines, "")
	lines = append(lines, m.renderGoals(width)...)
	lines = append(lines, "")
	lines = append(lines, m.renderMilestones()...)
	if notes := strings.TrimSpace(m.dash.Notes); notes != "" {
		lines = append(lines, "")
		lines = append(lines, " "+SectionTitleStyle.Render("Notes"))
		lines = append(lines, m.renderMarkdown(notes+"\n")...)
	}

	scroll := m.detailScroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// detailMarkdown describes the selected item and the next action.
func (m Model) detailMarkdown() string {
	var md strings.Builder
	if item := m.selected(); item != nil {
		a := item.Item
		md.WriteString("# " + displayName(*a) + "\n\n")
		status := "open"
		if item.Completed {
			status = "done"
			if st, err := m.tracker.State(); err == nil {
				if c, ok := st.Actions[a.ID]; ok && !c.Date.IsZero() {
					status = "done " + c.Date.String()
				}
			}
		}
		md.WriteString(fmt.Sprintf("**%s** | %s | **Status:** %s\n\n", a.Priority.Label(), plan.PhaseLabel(a.Phase), status))
		if a.Description != "" {
			md.WriteString(a.Description + "\n\n")
		}
	}
	if next := m.dash.Next; next != nil {
		md.WriteString("**Next up:** " + displayName(*next) + "\n")
	} else {
		md.WriteString("**Plan complete.**\n")
	}
	return md.String()
}

func (m Model) renderMarkdown(md string) []string {
	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}
	rendered = strings.TrimRight(rendered, "\n ")
	return strings.Split(rendered, "\n")
}

func (m Model) renderGoals(width int) []string {
	lines := []string{" " + SectionTitleStyle.Render("Goals")}
	for _, g := range m.dash.Goals {
		label := GoalLabelStyle.Render(" " + g.Icon + " " + g.Label)
		value := GoalValueStyle.Render(fmt.Sprintf(" %s / %s", g.CurrentDisplay, g.TargetDisplay))
		barWidth := width - lipgloss.Width(label) - lipgloss.Width(value) - 1
		if barWidth < 6 {
			barWidth = 6
		}
		lines = append(lines, label+renderBar(string(barColor(g.BarColor)), barWidth, g.Ratio)+value)
	}
	return lines
}

func (m Model) renderMilestones() []string {
	lines := []string{" " + SectionTitleStyle.Render("Milestones")}
	for _, ms := range m.dash.Milestones {
		if ms.Achieved {
			lines = append(lines, MilestoneAchievedStyle.Render(fmt.Sprintf(" %s %s  %s", ms.Icon, ms.Title, ms.Description)))
		} else {
			lines = append(lines, MilestoneLockedStyle.Render(fmt.Sprintf(" %s  %s  %s", IconLocked, ms.Title, ms.Description)))
		}
	}
	return lines
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	if m.isGoalInput {
		help = "<goal> current|target <value>  enter confirm  esc cancel"
	} else if m.focusedPane == 1 {
		help = "↑↓ scroll details  tab checklist  ? help"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

// renderBar draws a static progress bar filled to ratio.
func renderBar(color string, width int, ratio float64) string {
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(ColorGrayDim)
	return bar.ViewAs(ratio)
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
