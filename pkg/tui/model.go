package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/stefanpenner/ninety/pkg/plan"
	gsync "github.com/stefanpenner/ninety/pkg/sync"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// SyncDoneMsg is sent when git sync completes.
type SyncDoneMsg struct {
	Err error
}

// Options configures the TUI model.
type Options struct {
	// DataDir is shown in the footer.
	DataDir string
	// Sync is nil when the data directory has no repository.
	Sync *gsync.Repo
	// Today defaults to plan.Today.
	Today  func() plan.Date
	Logger zerolog.Logger
}

// Model is the Bubble Tea model for the plan dashboard.
type Model struct {
	tracker      *plan.Tracker
	sync         *gsync.Repo
	dataDir      string
	today        func() plan.Date
	logger       zerolog.Logger
	keys         KeyMap
	width        int
	height       int
	dash         *plan.Dashboard
	visibleItems []ListItem
	cursor       int
	focusedPane  int // 0 = checklist, 1 = details
	detailScroll int

	showHelpModal bool

	// Goal edit input
	isGoalInput bool
	textInput   textinput.Model

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model over an initialized tracker.
func NewModel(t *plan.Tracker, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "followers current 320"
	ti.CharLimit = 64

	if opts.Today == nil {
		opts.Today = plan.Today
	}

	m := Model{
		tracker:   t,
		sync:      opts.Sync,
		dataDir:   opts.DataDir,
		today:     opts.Today,
		logger:    opts.Logger.With().Str("component", "tui").Logger(),
		keys:      DefaultKeyMap(),
		textInput: ti,
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(m.rightWidth() - 2)
		m.reload()
		return m, tea.ClearScreen

	case FileChangedMsg:
		if err := m.tracker.Reload(); err != nil {
			m.setStatus("Reload error: " + err.Error())
			return m, nil
		}
		m.reload()
		return m, nil

	case SyncDoneMsg:
		if msg.Err != nil {
			m.setStatus("Sync failed: " + msg.Err.Error())
		} else {
			m.setStatus("Synced successfully")
			if err := m.tracker.Reload(); err == nil {
				m.reload()
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.isGoalInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.isGoalInput {
		switch msg.Type {
		case tea.KeyEsc:
			m.isGoalInput = false
			m.textInput.Blur()
			return m, nil
		case tea.KeyEnter:
			m.applyGoalEdit(m.textInput.Value())
			m.isGoalInput = false
			m.textInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == 1 {
			if m.detailScroll > 0 {
				m.detailScroll--
			}
		} else {
			m.moveCursor(-1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == 1 {
			m.detailScroll++
		} else {
			m.moveCursor(1)
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.skipHeaders(1)
		m.detailScroll = 0

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.visibleItems) - 1
		m.skipHeaders(-1)
		m.detailScroll = 0

	case key.Matches(msg, m.keys.Space):
		m.toggleSelected()

	case key.Matches(msg, m.keys.Next):
		if m.dash != nil && m.dash.Next != nil {
			m.moveCursorToItem(m.dash.Next.ID)
		} else {
			m.setStatus("Plan complete 🏆")
		}

	case key.Matches(msg, m.keys.Tab):
		m.focusedPane = (m.focusedPane + 1) % 2

	case key.Matches(msg, m.keys.EditGoal):
		m.isGoalInput = true
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Reload):
		if err := m.tracker.Reload(); err != nil {
			m.setStatus("Reload error: " + err.Error())
		} else {
			m.reload()
			m.setStatus("Reloaded")
		}

	case key.Matches(msg, m.keys.Sync):
		if m.sync == nil {
			m.setStatus("No git repository, run 'ninety init'")
			return m, nil
		}
		m.setStatus("Syncing...")
		return m, m.doSync()

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	for next >= 0 && next < len(m.visibleItems) && m.visibleItems[next].IsSectionHeader {
		next += delta
	}
	if next >= 0 && next < len(m.visibleItems) {
		m.cursor = next
	}
	m.detailScroll = 0
}

// skipHeaders moves the cursor off a section header in direction dir.
func (m *Model) skipHeaders(dir int) {
	for m.cursor >= 0 && m.cursor < len(m.visibleItems) && m.visibleItems[m.cursor].IsSectionHeader {
		m.cursor += dir
	}
	if m.cursor < 0 || m.cursor >= len(m.visibleItems) {
		m.cursor = 0
		if dir < 0 {
			m.skipHeaders(1)
		}
	}
}

func (m *Model) moveCursorToItem(id string) {
	for i, item := range m.visibleItems {
		if item.ID == id && !item.IsSectionHeader {
			m.cursor = i
			m.detailScroll = 0
			return
		}
	}
}

func (m *Model) selected() *ListItem {
	if m.cursor < 0 || m.cursor >= len(m.visibleItems) {
		return nil
	}
	item := &m.visibleItems[m.cursor]
	if item.IsSectionHeader {
		return nil
	}
	return item
}

func (m *Model) toggleSelected() {
	item := m.selected()
	if item == nil {
		return
	}
	done, err := m.tracker.Toggle(item.ID, m.today())
	if err != nil {
		m.logger.Error().Err(err).Str("action", item.ID).Msg("toggle failed")
		m.setStatus("Error: " + err.Error())
		return
	}
	m.reload()
	if done {
		m.setStatus("Done: " + item.Item.Title)
	} else {
		m.setStatus("Reopened: " + item.Item.Title)
	}
}

// parseGoalEdit parses "<goal> current|target <value>".
func parseGoalEdit(s string) (plan.GoalKey, string, float64, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return "", "", 0, fmt.Errorf("expected: <goal> current|target <value>")
	}
	k, err := plan.ParseGoalKey(fields[0])
	if err != nil {
		return "", "", 0, err
	}
	field := strings.ToLower(fields[1])
	if field != "current" && field != "target" {
		return "", "", 0, fmt.Errorf("unknown field %q, want current or target", fields[1])
	}
	v, err := plan.ParseGoalValue(fields[2])
	if err != nil {
		return "", "", 0, err
	}
	return k, field, v, nil
}

func (m *Model) applyGoalEdit(input string) {
	if strings.TrimSpace(input) == "" {
		return
	}
	k, field, v, err := parseGoalEdit(input)
	if err == nil {
		if field == "current" {
			err = m.tracker.SetGoalCurrent(k, v)
		} else {
			err = m.tracker.SetGoalTarget(k, v)
		}
	}
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.reload()
	m.setStatus(fmt.Sprintf("%s %s → %s", k.Definition().Label, field, plan.DisplayValue(v)))
}

func (m *Model) reload() {
	today := m.today()
	dash, err := m.tracker.Dashboard(today)
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return
	}
	state, err := m.tracker.State()
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return
	}
	m.dash = dash
	m.rebuildVisible(state)
}

func (m *Model) rebuildVisible(state *plan.State) {
	var curID string
	if item := m.selected(); item != nil {
		curID = item.ID
	}

	m.visibleItems = BuildListItems(m.tracker.Catalog(), state, m.dash.Phases)

	if curID != "" {
		m.moveCursorToItem(curID)
	}
	if m.cursor >= len(m.visibleItems) {
		m.cursor = len(m.visibleItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.skipHeaders(1)
}

func (m Model) leftWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) rightWidth() int {
	w := m.width - m.leftWidth() - 1
	if w < 20 {
		w = 20
	}
	return w
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m Model) doSync() tea.Cmd {
	repo := *m.sync
	repo.Out = io.Discard
	return func() tea.Msg {
		return SyncDoneMsg{Err: repo.Sync()}
	}
}
