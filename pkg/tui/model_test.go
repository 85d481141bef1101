package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stefanpenner/ninety/pkg/plan"
	"github.com/stefanpenner/ninety/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = plan.MustParseDate("2026-03-01")

func setupTestModel(t *testing.T) (Model, *plan.Tracker) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewStore(dir)
	require.NoError(t, err)

	tr := plan.NewTracker(s, plan.DefaultCatalog(), plan.Options{Logger: zerolog.Nop()})
	_, err = tr.Initialize(testToday, plan.Seed{})
	require.NoError(t, err)

	m := NewModel(tr, Options{
		DataDir: dir,
		Today:   func() plan.Date { return testToday },
		Logger:  zerolog.Nop(),
	})
	return m, tr
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func TestBuildListItems(t *testing.T) {
	c := plan.DefaultCatalog()
	state := plan.NewState(testToday)
	state.Actions["p1_2"] = plan.Completion{Date: testToday}

	items := BuildListItems(c, state, nil)
	require.Len(t, items, c.Len()+len(plan.Phases))

	assert.True(t, items[0].IsSectionHeader)
	assert.Equal(t, "phase-1", items[0].ID)
	assert.Contains(t, items[0].Name, "Days 1-30")

	assert.Equal(t, "p1_1", items[1].ID)
	assert.False(t, items[1].Completed)
	assert.Equal(t, "p1_2", items[2].ID)
	assert.True(t, items[2].Completed)

	for _, item := range items {
		if !item.IsSectionHeader {
			require.NotNil(t, item.Item)
			assert.Equal(t, item.ID, item.Item.ID)
		}
	}
}

func TestNewModelStartsOnFirstItem(t *testing.T) {
	m, _ := setupTestModel(t)
	item := m.selected()
	require.NotNil(t, item)
	assert.Equal(t, "p1_1", item.ID)
}

func TestToggleWithKey(t *testing.T) {
	m, tr := setupTestModel(t)

	m = update(t, m, runeKey("x"))
	done, err := tr.IsCompleted("p1_1")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "Done: "+m.selected().Item.Title, m.statusMsg)
	assert.True(t, m.selected().Completed)

	m = update(t, m, runeKey("x"))
	done, err = tr.IsCompleted("p1_1")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Contains(t, m.statusMsg, "Reopened")
}

func TestCursorSkipsPhaseHeaders(t *testing.T) {
	m, _ := setupTestModel(t)

	// p1_1 is the first item; up stays put
	m = update(t, m, runeKey("k"))
	assert.Equal(t, "p1_1", m.selected().ID)

	for i := 0; i < 6; i++ {
		m = update(t, m, runeKey("j"))
	}
	// past p1_6, over the phase 2 header
	assert.Equal(t, "p2_1", m.selected().ID)

	m = update(t, m, runeKey("G"))
	assert.Equal(t, "p3_6", m.selected().ID)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, "p1_1", m.selected().ID)
}

func TestJumpToNextAction(t *testing.T) {
	m, _ := setupTestModel(t)
	m = update(t, m, runeKey("G"))
	m = update(t, m, runeKey("n"))
	// p1_2 is pre-completed, so p1_1 leads
	assert.Equal(t, "p1_1", m.selected().ID)

	m = update(t, m, runeKey("x"))
	m = update(t, m, runeKey("n"))
	assert.Equal(t, "p2_1", m.selected().ID)
}

func TestParseGoalEdit(t *testing.T) {
	tests := []struct {
		input   string
		key     plan.GoalKey
		field   string
		value   float64
		wantErr bool
	}{
		{"followers current 320", plan.GoalFollowers, "current", 320, false},
		{"revenue target 1000", plan.GoalRevenue, "target", 1000, false},
		{"tweets CURRENT 12", plan.GoalTweets, "current", 12, false},
		{"followers current", "", "", 0, true},
		{"subscribers current 3", "", "", 0, true},
		{"followers goal 3", "", "", 0, true},
		{"followers current lots", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, field, v, err := parseGoalEdit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, k)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestEditGoalFlow(t *testing.T) {
	m, tr := setupTestModel(t)

	m = update(t, m, runeKey("g"))
	require.True(t, m.isGoalInput)

	m = update(t, m, runeKey("followers current 42"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.isGoalInput)

	goals, err := tr.Goals()
	require.NoError(t, err)
	g, err := goals.Get(plan.GoalFollowers)
	require.NoError(t, err)
	assert.Equal(t, float64(42), g.Current)
}

func TestEditGoalCancel(t *testing.T) {
	m, tr := setupTestModel(t)

	m = update(t, m, runeKey("g"))
	m = update(t, m, runeKey("followers current 42"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.isGoalInput)

	goals, err := tr.Goals()
	require.NoError(t, err)
	g, err := goals.Get(plan.GoalFollowers)
	require.NoError(t, err)
	assert.Equal(t, float64(0), g.Current)
}

func TestSyncWithoutRepo(t *testing.T) {
	m, _ := setupTestModel(t)
	m = update(t, m, runeKey("s"))
	assert.Contains(t, m.statusMsg, "ninety init")
}

func TestHelpModal(t *testing.T) {
	m, _ := setupTestModel(t)
	m = update(t, m, runeKey("?"))
	assert.True(t, m.showHelpModal)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelpModal)
}

func TestView(t *testing.T) {
	m, _ := setupTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	assert.Contains(t, out, "90-Day Plan")
	assert.Contains(t, out, "1/18 done")
	assert.Contains(t, out, "Days 1-30")
	assert.Contains(t, out, "Goals")
	assert.Contains(t, out, "Milestones")
}

func TestFileChangedReloads(t *testing.T) {
	m, tr := setupTestModel(t)

	// a second tracker over the same directory stands in for another process
	s, err := store.NewStore(m.dataDir)
	require.NoError(t, err)
	other := plan.NewTracker(s, plan.DefaultCatalog(), plan.Options{Logger: zerolog.Nop()})
	_, err = other.Initialize(testToday, plan.Seed{})
	require.NoError(t, err)
	_, err = other.Toggle("p1_1", testToday)
	require.NoError(t, err)

	assert.False(t, m.selected().Completed)
	m = update(t, m, FileChangedMsg{})
	assert.True(t, m.selected().Completed)

	done, err := tr.IsCompleted("p1_1")
	require.NoError(t, err)
	assert.True(t, done)
}
