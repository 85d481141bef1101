package tui

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func TestIsDataFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/data/plan.md", true},
		{"/data/goals.md", true},
		{"/data/account.md", false},
		{"/data/config.yaml", false},
		{"/data/catalog.yaml", false},
		{"/data/.plan.md.123456.tmp", false},
		{"/data/.gitignore", false},
		{"/data/ninety.log", false},
		{"/data/notes.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isDataFile(tt.path))
		})
	}
}

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	sender := &fakeSender{}

	stop, err := StartWatcher(dir, sender)
	require.NoError(t, err)
	defer stop()

	path := filepath.Join(dir, "plan.md")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("---\nstart_date: \"2026-03-01\"\n---\n"), 0644))
	}

	assert.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 20*time.Millisecond)

	// nothing further arrives once the burst is over
	time.Sleep(2 * debounce)
	assert.Equal(t, 1, sender.count())
	assert.IsType(t, FileChangedMsg{}, sender.msgs[0])
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	sender := &fakeSender{}

	stop, err := StartWatcher(dir, sender)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".plan.md.1.tmp"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("horizon_days: 60\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte("actions: []\n"), 0644))

	time.Sleep(3 * debounce)
	assert.Equal(t, 0, sender.count())
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := StartWatcher(filepath.Join(t.TempDir(), "missing"), &fakeSender{})
	assert.Error(t, err)
}
