package sync

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_AUTHOR_NAME", "ninety test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "ninety test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func TestSyncRequiresRepo(t *testing.T) {
	r := New(t.TempDir(), zerolog.Nop())
	r.Out = nil
	assert.ErrorIs(t, r.Sync(), ErrNotRepo)
}

func TestInitCreatesRepo(t *testing.T) {
	requireGit(t)
	dir := filepath.Join(t.TempDir(), "data")

	var out bytes.Buffer
	r := New(dir, zerolog.Nop())
	r.Out = &out
	require.NoError(t, r.Init(""))

	assert.True(t, r.IsRepo())
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "logs/")
	assert.Contains(t, out.String(), "No remote specified")

	// idempotent
	require.NoError(t, r.Init(""))
}

func TestGitignoreSkipsInFlightWrites(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	r := New(dir, zerolog.Nop())
	r.Out = nil
	require.NoError(t, r.Init(""))

	for _, name := range []string{".plan.md.123456.tmp", ".goals.md.987", "logs/ninety.log"} {
		err := exec.Command("git", "-C", dir, "check-ignore", "-q", name).Run()
		assert.NoError(t, err, "%s should be ignored", name)
	}
	err := exec.Command("git", "-C", dir, "check-ignore", "-q", "plan.md").Run()
	assert.Error(t, err, "plan.md is tracked")
}

func TestSyncPushesToRemote(t *testing.T) {
	requireGit(t)
	root := t.TempDir()
	remote := filepath.Join(root, "remote.git")
	require.NoError(t, exec.Command("git", "init", "--bare", remote).Run())

	dir := filepath.Join(root, "data")
	r := New(dir, zerolog.Nop())
	r.Out = nil
	require.NoError(t, r.Init(remote))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plan.md"), []byte("---\nstart_date: \"2026-03-01\"\n---\n"), 0644))

	require.NoError(t, r.Sync())

	log, err := exec.Command("git", "-C", remote, "log", "--all", "--format=%s").Output()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(log), "sync "))

	// a second sync with an upstream and nothing to commit still succeeds
	require.NoError(t, r.Sync())
}
