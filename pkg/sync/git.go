// Package sync keeps the data directory in a git repository and
// synchronizes it with a remote.
package sync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotRepo is returned when the data directory has no git repository.
var ErrNotRepo = errors.New("not a git repository, run 'ninety init' first")

const gitignore = "logs/\n*.tmp\n.*.md.*\n"

// Repo runs git against a data directory.
type Repo struct {
	Dir string
	// Out receives git's output. The TUI sets io.Discard.
	Out    io.Writer
	Logger zerolog.Logger
}

// New returns a Repo printing to stdout.
func New(dir string, logger zerolog.Logger) *Repo {
	return &Repo{
		Dir:    dir,
		Out:    os.Stdout,
		Logger: logger.With().Str("component", "sync").Logger(),
	}
}

func (r *Repo) git(args ...string) *exec.Cmd {
	cmd := exec.Command("git", append([]string{"-C", r.Dir}, args...)...)
	cmd.Stdout = r.out()
	cmd.Stderr = r.out()
	return cmd
}

func (r *Repo) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Repo) say(format string, args ...interface{}) {
	fmt.Fprintf(r.out(), format+"\n", args...)
}

// IsRepo reports whether Dir holds a git repository.
func (r *Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

// Init creates the repository if needed and points origin at remote when
// one is given.
func (r *Repo) Init(remote string) error {
	if !r.IsRepo() {
		if err := os.MkdirAll(r.Dir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		if err := r.git("init").Run(); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		r.Logger.Info().Str("dir", r.Dir).Msg("repository created")
	}

	ignorePath := filepath.Join(r.Dir, ".gitignore")
	if _, err := os.Stat(ignorePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(ignorePath, []byte(gitignore), 0644); err != nil {
			return fmt.Errorf("writing .gitignore: %w", err)
		}
	}

	if remote == "" {
		r.say("No remote specified. Use --remote <url> to set one.")
		return nil
	}

	// ignore the error when origin doesn't exist yet
	r.git("remote", "remove", "origin").Run()

	if err := r.git("remote", "add", "origin", remote).Run(); err != nil {
		return fmt.Errorf("setting remote: %w", err)
	}
	r.Logger.Info().Str("remote", remote).Msg("remote set")
	r.say("Remote set to: %s", remote)
	return nil
}

// Sync commits local changes, pulls (rebase, falling back to merge) and
// pushes. A branch without an upstream is pushed with -u.
func (r *Repo) Sync() error {
	if !r.IsRepo() {
		return ErrNotRepo
	}

	r.say("Staging changes...")
	if err := r.git("add", "-A").Run(); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}
	if err := r.git("diff", "--cached", "--quiet").Run(); err != nil {
		msg := "sync " + time.Now().Format("2006-01-02 15:04:05")
		if err := r.git("commit", "-m", msg).Run(); err != nil {
			return fmt.Errorf("committing changes: %w", err)
		}
	}

	upstream := exec.Command("git", "-C", r.Dir, "rev-parse", "--abbrev-ref", "@{u}").Run() == nil
	if upstream {
		r.say("Pulling...")
		if err := r.git("pull", "--rebase").Run(); err != nil {
			r.say("Rebase failed, trying merge...")
			r.git("rebase", "--abort").Run()

			if err := r.git("pull", "--no-rebase").Run(); err != nil {
				r.git("merge", "--abort").Run()
				r.Logger.Error().Err(err).Msg("sync conflict")
				return fmt.Errorf("sync failed: could not rebase or merge, resolve conflicts manually")
			}
		}
	}

	r.say("Pushing...")
	push := r.git("push")
	if !upstream {
		push = r.git("push", "-u", "origin", "HEAD")
	}
	if err := push.Run(); err != nil {
		r.Logger.Error().Err(err).Msg("push failed")
		return fmt.Errorf("push failed: %w", err)
	}

	r.Logger.Info().Msg("sync complete")
	r.say("Sync complete.")
	return nil
}
