package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stefanpenner/ninety/pkg/plan"
)

const (
	planFile    = "plan.md"
	goalsFile   = "goals.md"
	accountFile = "account.md"
	catalogFile = "catalog.yaml"
)

// RepositoryFiles are the files LoadPlan and LoadGoals read. Edits to any
// other file in the data directory (config, catalog, account) take effect on
// the next start.
var RepositoryFiles = []string{planFile, goalsFile}

// Store keeps the plan aggregate as markdown files with YAML frontmatter.
// It implements plan.Repository.
type Store struct {
	Root string // e.g., ~/.local/share/ninety
}

var _ plan.Repository = (*Store)(nil)

// NewStore creates a Store rooted at the given directory, creating the
// directory if it doesn't exist.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// PlanPath returns the path to plan.md.
func (s *Store) PlanPath() string {
	return filepath.Join(s.Root, planFile)
}

// GoalsPath returns the path to goals.md.
func (s *Store) GoalsPath() string {
	return filepath.Join(s.Root, goalsFile)
}

// AccountPath returns the path to account.md.
func (s *Store) AccountPath() string {
	return filepath.Join(s.Root, accountFile)
}

// CatalogPath returns the default catalog override path.
func (s *Store) CatalogPath() string {
	return filepath.Join(s.Root, catalogFile)
}

// LoadPlan reads plan.md. The markdown body becomes the plan notes.
func (s *Store) LoadPlan() (*plan.State, error) {
	data, err := readFile(s.PlanPath())
	if err != nil {
		return nil, err
	}
	var state plan.State
	body, err := ParseFrontmatter(string(data), &state)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", planFile, err)
	}
	if state.StartDate.IsZero() {
		return nil, fmt.Errorf("parsing %s: missing start_date", planFile)
	}
	state.Notes = body
	return &state, nil
}

// SavePlan writes plan.md.
func (s *Store) SavePlan(state *plan.State) error {
	content, err := SerializeFrontmatter(state, state.Notes)
	if err != nil {
		return fmt.Errorf("serializing plan: %w", err)
	}
	return writeAtomic(s.PlanPath(), []byte(content))
}

// LoadGoals reads goals.md.
func (s *Store) LoadGoals() (*plan.Goals, error) {
	data, err := readFile(s.GoalsPath())
	if err != nil {
		return nil, err
	}
	var goals plan.Goals
	if _, err := ParseFrontmatter(string(data), &goals); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", goalsFile, err)
	}
	return &goals, nil
}

// SaveGoals writes goals.md.
func (s *Store) SaveGoals(goals *plan.Goals) error {
	content, err := SerializeFrontmatter(goals, "")
	if err != nil {
		return fmt.Errorf("serializing goals: %w", err)
	}
	return writeAtomic(s.GoalsPath(), []byte(content))
}

// readFile maps a missing file to plan.ErrNoState.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), plan.ErrNoState)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return data, nil
}

// tempPattern names in-flight writes ".plan.md.<random>.tmp" so git and the
// watcher both skip them.
func tempPattern(path string) string {
	return "." + filepath.Base(path) + ".*.tmp"
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, tempPattern(path))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
