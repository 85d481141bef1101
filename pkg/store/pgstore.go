package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stefanpenner/ninety/pkg/plan"
)

const (
	docPlan  = "plan"
	docGoals = "goals"
)

// PgStore is a PostgreSQL-backed plan.Repository. The plan and goals are
// stored as JSONB documents in a single table.
type PgStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

var _ plan.Repository = (*PgStore)(nil)

// NewPgStore creates a PgStore. Each call is bounded by timeout.
func NewPgStore(pool *pgxpool.Pool, timeout time.Duration) *PgStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PgStore{pool: pool, timeout: timeout}
}

// OpenPgStore connects to url and ensures the table exists.
func OpenPgStore(ctx context.Context, url string, timeout time.Duration) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	s := NewPgStore(pool, timeout)
	if err := s.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring table: %w", err)
	}
	return s, nil
}

// Close releases the pool.
func (s *PgStore) Close() {
	s.pool.Close()
}

// EnsureTable creates the documents table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ninety_documents (
			key        TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			body       TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`)
	return err
}

func (s *PgStore) load(key string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var doc []byte
	var body string
	err := s.pool.QueryRow(ctx, `SELECT doc, body FROM ninety_documents WHERE key = $1`, key).Scan(&doc, &body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", fmt.Errorf("%s document: %w", key, plan.ErrNoState)
	}
	if err != nil {
		return nil, "", fmt.Errorf("get %s document: %w", key, err)
	}
	return doc, body, nil
}

func (s *PgStore) save(key string, v interface{}, body string) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err = s.pool.Exec(ctx, `
		INSERT INTO ninety_documents (key, doc, body, updated_at)
		VALUES ($1, $2::jsonb, $3, NOW())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, body = EXCLUDED.body, updated_at = NOW()`,
		key, string(doc), body)
	if err != nil {
		return fmt.Errorf("save %s document: %w", key, err)
	}
	return nil
}

// LoadPlan implements plan.Repository.
func (s *PgStore) LoadPlan() (*plan.State, error) {
	doc, body, err := s.load(docPlan)
	if err != nil {
		return nil, err
	}
	var state plan.State
	if err := json.Unmarshal(doc, &state); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	state.Notes = body
	return &state, nil
}

// SavePlan implements plan.Repository.
func (s *PgStore) SavePlan(state *plan.State) error {
	return s.save(docPlan, state, state.Notes)
}

// LoadGoals implements plan.Repository.
func (s *PgStore) LoadGoals() (*plan.Goals, error) {
	doc, _, err := s.load(docGoals)
	if err != nil {
		return nil, err
	}
	var goals plan.Goals
	if err := json.Unmarshal(doc, &goals); err != nil {
		return nil, fmt.Errorf("unmarshal goals: %w", err)
	}
	return &goals, nil
}

// SaveGoals implements plan.Repository.
func (s *PgStore) SaveGoals(goals *plan.Goals) error {
	return s.save(docGoals, goals, "")
}

// Reset deletes every stored document.
func (s *PgStore) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM ninety_documents`)
	return err
}
