package store

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stefanpenner/ninety/pkg/plan"
)

// RevenueEntry is one recorded payment.
type RevenueEntry struct {
	ID     string    `yaml:"id" json:"id"`
	Amount float64   `yaml:"amount" json:"amount"`
	Source string    `yaml:"source,omitempty" json:"source,omitempty"`
	Date   plan.Date `yaml:"date" json:"date"`
}

// Account holds the account metrics that seed the goals.
type Account struct {
	Followers   float64        `yaml:"followers" json:"followers"`
	Impressions float64        `yaml:"impressions" json:"impressions"`
	Revenue     []RevenueEntry `yaml:"revenue,omitempty" json:"revenue"`
}

// RevenueTotal sums every revenue entry.
func (a *Account) RevenueTotal() float64 {
	var total float64
	for _, e := range a.Revenue {
		total += e.Amount
	}
	return total
}

// Seed returns the values used to create the goals on first run.
func (a *Account) Seed() plan.Seed {
	return plan.Seed{
		Followers:   a.Followers,
		Impressions: a.Impressions,
		Revenue:     a.RevenueTotal(),
	}
}

// LoadAccount reads account.md. A missing file yields an empty account.
func (s *Store) LoadAccount() (*Account, error) {
	data, err := readFile(s.AccountPath())
	if errors.Is(err, plan.ErrNoState) {
		return &Account{}, nil
	}
	if err != nil {
		return nil, err
	}
	var a Account
	if _, err := ParseFrontmatter(string(data), &a); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", accountFile, err)
	}
	return &a, nil
}

// SaveAccount writes account.md.
func (s *Store) SaveAccount(a *Account) error {
	content, err := SerializeFrontmatter(a, "")
	if err != nil {
		return fmt.Errorf("serializing account: %w", err)
	}
	return writeAtomic(s.AccountPath(), []byte(content))
}

// SetAccountMetrics records the latest follower and impression counts.
func (s *Store) SetAccountMetrics(followers, impressions float64) (*Account, error) {
	if invalidMetric(followers) || invalidMetric(impressions) {
		return nil, fmt.Errorf("account metrics must be finite and non-negative")
	}
	a, err := s.LoadAccount()
	if err != nil {
		return nil, err
	}
	a.Followers = followers
	a.Impressions = impressions
	if err := s.SaveAccount(a); err != nil {
		return nil, err
	}
	return a, nil
}

// AddRevenue appends a revenue entry dated day.
func (s *Store) AddRevenue(amount float64, source string, day plan.Date) (*RevenueEntry, error) {
	if invalidMetric(amount) || amount == 0 {
		return nil, fmt.Errorf("revenue amount must be a positive number")
	}
	a, err := s.LoadAccount()
	if err != nil {
		return nil, err
	}
	entry := RevenueEntry{
		ID:     uuid.NewString(),
		Amount: amount,
		Source: strings.TrimSpace(source),
		Date:   day,
	}
	a.Revenue = append(a.Revenue, entry)
	if err := s.SaveAccount(a); err != nil {
		return nil, err
	}
	return &entry, nil
}

func invalidMetric(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
