package store

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stefanpenner/ninety/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAccountMissing(t *testing.T) {
	s := setupTestStore(t)
	a, err := s.LoadAccount()
	require.NoError(t, err)
	assert.Equal(t, &Account{}, a)
	assert.Equal(t, plan.Seed{}, a.Seed())
}

func TestAddRevenue(t *testing.T) {
	s := setupTestStore(t)
	day := plan.MustParseDate("2026-03-05")

	first, err := s.AddRevenue(12.40, " sponsorship ", day)
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err)
	assert.Equal(t, "sponsorship", first.Source)

	second, err := s.AddRevenue(29.2, "", day.AddDays(1))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	a, err := s.LoadAccount()
	require.NoError(t, err)
	require.Len(t, a.Revenue, 2)
	assert.Equal(t, day, a.Revenue[0].Date)
	assert.InDelta(t, 41.6, a.RevenueTotal(), 1e-9)
	assert.Equal(t, float64(42), plan.DefaultGoals(a.Seed()).Revenue.Current)
}

func TestAddRevenueRejectsInvalid(t *testing.T) {
	s := setupTestStore(t)
	for _, v := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		_, err := s.AddRevenue(v, "", plan.MustParseDate("2026-03-05"))
		assert.Error(t, err, "amount %v", v)
	}
	a, err := s.LoadAccount()
	require.NoError(t, err)
	assert.Empty(t, a.Revenue)
}

func TestSetAccountMetrics(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.AddRevenue(5, "tip", plan.MustParseDate("2026-03-05"))
	require.NoError(t, err)
	a, err := s.SetAccountMetrics(2847, 3420000)
	require.NoError(t, err)
	assert.Len(t, a.Revenue, 1, "revenue entries are kept")

	loaded, err := s.LoadAccount()
	require.NoError(t, err)
	assert.Equal(t, plan.Seed{Followers: 2847, Impressions: 3420000, Revenue: 5}, loaded.Seed())

	_, err = s.SetAccountMetrics(-1, 0)
	assert.Error(t, err)
}
