package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRatio(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want float64
	}{
		{"half way", Goal{Current: 50, Target: 100}, 0.5},
		{"exactly reached", Goal{Current: 100, Target: 100}, 1},
		{"over achieved", Goal{Current: 250, Target: 100}, 1},
		{"zero current", Goal{Current: 0, Target: 100}, 0},
		{"negative current", Goal{Current: -5, Target: 100}, 0},
		{"zero target", Goal{Current: 0, Target: 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.goal.ProgressRatio(), 1e-9)
		})
	}
}

func TestDefaultGoalsSeed(t *testing.T) {
	g := DefaultGoals(Seed{})
	assert.Equal(t, Goal{Current: 0, Target: 500}, g.Followers)
	assert.Equal(t, Goal{Current: 0, Target: 5000000}, g.Impressions)
	assert.Equal(t, Goal{Current: 0, Target: 200}, g.Revenue)
	assert.Equal(t, Goal{Current: 0, Target: 150}, g.Tweets)

	g = DefaultGoals(Seed{Followers: 2847, Impressions: 3420000, Revenue: 41.6})
	assert.Equal(t, float64(2847), g.Followers.Current)
	assert.Equal(t, float64(3420000), g.Impressions.Current)
	assert.Equal(t, float64(42), g.Revenue.Current)
}

func TestSetTargetRejectsInvalid(t *testing.T) {
	g := DefaultGoals(Seed{})

	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := g.SetTarget(GoalFollowers, v)
		assert.ErrorIs(t, err, ErrInvalidGoalValue, "value %v", v)
	}
	assert.Equal(t, float64(500), g.Followers.Target, "rejected update keeps prior value")

	require.NoError(t, g.SetTarget(GoalFollowers, 1000))
	assert.Equal(t, float64(1000), g.Followers.Target)
}

func TestSetCurrent(t *testing.T) {
	g := DefaultGoals(Seed{})

	require.NoError(t, g.SetCurrent(GoalTweets, 200))
	assert.Equal(t, float64(200), g.Tweets.Current, "current may exceed target")
	assert.Equal(t, float64(150), g.Tweets.Target, "target is never adjusted")

	assert.ErrorIs(t, g.SetCurrent(GoalTweets, math.NaN()), ErrInvalidGoalValue)
	assert.Equal(t, float64(200), g.Tweets.Current)

	assert.ErrorIs(t, g.SetCurrent("likes", 1), ErrNotFound)
}

func TestParseGoalKey(t *testing.T) {
	k, err := ParseGoalKey(" Revenue ")
	require.NoError(t, err)
	assert.Equal(t, GoalRevenue, k)

	_, err = ParseGoalKey("likes")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseGoalValue(t *testing.T) {
	v, err := ParseGoalValue("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	_, err = ParseGoalValue("lots")
	assert.ErrorIs(t, err, ErrInvalidGoalValue)
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{41.6, "42"},
		{1000, "1.0K"},
		{2847, "2.8K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{3420000, "3.4M"},
		{5000000, "5.0M"},
		{-0.2, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayValue(tt.in), "DisplayValue(%v)", tt.in)
	}
}
