package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GoalKey names one of the four tracked goals.
type GoalKey string

const (
	GoalFollowers   GoalKey = "followers"
	GoalImpressions GoalKey = "impressions"
	GoalRevenue     GoalKey = "revenue"
	GoalTweets      GoalKey = "tweets"
)

// GoalKeys lists the goals in display order.
var GoalKeys = []GoalKey{GoalFollowers, GoalImpressions, GoalRevenue, GoalTweets}

// ParseGoalKey validates a goal name.
func ParseGoalKey(s string) (GoalKey, error) {
	k := GoalKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := goalDefinitions[k]; !ok {
		return "", fmt.Errorf("goal %q: %w", s, ErrNotFound)
	}
	return k, nil
}

// GoalDefinition is the static display metadata and default target of a goal.
type GoalDefinition struct {
	Label         string
	Icon          string
	BarColor      string
	DefaultTarget float64
}

var goalDefinitions = map[GoalKey]GoalDefinition{
	GoalFollowers:   {Label: "Followers", Icon: "👥", BarColor: "green", DefaultTarget: 500},
	GoalImpressions: {Label: "90-day impressions", Icon: "👁️", BarColor: "blue", DefaultTarget: 5000000},
	GoalRevenue:     {Label: "Monthly revenue ($)", Icon: "💰", BarColor: "purple", DefaultTarget: 200},
	GoalTweets:      {Label: "Monthly tweets", Icon: "🐦", BarColor: "orange", DefaultTarget: 150},
}

// Definition returns the display metadata for k.
func (k GoalKey) Definition() GoalDefinition {
	return goalDefinitions[k]
}

// Goal is a tracked metric. Current may exceed Target.
type Goal struct {
	Current float64 `yaml:"current" json:"current"`
	Target  float64 `yaml:"target" json:"target"`
}

// ProgressRatio returns current/target clamped to [0, 1]. A zero target
// counts as already reached.
func (g Goal) ProgressRatio() float64 {
	if g.Target == 0 {
		return 1
	}
	r := g.Current / g.Target
	if r > 1 {
		return 1
	}
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	return r
}

// Goals holds the four goal records.
type Goals struct {
	Followers   Goal `yaml:"followers" json:"followers"`
	Impressions Goal `yaml:"impressions" json:"impressions"`
	Revenue     Goal `yaml:"revenue" json:"revenue"`
	Tweets      Goal `yaml:"tweets" json:"tweets"`
}

// Seed carries account metrics known before the goals are created.
type Seed struct {
	Followers   float64
	Impressions float64
	Revenue     float64
}

// DefaultGoals returns goals at their default targets, with current values
// taken from seed where known.
func DefaultGoals(seed Seed) *Goals {
	g := &Goals{}
	for _, k := range GoalKeys {
		*g.ptr(k) = Goal{Target: k.Definition().DefaultTarget}
	}
	if seed.Followers != 0 {
		g.Followers.Current = seed.Followers
	}
	if seed.Impressions != 0 {
		g.Impressions.Current = seed.Impressions
	}
	g.Revenue.Current = math.Round(seed.Revenue)
	return g
}

func (g *Goals) ptr(k GoalKey) *Goal {
	switch k {
	case GoalFollowers:
		return &g.Followers
	case GoalImpressions:
		return &g.Impressions
	case GoalRevenue:
		return &g.Revenue
	case GoalTweets:
		return &g.Tweets
	}
	return nil
}

// Get returns the goal named k.
func (g *Goals) Get(k GoalKey) (Goal, error) {
	p := g.ptr(k)
	if p == nil {
		return Goal{}, fmt.Errorf("goal %q: %w", k, ErrNotFound)
	}
	return *p, nil
}

// SetCurrent updates a goal's current value. Non-finite values are rejected.
func (g *Goals) SetCurrent(k GoalKey, v float64) error {
	p := g.ptr(k)
	if p == nil {
		return fmt.Errorf("goal %q: %w", k, ErrNotFound)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("goal %s current %v: %w", k, v, ErrInvalidGoalValue)
	}
	p.Current = v
	return nil
}

// SetTarget updates a goal's target. The target must be finite and positive.
func (g *Goals) SetTarget(k GoalKey, v float64) error {
	p := g.ptr(k)
	if p == nil {
		return fmt.Errorf("goal %q: %w", k, ErrNotFound)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("goal %s target %v: %w", k, v, ErrInvalidGoalValue)
	}
	p.Target = v
	return nil
}

// ParseGoalValue parses user input for a goal setter.
func ParseGoalValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, ErrInvalidGoalValue)
	}
	return v, nil
}

// DisplayValue formats v compactly: 1.2M, 3.4K, or a whole number.
func DisplayValue(v float64) string {
	switch {
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case v >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 1, 64) + "K"
	default:
		r := math.Round(v)
		if r == 0 {
			r = 0 // drop negative zero
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
}
