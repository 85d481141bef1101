package plan

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultHorizonDays is the length of the plan.
const DefaultHorizonDays = 90

// Repository persists the plan aggregate. Load methods return ErrNoState
// (possibly wrapped) when nothing has been saved yet.
type Repository interface {
	LoadPlan() (*State, error)
	SavePlan(*State) error
	LoadGoals() (*Goals, error)
	SaveGoals(*Goals) error
}

// Options configures a Tracker.
type Options struct {
	HorizonDays int
	// Thresholds defaults to DefaultThresholds when left zero.
	Thresholds Thresholds
	// Milestones overrides the default milestone table when non-nil.
	Milestones []Milestone
	Logger     zerolog.Logger
}

// Tracker owns the plan state and goals. Every method holds the tracker's
// lock for its whole read-modify-persist sequence, so a mutation is fully
// persisted before any derived view reads it.
type Tracker struct {
	mu         sync.Mutex
	repo       Repository
	catalog    *Catalog
	horizon    int
	thresholds Thresholds
	milestones []Milestone
	logger     zerolog.Logger

	state *State
	goals *Goals
}

// NewTracker creates a Tracker. Initialize must be called before any query.
func NewTracker(repo Repository, catalog *Catalog, opts Options) *Tracker {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = DefaultHorizonDays
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	if opts.Milestones == nil {
		opts.Milestones = Milestones
	}
	return &Tracker{
		repo:       repo,
		catalog:    catalog,
		horizon:    opts.HorizonDays,
		thresholds: opts.Thresholds,
		milestones: opts.Milestones,
		logger:     opts.Logger.With().Str("component", "tracker").Logger(),
	}
}

// Catalog returns the tracker's catalog.
func (t *Tracker) Catalog() *Catalog {
	return t.catalog
}

// HorizonDays returns the configured plan length.
func (t *Tracker) HorizonDays() int {
	return t.horizon
}

// Initialize loads the plan, creating it on first run. A new plan starts
// today with every pre-completed catalog item recorded at its configured
// date; those dates are not streak activity. Missing goals are created from
// seed. Existing records are returned unchanged.
func (t *Tracker) Initialize(today Date, seed Seed) (*State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != nil {
		return t.state.Clone(), nil
	}

	state, err := t.repo.LoadPlan()
	switch {
	case errors.Is(err, ErrNoState):
		state = NewState(today)
		for _, item := range t.catalog.items {
			if item.PreCompleted {
				state.Actions[item.ID] = Completion{Date: item.PreCompletedDate}
			}
		}
		if err := t.repo.SavePlan(state); err != nil {
			return nil, fmt.Errorf("saving new plan: %w", err)
		}
		t.logger.Info().Str("start_date", today.String()).Int("pre_completed", len(state.Actions)).Msg("plan created")
	case err != nil:
		return nil, fmt.Errorf("loading plan: %w", err)
	}

	goals, err := t.repo.LoadGoals()
	switch {
	case errors.Is(err, ErrNoState):
		goals = DefaultGoals(seed)
		if err := t.repo.SaveGoals(goals); err != nil {
			return nil, fmt.Errorf("saving new goals: %w", err)
		}
		t.logger.Info().Msg("goals created")
	case err != nil:
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	t.state = state
	t.goals = goals
	return state.Clone(), nil
}

// Reload re-reads the aggregate from the repository, picking up edits made
// by another process.
func (t *Tracker) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == nil {
		return ErrUninitialized
	}
	state, err := t.repo.LoadPlan()
	if err != nil {
		return fmt.Errorf("reloading plan: %w", err)
	}
	goals, err := t.repo.LoadGoals()
	if err != nil {
		return fmt.Errorf("reloading goals: %w", err)
	}
	t.state = state
	t.goals = goals
	return nil
}

func (t *Tracker) ready() error {
	if t.state == nil || t.goals == nil {
		return ErrUninitialized
	}
	return nil
}

// State returns a copy of the plan state.
func (t *Tracker) State() (*State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return nil, err
	}
	return t.state.Clone(), nil
}

// IsCompleted reports whether the action id is completed.
func (t *Tracker) IsCompleted(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return false, err
	}
	if !t.catalog.Has(id) {
		return false, fmt.Errorf("action %q: %w", id, ErrNotFound)
	}
	_, ok := t.state.Actions[id]
	return ok, nil
}

// Toggle flips the completion of id and persists the plan. Completing an
// item records today as an active day; un-completing removes the item's
// entry but never retracts active days. It returns the new completion
// state. On a failed write the tracker keeps its previous state.
func (t *Tracker) Toggle(id string, today Date) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return false, err
	}
	if !t.catalog.Has(id) {
		return false, fmt.Errorf("action %q: %w", id, ErrNotFound)
	}

	next := t.state.Clone()
	_, completed := next.Actions[id]
	if completed {
		delete(next.Actions, id)
	} else {
		next.Actions[id] = Completion{Date: today}
		next.StreakDates.Add(today)
	}

	if err := t.repo.SavePlan(next); err != nil {
		t.logger.Error().Err(err).Str("action", id).Msg("toggle not saved")
		return completed, fmt.Errorf("saving plan: %w", err)
	}
	t.state = next
	t.logger.Info().Str("action", id).Bool("completed", !completed).Str("date", today.String()).Msg("action toggled")
	return !completed, nil
}

// CompletedCount returns the number of completed catalog items.
func (t *Tracker) CompletedCount() (int, error) {
	return t.CompletedInPhase(0)
}

// CompletedInPhase returns the number of completed items in phase, or in
// every phase when phase is 0.
func (t *Tracker) CompletedInPhase(phase int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return 0, err
	}
	return t.snapshot().Completed(phase), nil
}

// AddNote appends text to the plan notes under today's heading.
func (t *Tracker) AddNote(text string, today Date) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return err
	}
	next := t.state.Clone()
	next.Notes = AppendNote(next.Notes, today, text)
	if err := t.repo.SavePlan(next); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	t.state = next
	return nil
}

// Goals returns a copy of the goals.
func (t *Tracker) Goals() (Goals, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return Goals{}, err
	}
	return *t.goals, nil
}

// SetGoalCurrent updates and persists a goal's current value.
func (t *Tracker) SetGoalCurrent(k GoalKey, v float64) error {
	return t.updateGoals(k, v, (*Goals).SetCurrent, "current")
}

// SetGoalTarget updates and persists a goal's target.
func (t *Tracker) SetGoalTarget(k GoalKey, v float64) error {
	return t.updateGoals(k, v, (*Goals).SetTarget, "target")
}

func (t *Tracker) updateGoals(k GoalKey, v float64, set func(*Goals, GoalKey, float64) error, field string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return err
	}
	next := *t.goals
	if err := set(&next, k, v); err != nil {
		return err
	}
	if err := t.repo.SaveGoals(&next); err != nil {
		t.logger.Error().Err(err).Str("goal", string(k)).Msg("goal not saved")
		return fmt.Errorf("saving goals: %w", err)
	}
	*t.goals = next
	t.logger.Info().Str("goal", string(k)).Str("field", field).Float64("value", v).Msg("goal updated")
	return nil
}

// Streak returns the current streak as of today.
func (t *Tracker) Streak(today Date) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return 0, err
	}
	return Streak(t.state.StreakDates, today), nil
}

// DaysElapsed returns whole days since the plan started, never negative.
func (t *Tracker) DaysElapsed(today Date) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return 0, err
	}
	return t.daysElapsed(today), nil
}

// DaysRemaining returns the days left in the plan horizon, never negative.
func (t *Tracker) DaysRemaining(today Date) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return 0, err
	}
	return t.daysRemaining(today), nil
}

func (t *Tracker) daysElapsed(today Date) int {
	n := today.DaysSince(t.state.StartDate)
	if n < 0 {
		return 0
	}
	return n
}

func (t *Tracker) daysRemaining(today Date) int {
	n := t.horizon - t.daysElapsed(today)
	if n < 0 {
		return 0
	}
	return n
}

// NextAction returns the first uncompleted item by priority tier, then
// catalog order. It returns nil when the plan is complete.
func (t *Tracker) NextAction() (*ActionItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return nil, err
	}
	return nextAction(t.catalog, t.state), nil
}

func nextAction(c *Catalog, s *State) *ActionItem {
	for _, prio := range Priorities {
		for _, item := range c.items {
			if item.Priority != prio {
				continue
			}
			if _, done := s.Actions[item.ID]; !done {
				found := item
				return &found
			}
		}
	}
	return nil
}

// PhaseProgress is the completion of one phase.
type PhaseProgress struct {
	Phase     int     `json:"phase"`
	Label     string  `json:"label"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Ratio     float64 `json:"ratio"`
}

// GoalProgress is a goal ready for display.
type GoalProgress struct {
	Key            GoalKey `json:"key"`
	Label          string  `json:"label"`
	Icon           string  `json:"icon"`
	BarColor       string  `json:"barColor"`
	Current        float64 `json:"current"`
	Target         float64 `json:"target"`
	Ratio          float64 `json:"ratio"`
	CurrentDisplay string  `json:"currentDisplay"`
	TargetDisplay  string  `json:"targetDisplay"`
}

// Dashboard is every derived view of the plan, computed from one consistent
// read of the aggregate.
type Dashboard struct {
	Today         Date              `json:"today"`
	StartDate     Date              `json:"startDate"`
	HorizonDays   int               `json:"horizonDays"`
	DaysElapsed   int               `json:"daysElapsed"`
	DaysRemaining int               `json:"daysRemaining"`
	Completed     int               `json:"completed"`
	Total         int               `json:"total"`
	Percent       int               `json:"percent"`
	Streak        int               `json:"streak"`
	Next          *ActionItem       `json:"next"`
	Phases        []PhaseProgress   `json:"phases"`
	Goals         []GoalProgress    `json:"goals"`
	Milestones    []MilestoneStatus `json:"milestones"`
	Notes         string            `json:"notes,omitempty"`
}

// Dashboard computes every derived view as of today.
func (t *Tracker) Dashboard(today Date) (*Dashboard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ready(); err != nil {
		return nil, err
	}

	snap := t.snapshot()
	d := &Dashboard{
		Today:         today,
		StartDate:     t.state.StartDate,
		HorizonDays:   t.horizon,
		DaysElapsed:   t.daysElapsed(today),
		DaysRemaining: t.daysRemaining(today),
		Completed:     snap.Completed(0),
		Total:         t.catalog.Len(),
		Streak:        Streak(t.state.StreakDates, today),
		Next:          nextAction(t.catalog, t.state),
		Milestones:    EvaluateMilestones(t.milestones, snap),
		Notes:         t.state.Notes,
	}
	if d.Total > 0 {
		d.Percent = int(math.Round(float64(d.Completed) / float64(d.Total) * 100))
	}

	for _, phase := range Phases {
		total := t.catalog.PhaseSize(phase)
		done := snap.Completed(phase)
		p := PhaseProgress{Phase: phase, Label: PhaseLabel(phase), Completed: done, Total: total}
		if total > 0 {
			p.Ratio = float64(done) / float64(total)
		}
		d.Phases = append(d.Phases, p)
	}

	for _, k := range GoalKeys {
		g, _ := t.goals.Get(k)
		def := k.Definition()
		d.Goals = append(d.Goals, GoalProgress{
			Key:            k,
			Label:          def.Label,
			Icon:           def.Icon,
			BarColor:       def.BarColor,
			Current:        g.Current,
			Target:         g.Target,
			Ratio:          g.ProgressRatio(),
			CurrentDisplay: DisplayValue(g.Current),
			TargetDisplay:  DisplayValue(g.Target),
		})
	}
	return d, nil
}

func (t *Tracker) snapshot() Snapshot {
	return Snapshot{
		Catalog:    t.catalog,
		State:      t.state,
		Goals:      t.goals,
		Thresholds: t.thresholds,
	}
}
