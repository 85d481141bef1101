package plan

// Thresholds configures the count-based milestones.
type Thresholds struct {
	// FastStart is the number of phase 1 items needed for "fast start".
	FastStart int `yaml:"fast_start"`
	// Momentum is the number of phase 2 items needed for "momentum".
	Momentum int `yaml:"momentum"`
}

// DefaultThresholds matches the reference plan.
func DefaultThresholds() Thresholds {
	return Thresholds{FastStart: 3, Momentum: 3}
}

// Snapshot is the read-only input to milestone predicates.
type Snapshot struct {
	Catalog    *Catalog
	State      *State
	Goals      *Goals
	Thresholds Thresholds
}

// Completed counts completed catalog items, optionally within one phase
// (phase 0 means every phase).
func (s Snapshot) Completed(phase int) int {
	n := 0
	for _, item := range s.Catalog.items {
		if phase != 0 && item.Phase != phase {
			continue
		}
		if _, ok := s.State.Actions[item.ID]; ok {
			n++
		}
	}
	return n
}

// Milestone is one achievement predicate with its display metadata.
type Milestone struct {
	ID          string
	Icon        string
	Title       string
	Description string
	Achieved    func(Snapshot) bool
}

// MilestoneStatus is an evaluated milestone.
type MilestoneStatus struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Achieved    bool   `json:"achieved"`
}

// Milestones is the ordered table evaluated on every render.
var Milestones = []Milestone{
	{
		ID: "first-step", Icon: "🚀", Title: "First step",
		Description: "Complete your first action",
		Achieved:    func(s Snapshot) bool { return s.Completed(0) >= 1 },
	},
	{
		ID: "fast-start", Icon: "🔥", Title: "Fast start",
		Description: "Complete early actions from phase 1",
		Achieved: func(s Snapshot) bool {
			return s.Completed(1) >= s.Thresholds.FastStart
		},
	},
	{
		ID: "first-revenue", Icon: "💰", Title: "First revenue",
		Description: "Earn your first dollar",
		Achieved:    func(s Snapshot) bool { return s.Goals.Revenue.Current > 0 },
	},
	{
		ID: "phase-one-complete", Icon: "⚡", Title: "Phase 1 done",
		Description: "Finish the days 1-30 plan",
		Achieved: func(s Snapshot) bool {
			size := s.Catalog.PhaseSize(1)
			return size > 0 && s.Completed(1) == size
		},
	},
	{
		ID: "momentum", Icon: "📈", Title: "Momentum",
		Description: "Complete actions from phase 2",
		Achieved: func(s Snapshot) bool {
			return s.Completed(2) >= s.Thresholds.Momentum
		},
	},
	{
		ID: "master", Icon: "🏆", Title: "Master",
		Description: "Complete every action in the plan",
		Achieved: func(s Snapshot) bool {
			return s.Catalog.Len() > 0 && s.Completed(0) == s.Catalog.Len()
		},
	},
}

// EvaluateMilestones evaluates table against s in order.
func EvaluateMilestones(table []Milestone, s Snapshot) []MilestoneStatus {
	out := make([]MilestoneStatus, 0, len(table))
	for _, m := range table {
		out = append(out, MilestoneStatus{
			ID:          m.ID,
			Icon:        m.Icon,
			Title:       m.Title,
			Description: m.Description,
			Achieved:    m.Achieved(s),
		})
	}
	return out
}
