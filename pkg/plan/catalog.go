package plan

import "fmt"

// Priority ranks action items when choosing what to work on next.
type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
	PriorityNormal    Priority = "normal"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityCritical, PriorityImportant, PriorityNormal}

// Label returns the upper-case badge text for p.
func (p Priority) Label() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityImportant:
		return "IMPORTANT"
	default:
		return "NORMAL"
	}
}

func (p Priority) valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Phases are the 30-day windows of the plan, in order.
var Phases = []int{1, 2, 3}

// PhaseLabel returns the day range covered by a phase, e.g. "Days 1-30".
func PhaseLabel(phase int) string {
	start := (phase-1)*30 + 1
	return fmt.Sprintf("Days %d-%d", start, start+29)
}

// ActionItem is one unit of the plan. Items are catalog data and never change.
type ActionItem struct {
	ID          string   `yaml:"id" json:"id"`
	Phase       int      `yaml:"phase" json:"phase"`
	Priority    Priority `yaml:"priority" json:"priority"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Emoji       string   `yaml:"emoji,omitempty" json:"emoji,omitempty"`

	// Seed data: the item is marked complete at initialization, dated
	// PreCompletedDate.
	PreCompleted     bool `yaml:"pre_completed,omitempty" json:"preCompleted,omitempty"`
	PreCompletedDate Date `yaml:"pre_completed_date,omitempty" json:"preCompletedDate,omitempty"`
}

// Catalog is an immutable, ordered list of action items.
type Catalog struct {
	items []ActionItem
	index map[string]int
}

// NewCatalog validates items and builds a Catalog preserving their order.
func NewCatalog(items []ActionItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]ActionItem, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, item := range c.items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog item %d: missing id", i)
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("catalog item %s: duplicate id", item.ID)
		}
		if item.Phase < 1 || item.Phase > len(Phases) {
			return nil, fmt.Errorf("catalog item %s: phase %d out of range", item.ID, item.Phase)
		}
		if !item.Priority.valid() {
			return nil, fmt.Errorf("catalog item %s: unknown priority %q", item.ID, item.Priority)
		}
		if item.PreCompleted && item.PreCompletedDate.IsZero() {
			return nil, fmt.Errorf("catalog item %s: pre-completed without a date", item.ID)
		}
		c.index[item.ID] = i
	}
	return c, nil
}

// Items returns every item in definition order.
func (c *Catalog) Items() []ActionItem {
	out := make([]ActionItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ByPhase returns the items of one phase in definition order.
func (c *Catalog) ByPhase(phase int) []ActionItem {
	var out []ActionItem
	for _, item := range c.items {
		if item.Phase == phase {
			out = append(out, item)
		}
	}
	return out
}

// PhaseSize returns the number of items in a phase.
func (c *Catalog) PhaseSize(phase int) int {
	n := 0
	for _, item := range c.items {
		if item.Phase == phase {
			n++
		}
	}
	return n
}

// ByID looks up a single item.
func (c *Catalog) ByID(id string) (ActionItem, error) {
	i, ok := c.index[id]
	if !ok {
		return ActionItem{}, fmt.Errorf("action %q: %w", id, ErrNotFound)
	}
	return c.items[i], nil
}

// Has reports whether id names a catalog item.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}
