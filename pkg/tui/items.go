package tui

import (
	"fmt"

	"github.com/stefanpenner/ninety/pkg/plan"
)

// ListItem is one row of the checklist: a phase header or an action item.
type ListItem struct {
	ID              string
	Name            string
	Item            *plan.ActionItem
	Phase           int
	Completed       bool
	IsSectionHeader bool

	// set on headers only
	PhaseProgress plan.PhaseProgress
}

// BuildListItems flattens the catalog into phase sections, in catalog order.
func BuildListItems(c *plan.Catalog, state *plan.State, phases []plan.PhaseProgress) []ListItem {
	progress := make(map[int]plan.PhaseProgress, len(phases))
	for _, p := range phases {
		progress[p.Phase] = p
	}

	var result []ListItem
	for _, phase := range plan.Phases {
		items := c.ByPhase(phase)
		if len(items) == 0 {
			continue
		}
		result = append(result, ListItem{
			ID:              fmt.Sprintf("phase-%d", phase),
			Name:            fmt.Sprintf("PHASE %d · %s", phase, plan.PhaseLabel(phase)),
			Phase:           phase,
			IsSectionHeader: true,
			PhaseProgress:   progress[phase],
		})
		for i := range items {
			item := items[i]
			_, done := state.Actions[item.ID]
			result = append(result, ListItem{
				ID:        item.ID,
				Name:      displayName(item),
				Item:      &item,
				Phase:     phase,
				Completed: done,
			})
		}
	}
	return result
}

func displayName(item plan.ActionItem) string {
	if item.Emoji != "" {
		return item.Emoji + " " + item.Title
	}
	return item.Title
}
