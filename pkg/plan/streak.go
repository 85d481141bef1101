package plan

import "sort"

// Streak returns the number of consecutive active days ending today or
// yesterday. A most recent activity older than yesterday breaks the streak.
func Streak(dates DateSet, today Date) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]Date, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	if today.DaysSince(sorted[0]) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i-1].DaysSince(sorted[i])
		if gap == 1 {
			streak++
		} else if gap > 1 {
			break
		}
	}
	return streak
}
