package milestone

import "sort"

// PeriodMilestoneMap maps a work period in months to its number of milestones.
type PeriodMilestoneMap map[int]int

var (
	StandardPeriods = PeriodMilestoneMap{12: 1, 24: 2, 36: 3}
	ExtendedPeriods = PeriodMilestoneMap{12: 1, 16: 1, 24: 2, 32: 2, 36: 3}
)

// PeriodMapByName resolves a configured variant name. Unknown names fall back to the
// extended map.
func PeriodMapByName(name string) PeriodMilestoneMap {
	if name == "standard" {
		return StandardPeriods
	}
	return ExtendedPeriods
}

// Count returns the milestone count for months, or 0 if the period is not mapped.
func (m PeriodMilestoneMap) Count(months int) int {
	return m[months]
}

// Months returns the selectable periods in ascending order.
func (m PeriodMilestoneMap) Months() []int {
	months := make([]int, 0, len(m))
	for k := range m {
		months = append(months, k)
	}
	sort.Ints(months)
	return months
}
