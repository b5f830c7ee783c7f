package entry

import (
	"sort"
	"time"

	"github.com/budgetboi/budgetboi/internal/utils"
)

// InstancesInRange expands a single entry into its concrete occurrences
// intersecting [from, to], both inclusive, at day granularity.
//
// One-off entries yield at most one instance. Recurring entries are walked
// forward from StartDate by one week or one month; the walk stops once the
// cursor passes to, or the entry's EndDate when one is set. Instances are
// never generated before the entry's own StartDate.
func (e Entry) InstancesInRange(from, to time.Time) []Instance {
	from, to = utils.Day(from), utils.Day(to)
	start := utils.Day(e.StartDate)
	if start.After(to) {
		return nil
	}

	if e.Recurring == RecurrenceNone {
		if !start.Before(from) && !start.After(to) {
			return []Instance{{Date: start, Amount: e.Amount, EntryID: e.ID, Name: e.Name}}
		}
		return nil
	}

	var endDate *time.Time
	if e.EndDate != nil {
		d := utils.Day(*e.EndDate)
		endDate = &d
	}

	var instances []Instance
	cursor := start
	for !cursor.After(to) {
		if endDate != nil && cursor.After(*endDate) {
			break
		}
		if !cursor.Before(from) && !cursor.Before(start) {
			instances = append(instances, Instance{
				Date:    cursor,
				Amount:  e.Amount,
				EntryID: e.ID,
				Name:    e.Name,
			})
		}
		if e.Recurring == RecurrenceWeekly {
			cursor = cursor.AddDate(0, 0, 7)
		} else {
			cursor = utils.AddMonths(cursor, 1)
		}
	}
	return instances
}

// ExpandAll concatenates the instances of every entry and sorts them by
// date. The sort is stable, so same-date instances keep entry-list order.
func ExpandAll(entries []Entry, from, to time.Time) []Instance {
	var instances []Instance
	for _, e := range entries {
		instances = append(instances, e.InstancesInRange(from, to)...)
	}
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Date.Before(instances[j].Date)
	})
	return instances
}

// InstanceGroup aggregates the instances of one entry for display.
type InstanceGroup struct {
	EntryID string  `json:"entryId"`
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
}

// GroupInstances folds instances by their owning entry, preserving
// first-seen order.
func GroupInstances(instances []Instance) []InstanceGroup {
	index := map[string]int{}
	groups := make([]InstanceGroup, 0)
	for _, inst := range instances {
		i, ok := index[inst.EntryID]
		if !ok {
			i = len(groups)
			index[inst.EntryID] = i
			groups = append(groups, InstanceGroup{EntryID: inst.EntryID, Name: inst.Name})
		}
		groups[i].Count++
		groups[i].Total += inst.Amount
	}
	return groups
}
