package schedule

import (
	"sort"
	"time"

	"github.com/schedlab/tzquorum/pkg/domain/model"
)

// FormatInZone renders a slot as human-readable local date and time labels.
// Recurring slots get an "Every <Weekday>" date label from their day-of-week
// tag. A malformed timezone degrades to UTC instead of failing.
func FormatInZone(slot model.TimeSlot, timezone string, recurring bool) model.LocalizedSlot {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	start := slot.Start.In(loc)
	end := slot.End.In(loc)

	dateLabel := start.Format("Monday, January 2")
	if recurring {
		dateLabel = "Every " + slot.Weekday().String()
	}

	return model.LocalizedSlot{
		DateLabel:  dateLabel,
		StartLabel: start.Format("3:04 PM"),
		EndLabel:   end.Format("3:04 PM"),
	}
}

// TopSlotsByDuration returns up to limit slots ordered by descending
// duration, ties broken by earlier start
func TopSlotsByDuration(slots []model.TimeSlot, limit int) []model.TimeSlot {
	sorted := model.CloneSlots(slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Duration(), sorted[j].Duration()
		if di != dj {
			return di > dj
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
