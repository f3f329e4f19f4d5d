package schedule

import (
	"sort"
	"time"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// referenceWeek anchors recurring slots to a canonical week so that results
// do not depend on the calendar dates participants happened to submit.
// 2017-01-01 is a Sunday, so weekday N lands on January 1+N.
var referenceWeek = time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)

// recurringKey identifies a recurring slot independent of its absolute date
type recurringKey struct {
	day    time.Weekday
	hour   int
	minute int
}

func keyOf(slot model.TimeSlot) recurringKey {
	start := slot.Start.UTC()
	return recurringKey{
		day:    slot.Weekday(),
		hour:   start.Hour(),
		minute: start.Minute(),
	}
}

// ComputeOverlap intersects all participants' availability and returns the
// merged common windows.
//
// Submitted slots are pre-aligned to the meeting's duration grid by the poll
// form, so two slots overlap exactly when they share a start instant (or, in
// recurring mode, a weekday and UTC time of day). Matching on the start key
// keeps the computation linear in the total slot count; do not replace it
// with interval intersection without also changing the input contract.
func ComputeOverlap(participants []*model.Participant, slotDuration types.SlotDuration, mode types.MeetingType) *model.OverlapResult {
	if len(participants) == 0 {
		return &model.OverlapResult{HasOverlap: false, OverlappingSlots: []model.TimeSlot{}}
	}

	if len(participants) == 1 {
		slots := model.CloneSlots(participants[0].Availability)
		if slots == nil {
			slots = []model.TimeSlot{}
		}
		return &model.OverlapResult{HasOverlap: true, OverlappingSlots: slots}
	}

	var slots []model.TimeSlot
	if mode == types.MeetingTypeRecurring {
		slots = intersectRecurring(participants, slotDuration)
	} else {
		slots = intersectOneTime(participants, slotDuration)
	}

	sortSlots(slots)
	merged := MergeAdjacent(slots)

	return &model.OverlapResult{
		HasOverlap:       len(merged) > 0,
		OverlappingSlots: merged,
	}
}

func intersectOneTime(participants []*model.Participant, slotDuration types.SlotDuration) []model.TimeSlot {
	counts := make(map[int64]int)
	for _, p := range participants {
		seen := make(map[int64]bool, len(p.Availability))
		for _, slot := range p.Availability {
			key := slot.Start.UTC().Unix()
			if seen[key] {
				continue
			}
			seen[key] = true
			counts[key]++
		}
	}

	var slots []model.TimeSlot
	for key, count := range counts {
		if count != len(participants) {
			continue
		}
		start := time.Unix(key, 0).UTC()
		slots = append(slots, model.NewTimeSlot(start, start.Add(slotDuration.Duration())))
	}
	return slots
}

func intersectRecurring(participants []*model.Participant, slotDuration types.SlotDuration) []model.TimeSlot {
	counts := make(map[recurringKey]int)
	for _, p := range participants {
		seen := make(map[recurringKey]bool, len(p.Availability))
		for _, slot := range p.Availability {
			key := keyOf(slot)
			if seen[key] {
				continue
			}
			seen[key] = true
			counts[key]++
		}
	}

	var slots []model.TimeSlot
	for key, count := range counts {
		if count != len(participants) {
			continue
		}
		start := referenceWeek.AddDate(0, 0, int(key.day)).
			Add(time.Duration(key.hour)*time.Hour + time.Duration(key.minute)*time.Minute)
		slots = append(slots, model.NewRecurringSlot(start, start.Add(slotDuration.Duration()), key.day))
	}
	return slots
}

func sortSlots(slots []model.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Weekday() != slots[j].Weekday() && slots[i].Recurring() {
			return slots[i].Weekday() < slots[j].Weekday()
		}
		return slots[i].Start.Before(slots[j].Start)
	})
}

// MergeAdjacent collapses consecutive atomic slots into contiguous windows.
// Input must be sorted by start time. Two slots merge when one ends exactly
// where the next begins; recurring slots additionally require the same day
// of week, so windows never span a day boundary. Merging is idempotent.
func MergeAdjacent(slots []model.TimeSlot) []model.TimeSlot {
	if len(slots) == 0 {
		return []model.TimeSlot{}
	}

	merged := []model.TimeSlot{slots[0].Clone()}
	for _, slot := range slots[1:] {
		last := &merged[len(merged)-1]
		sameDay := !slot.Recurring() || slot.Weekday() == last.Weekday()
		if sameDay && slot.Start.Equal(last.End) {
			last.End = slot.End
			continue
		}
		merged = append(merged, slot.Clone())
	}
	return merged
}
