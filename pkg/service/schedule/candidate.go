package schedule

import (
	"sort"
	"time"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

const availableWeight = 10

// HourWindow bounds daily candidate generation. Slots start at or after
// StartHour and strictly before EndHour.
type HourWindow struct {
	StartHour int
	EndHour   int
}

// DefaultHourWindow is the 08:00-21:00 generation window used when no
// scheduling policy overrides it
func DefaultHourWindow() HourWindow {
	return HourWindow{StartHour: 8, EndHour: 21}
}

// Candidate is a potential compromise slot with its availability headcount
// and blended fairness score
type Candidate struct {
	Slot           model.TimeSlot
	AvailableCount int
	Score          int
}

// EnumerateCandidates generates every slot of the given duration within the
// hour window for each of the given calendar days. The universe is
// independent of what any participant submitted.
func EnumerateCandidates(days []time.Time, slotDuration types.SlotDuration, window HourWindow) []model.TimeSlot {
	if !slotDuration.IsValid() || window.EndHour <= window.StartHour {
		return nil
	}

	step := slotDuration.Duration()
	var slots []model.TimeSlot
	for _, day := range days {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), window.StartHour, 0, 0, 0, time.UTC)
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), window.EndHour, 0, 0, 0, time.UTC)
		for start := dayStart; start.Before(dayEnd); start = start.Add(step) {
			slots = append(slots, model.NewTimeSlot(start, start.Add(step)))
		}
	}
	return slots
}

// ScoreCandidates computes, for each candidate, how many participants are
// available for it and a blended score rewarding both headcount and
// universal timezone fairness.
func ScoreCandidates(candidates []model.TimeSlot, participants []*model.Participant) []Candidate {
	scored := make([]Candidate, 0, len(candidates))
	for _, slot := range candidates {
		c := Candidate{Slot: slot}
		for _, p := range participants {
			if isAvailable(p, slot) {
				c.AvailableCount++
			}
			c.Score += convenienceBonus(LocalHour(slot.Start, p.Timezone))
		}
		c.Score += availableWeight * c.AvailableCount
		scored = append(scored, c)
	}
	return scored
}

func isAvailable(p *model.Participant, slot model.TimeSlot) bool {
	for _, a := range p.Availability {
		if a.Contains(slot.Start, slot.End) {
			return true
		}
	}
	return false
}

// RankCandidates orders candidates by descending availability count, then
// descending score. The remaining tie-break on start time only makes the
// ordering deterministic; preserve count-before-score, it is intentional
// fairness weighting.
func RankCandidates(candidates []Candidate) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvailableCount != ranked[j].AvailableCount {
			return ranked[i].AvailableCount > ranked[j].AvailableCount
		}
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Slot.Start.Before(ranked[j].Slot.Start)
	})
	return ranked
}

// BestByAvailability picks the single candidate with the highest
// availability count across the whole universe. Used as the deterministic
// fallback when the reasoning collaborator is unavailable.
func BestByAvailability(candidates []Candidate) *Candidate {
	var best *Candidate
	for i := range candidates {
		if best == nil || candidates[i].AvailableCount > best.AvailableCount {
			best = &candidates[i]
		}
	}
	if best == nil {
		return nil
	}
	c := *best
	return &c
}
