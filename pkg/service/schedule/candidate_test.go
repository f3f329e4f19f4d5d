package schedule_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/service/schedule"
)

func TestEnumerateCandidates(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("default window at 60 minutes", func(t *testing.T) {
		slots := schedule.EnumerateCandidates([]time.Time{day}, types.SlotDuration60, schedule.DefaultHourWindow())
		// 08:00 through 20:00 inclusive starts, last start strictly before 21:00
		gt.Array(t, slots).Length(13)
		gt.Value(t, slots[0].Start).Equal(time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC))
		gt.Value(t, slots[len(slots)-1].Start).Equal(time.Date(2026, 9, 7, 20, 0, 0, 0, time.UTC))
	})

	t.Run("finer granularity multiplies the universe", func(t *testing.T) {
		slots := schedule.EnumerateCandidates([]time.Time{day}, types.SlotDuration15, schedule.DefaultHourWindow())
		gt.Array(t, slots).Length(13 * 4)
	})

	t.Run("multiple days", func(t *testing.T) {
		days := []time.Time{day, day.AddDate(0, 0, 1)}
		slots := schedule.EnumerateCandidates(days, types.SlotDuration60, schedule.DefaultHourWindow())
		gt.Array(t, slots).Length(26)
	})

	t.Run("degenerate window yields nothing", func(t *testing.T) {
		slots := schedule.EnumerateCandidates([]time.Time{day}, types.SlotDuration60, schedule.HourWindow{StartHour: 12, EndHour: 12})
		gt.Array(t, slots).Length(0)
	})

	t.Run("invalid duration yields nothing", func(t *testing.T) {
		slots := schedule.EnumerateCandidates([]time.Time{day}, types.SlotDuration(7), schedule.DefaultHourWindow())
		gt.Array(t, slots).Length(0)
	})
}

func TestScoreCandidates(t *testing.T) {
	slot := model.NewTimeSlot(
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
	)
	alice := participant("alice", "UTC", slot)
	bob := participant("bob", "Asia/Singapore") // 18:00 local, no availability here

	scored := schedule.ScoreCandidates([]model.TimeSlot{slot}, []*model.Participant{alice, bob})

	gt.Array(t, scored).Length(1)
	gt.Value(t, scored[0].AvailableCount).Equal(1)
	// 10 for alice's availability, +5 for alice at 10:00 local, +3 for bob at 18:00 local
	gt.Value(t, scored[0].Score).Equal(18)
}

func TestScoreCandidates_ContainmentIsInclusive(t *testing.T) {
	avail := model.NewTimeSlot(
		time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC),
	)
	p := participant("alice", "UTC", avail)

	inside := model.NewTimeSlot(avail.Start, avail.Start.Add(time.Hour))
	flush := model.NewTimeSlot(avail.End.Add(-time.Hour), avail.End)
	spilling := model.NewTimeSlot(avail.End.Add(-30*time.Minute), avail.End.Add(30*time.Minute))

	scored := schedule.ScoreCandidates([]model.TimeSlot{inside, flush, spilling}, []*model.Participant{p})

	gt.Value(t, scored[0].AvailableCount).Equal(1)
	gt.Value(t, scored[1].AvailableCount).Equal(1)
	gt.Value(t, scored[2].AvailableCount).Equal(0)
}

func TestRankCandidates(t *testing.T) {
	at := func(hour int) model.TimeSlot {
		return model.NewTimeSlot(utcAtHour(hour), utcAtHour(hour).Add(time.Hour))
	}

	candidates := []schedule.Candidate{
		{Slot: at(9), AvailableCount: 1, Score: 40},
		{Slot: at(10), AvailableCount: 2, Score: 25},
		{Slot: at(11), AvailableCount: 2, Score: 31},
		{Slot: at(8), AvailableCount: 1, Score: 40},
	}

	ranked := schedule.RankCandidates(candidates)

	// availability count dominates even when a lower-count candidate has the
	// higher blended score
	gt.Value(t, ranked[0].AvailableCount).Equal(2)
	gt.Value(t, ranked[0].Score).Equal(31)
	gt.Value(t, ranked[1].AvailableCount).Equal(2)
	gt.Value(t, ranked[1].Score).Equal(25)
	// full ties fall back to earlier start
	gt.Value(t, ranked[2].Slot.Start).Equal(utcAtHour(8))
	gt.Value(t, ranked[3].Slot.Start).Equal(utcAtHour(9))

	// input order untouched
	gt.Value(t, candidates[0].Slot.Start).Equal(utcAtHour(9))
}

func TestBestByAvailability(t *testing.T) {
	at := func(hour int) model.TimeSlot {
		return model.NewTimeSlot(utcAtHour(hour), utcAtHour(hour).Add(time.Hour))
	}

	t.Run("highest count wins regardless of score", func(t *testing.T) {
		best := schedule.BestByAvailability([]schedule.Candidate{
			{Slot: at(9), AvailableCount: 1, Score: 99},
			{Slot: at(14), AvailableCount: 3, Score: 10},
			{Slot: at(16), AvailableCount: 2, Score: 50},
		})
		gt.Value(t, best.AvailableCount).Equal(3)
		gt.Value(t, best.Slot.Start).Equal(utcAtHour(14))
	})

	t.Run("first of equals wins", func(t *testing.T) {
		best := schedule.BestByAvailability([]schedule.Candidate{
			{Slot: at(9), AvailableCount: 2},
			{Slot: at(14), AvailableCount: 2},
		})
		gt.Value(t, best.Slot.Start).Equal(utcAtHour(9))
	})

	t.Run("empty universe", func(t *testing.T) {
		gt.Value(t, schedule.BestByAvailability(nil)).Nil()
	})
}
