package schedule

import (
	"time"

	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// LocalHour returns the hour of the instant in the given IANA timezone.
// An unrecognized zone never fails the caller; the unzoned (UTC) hour is
// used instead.
func LocalHour(t time.Time, timezone string) int {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return t.UTC().Hour()
	}
	return t.In(loc).Hour()
}

// TierOf classifies an instant into a convenience tier for the given
// timezone. Boundary hours are inclusive on both ends of each range.
func TierOf(t time.Time, timezone string) types.ConvenienceTier {
	return tierOfHour(LocalHour(t, timezone))
}

func tierOfHour(hour int) types.ConvenienceTier {
	switch {
	case hour >= 9 && hour <= 17:
		return types.TierIdeal
	case hour >= 8 && hour <= 20:
		return types.TierGood
	case hour >= 6 && hour <= 22:
		return types.TierWorkable
	default:
		return types.TierDifficult
	}
}

// convenienceBonus weights a candidate by how reasonable its local hour is
// for one participant. Applied to every participant regardless of their
// availability, so slots fair across timezones score higher overall.
func convenienceBonus(hour int) int {
	switch {
	case hour >= 9 && hour <= 17:
		return 5
	case hour >= 8 && hour <= 20:
		return 3
	case hour >= 6 && hour <= 22:
		return 1
	default:
		return 0
	}
}
