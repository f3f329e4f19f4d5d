package schedule_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/service/schedule"
)

func utcAtHour(hour int) time.Time {
	return time.Date(2026, 9, 7, hour, 0, 0, 0, time.UTC)
}

func TestLocalHour(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		timezone string
		want     int
	}{
		{
			name:     "UTC passthrough",
			instant:  utcAtHour(13),
			timezone: "UTC",
			want:     13,
		},
		{
			name:     "fixed offset east",
			instant:  utcAtHour(13),
			timezone: "Asia/Singapore",
			want:     21,
		},
		{
			name:     "crosses midnight",
			instant:  utcAtHour(20),
			timezone: "Asia/Tokyo",
			want:     5,
		},
		{
			name:     "unrecognized zone falls back to UTC hour",
			instant:  utcAtHour(13),
			timezone: "Not/AZone",
			want:     13,
		},
		{
			name:     "empty zone is UTC",
			instant:  utcAtHour(13),
			timezone: "",
			want:     13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, schedule.LocalHour(tt.instant, tt.timezone)).Equal(tt.want)
		})
	}
}

func TestTierOf(t *testing.T) {
	tests := []struct {
		hour int
		want types.ConvenienceTier
	}{
		{hour: 13, want: types.TierIdeal},
		{hour: 9, want: types.TierIdeal},
		{hour: 17, want: types.TierIdeal},
		{hour: 8, want: types.TierGood},
		{hour: 18, want: types.TierGood},
		{hour: 20, want: types.TierGood},
		{hour: 6, want: types.TierWorkable},
		{hour: 21, want: types.TierWorkable},
		{hour: 22, want: types.TierWorkable},
		{hour: 5, want: types.TierDifficult},
		{hour: 23, want: types.TierDifficult},
		{hour: 0, want: types.TierDifficult},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			gt.Value(t, schedule.TierOf(utcAtHour(tt.hour), "UTC")).Equal(tt.want)
		})
	}
}

func TestTierOf_LocalizedBoundary(t *testing.T) {
	// 01:00 UTC is 09:00 in Singapore: core hours there, night-time in UTC
	instant := utcAtHour(1)
	gt.Value(t, schedule.TierOf(instant, "Asia/Singapore")).Equal(types.TierIdeal)
	gt.Value(t, schedule.TierOf(instant, "UTC")).Equal(types.TierDifficult)
}
