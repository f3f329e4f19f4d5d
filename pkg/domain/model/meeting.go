package model

import (
	"time"

	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// Meeting is a poll proposed by an organizer over a date range (or a weekly
// pattern) at a fixed slot granularity
type Meeting struct {
	ID             types.MeetingID
	Title          string
	OrganizerName  string
	OrganizerEmail string
	MeetingType    types.MeetingType
	DateRangeStart time.Time
	DateRangeEnd   time.Time
	// SelectedDates optionally restricts a one-time poll to explicit days
	// instead of every day in the range
	SelectedDates        []time.Time
	SlotDuration         types.SlotDuration
	ExpectedParticipants int
	Status               types.MeetingStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Completed reports whether the meeting reached its terminal status
func (m *Meeting) Completed() bool {
	return m.Status == types.MeetingStatusCompleted
}

// CandidateDays returns the calendar days the poll covers: the explicit
// selected dates when present, otherwise every day in the range inclusive.
// Days are truncated to midnight UTC.
func (m *Meeting) CandidateDays() []time.Time {
	if len(m.SelectedDates) > 0 {
		days := make([]time.Time, 0, len(m.SelectedDates))
		for _, d := range m.SelectedDates {
			days = append(days, truncateToDay(d))
		}
		return days
	}

	var days []time.Time
	for d := truncateToDay(m.DateRangeStart); !d.After(truncateToDay(m.DateRangeEnd)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
