package model

import "time"

// TimeSlot is a half-open interval [Start, End). For one-time meetings the
// interval is absolute; for recurring meetings DayOfWeek is set and the slot
// represents a weekly interval anchored to a reference week, with DayOfWeek
// authoritative over the weekday implied by Start.
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	DayOfWeek *time.Weekday
}

// NewTimeSlot creates a one-time slot
func NewTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{Start: start, End: end}
}

// NewRecurringSlot creates a weekly recurring slot tagged with a day of week
func NewRecurringSlot(start, end time.Time, day time.Weekday) TimeSlot {
	return TimeSlot{Start: start, End: end, DayOfWeek: &day}
}

// Duration returns the length of the slot
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Weekday returns the explicit day-of-week tag when present, otherwise the
// weekday of Start in UTC
func (s TimeSlot) Weekday() time.Weekday {
	if s.DayOfWeek != nil {
		return *s.DayOfWeek
	}
	return s.Start.UTC().Weekday()
}

// Recurring reports whether the slot carries a day-of-week tag
func (s TimeSlot) Recurring() bool {
	return s.DayOfWeek != nil
}

// Contains reports whether the given interval lies fully within this slot
func (s TimeSlot) Contains(start, end time.Time) bool {
	return !start.Before(s.Start) && !end.After(s.End)
}

// Clone returns a deep copy of the slot
func (s TimeSlot) Clone() TimeSlot {
	c := TimeSlot{Start: s.Start, End: s.End}
	if s.DayOfWeek != nil {
		day := *s.DayOfWeek
		c.DayOfWeek = &day
	}
	return c
}

// CloneSlots returns a deep copy of a slot list
func CloneSlots(slots []TimeSlot) []TimeSlot {
	if slots == nil {
		return nil
	}
	out := make([]TimeSlot, len(slots))
	for i, s := range slots {
		out[i] = s.Clone()
	}
	return out
}
