package types

import "fmt"

// MeetingType represents the temporal model of a meeting
type MeetingType string

const (
	// MeetingTypeOneTime is a meeting on a fixed calendar date range
	MeetingTypeOneTime MeetingType = "ONE_TIME"
	// MeetingTypeRecurring is a weekly recurring meeting
	MeetingTypeRecurring MeetingType = "RECURRING"
)

// AllMeetingTypes returns all valid meeting types
func AllMeetingTypes() []MeetingType {
	return []MeetingType{
		MeetingTypeOneTime,
		MeetingTypeRecurring,
	}
}

// IsValid checks if the meeting type is valid
func (t MeetingType) IsValid() bool {
	switch t {
	case MeetingTypeOneTime, MeetingTypeRecurring:
		return true
	default:
		return false
	}
}

// String returns the string representation of the meeting type
func (t MeetingType) String() string {
	return string(t)
}

// ParseMeetingType parses a string into a MeetingType
func ParseMeetingType(s string) (MeetingType, error) {
	t := MeetingType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid meeting type: %s", s)
	}
	return t, nil
}
