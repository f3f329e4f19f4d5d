package types

import "fmt"

// MeetingStatus represents the lifecycle status of a meeting poll
type MeetingStatus string

const (
	// MeetingStatusActive means the poll is still collecting responses
	MeetingStatusActive MeetingStatus = "ACTIVE"
	// MeetingStatusCompleted means all expected participants have responded.
	// COMPLETED is terminal.
	MeetingStatusCompleted MeetingStatus = "COMPLETED"
)

// IsValid checks if the meeting status is valid
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusActive, MeetingStatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the meeting status
func (s MeetingStatus) String() string {
	return string(s)
}

// ParseMeetingStatus parses a string into a MeetingStatus
func ParseMeetingStatus(s string) (MeetingStatus, error) {
	status := MeetingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid meeting status: %s", s)
	}
	return status, nil
}
