package types

import "github.com/google/uuid"

// MeetingID identifies a meeting poll
type MeetingID string

// NewMeetingID generates a new random meeting ID
func NewMeetingID() MeetingID {
	return MeetingID(uuid.NewString())
}

// String returns the string representation of the meeting ID
func (id MeetingID) String() string {
	return string(id)
}

// ParticipantID identifies a participant within a meeting
type ParticipantID string

// NewParticipantID generates a new random participant ID
func NewParticipantID() ParticipantID {
	return ParticipantID(uuid.NewString())
}

// String returns the string representation of the participant ID
func (id ParticipantID) String() string {
	return string(id)
}
