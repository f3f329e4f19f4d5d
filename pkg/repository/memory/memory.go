package memory

import (
	"github.com/schedlab/tzquorum/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and testing
type Memory struct {
	meeting     *meetingRepository
	participant *participantRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		meeting:     newMeetingRepository(),
		participant: newParticipantRepository(),
	}
}

func (m *Memory) Meeting() interfaces.MeetingRepository {
	return m.meeting
}

func (m *Memory) Participant() interfaces.ParticipantRepository {
	return m.participant
}

func (m *Memory) Close() error {
	return nil
}
