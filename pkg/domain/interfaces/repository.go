package interfaces

import (
	"context"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Meeting() MeetingRepository
	Participant() ParticipantRepository

	Close() error
}

// MeetingRepository persists meeting polls
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error)
	Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error)
	List(ctx context.Context) ([]*model.Meeting, error)

	// UpdateStatus writes a status transition. Transitioning a COMPLETED
	// meeting is rejected.
	UpdateStatus(ctx context.Context, id types.MeetingID, status types.MeetingStatus) error
}

// ParticipantRepository persists poll responses
type ParticipantRepository interface {
	// Replace stores a participant's response, keyed by email within the
	// meeting. An existing response, including its whole availability set,
	// is replaced atomically; readers never observe a partial set.
	Replace(ctx context.Context, meetingID types.MeetingID, participant *model.Participant) (*model.Participant, error)

	// List returns a consistent snapshot of all participants of a meeting
	List(ctx context.Context, meetingID types.MeetingID) ([]*model.Participant, error)
}
