package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

type meetingRepository struct {
	mu       sync.RWMutex
	meetings map[types.MeetingID]*model.Meeting
}

func newMeetingRepository() *meetingRepository {
	return &meetingRepository{
		meetings: make(map[types.MeetingID]*model.Meeting),
	}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneMeeting(meeting)
	if created.ID == "" {
		created.ID = types.NewMeetingID()
	}
	if created.Status == "" {
		created.Status = types.MeetingStatusActive
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.meetings[created.ID] = created
	return cloneMeeting(created), nil
}

func (r *meetingRepository) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, exists := r.meetings[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "meeting not found", goerr.V("id", id))
	}

	return cloneMeeting(meeting), nil
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meetings := make([]*model.Meeting, 0, len(r.meetings))
	for _, meeting := range r.meetings {
		meetings = append(meetings, cloneMeeting(meeting))
	}
	sort.Slice(meetings, func(i, j int) bool {
		if !meetings[i].CreatedAt.Equal(meetings[j].CreatedAt) {
			return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
		}
		return meetings[i].ID < meetings[j].ID
	})
	return meetings, nil
}

func (r *meetingRepository) UpdateStatus(ctx context.Context, id types.MeetingID, status types.MeetingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	meeting, exists := r.meetings[id]
	if !exists {
		return goerr.Wrap(types.ErrNotFound, "meeting not found", goerr.V("id", id))
	}
	if meeting.Status == types.MeetingStatusCompleted {
		return goerr.Wrap(types.ErrAlreadyCompleted, "status transition rejected", goerr.V("id", id))
	}

	meeting.Status = status
	meeting.UpdatedAt = time.Now().UTC()
	return nil
}

// cloneMeeting returns a copy to prevent external modification
func cloneMeeting(m *model.Meeting) *model.Meeting {
	c := *m
	if m.SelectedDates != nil {
		c.SelectedDates = make([]time.Time, len(m.SelectedDates))
		copy(c.SelectedDates, m.SelectedDates)
	}
	return &c
}
