package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

type participantRepository struct {
	mu sync.RWMutex
	// participants per meeting, keyed by lower-cased email
	participants map[types.MeetingID]map[string]*model.Participant
}

func newParticipantRepository() *participantRepository {
	return &participantRepository{
		participants: make(map[types.MeetingID]map[string]*model.Participant),
	}
}

func (r *participantRepository) Replace(ctx context.Context, meetingID types.MeetingID, participant *model.Participant) (*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byEmail, exists := r.participants[meetingID]
	if !exists {
		byEmail = make(map[string]*model.Participant)
		r.participants[meetingID] = byEmail
	}

	now := time.Now().UTC()
	key := strings.ToLower(participant.Email)
	stored := participant.Clone()
	stored.UpdatedAt = now

	if prev, ok := byEmail[key]; ok {
		// Re-submission: keep the original identity, replace everything else
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = types.NewParticipantID()
		}
		stored.CreatedAt = now
	}

	byEmail[key] = stored
	return stored.Clone(), nil
}

func (r *participantRepository) List(ctx context.Context, meetingID types.MeetingID) ([]*model.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byEmail := r.participants[meetingID]
	participants := make([]*model.Participant, 0, len(byEmail))
	for _, p := range byEmail {
		participants = append(participants, p.Clone())
	}
	sort.Slice(participants, func(i, j int) bool {
		if !participants[i].CreatedAt.Equal(participants[j].CreatedAt) {
			return participants[i].CreatedAt.Before(participants[j].CreatedAt)
		}
		return participants[i].Email < participants[j].Email
	})
	return participants, nil
}
