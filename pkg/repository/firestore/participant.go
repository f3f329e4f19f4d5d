package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type slotDocument struct {
	Start     time.Time `firestore:"start"`
	End       time.Time `firestore:"end"`
	DayOfWeek *int      `firestore:"day_of_week"`
}

type participantDocument struct {
	ID           string         `firestore:"id"`
	Name         string         `firestore:"name"`
	Email        string         `firestore:"email"`
	Timezone     string         `firestore:"timezone"`
	Availability []slotDocument `firestore:"availability"`
	CreatedAt    time.Time      `firestore:"created_at"`
	UpdatedAt    time.Time      `firestore:"updated_at"`
}

type participantRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newParticipantRepository(client *firestore.Client) *participantRepository {
	return &participantRepository{
		client: client,
	}
}

func (r *participantRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_meetings"
	}
	return "meetings"
}

func (r *participantRepository) participants(meetingID types.MeetingID) *firestore.CollectionRef {
	return r.client.Collection(r.collection()).Doc(meetingID.String()).Collection("participants")
}

// Replace writes the whole response document keyed by email. The read and
// the set run in one transaction so concurrent resubmissions cannot race on
// the preserved ID and CreatedAt.
func (r *participantRepository) Replace(ctx context.Context, meetingID types.MeetingID, participant *model.Participant) (*model.Participant, error) {
	docID := strings.ToLower(participant.Email)
	docRef := r.participants(meetingID).Doc(docID)

	now := time.Now().UTC()
	stored := participant.Clone()
	stored.UpdatedAt = now

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snapshot, err := tx.Get(docRef)
		switch {
		case err == nil:
			var prev participantDocument
			if err := snapshot.DataTo(&prev); err != nil {
				return goerr.Wrap(err, "failed to decode participant document", goerr.V("email", participant.Email))
			}
			stored.ID = types.ParticipantID(prev.ID)
			stored.CreatedAt = prev.CreatedAt
		case status.Code(err) == codes.NotFound:
			if stored.ID == "" {
				stored.ID = types.NewParticipantID()
			}
			stored.CreatedAt = now
		default:
			return goerr.Wrap(err, "failed to get participant", goerr.V("email", participant.Email))
		}

		return tx.Set(docRef, toParticipantDocument(stored))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to replace participant",
			goerr.V("meetingID", meetingID),
			goerr.V("email", participant.Email),
		)
	}

	return stored, nil
}

func (r *participantRepository) List(ctx context.Context, meetingID types.MeetingID) ([]*model.Participant, error) {
	iter := r.participants(meetingID).Documents(ctx)
	defer iter.Stop()

	var participants []*model.Participant
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate participants", goerr.V("meetingID", meetingID))
		}

		var doc participantDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode participant document")
		}
		participants = append(participants, fromParticipantDocument(&doc))
	}
	return participants, nil
}

func toParticipantDocument(p *model.Participant) *participantDocument {
	slots := make([]slotDocument, 0, len(p.Availability))
	for _, s := range p.Availability {
		doc := slotDocument{Start: s.Start, End: s.End}
		if s.DayOfWeek != nil {
			day := int(*s.DayOfWeek)
			doc.DayOfWeek = &day
		}
		slots = append(slots, doc)
	}

	return &participantDocument{
		ID:           p.ID.String(),
		Name:         p.Name,
		Email:        p.Email,
		Timezone:     p.Timezone,
		Availability: slots,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func fromParticipantDocument(doc *participantDocument) *model.Participant {
	slots := make([]model.TimeSlot, 0, len(doc.Availability))
	for _, s := range doc.Availability {
		slot := model.NewTimeSlot(s.Start, s.End)
		if s.DayOfWeek != nil {
			slot = model.NewRecurringSlot(s.Start, s.End, time.Weekday(*s.DayOfWeek))
		}
		slots = append(slots, slot)
	}

	return &model.Participant{
		ID:           types.ParticipantID(doc.ID),
		Name:         doc.Name,
		Email:        doc.Email,
		Timezone:     doc.Timezone,
		Availability: slots,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
