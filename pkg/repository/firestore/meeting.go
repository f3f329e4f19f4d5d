package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type meetingDocument struct {
	ID                   string      `firestore:"id"`
	Title                string      `firestore:"title"`
	OrganizerName        string      `firestore:"organizer_name"`
	OrganizerEmail       string      `firestore:"organizer_email"`
	MeetingType          string      `firestore:"meeting_type"`
	DateRangeStart       time.Time   `firestore:"date_range_start"`
	DateRangeEnd         time.Time   `firestore:"date_range_end"`
	SelectedDates        []time.Time `firestore:"selected_dates"`
	SlotDuration         int         `firestore:"slot_duration"`
	ExpectedParticipants int         `firestore:"expected_participants"`
	Status               string      `firestore:"status"`
	CreatedAt            time.Time   `firestore:"created_at"`
	UpdatedAt            time.Time   `firestore:"updated_at"`
}

type meetingRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMeetingRepository(client *firestore.Client) *meetingRepository {
	return &meetingRepository{
		client: client,
	}
}

func (r *meetingRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_meetings"
	}
	return "meetings"
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	now := time.Now().UTC()
	created := *meeting
	if created.ID == "" {
		created.ID = types.NewMeetingID()
	}
	if created.Status == "" {
		created.Status = types.MeetingStatusActive
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := toMeetingDocument(&created)
	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create meeting", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *meetingRepository) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	snapshot, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "meeting not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("id", id))
	}

	var doc meetingDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode meeting document", goerr.V("id", id))
	}

	return fromMeetingDocument(&doc)
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var meetings []*model.Meeting
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate meetings")
		}

		var doc meetingDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode meeting document")
		}
		meeting, err := fromMeetingDocument(&doc)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

func (r *meetingRepository) UpdateStatus(ctx context.Context, id types.MeetingID, newStatus types.MeetingStatus) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snapshot, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "meeting not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get meeting")
		}

		current, err := snapshot.DataAt("status")
		if err != nil {
			return goerr.Wrap(err, "failed to read meeting status")
		}
		if current == types.MeetingStatusCompleted.String() {
			return goerr.Wrap(types.ErrAlreadyCompleted, "status transition rejected", goerr.V("id", id))
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "status", Value: newStatus.String()},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		return goerr.Wrap(err, "failed to update meeting status", goerr.V("id", id))
	}
	return nil
}

func toMeetingDocument(m *model.Meeting) *meetingDocument {
	return &meetingDocument{
		ID:                   m.ID.String(),
		Title:                m.Title,
		OrganizerName:        m.OrganizerName,
		OrganizerEmail:       m.OrganizerEmail,
		MeetingType:          m.MeetingType.String(),
		DateRangeStart:       m.DateRangeStart,
		DateRangeEnd:         m.DateRangeEnd,
		SelectedDates:        m.SelectedDates,
		SlotDuration:         m.SlotDuration.Minutes(),
		ExpectedParticipants: m.ExpectedParticipants,
		Status:               m.Status.String(),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func fromMeetingDocument(doc *meetingDocument) (*model.Meeting, error) {
	meetingType, err := types.ParseMeetingType(doc.MeetingType)
	if err != nil {
		return nil, goerr.Wrap(err, "corrupt meeting document", goerr.V("id", doc.ID))
	}
	meetingStatus, err := types.ParseMeetingStatus(doc.Status)
	if err != nil {
		return nil, goerr.Wrap(err, "corrupt meeting document", goerr.V("id", doc.ID))
	}
	slotDuration, err := types.ParseSlotDuration(doc.SlotDuration)
	if err != nil {
		return nil, goerr.Wrap(err, "corrupt meeting document", goerr.V("id", doc.ID))
	}

	return &model.Meeting{
		ID:                   types.MeetingID(doc.ID),
		Title:                doc.Title,
		OrganizerName:        doc.OrganizerName,
		OrganizerEmail:       doc.OrganizerEmail,
		MeetingType:          meetingType,
		DateRangeStart:       doc.DateRangeStart,
		DateRangeEnd:         doc.DateRangeEnd,
		SelectedDates:        doc.SelectedDates,
		SlotDuration:         slotDuration,
		ExpectedParticipants: doc.ExpectedParticipants,
		Status:               meetingStatus,
		CreatedAt:            doc.CreatedAt,
		UpdatedAt:            doc.UpdatedAt,
	}, nil
}
