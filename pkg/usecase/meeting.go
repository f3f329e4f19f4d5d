package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/schedlab/tzquorum/pkg/domain/interfaces"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/service/notify"
	"github.com/schedlab/tzquorum/pkg/service/schedule"
	"github.com/schedlab/tzquorum/pkg/utils/async"
	"github.com/schedlab/tzquorum/pkg/utils/errutil"
	"github.com/schedlab/tzquorum/pkg/utils/logging"
)

// MeetingUseCase handles the poll lifecycle: creation, availability
// submission, completion, and result computation
type MeetingUseCase struct {
	repo     interfaces.Repository
	suggest  *SuggestUseCase
	notifier notify.Notifier
}

func NewMeetingUseCase(repo interfaces.Repository, suggest *SuggestUseCase, notifier notify.Notifier) *MeetingUseCase {
	return &MeetingUseCase{
		repo:     repo,
		suggest:  suggest,
		notifier: notifier,
	}
}

// CreateMeetingInput carries organizer-supplied poll parameters
type CreateMeetingInput struct {
	Title                string
	OrganizerName        string
	OrganizerEmail       string
	MeetingType          types.MeetingType
	DateRangeStart       time.Time
	DateRangeEnd         time.Time
	SelectedDates        []time.Time
	SlotDuration         types.SlotDuration
	ExpectedParticipants int
}

func (uc *MeetingUseCase) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*model.Meeting, error) {
	if input.Title == "" {
		return nil, goerr.Wrap(types.ErrValidation, "meeting title is required")
	}
	if input.OrganizerName == "" || input.OrganizerEmail == "" {
		return nil, goerr.Wrap(types.ErrValidation, "organizer name and email are required")
	}
	if !input.MeetingType.IsValid() {
		return nil, goerr.Wrap(types.ErrValidation, "invalid meeting type", goerr.V("type", input.MeetingType))
	}
	if !input.SlotDuration.IsValid() {
		return nil, goerr.Wrap(types.ErrValidation, "invalid slot duration", goerr.V("duration", input.SlotDuration))
	}
	if input.DateRangeEnd.Before(input.DateRangeStart) {
		return nil, goerr.Wrap(types.ErrValidation, "date range end precedes start",
			goerr.V("start", input.DateRangeStart),
			goerr.V("end", input.DateRangeEnd),
		)
	}
	if input.ExpectedParticipants < 1 {
		return nil, goerr.Wrap(types.ErrValidation, "expected participant count must be positive",
			goerr.V("expected", input.ExpectedParticipants),
		)
	}

	meeting := &model.Meeting{
		Title:                input.Title,
		OrganizerName:        input.OrganizerName,
		OrganizerEmail:       input.OrganizerEmail,
		MeetingType:          input.MeetingType,
		DateRangeStart:       input.DateRangeStart.UTC(),
		DateRangeEnd:         input.DateRangeEnd.UTC(),
		SelectedDates:        input.SelectedDates,
		SlotDuration:         input.SlotDuration,
		ExpectedParticipants: input.ExpectedParticipants,
		Status:               types.MeetingStatusActive,
	}

	created, err := uc.repo.Meeting().Create(ctx, meeting)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create meeting")
	}
	return created, nil
}

func (uc *MeetingUseCase) GetMeeting(ctx context.Context, id types.MeetingID) (*model.Meeting, []*model.Participant, error) {
	meeting, err := uc.repo.Meeting().Get(ctx, id)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get meeting", goerr.V("id", id))
	}
	participants, err := uc.repo.Participant().List(ctx, id)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list participants", goerr.V("id", id))
	}
	return meeting, participants, nil
}

func (uc *MeetingUseCase) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	return uc.repo.Meeting().List(ctx)
}

// SubmitAvailabilityInput carries one participant's poll response
type SubmitAvailabilityInput struct {
	Name         string
	Email        string
	Timezone     string
	Availability []model.TimeSlot
}

// SubmitAvailability stores (or fully replaces) a participant's response.
// When the response count reaches the expected participant count, the
// meeting transitions to COMPLETED exactly once, the result is computed,
// and notification is dispatched without blocking the caller.
func (uc *MeetingUseCase) SubmitAvailability(ctx context.Context, meetingID types.MeetingID, input SubmitAvailabilityInput) (*model.Participant, error) {
	if input.Name == "" || input.Email == "" {
		return nil, goerr.Wrap(types.ErrValidation, "participant name and email are required")
	}
	if len(input.Availability) == 0 {
		return nil, goerr.Wrap(types.ErrValidation, "availability must not be empty")
	}

	meeting, err := uc.repo.Meeting().Get(ctx, meetingID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("id", meetingID))
	}
	if meeting.Completed() {
		return nil, goerr.Wrap(types.ErrAlreadyCompleted, "meeting poll is closed", goerr.V("id", meetingID))
	}

	participant := &model.Participant{
		Name:         input.Name,
		Email:        input.Email,
		Timezone:     input.Timezone,
		Availability: normalizeSlots(input.Availability, meeting.MeetingType),
	}

	stored, err := uc.repo.Participant().Replace(ctx, meetingID, participant)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store availability",
			goerr.V("meetingID", meetingID),
			goerr.V("email", input.Email),
		)
	}

	participants, err := uc.repo.Participant().List(ctx, meetingID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list participants", goerr.V("meetingID", meetingID))
	}

	if len(participants) >= meeting.ExpectedParticipants {
		if err := uc.completeMeeting(ctx, meeting, participants); err != nil {
			return nil, err
		}
	}

	return stored, nil
}

// completeMeeting performs the one-time ACTIVE -> COMPLETED transition and
// its side effects. Notification failure never rolls the transition back.
func (uc *MeetingUseCase) completeMeeting(ctx context.Context, meeting *model.Meeting, participants []*model.Participant) error {
	if err := uc.repo.Meeting().UpdateStatus(ctx, meeting.ID, types.MeetingStatusCompleted); err != nil {
		return goerr.Wrap(err, "failed to complete meeting", goerr.V("id", meeting.ID))
	}

	logging.From(ctx).Info("meeting poll completed",
		"meetingID", meeting.ID,
		"participants", len(participants),
	)

	overlap := schedule.ComputeOverlap(participants, meeting.SlotDuration, meeting.MeetingType)

	var suggestion *model.Suggestion
	if !overlap.HasOverlap {
		suggestion = uc.suggest.Suggest(ctx, meeting, participants)
	}

	if uc.notifier != nil {
		recipients := model.RecipientsOf(participants)
		meetingType := meeting.MeetingType
		async.Dispatch(ctx, func(ctx context.Context) error {
			results := uc.notifier.Notify(ctx, recipients, overlap, suggestion, meetingType)
			for _, result := range results {
				if result.Err != nil {
					_ = errutil.Handle(ctx, result.Err, "failed to notify "+result.Email)
				}
			}
			return nil
		})
	}

	return nil
}

// MeetingResult recomputes the overlap (and, absent any overlap, the
// compromise suggestion) from the current participant snapshot
func (uc *MeetingUseCase) MeetingResult(ctx context.Context, meetingID types.MeetingID) (*model.OverlapResult, *model.Suggestion, error) {
	meeting, participants, err := uc.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, nil, err
	}

	overlap := schedule.ComputeOverlap(participants, meeting.SlotDuration, meeting.MeetingType)
	if overlap.HasOverlap || len(participants) == 0 {
		return overlap, nil, nil
	}

	return overlap, uc.suggest.Suggest(ctx, meeting, participants), nil
}

// normalizeSlots converts submitted slots to UTC and, for recurring polls,
// ensures every slot carries a day-of-week tag
func normalizeSlots(slots []model.TimeSlot, meetingType types.MeetingType) []model.TimeSlot {
	normalized := make([]model.TimeSlot, 0, len(slots))
	for _, s := range slots {
		slot := model.NewTimeSlot(s.Start.UTC(), s.End.UTC())
		if s.DayOfWeek != nil {
			slot = model.NewRecurringSlot(s.Start.UTC(), s.End.UTC(), *s.DayOfWeek)
		} else if meetingType == types.MeetingTypeRecurring {
			slot = model.NewRecurringSlot(s.Start.UTC(), s.End.UTC(), s.Start.UTC().Weekday())
		}
		normalized = append(normalized, slot)
	}
	return normalized
}
