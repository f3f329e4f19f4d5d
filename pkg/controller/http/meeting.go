package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/usecase"
	"github.com/schedlab/tzquorum/pkg/utils/errutil"
)

type slotDTO struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	DayOfWeek *int      `json:"dayOfWeek,omitempty"`
}

type createMeetingRequest struct {
	Title                string      `json:"title"`
	OrganizerName        string      `json:"organizerName"`
	OrganizerEmail       string      `json:"organizerEmail"`
	MeetingType          string      `json:"meetingType"`
	DateRangeStart       time.Time   `json:"dateRangeStart"`
	DateRangeEnd         time.Time   `json:"dateRangeEnd"`
	SelectedDates        []time.Time `json:"selectedDates,omitempty"`
	SlotDuration         int         `json:"slotDuration"`
	ExpectedParticipants int         `json:"expectedParticipants"`
}

type meetingResponse struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	OrganizerName        string      `json:"organizerName"`
	MeetingType          string      `json:"meetingType"`
	DateRangeStart       time.Time   `json:"dateRangeStart"`
	DateRangeEnd         time.Time   `json:"dateRangeEnd"`
	SelectedDates        []time.Time `json:"selectedDates,omitempty"`
	SlotDuration         int         `json:"slotDuration"`
	ExpectedParticipants int         `json:"expectedParticipants"`
	Status               string      `json:"status"`
	Participants         []string    `json:"participants,omitempty"`
}

type submitAvailabilityRequest struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Timezone     string    `json:"timezone"`
	Availability []slotDTO `json:"availability"`
}

type resultResponse struct {
	HasOverlap       bool           `json:"hasOverlap"`
	OverlappingSlots []slotDTO      `json:"overlappingSlots"`
	Suggestion       *suggestionDTO `json:"suggestion,omitempty"`
}

type suggestionDTO struct {
	SuggestedTime     slotDTO     `json:"suggestedTime"`
	Reasoning         string      `json:"reasoning"`
	ParticipantImpact []impactDTO `json:"participantImpact"`
}

type impactDTO struct {
	Name      string `json:"name"`
	LocalTime string `json:"localTime"`
	Tier      string `json:"inconvenienceLevel"`
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	meetingType, err := types.ParseMeetingType(req.MeetingType)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	slotDuration, err := types.ParseSlotDuration(req.SlotDuration)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	meeting, err := s.uc.Meeting.CreateMeeting(ctx, usecase.CreateMeetingInput{
		Title:                req.Title,
		OrganizerName:        req.OrganizerName,
		OrganizerEmail:       req.OrganizerEmail,
		MeetingType:          meetingType,
		DateRangeStart:       req.DateRangeStart,
		DateRangeEnd:         req.DateRangeEnd,
		SelectedDates:        req.SelectedDates,
		SlotDuration:         slotDuration,
		ExpectedParticipants: req.ExpectedParticipants,
	})
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	writeJSON(w, http.StatusCreated, toMeetingResponse(meeting, nil))
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	meetings, err := s.uc.Meeting.ListMeetings(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	resp := make([]meetingResponse, 0, len(meetings))
	for _, m := range meetings {
		resp = append(resp, toMeetingResponse(m, nil))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.MeetingID(chi.URLParam(r, "meetingID"))

	meeting, participants, err := s.uc.Meeting.GetMeeting(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	writeJSON(w, http.StatusOK, toMeetingResponse(meeting, participants))
}

func (s *Server) handleSubmitAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.MeetingID(chi.URLParam(r, "meetingID"))

	var req submitAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	slots := make([]model.TimeSlot, 0, len(req.Availability))
	for _, dto := range req.Availability {
		slot := model.NewTimeSlot(dto.Start, dto.End)
		if dto.DayOfWeek != nil {
			slot = model.NewRecurringSlot(dto.Start, dto.End, time.Weekday(*dto.DayOfWeek))
		}
		if !slot.End.After(slot.Start) {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(types.ErrValidation, "slot end must be after start"), http.StatusBadRequest)
			return
		}
		slots = append(slots, slot)
	}

	participant, err := s.uc.Meeting.SubmitAvailability(ctx, id, usecase.SubmitAvailabilityInput{
		Name:         req.Name,
		Email:        req.Email,
		Timezone:     req.Timezone,
		Availability: slots,
	})
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"participantId": participant.ID.String(),
	})
}

func (s *Server) handleMeetingResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.MeetingID(chi.URLParam(r, "meetingID"))

	overlap, suggestion, err := s.uc.Meeting.MeetingResult(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	resp := resultResponse{
		HasOverlap:       overlap.HasOverlap,
		OverlappingSlots: toSlotDTOs(overlap.OverlappingSlots),
	}
	if suggestion != nil {
		dto := suggestionDTO{
			SuggestedTime: toSlotDTO(suggestion.SuggestedTime),
			Reasoning:     suggestion.Reasoning,
		}
		for _, impact := range suggestion.ParticipantImpact {
			dto.ParticipantImpact = append(dto.ParticipantImpact, impactDTO{
				Name:      impact.Name,
				LocalTime: impact.LocalTime,
				Tier:      impact.Tier.String(),
			})
		}
		resp.Suggestion = &dto
	}

	writeJSON(w, http.StatusOK, resp)
}

func toMeetingResponse(m *model.Meeting, participants []*model.Participant) meetingResponse {
	resp := meetingResponse{
		ID:                   m.ID.String(),
		Title:                m.Title,
		OrganizerName:        m.OrganizerName,
		MeetingType:          m.MeetingType.String(),
		DateRangeStart:       m.DateRangeStart,
		DateRangeEnd:         m.DateRangeEnd,
		SelectedDates:        m.SelectedDates,
		SlotDuration:         m.SlotDuration.Minutes(),
		ExpectedParticipants: m.ExpectedParticipants,
		Status:               m.Status.String(),
	}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, p.Name)
	}
	return resp
}

func toSlotDTO(s model.TimeSlot) slotDTO {
	dto := slotDTO{Start: s.Start, End: s.End}
	if s.DayOfWeek != nil {
		day := int(*s.DayOfWeek)
		dto.DayOfWeek = &day
	}
	return dto
}

func toSlotDTOs(slots []model.TimeSlot) []slotDTO {
	dtos := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		dtos = append(dtos, toSlotDTO(s))
	}
	return dtos
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusOf(err error) int {
	if errors.Is(err, types.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, types.ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, types.ErrAlreadyCompleted) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
