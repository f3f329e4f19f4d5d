package usecase

import (
	"context"
	"fmt"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/service/reasoning"
	"github.com/schedlab/tzquorum/pkg/service/schedule"
	"github.com/schedlab/tzquorum/pkg/utils/logging"
)

const fallbackReasoning = "Selected the time when the most participants are available."

// SuggestUseCase proposes a compromise slot when the overlap engine found no
// common window. The external reasoner is optional and best-effort: any
// failure, malformed decision, or out-of-range index degrades to a
// deterministic local choice, never to an error.
type SuggestUseCase struct {
	reasoner reasoning.Reasoner
	policy   model.Policy
}

func NewSuggestUseCase(reasoner reasoning.Reasoner, policy model.Policy) *SuggestUseCase {
	return &SuggestUseCase{
		reasoner: reasoner,
		policy:   policy,
	}
}

// Suggest ranks every representable slot in the meeting's range and picks a
// compromise. Returns nil only when the range admits no candidate at all.
func (uc *SuggestUseCase) Suggest(ctx context.Context, meeting *model.Meeting, participants []*model.Participant) *model.Suggestion {
	window := schedule.HourWindow{
		StartHour: uc.policy.WindowStartHour,
		EndHour:   uc.policy.WindowEndHour,
	}

	universe := schedule.EnumerateCandidates(meeting.CandidateDays(), meeting.SlotDuration, window)
	if len(universe) == 0 {
		return nil
	}

	scored := schedule.ScoreCandidates(universe, participants)
	ranked := schedule.RankCandidates(scored)

	top := ranked
	if len(top) > uc.policy.TopCandidates {
		top = top[:uc.policy.TopCandidates]
	}

	if uc.reasoner != nil {
		if suggestion := uc.askReasoner(ctx, meeting, participants, top); suggestion != nil {
			return suggestion
		}
	}

	return uc.fallback(meeting, participants, scored)
}

func (uc *SuggestUseCase) askReasoner(ctx context.Context, meeting *model.Meeting, participants []*model.Participant, top []schedule.Candidate) *model.Suggestion {
	input := &reasoning.Input{
		MeetingType:  meeting.MeetingType,
		Participants: make([]reasoning.ParticipantSummary, 0, len(participants)),
		Candidates:   make([]reasoning.CandidateView, 0, len(top)),
	}
	for _, p := range participants {
		input.Participants = append(input.Participants, reasoning.ParticipantSummary{
			Name:     p.Name,
			Timezone: p.Timezone,
		})
	}

	recurring := meeting.MeetingType == types.MeetingTypeRecurring
	for _, cand := range top {
		view := reasoning.CandidateView{
			Slot:           cand.Slot,
			AvailableCount: cand.AvailableCount,
			Score:          cand.Score,
		}
		for _, p := range participants {
			local := schedule.FormatInZone(cand.Slot, p.Timezone, recurring)
			view.LocalTimes = append(view.LocalTimes, reasoning.LocalTime{
				Name:      p.Name,
				LocalTime: fmt.Sprintf("%s %s", local.DateLabel, local.StartLabel),
				Tier:      schedule.TierOf(cand.Slot.Start, p.Timezone),
			})
		}
		input.Candidates = append(input.Candidates, view)
	}

	decision, err := uc.reasoner.Choose(ctx, input)
	if err != nil {
		logging.From(ctx).Warn("reasoner unavailable, using deterministic fallback", "error", err.Error())
		return nil
	}
	if decision.SelectedIndex < 0 || decision.SelectedIndex >= len(top) {
		logging.From(ctx).Warn("reasoner returned out-of-range index, using deterministic fallback",
			"index", decision.SelectedIndex)
		return nil
	}

	impacts := decision.Impacts
	if len(impacts) == 0 {
		impacts = localImpacts(top[decision.SelectedIndex].Slot, participants, recurring)
	}

	return &model.Suggestion{
		SuggestedTime:     top[decision.SelectedIndex].Slot,
		Reasoning:         decision.Reasoning,
		ParticipantImpact: impacts,
	}
}

// fallback picks the best candidate by availability count over the entire
// universe and computes the impact list locally. Self-contained: no
// dependency on the reasoner succeeding.
func (uc *SuggestUseCase) fallback(meeting *model.Meeting, participants []*model.Participant, universe []schedule.Candidate) *model.Suggestion {
	best := schedule.BestByAvailability(universe)
	if best == nil {
		return nil
	}

	return &model.Suggestion{
		SuggestedTime:     best.Slot,
		Reasoning:         fallbackReasoning,
		ParticipantImpact: localImpacts(best.Slot, participants, meeting.MeetingType == types.MeetingTypeRecurring),
	}
}

func localImpacts(slot model.TimeSlot, participants []*model.Participant, recurring bool) []model.ParticipantImpact {
	impacts := make([]model.ParticipantImpact, 0, len(participants))
	for _, p := range participants {
		local := schedule.FormatInZone(slot, p.Timezone, recurring)
		impacts = append(impacts, model.ParticipantImpact{
			Name:      p.Name,
			LocalTime: fmt.Sprintf("%s %s", local.DateLabel, local.StartLabel),
			Tier:      schedule.TierOf(slot.Start, p.Timezone),
		})
	}
	return impacts
}
