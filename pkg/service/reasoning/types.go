package reasoning

import (
	"context"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// Reasoner picks a compromise slot from a ranked candidate list and explains
// the choice. Implementations make a single attempt; the caller owns the
// deterministic fallback when the reasoner is unavailable or returns a
// malformed decision.
type Reasoner interface {
	Choose(ctx context.Context, input *Input) (*Decision, error)
}

// Input is the reasoning request: participant summaries plus the top ranked
// candidates, each rendered in every participant's local time
type Input struct {
	MeetingType  types.MeetingType
	Participants []ParticipantSummary
	Candidates   []CandidateView
}

// ParticipantSummary describes one participant for the reasoner
type ParticipantSummary struct {
	Name     string
	Timezone string
}

// CandidateView is one candidate slot as presented to the reasoner
type CandidateView struct {
	Slot           model.TimeSlot
	AvailableCount int
	Score          int
	LocalTimes     []LocalTime
}

// LocalTime is a candidate rendered in one participant's zone
type LocalTime struct {
	Name      string
	LocalTime string
	Tier      types.ConvenienceTier
}

// Decision is the structured reasoner response
type Decision struct {
	SelectedIndex int
	Reasoning     string
	Impacts       []model.ParticipantImpact
}

// llmResponse is the JSON schema the LLM is constrained to
type llmResponse struct {
	SelectedSlotIndex int         `json:"selected_slot_index"`
	Reasoning         string      `json:"reasoning"`
	ParticipantImpact []llmImpact `json:"participant_impact"`
}

type llmImpact struct {
	Name               string `json:"name"`
	LocalTime          string `json:"local_time"`
	InconvenienceLevel string `json:"inconvenience_level"`
}
