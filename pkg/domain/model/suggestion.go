package model

import "github.com/schedlab/tzquorum/pkg/domain/types"

// Suggestion is a compromise time proposed when no common availability
// window exists
type Suggestion struct {
	SuggestedTime     TimeSlot
	Reasoning         string
	ParticipantImpact []ParticipantImpact
}

// ParticipantImpact describes what a suggested time means for one participant
type ParticipantImpact struct {
	Name      string
	LocalTime string
	Tier      types.ConvenienceTier
}

// LocalizedSlot is a slot rendered for display in a specific timezone
type LocalizedSlot struct {
	DateLabel  string
	StartLabel string
	EndLabel   string
}
