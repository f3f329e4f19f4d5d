package notify

import (
	"fmt"
	"strings"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/service/schedule"
)

// displaySlotLimit caps how many overlapping windows a message lists
const displaySlotLimit = 3

// buildSubject returns the message subject line for a poll result
func buildSubject(overlap *model.OverlapResult) string {
	if overlap != nil && overlap.HasOverlap {
		return "Your meeting poll found a common time"
	}
	return "Your meeting poll needs a compromise"
}

// buildBody renders the poll result in the recipient's local timezone
func buildBody(recipient model.Recipient, overlap *model.OverlapResult, suggestion *model.Suggestion, meetingType types.MeetingType) string {
	recurring := meetingType == types.MeetingTypeRecurring

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", recipient.Name)

	if overlap != nil && overlap.HasOverlap {
		sb.WriteString("Everyone is available at the following times (shown in your timezone):\n\n")
		top := schedule.TopSlotsByDuration(overlap.OverlappingSlots, displaySlotLimit)
		for _, slot := range top {
			local := schedule.FormatInZone(slot, recipient.Timezone, recurring)
			fmt.Fprintf(&sb, "  - %s, %s to %s\n", local.DateLabel, local.StartLabel, local.EndLabel)
		}
		return sb.String()
	}

	sb.WriteString("No time worked for everyone.\n")
	if suggestion == nil {
		sb.WriteString("No compromise slot could be proposed for the polled date range.\n")
		return sb.String()
	}

	local := schedule.FormatInZone(suggestion.SuggestedTime, recipient.Timezone, recurring)
	fmt.Fprintf(&sb, "Suggested compromise: %s, %s to %s (your time).\n\n", local.DateLabel, local.StartLabel, local.EndLabel)
	fmt.Fprintf(&sb, "Why: %s\n", suggestion.Reasoning)

	if len(suggestion.ParticipantImpact) > 0 {
		sb.WriteString("\nWhat this means for each participant:\n")
		for _, impact := range suggestion.ParticipantImpact {
			fmt.Fprintf(&sb, "  - %s: %s (%s)\n", impact.Name, impact.LocalTime, impact.Tier)
		}
	}
	return sb.String()
}
