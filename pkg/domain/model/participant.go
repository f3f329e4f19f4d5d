package model

import (
	"time"

	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// Participant is one invitee's response to a meeting poll. A participant is
// identified by email within a meeting; re-submitting the form replaces the
// whole availability set.
type Participant struct {
	ID           types.ParticipantID
	Name         string
	Email        string
	Timezone     string // IANA zone name, e.g. "Asia/Tokyo"
	Availability []TimeSlot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone returns a deep copy of the participant
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	c := *p
	c.Availability = CloneSlots(p.Availability)
	return &c
}

// Recipient is the addressing information handed to a notifier
type Recipient struct {
	Name     string
	Email    string
	Timezone string
}

// RecipientsOf extracts notification recipients from a participant snapshot
func RecipientsOf(participants []*Participant) []Recipient {
	recipients := make([]Recipient, 0, len(participants))
	for _, p := range participants {
		recipients = append(recipients, Recipient{
			Name:     p.Name,
			Email:    p.Email,
			Timezone: p.Timezone,
		})
	}
	return recipients
}
