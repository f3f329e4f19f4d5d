package notify_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/service/notify"
)

func window(hour, minutes int) model.TimeSlot {
	start := time.Date(2026, 9, 7, hour, 0, 0, 0, time.UTC)
	return model.NewTimeSlot(start, start.Add(time.Duration(minutes)*time.Minute))
}

func TestBuildSubject(t *testing.T) {
	gt.Value(t, notify.BuildSubject(&model.OverlapResult{HasOverlap: true})).
		Equal("Your meeting poll found a common time")
	gt.Value(t, notify.BuildSubject(&model.OverlapResult{HasOverlap: false})).
		Equal("Your meeting poll needs a compromise")
	gt.Value(t, notify.BuildSubject(nil)).
		Equal("Your meeting poll needs a compromise")
}

func TestBuildBody_Overlap(t *testing.T) {
	recipient := model.Recipient{Name: "Alice", Email: "alice@example.com", Timezone: "UTC"}
	overlap := &model.OverlapResult{
		HasOverlap: true,
		OverlappingSlots: []model.TimeSlot{
			window(9, 30),
			window(13, 90),
			window(16, 60),
			window(18, 30),
		},
	}

	body := notify.BuildBody(recipient, overlap, nil, types.MeetingTypeOneTime)

	gt.Value(t, strings.Contains(body, "Hi Alice,")).Equal(true)
	gt.Value(t, strings.Contains(body, "Everyone is available")).Equal(true)

	// longest windows first, capped at three
	gt.Value(t, strings.Contains(body, "1:00 PM to 2:30 PM")).Equal(true)
	gt.Value(t, strings.Contains(body, "4:00 PM to 5:00 PM")).Equal(true)
	gt.Value(t, strings.Contains(body, "9:00 AM to 9:30 AM")).Equal(true)
	gt.Value(t, strings.Contains(body, "6:00 PM")).Equal(false)
}

func TestBuildBody_Compromise(t *testing.T) {
	recipient := model.Recipient{Name: "Bob", Email: "bob@example.com", Timezone: "Asia/Singapore"}
	suggestion := &model.Suggestion{
		SuggestedTime: window(11, 60),
		Reasoning:     "Late morning UTC keeps everyone inside a workable window.",
		ParticipantImpact: []model.ParticipantImpact{
			{Name: "Alice", LocalTime: "Monday, September 7 11:00 AM", Tier: types.TierIdeal},
			{Name: "Bob", LocalTime: "Monday, September 7 7:00 PM", Tier: types.TierGood},
		},
	}

	body := notify.BuildBody(recipient, &model.OverlapResult{HasOverlap: false}, suggestion, types.MeetingTypeOneTime)

	gt.Value(t, strings.Contains(body, "No time worked for everyone.")).Equal(true)
	// rendered in Bob's zone, UTC+8
	gt.Value(t, strings.Contains(body, "7:00 PM to 8:00 PM (your time)")).Equal(true)
	gt.Value(t, strings.Contains(body, "Why: Late morning UTC")).Equal(true)
	gt.Value(t, strings.Contains(body, "Alice: Monday, September 7 11:00 AM (ideal)")).Equal(true)
}

func TestBuildBody_NoSuggestion(t *testing.T) {
	recipient := model.Recipient{Name: "Alice", Email: "alice@example.com", Timezone: "UTC"}

	body := notify.BuildBody(recipient, &model.OverlapResult{HasOverlap: false}, nil, types.MeetingTypeOneTime)

	gt.Value(t, strings.Contains(body, "No compromise slot could be proposed")).Equal(true)
}

func TestBuildBody_RecurringLabels(t *testing.T) {
	recipient := model.Recipient{Name: "Alice", Email: "alice@example.com", Timezone: "UTC"}
	slot := model.NewRecurringSlot(window(10, 60).Start, window(10, 60).End, time.Monday)
	overlap := &model.OverlapResult{HasOverlap: true, OverlappingSlots: []model.TimeSlot{slot}}

	body := notify.BuildBody(recipient, overlap, nil, types.MeetingTypeRecurring)

	gt.Value(t, strings.Contains(body, "Every Monday")).Equal(true)
}

func TestFanOut(t *testing.T) {
	recipients := []model.Recipient{
		{Name: "Alice", Email: "alice@example.com", Timezone: "UTC"},
		{Name: "Bob", Email: "bob@example.com", Timezone: "UTC"},
		{Name: "Carol", Email: "carol@example.com", Timezone: "UTC"},
	}

	results := notify.FanOut(context.Background(), recipients, func(ctx context.Context, r model.Recipient) error {
		if r.Email == "bob@example.com" {
			return goerr.New("mailbox full")
		}
		return nil
	})

	gt.Array(t, results).Length(3)
	gt.Value(t, results[0].Email).Equal("alice@example.com")
	gt.Value(t, results[0].Err).Nil()
	gt.Value(t, results[1].Email).Equal("bob@example.com")
	gt.Error(t, results[1].Err)
	gt.Value(t, results[2].Err).Nil()
}
