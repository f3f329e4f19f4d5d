package types

import (
	"fmt"
	"time"
)

// SlotDuration is the granularity of an availability grid, in minutes
type SlotDuration int

const (
	SlotDuration15 SlotDuration = 15
	SlotDuration30 SlotDuration = 30
	SlotDuration60 SlotDuration = 60
)

// AllSlotDurations returns all valid slot durations
func AllSlotDurations() []SlotDuration {
	return []SlotDuration{
		SlotDuration15,
		SlotDuration30,
		SlotDuration60,
	}
}

// IsValid checks if the slot duration is one of the supported granularities
func (d SlotDuration) IsValid() bool {
	switch d {
	case SlotDuration15, SlotDuration30, SlotDuration60:
		return true
	default:
		return false
	}
}

// Duration returns the slot duration as a time.Duration
func (d SlotDuration) Duration() time.Duration {
	return time.Duration(d) * time.Minute
}

// Minutes returns the slot duration in minutes
func (d SlotDuration) Minutes() int {
	return int(d)
}

// ParseSlotDuration parses a minute count into a SlotDuration
func ParseSlotDuration(minutes int) (SlotDuration, error) {
	d := SlotDuration(minutes)
	if !d.IsValid() {
		return 0, fmt.Errorf("invalid slot duration: %d minutes", minutes)
	}
	return d, nil
}
