package types

// ConvenienceTier classifies how reasonable a meeting time is in a
// participant's local timezone
type ConvenienceTier string

const (
	// TierIdeal is within core business hours (local 9:00-17:00)
	TierIdeal ConvenienceTier = "ideal"
	// TierGood is within an extended workday (local 8:00-20:00)
	TierGood ConvenienceTier = "good"
	// TierWorkable is early morning or late evening (local 6:00-22:00)
	TierWorkable ConvenienceTier = "workable"
	// TierDifficult is night-time in the participant's zone
	TierDifficult ConvenienceTier = "difficult"
)

// IsValid checks if the convenience tier is valid
func (t ConvenienceTier) IsValid() bool {
	switch t {
	case TierIdeal, TierGood, TierWorkable, TierDifficult:
		return true
	default:
		return false
	}
}

// String returns the string representation of the convenience tier
func (t ConvenienceTier) String() string {
	return string(t)
}
