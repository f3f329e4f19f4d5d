package model

// OverlapResult is the outcome of intersecting all participants' availability.
// It is derived from a participant snapshot and never persisted.
type OverlapResult struct {
	HasOverlap       bool
	OverlappingSlots []TimeSlot
}
