package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/schedlab/tzquorum/pkg/domain/interfaces"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/repository/firestore"
	"github.com/schedlab/tzquorum/pkg/repository/memory"
)

func newParticipant(name, email string, hours ...int) *model.Participant {
	var slots []model.TimeSlot
	for _, h := range hours {
		start := time.Date(2026, 9, 7, h, 0, 0, 0, time.UTC)
		slots = append(slots, model.NewTimeSlot(start, start.Add(30*time.Minute)))
	}
	return &model.Participant{
		Name:         name,
		Email:        email,
		Timezone:     "Europe/London",
		Availability: slots,
	}
}

func runParticipantRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Replace stores a new response", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		meetingID := types.MeetingID(uuid.NewString())

		stored, err := repo.Participant().Replace(ctx, meetingID, newParticipant("Alice", "alice@example.com", 10, 11))
		gt.NoError(t, err).Required()

		gt.Value(t, string(stored.ID)).NotEqual("")
		gt.Value(t, stored.Name).Equal("Alice")
		gt.Array(t, stored.Availability).Length(2)
		gt.Bool(t, stored.CreatedAt.IsZero()).False()
	})

	t.Run("Replace swaps the full availability set", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		meetingID := types.MeetingID(uuid.NewString())

		first, err := repo.Participant().Replace(ctx, meetingID, newParticipant("Alice", "alice@example.com", 9, 10, 11))
		gt.NoError(t, err).Required()

		second, err := repo.Participant().Replace(ctx, meetingID, newParticipant("Alice", "alice@example.com", 15))
		gt.NoError(t, err).Required()

		gt.Value(t, second.ID).Equal(first.ID)
		// creation time survives the replacement (timestamp precision may
		// differ across backends)
		gt.Bool(t, second.CreatedAt.Sub(first.CreatedAt).Abs() < time.Second).True()

		participants, err := repo.Participant().List(ctx, meetingID)
		gt.NoError(t, err).Required()
		gt.Array(t, participants).Length(1)
		gt.Array(t, participants[0].Availability).Length(1)
		gt.Value(t, participants[0].Availability[0].Start.Hour()).Equal(15)
	})

	t.Run("email matching is case-insensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		meetingID := types.MeetingID(uuid.NewString())

		_, err := repo.Participant().Replace(ctx, meetingID, newParticipant("Alice", "alice@example.com", 10))
		gt.NoError(t, err).Required()
		_, err = repo.Participant().Replace(ctx, meetingID, newParticipant("Alice", "Alice@Example.com", 11))
		gt.NoError(t, err).Required()

		participants, err := repo.Participant().List(ctx, meetingID)
		gt.NoError(t, err).Required()
		gt.Array(t, participants).Length(1)
	})

	t.Run("participants are scoped to their meeting", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		meetingA := types.MeetingID(uuid.NewString())
		meetingB := types.MeetingID(uuid.NewString())

		_, err := repo.Participant().Replace(ctx, meetingA, newParticipant("Alice", "alice@example.com", 10))
		gt.NoError(t, err).Required()
		_, err = repo.Participant().Replace(ctx, meetingB, newParticipant("Bob", "bob@example.com", 10))
		gt.NoError(t, err).Required()

		inA, err := repo.Participant().List(ctx, meetingA)
		gt.NoError(t, err).Required()
		gt.Array(t, inA).Length(1)
		gt.Value(t, inA[0].Name).Equal("Alice")
	})

	t.Run("List of an empty meeting", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		participants, err := repo.Participant().List(ctx, types.MeetingID(uuid.NewString()))
		gt.NoError(t, err).Required()
		gt.Array(t, participants).Length(0)
	})

	t.Run("recurring slots keep their weekday tag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		meetingID := types.MeetingID(uuid.NewString())

		p := newParticipant("Alice", "alice@example.com")
		start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
		p.Availability = []model.TimeSlot{model.NewRecurringSlot(start, start.Add(time.Hour), time.Monday)}

		_, err := repo.Participant().Replace(ctx, meetingID, p)
		gt.NoError(t, err).Required()

		participants, err := repo.Participant().List(ctx, meetingID)
		gt.NoError(t, err).Required()
		gt.Array(t, participants).Length(1)
		gt.Bool(t, participants[0].Availability[0].Recurring()).True()
		gt.Value(t, participants[0].Availability[0].Weekday()).Equal(time.Monday)
	})
}

func TestParticipantRepository_Memory(t *testing.T) {
	runParticipantRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestParticipantRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runParticipantRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"),
			firestore.WithCollectionPrefix("test_"+uuid.NewString()[:8]))
		gt.NoError(t, err).Required()
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	})
}
