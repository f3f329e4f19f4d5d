package notify

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// maxConcurrentSends bounds delivery fan-out per notification
const maxConcurrentSends = 4

// Notifier delivers a poll result to recipients. Each recipient is handled
// independently; one failed delivery never aborts the rest, and the caller
// must not treat delivery failure as a reason to roll back the computation
// that produced the result.
type Notifier interface {
	Notify(ctx context.Context, recipients []model.Recipient, overlap *model.OverlapResult, suggestion *model.Suggestion, meetingType types.MeetingType) []Result
}

// Result is the per-recipient delivery outcome
type Result struct {
	Email string
	Err   error
}

// fanOut runs send for every recipient with bounded concurrency and collects
// per-recipient results. Errors are recorded, never propagated.
func fanOut(ctx context.Context, recipients []model.Recipient, send func(ctx context.Context, r model.Recipient) error) []Result {
	results := make([]Result, len(recipients))

	var eg errgroup.Group
	eg.SetLimit(maxConcurrentSends)
	for i, recipient := range recipients {
		eg.Go(func() error {
			results[i] = Result{
				Email: recipient.Email,
				Err:   send(ctx, recipient),
			}
			return nil
		})
	}
	_ = eg.Wait()

	return results
}
