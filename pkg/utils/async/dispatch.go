package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/schedlab/tzquorum/pkg/utils/logging"
)

// Dispatch runs fn in a goroutine detached from the caller's lifetime, for
// side effects that must not block or fail the request that triggered them
// (poll completion notifications). The caller's deadline and cancellation
// are dropped; its logger is kept so background failures stay attributable
// to the originating request.
func Dispatch(ctx context.Context, fn func(ctx context.Context) error) {
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer recoverPanic(bgCtx)

		if err := fn(bgCtx); err != nil {
			logging.From(bgCtx).Error("background task failed", "error", goerr.Unwrap(err))
		}
	}()
}

func recoverPanic(ctx context.Context) {
	if r := recover(); r != nil {
		logging.From(ctx).Error("panic in background task", "panic", r)
	}
}
