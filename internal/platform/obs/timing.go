package obs

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Time logs the duration of the named operation when the returned func runs.
// Typical use: defer obs.Time(ctx, "geocode.baidu")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := middleware.GetReqID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			slog.WarnContext(ctx, "operation failed",
				slog.String("req_id", reqID),
				slog.String("op", name),
				slog.Int64("dur_ms", dur.Milliseconds()),
				slog.Any("error", *errp),
			)
			return
		}
		slog.DebugContext(ctx, "operation completed",
			slog.String("req_id", reqID),
			slog.String("op", name),
			slog.Int64("dur_ms", dur.Milliseconds()),
		)
	}
}
