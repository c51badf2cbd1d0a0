package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Time logs the duration of op through the context logger.
// Usage: defer obs.Time(ctx, "osrm.table")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		logger := zerolog.Ctx(ctx)

		if errp != nil && *errp != nil {
			logger.Warn().Str("op", name).Dur("dur", dur).Err(*errp).Msg("op failed")
			return
		}
		logger.Debug().Str("op", name).Dur("dur", dur).Msg("op done")
	}
}
