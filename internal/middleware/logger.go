package middleware

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/pkg/router"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
)

// WithStartTime stamps the request arrival time, for the logging and metrics
// closers to measure against.
func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

// LogRequest writes one line per finished request.
func LogRequest() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx))

		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Infof("%s %s failed in %s: %v",
				req.Method, req.URL.Path, elapsed, err)
			return
		}

		xcontext.Logger(ctx).Infof("%s %s succeeded in %s", req.Method, req.URL.Path, elapsed)
	}
}
