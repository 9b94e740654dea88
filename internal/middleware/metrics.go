package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/luckyspin-lab/backend/internal/common"
	"github.com/luckyspin-lab/backend/pkg/errorx"
	"github.com/luckyspin-lab/backend/pkg/router"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
)

// MeterRequest counts every finished request on the given meter, labelled
// with the path and the envelope code of the outcome.
func MeterRequest(meter common.Meter) router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx))

		code := 0
		if err := xcontext.Error(ctx); err != nil {
			errx := errorx.Error{}
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = int(errorx.Unknown.Code)
			}
		}

		meter.CountHTTPRequest(req.URL.Path, code, elapsed)
	}
}
