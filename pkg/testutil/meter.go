package testutil

import (
	"sync/atomic"
	"time"
)

// CaptureMeter counts measurements so tests can assert on them.
type CaptureMeter struct {
	Wins         int64
	Losses       int64
	Conflicts    int64
	HTTPRequests int64
}

func (m *CaptureMeter) CountSpin(won bool) {
	if won {
		atomic.AddInt64(&m.Wins, 1)
	} else {
		atomic.AddInt64(&m.Losses, 1)
	}
}

func (m *CaptureMeter) CountReservationConflict() {
	atomic.AddInt64(&m.Conflicts, 1)
}

func (m *CaptureMeter) ObserveSpinDuration(time.Duration) {}

func (m *CaptureMeter) CountHTTPRequest(string, int, time.Duration) {
	atomic.AddInt64(&m.HTTPRequests, 1)
}
