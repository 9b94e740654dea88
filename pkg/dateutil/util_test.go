package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_BeginningOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	at := time.Date(2026, time.June, 15, 23, 59, 59, 0, loc)

	begin := BeginningOfDay(at)
	require.Equal(t, time.Date(2026, time.June, 15, 0, 0, 0, 0, loc), begin)
}

func Test_NextDay(t *testing.T) {
	at := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, time.June, 16, 0, 0, 0, 0, time.UTC), NextDay(at))

	// The bucket is [BeginningOfDay, NextDay).
	require.True(t, NextDay(at).After(at))
	require.False(t, SameDay(at, NextDay(at)))
}

func Test_SameDay(t *testing.T) {
	morning := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	night := time.Date(2026, time.June, 15, 23, 59, 59, 0, time.UTC)
	require.True(t, SameDay(morning, night))
	require.False(t, SameDay(night, night.Add(time.Second)))
}
