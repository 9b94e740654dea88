package common

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	SpinsTotal               = "spins_total"
	SpinReservationConflicts = "spin_reservation_conflicts_total"
	SpinDurationSeconds      = "spin_duration_seconds"
	HTTPRequestTotal         = "http_requests_total"
	HTTPRequestDuration      = "http_request_duration_seconds"
)

// Meter records engine and transport measurements. The spin orchestrator
// receives one explicitly instead of writing to process-wide state, so tests
// can inject a no-op or capturing implementation.
type Meter interface {
	CountSpin(won bool)
	CountReservationConflict()
	ObserveSpinDuration(d time.Duration)
	CountHTTPRequest(path string, code int, d time.Duration)
}

type promMeter struct {
	spins        *prometheus.CounterVec
	conflicts    prometheus.Counter
	spinDuration prometheus.Histogram
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func NewPrometheusMeter(registry prometheus.Registerer) *promMeter {
	m := &promMeter{
		spins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SpinsTotal,
			Help: "Count of all executed spins",
		}, []string{"result"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: SpinReservationConflicts,
			Help: "Count of reward reservations lost to a concurrent winner",
		}),
		spinDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: SpinDurationSeconds,
			Help: "Duration of spin executions",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDuration,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}

	registry.MustRegister(m.spins, m.conflicts, m.spinDuration, m.httpRequests, m.httpDuration)
	return m
}

func (m *promMeter) CountSpin(won bool) {
	result := "lose"
	if won {
		result = "win"
	}
	m.spins.WithLabelValues(result).Inc()
}

func (m *promMeter) CountReservationConflict() {
	m.conflicts.Inc()
}

func (m *promMeter) ObserveSpinDuration(d time.Duration) {
	m.spinDuration.Observe(d.Seconds())
}

func (m *promMeter) CountHTTPRequest(path string, code int, d time.Duration) {
	m.httpRequests.WithLabelValues(path, fmt.Sprint(code)).Inc()
	m.httpDuration.WithLabelValues(path, fmt.Sprint(code)).Observe(d.Seconds())
}

type nopMeter struct{}

func NewNopMeter() nopMeter {
	return nopMeter{}
}

func (nopMeter) CountSpin(bool) {}
func (nopMeter) CountReservationConflict() {}
func (nopMeter) ObserveSpinDuration(time.Duration) {}
func (nopMeter) CountHTTPRequest(string, int, time.Duration) {}
