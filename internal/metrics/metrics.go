package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bookings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barberpro",
		Name:      "bookings_total",
		Help:      "Booking attempts by outcome.",
	}, []string{"outcome"})

	availabilityRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barberpro",
		Name:      "availability_requests_total",
		Help:      "Availability lookups by cache result.",
	}, []string{"cache"})

	availabilityLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "barberpro",
		Name:      "availability_duration_seconds",
		Help:      "Time spent resolving availability.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Resultados de reserva.
const (
	OutcomeCreated        = "created"
	OutcomeReplayed       = "replayed"
	OutcomeConflict       = "conflict"
	OutcomeInvalid        = "invalid"
	OutcomeTenantMismatch = "tenant_mismatch"
	OutcomeError          = "error"
)

func Booking(outcome string) {
	bookings.WithLabelValues(outcome).Inc()
}

func Availability(cacheHit bool, took time.Duration) {
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	availabilityRequests.WithLabelValues(label).Inc()
	availabilityLatency.Observe(took.Seconds())
}

// Handler expõe /metrics no gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
