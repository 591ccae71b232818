package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tennis_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tennis_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tennis_bookings_total",
			Help: "Total number of court bookings created",
		},
		[]string{"type"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tennis_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	MembershipRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tennis_membership_requests_total",
			Help: "Total number of club membership requests",
		},
	)

	MembershipDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tennis_membership_decisions_total",
			Help: "Total number of membership status decisions",
		},
		[]string{"status"},
	)

	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tennis_auth_events_total",
			Help: "Login, registration and logout attempts",
		},
		[]string{"event", "result"},
	)

	ClubsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tennis_clubs_created_total",
			Help: "Total number of clubs created",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(bookingType string) {
	BookingsTotal.WithLabelValues(bookingType).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordMembershipRequest() {
	MembershipRequestsTotal.Inc()
}

func RecordMembershipDecision(status string) {
	MembershipDecisionsTotal.WithLabelValues(status).Inc()
}

// RecordAuth counts an identity event; result is "ok" or "error".
func RecordAuth(event string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	AuthEventsTotal.WithLabelValues(event, result).Inc()
}

func RecordClubCreated() {
	ClubsCreatedTotal.Inc()
}
