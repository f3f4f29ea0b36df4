package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "labbook"

var (
	AppointmentsBooked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_booked_total",
			Help:      "Appointments created successfully",
		},
	)

	BookingRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejections_total",
			Help:      "Booking attempts rejected, by reason",
		},
		[]string{"reason"},
	)

	AppointmentsCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_cancelled_total",
			Help:      "Appointments cancelled, by actor",
		},
		[]string{"actor"},
	)

	AppointmentsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_delivered_total",
			Help:      "Appointments whose results were delivered",
		},
	)

	PaymentIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_intents_total",
			Help:      "Payment intent requests to the provider, by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

const (
	ReasonSlotExhausted = "slot_exhausted"
	ReasonNotFound      = "not_found"
	ReasonPriceMismatch = "price_mismatch"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func init() {
	prometheus.MustRegister(
		AppointmentsBooked,
		BookingRejections,
		AppointmentsCancelled,
		AppointmentsDelivered,
		PaymentIntents,
		HTTPRequestDuration,
	)
}

// ObserveRequest records the latency of a finished request.
func ObserveRequest(method, route string, status int, started time.Time) {
	if status == 0 {
		status = http.StatusOK
	}

	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(started).Seconds())
}
