package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the scheduling flows.
type BookingMetrics struct {
	bookingsTotal       *prometheus.CounterVec
	validationTotal     *prometheus.CounterVec
	availabilityLatency *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clearslot",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Total booking attempts",
		}, []string{"type", "status"}),
		validationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clearslot",
			Subsystem: "appointments",
			Name:      "validation_failures_total",
			Help:      "Total validation rule failures on booking attempts",
		}, []string{"rule"}),
		availabilityLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clearslot",
			Subsystem: "appointments",
			Name:      "availability_latency_seconds",
			Help:      "Latency of availability enumeration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.validationTotal, m.availabilityLatency)
	return m
}

func (m *BookingMetrics) ObserveBooking(appointmentType, status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(appointmentType, status).Inc()
}

func (m *BookingMetrics) ObserveValidationFailure(rule string) {
	if m == nil {
		return
	}
	m.validationTotal.WithLabelValues(rule).Inc()
}

func (m *BookingMetrics) ObserveAvailabilityLatency(appointmentType string, seconds float64) {
	if m == nil {
		return
	}
	m.availabilityLatency.WithLabelValues(appointmentType).Observe(seconds)
}
