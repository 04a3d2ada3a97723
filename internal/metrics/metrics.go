// Package metrics exposes prometheus counters for the business operations.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	signupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "house_hunters",
			Name:      "signup_total",
			Help:      "Count of signup attempts by outcome.",
		},
		[]string{"outcome"},
	)

	loginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "house_hunters",
			Name:      "login_total",
			Help:      "Count of login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	bookingTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "house_hunters",
			Name:      "booking_total",
			Help:      "Count of booking attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(signupTotal, loginTotal, bookingTotal)
	})
}

func IncSignup(outcome string) {
	signupTotal.WithLabelValues(outcome).Inc()
}

func IncLogin(outcome string) {
	loginTotal.WithLabelValues(outcome).Inc()
}

func IncBooking(outcome string) {
	bookingTotal.WithLabelValues(outcome).Inc()
}
