package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_notifications_total",
			Help: "Midtrans notifications received, by processing outcome",
		},
		[]string{"outcome"},
	)

	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_transactions_total",
			Help: "Snap transaction creation attempts, by outcome",
		},
		[]string{"outcome"},
	)

	GatewayCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_call_duration_seconds",
			Help:    "Duration of outbound Midtrans API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ReferralClicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "referral_clicks_total",
			Help: "Referral link clicks logged",
		},
	)
)

var registerOnce sync.Once

// Register mendaftarkan semua metric ke default registry, aman dipanggil berkali-kali.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(NotificationsTotal)
		prometheus.MustRegister(TransactionsTotal)
		prometheus.MustRegister(GatewayCallDuration)
		prometheus.MustRegister(ReferralClicksTotal)
	})
}
