package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lokatiket_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lokatiket_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LedgerEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lokatiket_ledger_entries_total",
			Help: "Total number of ledger entries recorded from paid orders",
		},
	)

	LedgerEntriesReleasedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lokatiket_ledger_entries_released_total",
			Help: "Total number of ledger entries released to available balance",
		},
	)

	WithdrawalTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lokatiket_withdrawal_transitions_total",
			Help: "Total number of withdrawal request state transitions",
		},
		[]string{"to_status"},
	)

	WithdrawalAmountIDR = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lokatiket_withdrawal_amount_idr_total",
			Help: "Total rupiah amount moved through withdrawal transitions",
		},
		[]string{"to_status"},
	)

	OrdersPaidTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lokatiket_orders_paid_total",
			Help: "Total number of orders confirmed as paid",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lokatiket_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lokatiket_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordLedgerEntry() {
	LedgerEntriesTotal.Inc()
}

func RecordLedgerRelease() {
	LedgerEntriesReleasedTotal.Inc()
}

func RecordWithdrawalTransition(toStatus string, amountIDR int64) {
	WithdrawalTransitionsTotal.WithLabelValues(toStatus).Inc()
	WithdrawalAmountIDR.WithLabelValues(toStatus).Add(float64(amountIDR))
}

func RecordOrderPaid() {
	OrdersPaidTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
