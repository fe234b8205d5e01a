package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Credit metrics
	CreditsIssued     prometheus.Counter
	CreditsCancelled  prometheus.Counter
	PaymentsApplied   prometheus.Counter
	PaymentsCancelled prometheus.Counter

	// Expense metrics
	ExpensesCreated   prometheus.Counter
	ExpensesCancelled prometheus.Counter

	// Stock metrics
	MovementsRecorded  prometheus.Counter
	MovementsCancelled prometheus.Counter

	// Handover metrics
	DepositsValidated prometheus.Counter
	DepositsRejected  prometheus.Counter
	RefillsValidated  prometheus.Counter

	// Ledger metrics
	LedgerCommits   prometheus.Counter
	LedgerRollbacks *prometheus.CounterVec
	ApplyDuration   prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CreditsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_credits_issued_total",
			Help: "Total number of credits issued",
		}),
		CreditsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_credits_cancelled_total",
			Help: "Total number of credits cancelled",
		}),
		PaymentsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_payments_applied_total",
			Help: "Total number of payments applied",
		}),
		PaymentsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_payments_cancelled_total",
			Help: "Total number of payments cancelled",
		}),
		ExpensesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_expenses_created_total",
			Help: "Total number of expenses created",
		}),
		ExpensesCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_expenses_cancelled_total",
			Help: "Total number of expenses cancelled",
		}),
		MovementsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_stock_movements_total",
			Help: "Total number of stock movements recorded",
		}),
		MovementsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_stock_movements_cancelled_total",
			Help: "Total number of stock movements cancelled",
		}),
		DepositsValidated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_deposits_validated_total",
			Help: "Total number of deposits validated",
		}),
		DepositsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_deposits_rejected_total",
			Help: "Total number of deposits rejected",
		}),
		RefillsValidated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_refills_validated_total",
			Help: "Total number of cash refills validated",
		}),
		LedgerCommits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_ledger_commits_total",
			Help: "Total number of committed ledger transactions",
		}),
		LedgerRollbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caisse_ledger_rollbacks_total",
				Help: "Total number of rolled back ledger transactions by reason",
			},
			[]string{"reason"},
		),
		ApplyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caisse_ledger_apply_duration_seconds",
			Help:    "Duration of atomic ledger applications",
			Buckets: prometheus.DefBuckets,
		}),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caisse_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caisse_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_events_published_total",
			Help: "Total number of outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caisse_event_publish_errors_total",
			Help: "Total number of outbox publish failures",
		}),
	}
}
