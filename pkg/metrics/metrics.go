package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invest",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "invest",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	ledgerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invest",
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by kind and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	ledgerAmount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invest",
			Subsystem: "ledger",
			Name:      "amount_total",
			Help:      "Sum of amounts moved by successful ledger operations.",
		},
		[]string{"operation"},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invest",
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduled job runs.",
		},
		[]string{"job", "success"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ledgerOperations,
		ledgerAmount,
		jobRuns,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
		}
		route := c.Route().Path
		method := c.Method()
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Ledger operation names.
const (
	OpDepositConfirm     = "deposit_confirm"
	OpApplicationApprove = "application_approve"
	OpROIWithdrawal      = "roi_withdrawal"
	OpROIRefund          = "roi_refund"
	OpPrincipal          = "principal_withdrawal"
	OpReferralWithdrawal = "referral_withdrawal"
	OpTransferConfirm    = "transfer_confirm"
)

// RecordLedger counts one ledger operation. amount is added only on
// success.
func RecordLedger(operation string, amount float64, err error) {
	if err != nil {
		ledgerOperations.WithLabelValues(operation, "error").Inc()
		return
	}
	ledgerOperations.WithLabelValues(operation, "ok").Inc()
	if amount > 0 {
		ledgerAmount.WithLabelValues(operation).Add(amount)
	}
}

// RecordJob counts one scheduled job run.
func RecordJob(job string, err error) {
	jobRuns.WithLabelValues(job, strconv.FormatBool(err == nil)).Inc()
}
