package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the service. The
// underlying collectors register in the default registry, which only permits
// one registration per process, so the instance is shared.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New(serviceName)
	})
	return promMiddleware
}

// MetricsMiddleware returns the Fiber handler recording HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haven_redis_errors_total",
		Help: "Total number of Redis command errors by command name",
	}, []string{"command"})

	// ReportsCreated counts user reports submitted, labeled by reason.
	ReportsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haven_reports_created_total",
		Help: "Total number of reports submitted by reason",
	}, []string{"reason"})

	// ModerationActions counts resolved moderation actions by action type.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haven_moderation_actions_total",
		Help: "Total number of moderation actions applied by action type",
	}, []string{"action"})

	// CrisisTicketsOpened counts crisis tickets opened by source.
	CrisisTicketsOpened = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haven_crisis_tickets_opened_total",
		Help: "Total number of crisis tickets opened by source (report, keyword, manual)",
	}, []string{"source"})

	// AuditEntriesWritten counts audit log entries by action type.
	AuditEntriesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haven_audit_entries_total",
		Help: "Total number of audit log entries written by action type",
	}, []string{"action_type"})
)
