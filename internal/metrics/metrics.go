// Package metrics содержит счётчики Prometheus для синхронизации каталога
// и проверок доступа. Счётчики регистрируются в реестре по умолчанию
// и отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы проверки доступа.
const (
	OutcomeFree    = "free"
	OutcomeGranted = "granted"
	OutcomeDenied  = "denied"
	OutcomeFailed  = "failed"
)

var (
	// SnapshotsApplied число применённых снимков каталога.
	SnapshotsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "course_catalog",
		Name:      "snapshots_applied_total",
		Help:      "Number of catalog snapshots applied to the store.",
	})

	// SubscriptionErrors число обрывов подписки на каталог.
	SubscriptionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "course_catalog",
		Name:      "subscription_errors_total",
		Help:      "Number of catalog subscription failures.",
	})

	// CatalogSize текущее число курсов в каталоге.
	CatalogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "course_catalog",
		Name:      "courses",
		Help:      "Number of courses in the last applied snapshot.",
	})

	// NavigationDecisions решения о переходе к курсу по исходу проверки доступа.
	NavigationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "course_catalog",
		Name:      "navigation_decisions_total",
		Help:      "Navigation decisions by entitlement outcome.",
	}, []string{"outcome"})

	// EntitlementCacheHits число проверок доступа, отвеченных из кэша.
	EntitlementCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "course_catalog",
		Name:      "entitlement_cache_hits_total",
		Help:      "Entitlement checks answered from the grant cache.",
	})

	// EntitlementDuration длительность запросов к сервису проверки доступа.
	EntitlementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "course_catalog",
		Name:      "entitlement_request_duration_seconds",
		Help:      "Duration of remote entitlement requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})

	// AdminOperations административные операции над каталогом.
	AdminOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "course_catalog",
		Name:      "admin_operations_total",
		Help:      "Admin catalog operations by kind.",
	}, []string{"operation"})
)
