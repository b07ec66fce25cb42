package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline counters and histograms. Event metrics are partitioned by event type.

var (
	// Ingestor
	EventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "ingestor",
		Name:      "events_total",
		Help:      "Total chain events ingested by outcome",
	}, []string{"event_type", "status"})

	HandlerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainsync",
		Subsystem: "ingestor",
		Name:      "handler_duration_seconds",
		Help:      "Event handler processing duration",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"event_type"})

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "chainsync",
		Subsystem: "ingestor",
		Name:      "batch_size",
		Help:      "Number of events submitted per batch",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// Recovery
	RecoveryRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "recovery",
		Name:      "runs_total",
		Help:      "Total recovery scans",
	})

	RecoveryEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "recovery",
		Name:      "events_total",
		Help:      "Events retried by recovery by outcome",
	}, []string{"outcome"})

	// Aggregator
	StatsRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "aggregator",
		Name:      "recomputes_total",
		Help:      "Total token statistics recomputations by outcome",
	}, []string{"outcome"})

	StatsRecomputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "chainsync",
		Subsystem: "aggregator",
		Name:      "recompute_duration_seconds",
		Help:      "Token statistics recomputation duration",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	// Notifier
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "notifier",
		Name:      "published_total",
		Help:      "Notifications stored and published by outcome",
	}, []string{"type", "outcome"})

	// Bridge
	BridgeMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "bridge",
		Name:      "messages_total",
		Help:      "JetStream messages handled by acknowledgement",
	}, []string{"ack"})

	// Emitter
	EmitterLogs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "emitter",
		Name:      "logs_total",
		Help:      "Chain logs converted and published",
	}, []string{"chain", "event_type"})

	EmitterBlockCursor = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "chainsync",
		Subsystem: "emitter",
		Name:      "block_cursor",
		Help:      "Last block persisted by the emitter",
	}, []string{"chain"})

	// API
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"method", "route", "code"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainsync",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimitDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "api",
		Name:      "rate_limit_decisions_total",
		Help:      "Rate limiter decisions by backend and outcome",
	}, []string{"backend", "outcome"})

	// Sweepers
	SweeperCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "sweeper",
		Name:      "cycles_total",
		Help:      "Sweeper cycles by outcome",
	}, []string{"sweeper", "outcome"})

	SweeperItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainsync",
		Subsystem: "sweeper",
		Name:      "items_total",
		Help:      "Items handled by sweepers by outcome",
	}, []string{"sweeper", "outcome"})
)
