package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ChatTurns         *prometheus.CounterVec
	DegradedReplies   *prometheus.CounterVec
	ReplyLatency      *prometheus.HistogramVec
	PersistenceErrors *prometheus.CounterVec
	ContactMessages   *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the instruments on reg. A nil reg selects the
// default Prometheus registry.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	factory := promauto.With(registerer)

	return &Metrics{
		ChatTurns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_turns_total",
			Help:      "Chat turns by reply strategy and intent.",
		}, []string{"strategy", "intent"}),
		DegradedReplies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_replies_total",
			Help:      "Replies substituted after a completion provider failure.",
		}, []string{"provider"}),
		ReplyLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reply_latency_ms",
			Help:      "Time to produce a reply in milliseconds.",
			Buckets:   []float64{1, 5, 25, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"strategy"}),
		PersistenceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_errors_total",
			Help:      "Best-effort durable writes that failed.",
		}, []string{"store"}),
		ContactMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_messages_total",
			Help:      "Contact form submissions by result.",
		}, []string{"result"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: gatherer,
	}
}

func (m *Metrics) ObserveChatTurn(strategy, intent string, d time.Duration) {
	if m == nil {
		return
	}
	if intent == "" {
		intent = "none"
	}
	m.ChatTurns.WithLabelValues(strategy, intent).Inc()
	m.ReplyLatency.WithLabelValues(strategy).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) IncDegradedReply(provider string) {
	if m == nil {
		return
	}
	m.DegradedReplies.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncPersistenceError(store string) {
	if m == nil {
		return
	}
	m.PersistenceErrors.WithLabelValues(store).Inc()
}

func (m *Metrics) IncContact(result string) {
	if m == nil {
		return
	}
	m.ContactMessages.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
