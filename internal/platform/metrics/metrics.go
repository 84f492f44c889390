package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crudgraph"

// Metrics は HTTP と GraphQL リゾルバーのメトリクスをまとめます。
type Metrics struct {
	Requests       *prometheus.CounterVec
	Latency        *prometheus.HistogramVec
	ResolverErrors *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New はメトリクスを生成し reg に登録します。reg が nil の場合は専用のレジストリを作成します。
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
		ResolverErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "resolver_errors_total",
			Help:      "Total number of errors returned by GraphQL resolvers.",
		}, []string{"field"}),
		gatherer: reg,
	}

	reg.MustRegister(m.Requests, m.Latency, m.ResolverErrors)
	return m
}

// Handler は /metrics 用のハンドラーを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveResolverError はリゾルバーのエラーを記録します。m が nil の場合は何もしません。
func (m *Metrics) ObserveResolverError(field string) {
	if m == nil {
		return
	}
	m.ResolverErrors.WithLabelValues(field).Inc()
}

// Instrument は handler ラベル付きでリクエスト数とレイテンシを記録するミドルウェアです。
func (m *Metrics) Instrument(handler string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.Requests.WithLabelValues(handler, strconv.Itoa(rec.status)).Inc()
		m.Latency.WithLabelValues(handler).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
