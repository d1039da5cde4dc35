package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 中继结果标签取值
const (
	OutcomeOK       = "ok"
	OutcomeClient   = "client_error"
	OutcomeGateway  = "gateway_error"
	OutcomeUpstream = "upstream_error"
)

var (
	RelayRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shodan_inspector_relay_requests_total",
		Help: "Total number of /api/query relay calls by outcome",
	}, []string{"outcome"})
	UpstreamRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shodan_inspector_upstream_requests_total",
		Help: "Total outbound host lookups sent upstream",
	})
	UpstreamStatusTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shodan_inspector_upstream_status_total",
		Help: "Upstream responses by HTTP status code",
	}, []string{"code"})
	UpstreamDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shodan_inspector_upstream_duration_ms",
		Help:    "Upstream host lookup duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
	})
)

func init() {
	prometheus.MustRegister(RelayRequestsTotal)
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamStatusTotal)
	prometheus.MustRegister(UpstreamDurationMs)
}

// ObserveUpstream：记录一次上游响应；code 为 0 表示传输层失败
func ObserveUpstream(code int, ms float64) {
	UpstreamDurationMs.Observe(ms)
	label := "transport_error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	UpstreamStatusTotal.WithLabelValues(label).Inc()
}

// Handler：Prometheus 抓取入口
func Handler() http.Handler { return promhttp.Handler() }
