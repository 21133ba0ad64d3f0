// Package metrics 提供Prometheus监控指标
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tingban_http_requests_total",
		Help: "HTTP请求总数",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tingban_http_request_duration_seconds",
		Help:    "HTTP请求延迟",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"method", "path"})

	weekGenerationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tingban_week_generation_total",
		Help: "周排班生成次数",
	}, []string{"status"})

	weekGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tingban_week_generation_duration_seconds",
		Help:    "周排班生成延迟",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	})

	violationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tingban_violations_total",
		Help: "被接受的规则违反次数",
	}, []string{"rule"})

	fairnessGini = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tingban_fairness_gini",
		Help: "听班负担基尼系数",
	}, []string{"metric_type"})

	coverageRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tingban_coverage_rate",
		Help: "听班覆盖率",
	})
)

// Handler 返回Prometheus指标HTTP处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest 记录请求指标
func RecordRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWeekGeneration 记录周排班生成指标
func RecordWeekGeneration(degraded bool, err error, duration time.Duration) {
	status := "success"
	switch {
	case err != nil:
		status = "failure"
	case degraded:
		status = "degraded"
	}
	weekGenerationTotal.WithLabelValues(status).Inc()
	weekGenerationDuration.Observe(duration.Seconds())
}

// RecordViolation 记录一次被接受的规则违反
func RecordViolation(rule string) {
	violationsTotal.WithLabelValues(rule).Inc()
}

// SetFairnessGini 设置公平性基尼系数
func SetFairnessGini(metricType string, gini float64) {
	fairnessGini.WithLabelValues(metricType).Set(gini)
}

// SetCoverageRate 设置覆盖率
func SetCoverageRate(rate float64) {
	coverageRate.Set(rate)
}
