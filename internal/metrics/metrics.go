// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。ドメインサービス層から利用する。
type Recorder interface {
	RecordOperation(aggregate, operation string)
	RecordDomainError(kind string)
	RecordOperationDuration(aggregate, operation string, duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	operations        *prometheus.CounterVec
	domainErrors      *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_operations_total",
			Help: "ドメイン操作の実行回数（集約・操作別）",
		}, []string{"aggregate", "operation"}),
		domainErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_domain_errors_total",
			Help: "ドメインエラーの発生回数（失敗種別ごと）",
		}, []string{"kind"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobtrack_operation_duration_seconds",
			Help:    "ドメイン操作の所要時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"aggregate", "operation"}),
	}

	reg.MustRegister(
		c.operations,
		c.domainErrors,
		c.operationDuration,
	)

	return c
}

// RecordOperation はドメイン操作の成功を記録する。
func (c *Collector) RecordOperation(aggregate, operation string) {
	c.operations.WithLabelValues(aggregate, operation).Inc()
}

// RecordDomainError はドメインエラーの発生を記録する。
func (c *Collector) RecordDomainError(kind string) {
	c.domainErrors.WithLabelValues(kind).Inc()
}

// RecordOperationDuration はドメイン操作の所要時間を記録する。
func (c *Collector) RecordOperationDuration(aggregate, operation string, duration time.Duration) {
	c.operationDuration.WithLabelValues(aggregate, operation).Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
