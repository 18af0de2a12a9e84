package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API 指标
var (
	// APIRequestsTotal API 请求总数
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deptsync_api_requests_total",
			Help: "API 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration API 请求延迟（秒）
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deptsync_api_request_duration_seconds",
			Help:    "API 请求延迟分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// 报告生成指标
var (
	// ReportGenerationsTotal 报告生成请求总数
	ReportGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deptsync_report_generations_total",
			Help: "报告生成请求总数",
		},
		[]string{"kind"},
	)

	// ReportDegradationsTotal 报告降级总数（未配置、调用失败、解析失败）
	ReportDegradationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deptsync_report_degradations_total",
			Help: "报告降级响应总数",
		},
		[]string{"kind", "reason"},
	)

	// ReportTasksEnqueued 异步报告任务入队总数
	ReportTasksEnqueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deptsync_report_tasks_enqueued_total",
			Help: "异步报告任务入队总数",
		},
	)
)

// 文件存储指标
var (
	// FileUploadsTotal 文件上传总数
	FileUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deptsync_file_uploads_total",
			Help: "文件上传总数",
		},
		[]string{"folder", "status"},
	)
)

// CountReport 记录一次报告生成请求
func CountReport(kind string) {
	ReportGenerationsTotal.WithLabelValues(kind).Inc()
}

// CountReportDegraded 记录一次报告降级响应
func CountReportDegraded(kind, reason string) {
	ReportDegradationsTotal.WithLabelValues(kind, reason).Inc()
}
