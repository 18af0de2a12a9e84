package tasks

import "deptsync/internal/llmreport"

// 任务类型
const (
	// TypeGenerateReport 异步报告生成
	TypeGenerateReport = "report:generate"
)

// GenerateReportPayload 异步报告生成任务载荷
// TargetProjectID 非空时，生成结果作为时间线事件落入该项目
type GenerateReportPayload struct {
	Request         llmreport.GenerateRequest `json:"request"`
	Username        string                    `json:"username"`
	TargetProjectID string                    `json:"target_project_id"`
}
