package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"deptsync/internal/event"
	"deptsync/internal/llmreport"
	"deptsync/internal/worker/tasks"
)

// ReportHandler 异步报告生成任务处理器
// 生成结果以时间线事件的形式写回目标项目
type ReportHandler struct {
	reports *llmreport.Service
	events  *event.Service
	logger  *zap.Logger
}

// NewReportHandler 创建报告任务处理器
func NewReportHandler(reports *llmreport.Service, events *event.Service, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, events: events, logger: logger}
}

// HandleGenerateReport 执行报告生成并落库
func (h *ReportHandler) HandleGenerateReport(ctx context.Context, t *asynq.Task) error {
	var payload tasks.GenerateReportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("解析任务载荷失败: %w", err)
	}

	req := payload.Request
	req.Username = payload.Username

	result, err := h.reports.Generate(ctx, &req)
	if err != nil {
		return fmt.Errorf("报告生成失败: %w", err)
	}

	h.logger.Info("异步报告生成完成",
		zap.String("type", result.Type),
		zap.String("target_project_id", payload.TargetProjectID),
	)

	if payload.TargetProjectID == "" {
		return nil
	}

	content := result.Content
	if result.Data != nil {
		data, err := json.Marshal(result.Data)
		if err != nil {
			return fmt.Errorf("序列化报告结果失败: %w", err)
		}
		content = string(data)
	}

	if _, err := h.events.AppendGenerated(ctx, payload.TargetProjectID, timelineEventType(result.Type), payload.Username, content); err != nil {
		return fmt.Errorf("写入时间线事件失败: %w", err)
	}
	return nil
}

// timelineEventType 周报类报告写 WEEKLY_REPORT 事件，其余写 MONTHLY_REPORT
func timelineEventType(reportType string) event.EventType {
	switch reportType {
	case llmreport.KindProjectWeekly, llmreport.KindPersonal:
		return event.TypeWeeklyReport
	default:
		return event.TypeMonthlyReport
	}
}
