package llmreport

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"deptsync/internal/logger"
	"deptsync/internal/metrics"
)

// 降级文案：模型未配置时各场景的固定返回内容
const (
	msgNoAPIKey         = "缺少 API Key。"
	msgNoAPIKeyProject  = "缺少 API Key。请配置环境变量。"
	msgNoAPIKeyPersonal = "Mock Summary: No API Key."

	// msgWeeklyNoData 没有任何成员提及该项目时的短路文案，不触网
	msgWeeklyNoData = "本周团队成员未提交相关周报，无法自动汇总。"
)

// 文本场景的调用失败降级格式
const (
	degradedDeptMonthly   = "AI 服务暂时不可用: %v"
	degradedProjectWeekly = "AI 服务异常: %v"
	degradedProject       = "由于 API 错误，生成报告失败: %v"
)

// Service 报告生成编排器：拼上下文、取模板、调网关、落降级
type Service struct {
	store   *PromptStore
	gateway *Gateway
	log     *zap.Logger
}

// NewService 创建报告编排器
func NewService(store *PromptStore, gateway *Gateway) *Service {
	return &Service{store: store, gateway: gateway, log: logger.Get()}
}

// GenerateDeptMonthly 部门月报：按项目分块汇总周期内时间线动态
func (s *Service) GenerateDeptMonthly(ctx context.Context, projects []ProjectView, events []TimelineEventView, startDate, endDate string) string {
	metrics.CountReport(KindDeptMonthly)
	if !s.gateway.Configured() {
		metrics.CountReportDegraded(KindDeptMonthly, "no_api_key")
		return msgNoAPIKey
	}
	vars := buildDeptMonthlyContext(projects, events, startDate, endDate)
	return s.gateway.InvokeText(ctx, KindDeptMonthly, s.store.Get(KindDeptMonthly), vars, degradedDeptMonthly)
}

// GenerateProjectWeekly 项目周报：汇总成员个人周报中与该项目相关的条目
// 未配置检查先于无数据短路
func (s *Service) GenerateProjectWeekly(ctx context.Context, project ProjectView, reports []PersonalReportView, weekRange string) string {
	metrics.CountReport(KindProjectWeekly)
	if !s.gateway.Configured() {
		metrics.CountReportDegraded(KindProjectWeekly, "no_api_key")
		return msgNoAPIKey
	}
	vars, ok := buildProjectWeeklyContext(project, reports, weekRange)
	if !ok {
		s.log.Info("项目周报无成员汇报数据，跳过生成", zap.String("project_id", project.ID))
		metrics.CountReportDegraded(KindProjectWeekly, "no_data")
		return msgWeeklyNoData
	}
	return s.gateway.InvokeText(ctx, KindProjectWeekly, s.store.Get(KindProjectWeekly), vars, degradedProjectWeekly)
}

// GenerateProject 单项目阶段报告
func (s *Service) GenerateProject(ctx context.Context, project ProjectView, events []TimelineEventView, tasks []TaskView, startDate, endDate string) string {
	metrics.CountReport(KindProject)
	if !s.gateway.Configured() {
		metrics.CountReportDegraded(KindProject, "no_api_key")
		return msgNoAPIKeyProject
	}
	vars := buildProjectContext(project, events, tasks, startDate, endDate)
	return s.gateway.InvokeText(ctx, KindProject, s.store.Get(KindProject), vars, degradedProject)
}

// GeneratePersonal 个人周报草稿，JSON 模式
// 返回对象以项目 ID 为键，另含 generalSummary
func (s *Service) GeneratePersonal(ctx context.Context, username string, projects []ProjectView, inspirations []InspirationView) map[string]any {
	metrics.CountReport(KindPersonal)
	if !s.gateway.Configured() {
		metrics.CountReportDegraded(KindPersonal, "no_api_key")
		return map[string]any{"generalSummary": msgNoAPIKeyPersonal}
	}
	vars := buildPersonalContext(username, projects, inspirations)
	return s.gateway.InvokeJSON(ctx, KindPersonal, s.store.Get(KindPersonal), vars)
}

// GenerateRequest 统一报告生成请求载荷，按 ReportType 分发
// Username 由接入层填充为当前登录用户
type GenerateRequest struct {
	ReportType string `json:"report_type" binding:"required"`

	Project  ProjectView   `json:"project"`
	Projects []ProjectView `json:"projects"`

	Events []TimelineEventView `json:"events"`
	Tasks  []TaskView          `json:"tasks"`

	PersonalReports []PersonalReportView `json:"personal_reports"`
	Inspirations    []InspirationView    `json:"inspirations"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	WeekRange string `json:"week_range"`
	Username  string `json:"-"`
}

// GenerateResult 统一报告生成结果
// 文本场景填 Content，个人场景填 Data
type GenerateResult struct {
	Type    string         `json:"type"`
	Content string         `json:"content,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Generate 按报告类型分发到对应的生成流程
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	switch req.ReportType {
	case KindProject:
		content := s.GenerateProject(ctx, req.Project, req.Events, req.Tasks, req.StartDate, req.EndDate)
		return &GenerateResult{Type: KindProject, Content: content}, nil
	case KindDeptMonthly:
		content := s.GenerateDeptMonthly(ctx, req.Projects, req.Events, req.StartDate, req.EndDate)
		return &GenerateResult{Type: KindDeptMonthly, Content: content}, nil
	case KindProjectWeekly:
		content := s.GenerateProjectWeekly(ctx, req.Project, req.PersonalReports, req.WeekRange)
		return &GenerateResult{Type: KindProjectWeekly, Content: content}, nil
	case KindPersonal:
		data := s.GeneratePersonal(ctx, req.Username, req.Projects, req.Inspirations)
		return &GenerateResult{Type: KindPersonal, Data: data}, nil
	default:
		return nil, fmt.Errorf("不支持的报告类型: %s。支持的类型: project, dept_monthly, project_weekly, personal", req.ReportType)
	}
}
