package llm

import (
	"github.com/gin-gonic/gin"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/infra/queue"
	"deptsync/internal/llmreport"
	"deptsync/internal/user"
	"deptsync/internal/worker/tasks"
)

// LLMHandler 报告生成处理器
type LLMHandler struct {
	reports *llmreport.Service
	users   *user.Service
	queue   queue.Client
}

// NewLLMHandler 创建报告生成处理器
// queue 可为 nil，此时异步端点返回错误
func NewLLMHandler(reports *llmreport.Service, users *user.Service, q queue.Client) *LLMHandler {
	return &LLMHandler{reports: reports, users: users, queue: q}
}

// TextResponse 文本报告响应体
type TextResponse struct {
	Content string `json:"content"`
}

// DataResponse 结构化报告响应体
type DataResponse struct {
	Data map[string]any `json:"data"`
}

// DeptMonthlyRequest 部门月报请求
type DeptMonthlyRequest struct {
	Projects  []llmreport.ProjectView       `json:"projects"`
	Events    []llmreport.TimelineEventView `json:"events"`
	StartDate string                        `json:"start_date" binding:"required"`
	EndDate   string                        `json:"end_date" binding:"required"`
}

// DeptMonthlyReport 生成部门月报
// @Summary 部门月度综述报告
// @Tags LLM
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/llm/dept-monthly-report [post]
func (h *LLMHandler) DeptMonthlyReport(c *gin.Context) {
	var req DeptMonthlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	content := h.reports.GenerateDeptMonthly(c.Request.Context(), req.Projects, req.Events, req.StartDate, req.EndDate)
	common.ResponseSuccess(c, TextResponse{Content: content})
}

// ProjectWeeklyRequest 项目周报请求
type ProjectWeeklyRequest struct {
	Project         llmreport.ProjectView          `json:"project" binding:"required"`
	PersonalReports []llmreport.PersonalReportView `json:"personal_reports"`
	WeekRange       string                         `json:"week_range" binding:"required"`
}

// ProjectWeeklyReport 生成项目周报
// @Summary 项目周报汇总
// @Tags LLM
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/llm/project-weekly-report [post]
func (h *LLMHandler) ProjectWeeklyReport(c *gin.Context) {
	var req ProjectWeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	content := h.reports.GenerateProjectWeekly(c.Request.Context(), req.Project, req.PersonalReports, req.WeekRange)
	common.ResponseSuccess(c, TextResponse{Content: content})
}

// ProjectReportRequest 项目阶段报告请求
type ProjectReportRequest struct {
	Project   llmreport.ProjectView         `json:"project" binding:"required"`
	Events    []llmreport.TimelineEventView `json:"events"`
	Tasks     []llmreport.TaskView          `json:"tasks"`
	StartDate string                        `json:"start_date" binding:"required"`
	EndDate   string                        `json:"end_date" binding:"required"`
}

// ProjectReport 生成项目阶段报告
// @Summary 项目进度报告
// @Tags LLM
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/llm/project-report [post]
func (h *LLMHandler) ProjectReport(c *gin.Context) {
	var req ProjectReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	content := h.reports.GenerateProject(c.Request.Context(), req.Project, req.Events, req.Tasks, req.StartDate, req.EndDate)
	common.ResponseSuccess(c, TextResponse{Content: content})
}

// PersonalReportRequest 个人周报草稿请求
type PersonalReportRequest struct {
	Projects     []llmreport.ProjectView     `json:"projects"`
	Inspirations []llmreport.InspirationView `json:"inspirations"`
}

// PersonalReport 生成个人周报草稿，JSON 模式
// @Summary 个人周报建议
// @Tags LLM
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/llm/personal-report [post]
func (h *LLMHandler) PersonalReport(c *gin.Context) {
	var req PersonalReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	data := h.reports.GeneratePersonal(c.Request.Context(), h.currentUsername(c), req.Projects, req.Inspirations)
	common.ResponseSuccess(c, DataResponse{Data: data})
}

// GenerateReport 通用报告生成端点，按 report_type 分发
// @Summary 通用报告生成
// @Tags LLM
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/llm/generate-report [post]
func (h *LLMHandler) GenerateReport(c *gin.Context) {
	var req llmreport.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	req.Username = h.currentUsername(c)

	result, err := h.reports.Generate(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, common.CodeUnsupportedReportType, err.Error())
		return
	}
	common.ResponseSuccess(c, result)
}

// AsyncGenerateRequest 异步报告生成请求
// TargetProjectID 非空时生成结果作为时间线事件写回该项目
type AsyncGenerateRequest struct {
	llmreport.GenerateRequest
	TargetProjectID string `json:"target_project_id"`
}

// AsyncResponse 异步任务受理响应
type AsyncResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// GenerateReportAsync 投递异步报告生成任务
// @Summary 异步报告生成
// @Tags LLM
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/llm/generate-report-async [post]
func (h *LLMHandler) GenerateReportAsync(c *gin.Context) {
	if h.queue == nil {
		common.ResponseError(c, common.CodeReportEnqueueFailed, "任务队列未启用")
		return
	}

	var req AsyncGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	taskID, err := h.queue.EnqueueGenerateReport(tasks.GenerateReportPayload{
		Request:         req.GenerateRequest,
		Username:        h.currentUsername(c),
		TargetProjectID: req.TargetProjectID,
	})
	if err != nil {
		common.ResponseError(c, common.CodeReportEnqueueFailed, "任务投递失败")
		return
	}
	common.ResponseSuccess(c, AsyncResponse{TaskID: taskID, Status: "queued"})
}

func (h *LLMHandler) currentUsername(c *gin.Context) string {
	current := auth.CurrentUser(c)
	if current == nil {
		return ""
	}
	if u, err := h.users.Get(c.Request.Context(), current.UserID); err == nil {
		return u.Username
	}
	return ""
}
