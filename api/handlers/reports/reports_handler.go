package reports

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/docx"
	"deptsync/internal/report"
	"deptsync/internal/user"
)

// ReportHandler 个人周报处理器
type ReportHandler struct {
	reports *report.Service
	users   *user.Service
}

// NewReportHandler 创建周报处理器
func NewReportHandler(reports *report.Service, users *user.Service) *ReportHandler {
	return &ReportHandler{reports: reports, users: users}
}

// List 周报列表，支持 user_id、project_id 过滤
// @Summary 周报列表
// @Tags Reports
// @Produce json
// @Param user_id query string false "提交人 ID"
// @Param project_id query string false "关联项目 ID"
// @Success 200 {object} common.APIResponse
// @Router /api/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	if projectID := c.Query("project_id"); projectID != "" {
		list, err := h.reports.ListByProject(c.Request.Context(), projectID)
		if err != nil {
			common.ResponseServerError(c, "查询周报失败")
			return
		}
		common.ResponseSuccess(c, list)
		return
	}

	list, err := h.reports.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		common.ResponseServerError(c, "查询周报失败")
		return
	}
	common.ResponseSuccess(c, list)
}

// Get 周报详情
func (h *ReportHandler) Get(c *gin.Context) {
	r, err := h.reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "周报不存在")
		return
	}
	common.ResponseSuccess(c, r)
}

// Create 提交周报，提交人为当前用户
func (h *ReportHandler) Create(c *gin.Context) {
	var req report.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	current := auth.CurrentUser(c)
	u, err := h.users.Get(c.Request.Context(), current.UserID)
	if err != nil {
		common.ResponseUnauthorized(c, "用户不存在")
		return
	}
	r, err := h.reports.Create(c.Request.Context(), u.ID, u.Username, &req)
	if err != nil {
		common.ResponseServerError(c, "提交周报失败")
		return
	}
	common.ResponseCreated(c, r)
}

// Delete 删除周报，仅本人或管理员
func (h *ReportHandler) Delete(c *gin.Context) {
	current := auth.CurrentUser(c)
	r, err := h.reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "周报不存在")
		return
	}
	if r.UserID != current.UserID && !current.IsAdmin() {
		common.ResponseForbidden(c, "无权删除该周报")
		return
	}
	if err := h.reports.Delete(c.Request.Context(), r.ID); err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			common.ResponseNotFound(c, "周报不存在")
			return
		}
		common.ResponseServerError(c, "删除周报失败")
		return
	}
	common.ResponseSuccessMessage(c, "周报已删除", nil)
}

// Export 导出周报为 Word 文档
func (h *ReportHandler) Export(c *gin.Context) {
	r, err := h.reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "周报不存在")
		return
	}

	details := make([]docx.Detail, 0, len(r.Details))
	for _, d := range r.Details {
		details = append(details, docx.Detail{
			ProjectTitle: d.ProjectTitle,
			Content:      d.Content,
			Plan:         d.Plan,
		})
	}

	dateStr := r.CreatedAt.Format("2006-01-02")
	data, err := docx.RenderWeeklyReport(r.Username, dateStr, r.Content, details)
	if err != nil {
		common.ResponseServerError(c, "导出失败")
		return
	}
	filename := fmt.Sprintf("weekly_report_%s.docx", dateStr)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
}
