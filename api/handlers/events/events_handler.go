package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/docx"
	"deptsync/internal/event"
	"deptsync/internal/user"
)

// EventHandler 时间线事件处理器
type EventHandler struct {
	events *event.Service
	users  *user.Service
}

// NewEventHandler 创建事件处理器
func NewEventHandler(events *event.Service, users *user.Service) *EventHandler {
	return &EventHandler{events: events, users: users}
}

// List 事件列表，支持 project_id、type、start_date、end_date 过滤
// @Summary 时间线事件列表
// @Tags Events
// @Produce json
// @Param project_id query string false "项目 ID"
// @Param type query string false "事件类型"
// @Param start_date query string false "起始日期 YYYY-MM-DD"
// @Param end_date query string false "截止日期 YYYY-MM-DD"
// @Success 200 {object} common.APIResponse
// @Router /api/events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := event.ListFilter{
		ProjectID: c.Query("project_id"),
		Type:      c.Query("type"),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			common.ResponseBadRequest(c, "start_date 格式错误，应为 YYYY-MM-DD")
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			common.ResponseBadRequest(c, "end_date 格式错误，应为 YYYY-MM-DD")
			return
		}
		// 截止日期取当日末尾
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	list, err := h.events.List(c.Request.Context(), filter)
	if err != nil {
		common.ResponseServerError(c, "查询事件失败")
		return
	}
	common.ResponseSuccess(c, list)
}

// Create 创建事件，作者为当前用户
func (h *EventHandler) Create(c *gin.Context) {
	var req event.CreateRequest
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
	e, err := h.events.Create(c.Request.Context(), u.ID, u.Username, &req)
	if err != nil {
		common.ResponseServerError(c, "创建事件失败")
		return
	}
	common.ResponseCreated(c, e)
}

// Update 更新事件
func (h *EventHandler) Update(c *gin.Context) {
	var req event.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	e, err := h.events.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			common.ResponseNotFound(c, "事件不存在")
			return
		}
		common.ResponseServerError(c, "更新事件失败")
		return
	}
	common.ResponseSuccess(c, e)
}

// Delete 删除事件
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			common.ResponseNotFound(c, "事件不存在")
			return
		}
		common.ResponseServerError(c, "删除事件失败")
		return
	}
	common.ResponseSuccessMessage(c, "事件已删除", nil)
}

// Export 导出单条事件正文为 Word 文档
func (h *EventHandler) Export(c *gin.Context) {
	e, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "事件不存在")
		return
	}
	data, err := docx.RenderEvent(e.Content)
	if err != nil {
		common.ResponseServerError(c, "导出失败")
		return
	}
	filename := fmt.Sprintf("event_%s.docx", shortID(e.ID))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
}

// shortID 截取 ID 前缀作为文件名片段，历史数据的短 ID 原样返回
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
