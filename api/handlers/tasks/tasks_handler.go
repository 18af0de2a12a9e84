package tasks

import (
	"errors"

	"github.com/gin-gonic/gin"

	"deptsync/internal/common"
	"deptsync/internal/task"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	tasks *task.Service
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(tasks *task.Service) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List 任务列表，可按 project_id 过滤
// @Summary 任务列表
// @Tags Tasks
// @Produce json
// @Param project_id query string false "项目 ID"
// @Success 200 {object} common.APIResponse
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.tasks.List(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		common.ResponseServerError(c, "查询任务失败")
		return
	}
	common.ResponseSuccess(c, list)
}

// Get 任务详情
func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "任务不存在")
		return
	}
	common.ResponseSuccess(c, t)
}

// Create 创建任务
func (h *TaskHandler) Create(c *gin.Context) {
	var req task.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	t, err := h.tasks.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseServerError(c, "创建任务失败")
		return
	}
	common.ResponseCreated(c, t)
}

// Update 更新任务，进度满 100 自动置为已完成
func (h *TaskHandler) Update(c *gin.Context) {
	var req task.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	t, err := h.tasks.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			common.ResponseNotFound(c, "任务不存在")
			return
		}
		common.ResponseServerError(c, "更新任务失败")
		return
	}
	common.ResponseSuccess(c, t)
}

// Delete 删除任务
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			common.ResponseNotFound(c, "任务不存在")
			return
		}
		common.ResponseServerError(c, "删除任务失败")
		return
	}
	common.ResponseSuccessMessage(c, "任务已删除", nil)
}
