package projects

import (
	"errors"

	"github.com/gin-gonic/gin"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/project"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projects *project.Service
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projects *project.Service) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List 项目列表
// @Summary 全部项目
// @Tags Projects
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.projects.List(c.Request.Context())
	if err != nil {
		common.ResponseServerError(c, "查询项目失败")
		return
	}
	common.ResponseSuccess(c, list)
}

// Get 项目详情
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "项目不存在")
		return
	}
	common.ResponseSuccess(c, p)
}

// Create 创建项目，创建者自动成为负责人
func (h *ProjectHandler) Create(c *gin.Context) {
	var req project.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	p, err := h.projects.Create(c.Request.Context(), auth.CurrentUser(c).UserID, &req)
	if err != nil {
		common.ResponseServerError(c, "创建项目失败")
		return
	}
	common.ResponseCreated(c, p)
}

// Update 更新项目，仅负责人、项目管理员或系统管理员
func (h *ProjectHandler) Update(c *gin.Context) {
	current := auth.CurrentUser(c)
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "项目不存在")
		return
	}
	if !p.CanManage(current.UserID) && !current.IsAdmin() {
		common.ResponseForbidden(c, "无权修改该项目")
		return
	}

	var req project.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	updated, err := h.projects.Update(c.Request.Context(), p.ID, &req)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			common.ResponseNotFound(c, "项目不存在")
			return
		}
		common.ResponseServerError(c, "更新项目失败")
		return
	}
	common.ResponseSuccess(c, updated)
}

// Delete 删除项目，仅负责人或系统管理员
func (h *ProjectHandler) Delete(c *gin.Context) {
	current := auth.CurrentUser(c)
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseNotFound(c, "项目不存在")
		return
	}
	if p.ManagerID != current.UserID && !current.IsAdmin() {
		common.ResponseForbidden(c, "无权删除该项目")
		return
	}
	if err := h.projects.Delete(c.Request.Context(), p.ID); err != nil {
		common.ResponseServerError(c, "删除项目失败")
		return
	}
	common.ResponseSuccessMessage(c, "项目已删除", nil)
}
