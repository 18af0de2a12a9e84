package users

import (
	"errors"

	"github.com/gin-gonic/gin"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/user"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	users *user.Service
}

// NewUserHandler 创建用户处理器
func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// List 用户列表
// @Summary 全部用户
// @Tags Users
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		common.ResponseServerError(c, "查询用户失败")
		return
	}
	common.ResponseSuccess(c, list)
}

// Me 当前登录用户
// @Summary 当前用户信息
// @Tags Users
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	current := auth.CurrentUser(c)
	u, err := h.users.Get(c.Request.Context(), current.UserID)
	if err != nil {
		common.ResponseError(c, common.CodeUserNotFound, "用户不存在")
		return
	}
	common.ResponseSuccess(c, u)
}

// Get 按 ID 查询用户
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, common.CodeUserNotFound, "用户不存在")
		return
	}
	common.ResponseSuccess(c, u)
}

// Update 更新用户资料
// 普通用户只能改自己，管理员可以改任何人
func (h *UserHandler) Update(c *gin.Context) {
	current := auth.CurrentUser(c)
	targetID := c.Param("id")
	if targetID != current.UserID && !current.IsAdmin() {
		common.ResponseForbidden(c, "无权修改其他用户")
		return
	}

	var req user.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	u, err := h.users.Update(c.Request.Context(), targetID, &req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			common.ResponseError(c, common.CodeUserNotFound, "用户不存在")
			return
		}
		common.ResponseServerError(c, "更新用户失败")
		return
	}
	common.ResponseSuccess(c, u)
}

// Promote 提升为管理员，仅管理员可用
func (h *UserHandler) Promote(c *gin.Context) {
	if !auth.CurrentUser(c).IsAdmin() {
		common.ResponseForbidden(c, "仅管理员可提升用户")
		return
	}
	if err := h.users.Promote(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			common.ResponseError(c, common.CodeUserNotFound, "用户不存在")
			return
		}
		common.ResponseServerError(c, "提升用户失败")
		return
	}
	common.ResponseSuccessMessage(c, "已提升为管理员", nil)
}
