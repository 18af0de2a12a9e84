package inspirations

import (
	"errors"

	"github.com/gin-gonic/gin"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/inspiration"
	"deptsync/internal/user"
)

// InspirationHandler 灵感池处理器
type InspirationHandler struct {
	inspirations *inspiration.Service
	users        *user.Service
}

// NewInspirationHandler 创建灵感处理器
func NewInspirationHandler(inspirations *inspiration.Service, users *user.Service) *InspirationHandler {
	return &InspirationHandler{inspirations: inspirations, users: users}
}

// List 灵感列表
// @Summary 全部灵感
// @Tags Inspirations
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/inspirations [get]
func (h *InspirationHandler) List(c *gin.Context) {
	list, err := h.inspirations.List(c.Request.Context())
	if err != nil {
		common.ResponseServerError(c, "查询灵感失败")
		return
	}
	common.ResponseSuccess(c, list)
}

// Create 分享灵感
func (h *InspirationHandler) Create(c *gin.Context) {
	var req inspiration.CreateRequest
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
	insp, err := h.inspirations.Create(c.Request.Context(), u.ID, u.Username, &req)
	if err != nil {
		common.ResponseServerError(c, "创建灵感失败")
		return
	}
	common.ResponseCreated(c, insp)
}

// Update 编辑灵感，仅作者或管理员
func (h *InspirationHandler) Update(c *gin.Context) {
	var req inspiration.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	current := auth.CurrentUser(c)
	insp, err := h.inspirations.Update(c.Request.Context(), c.Param("id"), current.UserID, current.IsAdmin(), &req)
	if err != nil {
		switch {
		case errors.Is(err, inspiration.ErrInspirationNotFound):
			common.ResponseNotFound(c, "灵感不存在")
		case errors.Is(err, inspiration.ErrNotOwner):
			common.ResponseForbidden(c, "无权编辑该灵感")
		default:
			common.ResponseServerError(c, "更新灵感失败")
		}
		return
	}
	common.ResponseSuccess(c, insp)
}

// Delete 删除灵感，仅作者或管理员
func (h *InspirationHandler) Delete(c *gin.Context) {
	current := auth.CurrentUser(c)
	err := h.inspirations.Delete(c.Request.Context(), c.Param("id"), current.UserID, current.IsAdmin())
	if err != nil {
		switch {
		case errors.Is(err, inspiration.ErrInspirationNotFound):
			common.ResponseNotFound(c, "灵感不存在")
		case errors.Is(err, inspiration.ErrNotOwner):
			common.ResponseForbidden(c, "无权删除该灵感")
		default:
			common.ResponseServerError(c, "删除灵感失败")
		}
		return
	}
	common.ResponseSuccessMessage(c, "灵感已删除", nil)
}
