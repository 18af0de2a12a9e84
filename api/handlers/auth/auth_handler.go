package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/user"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	users      *user.Service
	jwtService *auth.JWTService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(users *user.Service, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwtService: jwtService}
}

// LoginRequest 登录请求
type LoginRequest struct {
	JobNumber string `json:"job_number" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// TokenResponse 发放令牌的统一响应体
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        *user.User `json:"user"`
}

// Login 用户登录
// @Summary 工号密码登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录请求参数"
// @Success 200 {object} common.APIResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.JobNumber, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			common.ResponseError(c, common.CodeInvalidCredentials, "工号或密码错误")
			return
		}
		common.ResponseServerError(c, "登录失败")
		return
	}

	token, err := h.jwtService.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		common.ResponseServerError(c, "令牌签发失败")
		return
	}
	common.ResponseSuccess(c, TokenResponse{AccessToken: token, TokenType: "bearer", User: u})
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	JobNumber string `json:"job_number" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// Register 用户注册
// @Summary 注册新用户并直接发放令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册请求参数"
// @Success 200 {object} common.APIResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	u, err := h.users.Register(c.Request.Context(), &user.RegisterRequest{
		JobNumber: req.JobNumber,
		Name:      req.Name,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrJobNumberTaken) {
			common.ResponseError(c, common.CodeJobNumberTaken, "工号已被注册")
			return
		}
		common.ResponseServerError(c, "注册失败")
		return
	}

	token, err := h.jwtService.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		common.ResponseServerError(c, "令牌签发失败")
		return
	}
	common.ResponseSuccess(c, TokenResponse{AccessToken: token, TokenType: "bearer", User: u})
}

// Logout 登出，将当前令牌加入黑名单
// @Summary 登出
// @Tags Auth
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.ExtractTokenFromBearer(c.GetHeader("Authorization"))
	if token == "" {
		common.ResponseUnauthorized(c, "缺少令牌")
		return
	}
	claims, err := h.jwtService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		common.ResponseUnauthorized(c, "令牌无效")
		return
	}
	if err := h.jwtService.RevokeToken(c.Request.Context(), token, claims); err != nil {
		common.ResponseServerError(c, "登出失败")
		return
	}
	common.ResponseSuccessMessage(c, "已登出", nil)
}
