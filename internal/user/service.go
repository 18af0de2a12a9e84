package user

import (
	"context"
	"errors"
	"fmt"

	"deptsync/internal/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrJobNumberTaken     = errors.New("工号已存在")
	ErrInvalidCredentials = errors.New("工号或密码错误")
)

// Service 用户服务
type Service struct {
	db *gorm.DB
}

// NewService 创建服务
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	JobNumber string `json:"job_number" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// Register 注册新用户，展示名固定为 姓名(工号)
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("job_number = ?", req.JobNumber).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrJobNumberTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("生成密码哈希失败: %w", err)
	}

	u := &User{
		ID:           uuid.New().String(),
		JobNumber:    req.JobNumber,
		Name:         req.Name,
		PasswordHash: hash,
		Username:     fmt.Sprintf("%s(%s)", req.Name, req.JobNumber),
		Role:         RoleEmployee,
		Skills:       []string{},
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate 工号密码登录
func (s *Service) Authenticate(ctx context.Context, jobNumber, password string) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("job_number = ?", jobNumber).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// List 列出所有用户
func (s *Service) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get 获取用户详情
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateRequest 用户信息更新请求
type UpdateRequest struct {
	Name   *string   `json:"name"`
	Avatar *string   `json:"avatar"`
	Skills *[]string `json:"skills"`
}

// Update 更新用户信息
func (s *Service) Update(ctx context.Context, userID string, req *UpdateRequest) (*User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["username"] = fmt.Sprintf("%s(%s)", *req.Name, u.JobNumber)
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Skills != nil {
		u.Skills = *req.Skills
		updates["skills"] = u.Skills
	}
	if len(updates) == 0 {
		return u, nil
	}

	if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Promote 提升为管理员
func (s *Service) Promote(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).Update("role", RoleAdmin)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
