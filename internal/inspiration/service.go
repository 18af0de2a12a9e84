package inspiration

import (
	"context"
	"errors"

	"deptsync/internal/timeutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInspirationNotFound = errors.New("灵感不存在")
	ErrNotOwner            = errors.New("仅作者可修改该灵感")
)

// Service 灵感墙服务
type Service struct {
	db *gorm.DB
}

// NewService 创建服务
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List 列出全部灵感，按创建时间倒序
func (s *Service) List(ctx context.Context) ([]Inspiration, error) {
	var items []Inspiration
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateRequest 创建灵感请求
type CreateRequest struct {
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
	Color   string   `json:"color"`
}

// Create 创建灵感
func (s *Service) Create(ctx context.Context, authorID, authorName string, req *CreateRequest) (*Inspiration, error) {
	item := &Inspiration{
		ID:         uuid.New().String(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    req.Content,
		Tags:       req.Tags,
		Color:      req.Color,
		CreatedAt:  timeutil.NowBeijing(),
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.Color == "" {
		item.Color = "#fef3c7"
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateRequest 更新灵感请求
type UpdateRequest struct {
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
	Color   *string   `json:"color"`
}

// Update 更新灵感，仅作者或管理员可操作
func (s *Service) Update(ctx context.Context, inspirationID, userID string, isAdmin bool, req *UpdateRequest) (*Inspiration, error) {
	var item Inspiration
	if err := s.db.WithContext(ctx).Where("id = ?", inspirationID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInspirationNotFound
		}
		return nil, err
	}
	if item.AuthorID != userID && !isAdmin {
		return nil, ErrNotOwner
	}

	updates := make(map[string]interface{})
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
		updates["tags"] = item.Tags
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if len(updates) == 0 {
		return &item, nil
	}

	if err := s.db.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete 删除灵感，仅作者或管理员可操作
func (s *Service) Delete(ctx context.Context, inspirationID, userID string, isAdmin bool) error {
	var item Inspiration
	if err := s.db.WithContext(ctx).Where("id = ?", inspirationID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInspirationNotFound
		}
		return err
	}
	if item.AuthorID != userID && !isAdmin {
		return ErrNotOwner
	}
	return s.db.WithContext(ctx).Delete(&item).Error
}
