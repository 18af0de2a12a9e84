package event

import (
	"context"
	"errors"
	"time"

	"deptsync/internal/timeutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("事件不存在")

// Service 时间线事件服务
type Service struct {
	db *gorm.DB
}

// NewService 创建服务
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListFilter 事件查询过滤
type ListFilter struct {
	ProjectID string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

// List 按过滤条件列出事件，按日期倒序
func (s *Service) List(ctx context.Context, filter ListFilter) ([]TimelineEvent, error) {
	query := s.db.WithContext(ctx).Order("date desc")
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var events []TimelineEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CreateRequest 创建事件请求
type CreateRequest struct {
	ProjectID   string       `json:"project_id" binding:"required"`
	Content     string       `json:"content" binding:"required"`
	Date        *time.Time   `json:"date"`
	Type        string       `json:"type"`
	Attachments []Attachment `json:"attachments"`
}

// Create 创建事件，作者信息取自当前用户
func (s *Service) Create(ctx context.Context, authorID, authorName string, req *CreateRequest) (*TimelineEvent, error) {
	e := &TimelineEvent{
		ID:          uuid.New().String(),
		ProjectID:   req.ProjectID,
		AuthorID:    authorID,
		AuthorName:  authorName,
		Content:     req.Content,
		Date:        timeutil.NowBeijing(),
		Type:        TypeUpdate,
		Attachments: req.Attachments,
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Type != "" {
		e.Type = EventType(req.Type)
	}
	if e.Attachments == nil {
		e.Attachments = []Attachment{}
	}

	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// AppendGenerated 将生成的报告文本落入项目时间线
// 异步报告任务完成后调用，类型为 WEEKLY_REPORT 或 MONTHLY_REPORT
func (s *Service) AppendGenerated(ctx context.Context, projectID string, eventType EventType, authorName, content string) (*TimelineEvent, error) {
	e := &TimelineEvent{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		AuthorID:    "system",
		AuthorName:  authorName,
		Content:     content,
		Date:        timeutil.NowBeijing(),
		Type:        eventType,
		Attachments: []Attachment{},
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Get 事件详情
func (s *Service) Get(ctx context.Context, eventID string) (*TimelineEvent, error) {
	var e TimelineEvent
	if err := s.db.WithContext(ctx).Where("id = ?", eventID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// UpdateRequest 更新事件请求
type UpdateRequest struct {
	Content     *string       `json:"content"`
	Date        *time.Time    `json:"date"`
	Type        *string       `json:"type"`
	Attachments *[]Attachment `json:"attachments"`
}

// Update 更新事件
func (s *Service) Update(ctx context.Context, eventID string, req *UpdateRequest) (*TimelineEvent, error) {
	var e TimelineEvent
	if err := s.db.WithContext(ctx).Where("id = ?", eventID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Attachments != nil {
		e.Attachments = *req.Attachments
		updates["attachments"] = e.Attachments
	}
	if len(updates) == 0 {
		return &e, nil
	}

	if err := s.db.WithContext(ctx).Model(&e).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete 删除事件
func (s *Service) Delete(ctx context.Context, eventID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", eventID).Delete(&TimelineEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
