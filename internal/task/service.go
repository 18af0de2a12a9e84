package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("任务不存在")

// Service 任务服务
type Service struct {
	db *gorm.DB
}

// NewService 创建服务
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateRequest 创建任务请求
type CreateRequest struct {
	ProjectID   string    `json:"project_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	AssigneeIDs []string  `json:"assignee_ids"`
	Deadline    time.Time `json:"deadline" binding:"required" time_format:"2006-01-02"`
}

// Create 创建任务
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Task, error) {
	t := &Task{
		ID:          uuid.New().String(),
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeIDs: req.AssigneeIDs,
		Deadline:    req.Deadline,
		Progress:    0,
		Status:      StatusPending,
		Remarks:     []Remark{},
	}
	if t.AssigneeIDs == nil {
		t.AssigneeIDs = []string{}
	}

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// List 列出任务，projectID 非空时按项目过滤
func (s *Service) List(ctx context.Context, projectID string) ([]Task, error) {
	query := s.db.WithContext(ctx).Order("created_at desc")
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	var tasks []Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get 获取任务详情
func (s *Service) Get(ctx context.Context, taskID string) (*Task, error) {
	var t Task
	if err := s.db.WithContext(ctx).Where("id = ?", taskID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// UpdateRequest 更新任务请求
type UpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssigneeIDs *[]string  `json:"assignee_ids"`
	Deadline    *time.Time `json:"deadline" time_format:"2006-01-02"`
	Progress    *int       `json:"progress" binding:"omitempty,min=0,max=100"`
	Status      *string    `json:"status"`
	Remarks     *[]Remark  `json:"remarks"`
}

// Update 更新任务
func (s *Service) Update(ctx context.Context, taskID string, req *UpdateRequest) (*Task, error) {
	t, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AssigneeIDs != nil {
		t.AssigneeIDs = *req.AssigneeIDs
		updates["assignee_ids"] = t.AssigneeIDs
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
		// 进度拉满时自动置为已完成
		if *req.Progress >= 100 && req.Status == nil {
			updates["status"] = StatusCompleted
		}
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Remarks != nil {
		t.Remarks = *req.Remarks
		updates["remarks"] = t.Remarks
	}
	if len(updates) == 0 {
		return t, nil
	}

	if err := s.db.WithContext(ctx).Model(t).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, taskID)
}

// Delete 删除任务
func (s *Service) Delete(ctx context.Context, taskID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", taskID).Delete(&Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
