package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("项目不存在")

// Service 项目服务
type Service struct {
	db *gorm.DB
}

// NewService 创建服务
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateRequest 创建项目请求
type CreateRequest struct {
	Title            string     `json:"title" binding:"required"`
	ProjectNumber    string     `json:"project_number"`
	CustomerName     string     `json:"customer_name"`
	Priority         string     `json:"priority"`
	Description      string     `json:"description"`
	BusinessScenario string     `json:"business_scenario"`
	Status           string     `json:"status"`
	StartDate        time.Time  `json:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate          *time.Time `json:"end_date" time_format:"2006-01-02"`
	Admins           []string   `json:"admins"`
	Members          []string   `json:"members"`
	Budget           string     `json:"budget"`
}

// Create 创建项目，managerID 为创建人
func (s *Service) Create(ctx context.Context, managerID string, req *CreateRequest) (*Project, error) {
	p := &Project{
		ID:               uuid.New().String(),
		Title:            req.Title,
		ProjectNumber:    req.ProjectNumber,
		CustomerName:     req.CustomerName,
		Priority:         PriorityNormal,
		Description:      req.Description,
		BusinessScenario: req.BusinessScenario,
		Status:           StatusInitiation,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ManagerID:        managerID,
		Admins:           req.Admins,
		Members:          req.Members,
		Budget:           req.Budget,
	}
	if req.Priority != "" {
		p.Priority = ProjectPriority(req.Priority)
	}
	if req.Status != "" {
		p.Status = ProjectStatus(req.Status)
	}
	if p.Admins == nil {
		p.Admins = []string{}
	}
	if p.Members == nil {
		p.Members = []string{}
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// List 列出所有项目
func (s *Service) List(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Get 获取项目详情
func (s *Service) Get(ctx context.Context, projectID string) (*Project, error) {
	var p Project
	if err := s.db.WithContext(ctx).Where("id = ?", projectID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateRequest 更新项目请求
type UpdateRequest struct {
	Title            *string    `json:"title"`
	ProjectNumber    *string    `json:"project_number"`
	CustomerName     *string    `json:"customer_name"`
	Priority         *string    `json:"priority"`
	Description      *string    `json:"description"`
	BusinessScenario *string    `json:"business_scenario"`
	Status           *string    `json:"status"`
	StartDate        *time.Time `json:"start_date" time_format:"2006-01-02"`
	EndDate          *time.Time `json:"end_date" time_format:"2006-01-02"`
	Admins           *[]string  `json:"admins"`
	Members          *[]string  `json:"members"`
	Budget           *string    `json:"budget"`
}

// Update 更新项目
func (s *Service) Update(ctx context.Context, projectID string, req *UpdateRequest) (*Project, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ProjectNumber != nil {
		updates["project_number"] = *req.ProjectNumber
	}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BusinessScenario != nil {
		updates["business_scenario"] = *req.BusinessScenario
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.Admins != nil {
		p.Admins = *req.Admins
		updates["admins"] = p.Admins
	}
	if req.Members != nil {
		p.Members = *req.Members
		updates["members"] = p.Members
	}
	if req.Budget != nil {
		updates["budget"] = *req.Budget
	}
	if len(updates) == 0 {
		return p, nil
	}

	if err := s.db.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, projectID)
}

// Delete 删除项目
func (s *Service) Delete(ctx context.Context, projectID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", projectID).Delete(&Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// CanManage 是否具备项目管理权限（创建人或附加管理员）
func (p *Project) CanManage(userID string) bool {
	if p.ManagerID == userID {
		return true
	}
	for _, id := range p.Admins {
		if id == userID {
			return true
		}
	}
	return false
}
