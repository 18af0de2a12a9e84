package report

import (
	"context"
	"errors"
	"time"

	"deptsync/internal/event"
	"deptsync/internal/timeutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("周报不存在")

// Service 周报服务
type Service struct {
	db *gorm.DB
}

// NewService 创建服务
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DetailRequest 周报项目条目
type DetailRequest struct {
	ProjectID    string `json:"project_id" binding:"required"`
	ProjectTitle string `json:"project_title" binding:"required"`
	Content      string `json:"content"`
	Plan         string `json:"plan"`
}

// CreateRequest 创建周报请求
type CreateRequest struct {
	WeekStartDate        time.Time          `json:"week_start_date" binding:"required"`
	Content              string             `json:"content"`
	LinkedProjectIDs     []string           `json:"linked_project_ids"`
	LinkedInspirationIDs []string           `json:"linked_inspiration_ids"`
	Attachments          []event.Attachment `json:"attachments"`
	Details              []DetailRequest    `json:"details"`
}

// Create 创建周报及其项目条目
func (s *Service) Create(ctx context.Context, userID, username string, req *CreateRequest) (*WeeklyReport, error) {
	r := &WeeklyReport{
		ID:                   uuid.New().String(),
		UserID:               userID,
		Username:             username,
		WeekStartDate:        req.WeekStartDate,
		Content:              req.Content,
		LinkedProjectIDs:     req.LinkedProjectIDs,
		LinkedInspirationIDs: req.LinkedInspirationIDs,
		Attachments:          req.Attachments,
		CreatedAt:            timeutil.NowBeijing(),
	}
	if r.LinkedProjectIDs == nil {
		r.LinkedProjectIDs = []string{}
	}
	if r.LinkedInspirationIDs == nil {
		r.LinkedInspirationIDs = []string{}
	}
	if r.Attachments == nil {
		r.Attachments = []event.Attachment{}
	}
	for _, d := range req.Details {
		r.Details = append(r.Details, WeeklyReportDetail{
			ID:           uuid.New().String(),
			ReportID:     r.ID,
			ProjectID:    d.ProjectID,
			ProjectTitle: d.ProjectTitle,
			Content:      d.Content,
			Plan:         d.Plan,
		})
	}

	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// List 列出周报，userID 非空时按提交人过滤，按创建时间倒序
func (s *Service) List(ctx context.Context, userID string) ([]WeeklyReport, error) {
	query := s.db.WithContext(ctx).Preload("Details").Order("created_at desc")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var reports []WeeklyReport
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByProject 列出关联到指定项目的周报
// JSON 数组的包含匹配在各数据库上方言不一，这里在应用侧过滤
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]WeeklyReport, error) {
	reports, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	filtered := make([]WeeklyReport, 0, len(reports))
	for _, r := range reports {
		if r.linksProject(projectID) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (r *WeeklyReport) linksProject(projectID string) bool {
	for _, id := range r.LinkedProjectIDs {
		if id == projectID {
			return true
		}
	}
	for _, d := range r.Details {
		if d.ProjectID == projectID {
			return true
		}
	}
	return false
}

// Get 获取周报详情
func (s *Service) Get(ctx context.Context, reportID string) (*WeeklyReport, error) {
	var r WeeklyReport
	if err := s.db.WithContext(ctx).Preload("Details").
		Where("id = ?", reportID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Delete 删除周报（连带项目条目）
func (s *Service) Delete(ctx context.Context, reportID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", reportID).Delete(&WeeklyReport{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReportNotFound
		}
		return tx.Where("report_id = ?", reportID).Delete(&WeeklyReportDetail{}).Error
	})
}
