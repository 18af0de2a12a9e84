package report

import (
	"time"

	"deptsync/internal/event"

	"gorm.io/datatypes"
)

// WeeklyReport 个人周报
type WeeklyReport struct {
	ID                   string                                `json:"id" gorm:"primaryKey;size:36"`
	UserID               string                                `json:"user_id" gorm:"size:36;not null;index"`
	Username             string                                `json:"username" gorm:"size:150;not null"`
	WeekStartDate        time.Time                             `json:"week_start_date" gorm:"not null"`
	Content              string                                `json:"content" gorm:"size:5000"` // 全文摘要
	LinkedProjectIDs     datatypes.JSONSlice[string]           `json:"linked_project_ids"`
	LinkedInspirationIDs datatypes.JSONSlice[string]           `json:"linked_inspiration_ids"`
	Attachments          datatypes.JSONSlice[event.Attachment] `json:"attachments"`
	CreatedAt            time.Time                             `json:"created_at"`

	Details []WeeklyReportDetail `json:"details" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}

func (WeeklyReport) TableName() string {
	return "weekly_reports"
}

// WeeklyReportDetail 周报中针对单个项目的条目
type WeeklyReportDetail struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	ReportID     string `json:"report_id" gorm:"size:36;not null;index"`
	ProjectID    string `json:"project_id" gorm:"size:36;not null"`
	ProjectTitle string `json:"project_title" gorm:"size:200;not null"`
	Content      string `json:"content" gorm:"size:2000"`
	Plan         string `json:"plan" gorm:"size:2000"`
}

func (WeeklyReportDetail) TableName() string {
	return "weekly_report_details"
}
