package task

import (
	"time"

	"gorm.io/datatypes"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"     // 待开始
	StatusInProgress TaskStatus = "IN_PROGRESS" // 进行中
	StatusCompleted  TaskStatus = "COMPLETED"   // 已完成
)

// Remark 任务跟进备注
type Remark struct {
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	Date       string `json:"date"`
}

// Task 任务
type Task struct {
	ID          string                      `json:"id" gorm:"primaryKey;size:36"`
	ProjectID   string                      `json:"project_id" gorm:"size:36;not null;index"`
	Title       string                      `json:"title" gorm:"size:200;not null"`
	Description string                      `json:"description" gorm:"size:2000"`
	AssigneeIDs datatypes.JSONSlice[string] `json:"assignee_ids"` // 负责人
	Deadline    time.Time                   `json:"deadline" gorm:"type:date;not null"`
	Progress    int                         `json:"progress" gorm:"not null;default:0"` // 0-100
	Status      TaskStatus                  `json:"status" gorm:"size:20;not null;default:PENDING;index"`
	Remarks     datatypes.JSONSlice[Remark] `json:"remarks"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
