package project

import (
	"time"

	"gorm.io/datatypes"
)

// ProjectStatus 项目状态
type ProjectStatus string

const (
	StatusInitiation ProjectStatus = "INITIATION" // 立项
	StatusExecution  ProjectStatus = "EXECUTION"  // 执行
	StatusAcceptance ProjectStatus = "ACCEPTANCE" // 验收
	StatusClosed     ProjectStatus = "CLOSED"     // 结项
)

// ProjectPriority 项目优先级
type ProjectPriority string

const (
	PriorityNormal ProjectPriority = "NORMAL"
	PriorityHigh   ProjectPriority = "HIGH"
	PriorityUrgent ProjectPriority = "URGENT"
)

// Project 项目
type Project struct {
	ID               string                      `json:"id" gorm:"primaryKey;size:36"`
	Title            string                      `json:"title" gorm:"size:200;not null"`
	ProjectNumber    string                      `json:"project_number" gorm:"size:100"`
	CustomerName     string                      `json:"customer_name" gorm:"size:200"`
	Priority         ProjectPriority             `json:"priority" gorm:"size:20;not null;default:NORMAL"`
	Description      string                      `json:"description" gorm:"size:2000"`
	BusinessScenario string                      `json:"business_scenario" gorm:"size:2000"`
	Status           ProjectStatus               `json:"status" gorm:"size:20;not null;default:INITIATION;index"`
	StartDate        time.Time                   `json:"start_date" gorm:"type:date;not null"`
	EndDate          *time.Time                  `json:"end_date" gorm:"type:date"`
	ManagerID        string                      `json:"manager_id" gorm:"size:36;not null;index"` // 项目创建人
	Admins           datatypes.JSONSlice[string] `json:"admins"`                                   // 额外管理员
	Members          datatypes.JSONSlice[string] `json:"members"`                                  // 成员
	Budget           string                      `json:"budget" gorm:"size:100"`
	CreatedAt        time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
