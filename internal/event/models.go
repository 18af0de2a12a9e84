package event

import (
	"time"

	"gorm.io/datatypes"
)

// EventType 时间线事件类型
type EventType string

const (
	TypeUpdate         EventType = "UPDATE"          // 日常更新
	TypeMilestone      EventType = "MILESTONE"       // 里程碑
	TypeIssue          EventType = "ISSUE"           // 问题
	TypeWeeklyReport   EventType = "WEEKLY_REPORT"   // 周报
	TypeMonthlyReport  EventType = "MONTHLY_REPORT"  // 月报
	TypeMeetingMinutes EventType = "MEETING_MINUTES" // 会议纪要
)

// Attachment 附件
type Attachment struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Folder  string `json:"folder,omitempty"`
}

// TimelineEvent 项目时间线事件
type TimelineEvent struct {
	ID          string                          `json:"id" gorm:"primaryKey;size:36"`
	ProjectID   string                          `json:"project_id" gorm:"size:36;not null;index"`
	AuthorID    string                          `json:"author_id" gorm:"size:36;not null"`
	AuthorName  string                          `json:"author_name" gorm:"size:150;not null"`
	Content     string                          `json:"content" gorm:"size:5000;not null"`
	Date        time.Time                       `json:"date" gorm:"not null;index"`
	Type        EventType                       `json:"type" gorm:"size:30;not null;default:UPDATE"`
	Attachments datatypes.JSONSlice[Attachment] `json:"attachments"`
	CreatedAt   time.Time                       `json:"created_at" gorm:"autoCreateTime"`
}

func (TimelineEvent) TableName() string {
	return "events"
}
