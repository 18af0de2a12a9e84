package llmreport

import (
	"encoding/json"
	"fmt"
	"time"
)

// 报告生成核心不查询存储：调用方（CRUD 层或 HTTP 请求体）按次传入
// 已物化的只读视图，核心内部不保留任何引用。

// ProjectView 项目视图
// Events/Tasks 仅在个人报告模式下随项目传入
type ProjectView struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Status       string              `json:"status"`
	Description  string              `json:"description"`
	CustomerName string              `json:"customer_name"`
	Events       []TimelineEventView `json:"events,omitempty"`
	Tasks        []TaskView          `json:"tasks,omitempty"`
}

// TaskView 任务视图，摘要只使用负责人数量而非身份
type TaskView struct {
	Title       string   `json:"title"`
	Progress    int      `json:"progress"`
	Status      string   `json:"status"`
	AssigneeIDs []string `json:"assignee_ids"`
}

// TimelineEventView 时间线事件视图
type TimelineEventView struct {
	ProjectID  string   `json:"project_id"`
	Date       FlexDate `json:"date"`
	Type       string   `json:"type"`
	AuthorName string   `json:"author_name"`
	Content    string   `json:"content"`
}

// ReportDetailView 个人周报中的单项目条目
type ReportDetailView struct {
	ProjectID string `json:"project_id"`
	Content   string `json:"content"`
	Plan      string `json:"plan"`
}

// PersonalReportView 个人周报视图，用于汇总项目周报
type PersonalReportView struct {
	Username         string             `json:"username"`
	Content          string             `json:"content"`
	LinkedProjectIDs []string           `json:"linked_project_ids"`
	Details          []ReportDetailView `json:"details"`
}

// InspirationView 灵感视图
type InspirationView struct {
	Content string `json:"content"`
}

// FlexDate 兼容两种日期表示：ISO 文本或结构化时间戳
// 文本形式不做解析校验，摘要只取前 10 个字符（期望 YYYY-MM-DD 前缀）
type FlexDate struct {
	raw string
	t   time.Time
}

// DateString 以文本构造日期
func DateString(s string) FlexDate {
	return FlexDate{raw: s}
}

// DateTime 以时间戳构造日期
func DateTime(t time.Time) FlexDate {
	return FlexDate{t: t}
}

// UnmarshalJSON 文本原样保留，数字按 Unix 秒解释
func (d *FlexDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.raw = s
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		d.t = time.Unix(n, 0).UTC()
		return nil
	}
	return fmt.Errorf("无法识别的日期格式: %s", string(data))
}

// MarshalJSON 输出原始文本或 RFC3339
func (d FlexDate) MarshalJSON() ([]byte, error) {
	if d.raw != "" {
		return json.Marshal(d.raw)
	}
	if !d.t.IsZero() {
		return json.Marshal(d.t.Format(time.RFC3339))
	}
	return json.Marshal("")
}

// Short 取日期部分：文本截取前 10 个字符，时间戳格式化为 YYYY-MM-DD
// 畸形文本同样返回其前缀，不视为错误
func (d FlexDate) Short() string {
	if d.raw != "" {
		if len(d.raw) > 10 {
			return d.raw[:10]
		}
		return d.raw
	}
	if !d.t.IsZero() {
		return d.t.Format("2006-01-02")
	}
	return ""
}
