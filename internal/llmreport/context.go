package llmreport

import (
	"fmt"
	"strings"
)

// 上下文构建器：把只读视图拍平成提示词占位符需要的文本。
// 全部是纯函数，不触网不触库。

// 空集合哨兵文案
const (
	sentinelNoDeptUpdates    = "本周期无重大更新记录。"
	sentinelNoTimelineEvents = "此期间无时间线更新记录。"
	sentinelNoTaskProgress   = "暂无任务进度数据。"
	sentinelNoPersonalData   = "- No updates recorded in system."
)

// defaultCustomerName 项目未填写客户时的默认归属
const defaultCustomerName = "内部"

// buildDeptMonthlyContext 部门月报上下文：按项目分块，块内列出周期内动态
func buildDeptMonthlyContext(projects []ProjectView, events []TimelineEventView, startDate, endDate string) map[string]string {
	eventsByProject := make(map[string][]TimelineEventView)
	for _, ev := range events {
		eventsByProject[ev.ProjectID] = append(eventsByProject[ev.ProjectID], ev)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "报告周期: %s 至 %s\n\n", startDate, endDate)
	for _, p := range projects {
		fmt.Fprintf(&sb, "项目: %s (状态: %s)\n", p.Title, p.Status)
		if evs := eventsByProject[p.ID]; len(evs) > 0 {
			sb.WriteString("本周期动态:\n")
			for _, ev := range evs {
				fmt.Fprintf(&sb, "- [%s] %s: %s\n", ev.Date.Short(), ev.Type, ev.Content)
			}
		} else {
			sb.WriteString(sentinelNoDeptUpdates + "\n")
		}
		sb.WriteString("\n")
	}

	return map[string]string{"context": sb.String()}
}

// buildProjectWeeklyContext 项目周报上下文：汇总成员周报中与该项目相关的条目
// 明细条目优先于整报内容；没有任何成员提及该项目时返回 false
func buildProjectWeeklyContext(project ProjectView, reports []PersonalReportView, weekRange string) (map[string]string, bool) {
	var sb strings.Builder
	for _, r := range reports {
		if detail, ok := matchDetail(r.Details, project.ID); ok {
			fmt.Fprintf(&sb, "- 成员 %s: %s (计划: %s)\n", r.Username, detail.Content, detail.Plan)
			continue
		}
		if containsString(r.LinkedProjectIDs, project.ID) {
			fmt.Fprintf(&sb, "- 成员 %s: %s\n", r.Username, r.Content)
		}
	}
	if sb.Len() == 0 {
		return nil, false
	}
	return map[string]string{
		"project_title": project.Title,
		"week_range":    weekRange,
		"team_updates":  sb.String(),
	}, true
}

func matchDetail(details []ReportDetailView, projectID string) (ReportDetailView, bool) {
	for _, d := range details {
		if d.ProjectID == projectID {
			return d, true
		}
	}
	return ReportDetailView{}, false
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// buildProjectContext 单项目阶段报告上下文：元数据、时间线文本、任务进度文本
func buildProjectContext(project ProjectView, events []TimelineEventView, tasks []TaskView, startDate, endDate string) map[string]string {
	var eventText string
	if len(events) > 0 {
		lines := make([]string, 0, len(events))
		for _, ev := range events {
			lines = append(lines, fmt.Sprintf("- [%s] (%s) %s: %s", ev.Date.Short(), ev.Type, ev.AuthorName, ev.Content))
		}
		eventText = strings.Join(lines, "\n")
	} else {
		eventText = sentinelNoTimelineEvents
	}

	var taskText string
	if len(tasks) > 0 {
		lines := make([]string, 0, len(tasks))
		for _, t := range tasks {
			lines = append(lines, fmt.Sprintf("- 任务 \"%s\": 进度 %d%%, 状态 %s, 负责人 %d人", t.Title, t.Progress, t.Status, len(t.AssigneeIDs)))
		}
		taskText = strings.Join(lines, "\n")
	} else {
		taskText = sentinelNoTaskProgress
	}

	customer := project.CustomerName
	if customer == "" {
		customer = defaultCustomerName
	}

	return map[string]string{
		"project_title": project.Title,
		"start_date":    startDate,
		"end_date":      endDate,
		"description":   project.Description,
		"status":        project.Status,
		"customer":      customer,
		"event_text":    eventText,
		"task_text":     taskText,
	}
}

// buildPersonalContext 个人周报草稿上下文：逐项目的近期动态加上灵感池摘录
func buildPersonalContext(username string, projects []ProjectView, inspirations []InspirationView) map[string]string {
	var sb strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&sb, "\nProject ID: %s\nTitle: %s\nRecent Activity:\n", p.ID, p.Title)
		if len(p.Events) == 0 && len(p.Tasks) == 0 {
			sb.WriteString(sentinelNoPersonalData + "\n")
			continue
		}
		for _, ev := range p.Events {
			fmt.Fprintf(&sb, "- (Timeline Event) %s\n", ev.Content)
		}
		for _, t := range p.Tasks {
			fmt.Fprintf(&sb, "- (Task) \"%s\": Status %s, Progress %d%%\n", t.Title, t.Status, t.Progress)
		}
	}

	ideaLines := make([]string, 0, len(inspirations))
	for _, insp := range inspirations {
		ideaLines = append(ideaLines, fmt.Sprintf("- Shared Idea: %s", insp.Content))
	}

	return map[string]string{
		"username":            username,
		"project_context":     sb.String(),
		"inspiration_context": strings.Join(ideaLines, "\n"),
	}
}
