package llmreport

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDeptMonthlyContext(t *testing.T) {
	t.Run("有动态的项目逐行列出事件", func(t *testing.T) {
		projects := []ProjectView{{ID: "p1", Title: "数字化平台", Status: "EXECUTION"}}
		events := []TimelineEventView{
			{ProjectID: "p1", Date: DateString("2025-06-03T10:00:00"), Type: "UPDATE", Content: "完成联调"},
		}
		vars := buildDeptMonthlyContext(projects, events, "2025-06-01", "2025-06-30")

		ctx := vars["context"]
		assert.True(t, strings.HasPrefix(ctx, "报告周期: 2025-06-01 至 2025-06-30\n\n"))
		assert.Contains(t, ctx, "项目: 数字化平台 (状态: EXECUTION)\n")
		assert.Contains(t, ctx, "本周期动态:\n")
		assert.Contains(t, ctx, "- [2025-06-03] UPDATE: 完成联调\n")
	})

	t.Run("无动态的项目使用哨兵文案", func(t *testing.T) {
		projects := []ProjectView{{ID: "p1", Title: "平台", Status: "INITIATION"}}
		vars := buildDeptMonthlyContext(projects, nil, "2025-06-01", "2025-06-30")

		assert.Contains(t, vars["context"], "本周期无重大更新记录。\n")
		assert.NotContains(t, vars["context"], "本周期动态:")
	})

	t.Run("事件只归入所属项目", func(t *testing.T) {
		projects := []ProjectView{
			{ID: "p1", Title: "甲", Status: "EXECUTION"},
			{ID: "p2", Title: "乙", Status: "EXECUTION"},
		}
		events := []TimelineEventView{
			{ProjectID: "p2", Date: DateString("2025-06-05"), Type: "MILESTONE", Content: "验收通过"},
		}
		vars := buildDeptMonthlyContext(projects, events, "2025-06-01", "2025-06-30")

		ctx := vars["context"]
		blockA := ctx[strings.Index(ctx, "项目: 甲"):strings.Index(ctx, "项目: 乙")]
		assert.Contains(t, blockA, "本周期无重大更新记录。")
		assert.Contains(t, ctx, "- [2025-06-05] MILESTONE: 验收通过\n")
	})
}

func TestBuildProjectWeeklyContext(t *testing.T) {
	project := ProjectView{ID: "p1", Title: "中台项目"}

	t.Run("明细条目优先于整报内容", func(t *testing.T) {
		reports := []PersonalReportView{{
			Username:         "张三(1001)",
			Content:          "整体忙于其他事项",
			LinkedProjectIDs: []string{"p1"},
			Details: []ReportDetailView{
				{ProjectID: "p1", Content: "完成接口开发", Plan: "联调测试"},
			},
		}}
		vars, ok := buildProjectWeeklyContext(project, reports, "2025-06-02 ~ 2025-06-08")

		require.True(t, ok)
		assert.Equal(t, "- 成员 张三(1001): 完成接口开发 (计划: 联调测试)\n", vars["team_updates"])
		assert.Equal(t, "中台项目", vars["project_title"])
		assert.Equal(t, "2025-06-02 ~ 2025-06-08", vars["week_range"])
	})

	t.Run("无明细但关联项目时使用整报内容", func(t *testing.T) {
		reports := []PersonalReportView{{
			Username:         "李四(1002)",
			Content:          "推进部署",
			LinkedProjectIDs: []string{"p1", "p9"},
		}}
		vars, ok := buildProjectWeeklyContext(project, reports, "本周")

		require.True(t, ok)
		assert.Equal(t, "- 成员 李四(1002): 推进部署\n", vars["team_updates"])
	})

	t.Run("未提及该项目的周报被忽略", func(t *testing.T) {
		reports := []PersonalReportView{{
			Username:         "王五(1003)",
			Content:          "别的项目",
			LinkedProjectIDs: []string{"p9"},
		}}
		_, ok := buildProjectWeeklyContext(project, reports, "本周")

		assert.False(t, ok)
	})

	t.Run("空周报列表返回无数据", func(t *testing.T) {
		_, ok := buildProjectWeeklyContext(project, nil, "本周")
		assert.False(t, ok)
	})
}

func TestBuildProjectContext(t *testing.T) {
	t.Run("事件与任务格式化", func(t *testing.T) {
		project := ProjectView{
			ID: "p1", Title: "交付项目", Status: "EXECUTION",
			Description: "客户交付", CustomerName: "某集团",
		}
		events := []TimelineEventView{
			{Date: DateString("2025-06-10T08:00:00"), Type: "ISSUE", AuthorName: "张三(1001)", Content: "环境故障"},
			{Date: DateTime(time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)), Type: "UPDATE", AuthorName: "李四(1002)", Content: "修复完成"},
		}
		tasks := []TaskView{
			{Title: "接口开发", Progress: 80, Status: "IN_PROGRESS", AssigneeIDs: []string{"u1", "u2"}},
		}
		vars := buildProjectContext(project, events, tasks, "2025-06-01", "2025-06-30")

		assert.Equal(t, "- [2025-06-10] (ISSUE) 张三(1001): 环境故障\n- [2025-06-11] (UPDATE) 李四(1002): 修复完成", vars["event_text"])
		assert.Equal(t, "- 任务 \"接口开发\": 进度 80%, 状态 IN_PROGRESS, 负责人 2人", vars["task_text"])
		assert.Equal(t, "某集团", vars["customer"])
		assert.Equal(t, "交付项目", vars["project_title"])
	})

	t.Run("空集合用哨兵文案且客户默认内部", func(t *testing.T) {
		vars := buildProjectContext(ProjectView{Title: "内部项目"}, nil, nil, "2025-06-01", "2025-06-30")

		assert.Equal(t, "此期间无时间线更新记录。", vars["event_text"])
		assert.Equal(t, "暂无任务进度数据。", vars["task_text"])
		assert.Equal(t, "内部", vars["customer"])
	})
}

func TestBuildPersonalContext(t *testing.T) {
	t.Run("有动态的项目逐条列出", func(t *testing.T) {
		projects := []ProjectView{{
			ID: "p1", Title: "Platform",
			Events: []TimelineEventView{{Content: "完成上线"}},
			Tasks:  []TaskView{{Title: "压测", Status: "PENDING", Progress: 20}},
		}}
		inspirations := []InspirationView{{Content: "自动化巡检"}}
		vars := buildPersonalContext("张三(1001)", projects, inspirations)

		assert.Contains(t, vars["project_context"], "\nProject ID: p1\nTitle: Platform\nRecent Activity:\n")
		assert.Contains(t, vars["project_context"], "- (Timeline Event) 完成上线\n")
		assert.Contains(t, vars["project_context"], "- (Task) \"压测\": Status PENDING, Progress 20%\n")
		assert.Equal(t, "- Shared Idea: 自动化巡检", vars["inspiration_context"])
		assert.Equal(t, "张三(1001)", vars["username"])
	})

	t.Run("无动态项目用英文哨兵", func(t *testing.T) {
		vars := buildPersonalContext("u", []ProjectView{{ID: "p1", Title: "Idle"}}, nil)

		assert.Contains(t, vars["project_context"], "- No updates recorded in system.\n")
		assert.Empty(t, vars["inspiration_context"])
	})
}

func TestBuildersPure(t *testing.T) {
	projects := []ProjectView{{
		ID: "p1", Title: "数字化平台", Status: "EXECUTION", Description: "描述", CustomerName: "甲方",
		Events: []TimelineEventView{{ProjectID: "p1", Date: DateString("2025-06-03"), Type: "UPDATE", Content: "联调"}},
		Tasks:  []TaskView{{Title: "接口开发", Progress: 60, Status: "IN_PROGRESS"}},
	}}
	events := []TimelineEventView{{ProjectID: "p1", Date: DateString("2025-06-05"), Type: "MILESTONE", Content: "验收"}}
	tasks := []TaskView{{Title: "压测", Progress: 20, Status: "PENDING"}}
	reports := []PersonalReportView{{
		Username:         "张三(1001)",
		Content:          "推进联调",
		LinkedProjectIDs: []string{"p1"},
		Details:          []ReportDetailView{{ProjectID: "p1", Content: "完成接口", Plan: "继续压测"}},
	}}
	inspirations := []InspirationView{{Content: "自动化巡检"}}

	// 同样的输入调两次，输出逐字节一致
	t.Run("部门月报", func(t *testing.T) {
		first := buildDeptMonthlyContext(projects, events, "2025-06-01", "2025-06-30")
		second := buildDeptMonthlyContext(projects, events, "2025-06-01", "2025-06-30")
		assert.Equal(t, first, second)
	})

	t.Run("项目周报", func(t *testing.T) {
		first, firstOK := buildProjectWeeklyContext(projects[0], reports, "本周")
		second, secondOK := buildProjectWeeklyContext(projects[0], reports, "本周")
		require.True(t, firstOK)
		require.True(t, secondOK)
		assert.Equal(t, first, second)
	})

	t.Run("项目阶段报告", func(t *testing.T) {
		first := buildProjectContext(projects[0], events, tasks, "2025-06-01", "2025-06-30")
		second := buildProjectContext(projects[0], events, tasks, "2025-06-01", "2025-06-30")
		assert.Equal(t, first, second)
	})

	t.Run("个人周报", func(t *testing.T) {
		first := buildPersonalContext("张三(1001)", projects, inspirations)
		second := buildPersonalContext("张三(1001)", projects, inspirations)
		assert.Equal(t, first, second)
	})
}

func TestFlexDateShort(t *testing.T) {
	assert.Equal(t, "2025-06-10", DateString("2025-06-10T08:00:00Z").Short())
	assert.Equal(t, "2025-06-10", DateString("2025-06-10").Short())
	assert.Equal(t, "bad-date", DateString("bad-date").Short())
	assert.Equal(t, "2025-06-11", DateTime(time.Date(2025, 6, 11, 23, 0, 0, 0, time.UTC)).Short())
	assert.Equal(t, "", FlexDate{}.Short())
}
