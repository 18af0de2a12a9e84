package docx

import "fmt"

// Detail 周报导出中的单项目条目
type Detail struct {
	ProjectTitle string
	Content      string
	Plan         string
}

// RenderWeeklyReport 渲染个人周报为 .docx
func RenderWeeklyReport(username, dateStr, content string, details []Detail) ([]byte, error) {
	doc := NewDocument()
	doc.AddHeading(fmt.Sprintf("周报 - %s (%s)", username, dateStr), 0)
	doc.AddLabeled("提交人: ", username)
	doc.AddParagraph(run{text: "提交时间: " + dateStr})

	doc.AddHeading("本周工作内容", 1)
	if content == "" {
		content = "无内容"
	}
	doc.AddMarkdown(content)

	if len(details) > 0 {
		doc.AddHeading("详细项目汇报", 1)
		for _, d := range details {
			title := d.ProjectTitle
			if title == "" {
				title = "未命名项目"
			}
			doc.AddHeading(title, 2)
			if d.Content != "" {
				doc.AddLabeled("进展: ", "")
				doc.AddMarkdown(d.Content)
			}
			if d.Plan != "" {
				doc.AddLabeled("计划: ", "")
				doc.AddMarkdown(d.Plan)
			}
		}
	}
	return doc.Bytes()
}

// RenderEvent 渲染单条时间线事件的正文为 .docx
func RenderEvent(content string) ([]byte, error) {
	doc := NewDocument()
	doc.AddMarkdown(content)
	return doc.Bytes()
}
