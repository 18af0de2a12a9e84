package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatalf("压缩包缺少 %s", name)
	return ""
}

func TestDocument_Bytes(t *testing.T) {
	doc := NewDocument()
	doc.AddHeading("周报 - 张三(1001) (2025-06-13)", 0)
	doc.AddMarkdown("# 执行摘要\n本周**完成上线**。\n- 条目一\n- 条目二")

	data, err := doc.Bytes()
	require.NoError(t, err)

	t.Run("包含必需的包结构", func(t *testing.T) {
		for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"} {
			assert.NotEmpty(t, readEntry(t, data, name), name)
		}
	})

	t.Run("正文包含标题与加粗", func(t *testing.T) {
		body := readEntry(t, data, "word/document.xml")
		assert.Contains(t, body, "周报 - 张三(1001) (2025-06-13)")
		assert.Contains(t, body, `<w:pStyle w:val="Heading1"/>`)
		assert.Contains(t, body, "<w:b/>")
		assert.Contains(t, body, "完成上线")
		assert.Contains(t, body, `<w:pStyle w:val="ListBullet"/>`)
	})
}

func TestAddMarkdown_CodeBlock(t *testing.T) {
	doc := NewDocument()
	doc.AddMarkdown("```\ncode line\n```\n普通段落")

	data, err := doc.Bytes()
	require.NoError(t, err)
	body := readEntry(t, data, "word/document.xml")

	assert.Contains(t, body, `<w:ind w:left="400"/>`)
	assert.Contains(t, body, "code line")
	assert.NotContains(t, body, "```")
}

func TestSplitBoldRuns(t *testing.T) {
	runs := splitBoldRuns("前缀 **重点** 后缀")
	require.Len(t, runs, 3)
	assert.False(t, runs[0].bold)
	assert.True(t, runs[1].bold)
	assert.Equal(t, "重点", runs[1].text)
	assert.Equal(t, " 后缀", runs[2].text)
}

func TestRenderWeeklyReport(t *testing.T) {
	data, err := RenderWeeklyReport("李四(1002)", "2025-06-13", "## 进展\n完成需求评审", []Detail{
		{ProjectTitle: "中台项目", Content: "开发中", Plan: "下周联调"},
	})
	require.NoError(t, err)

	body := readEntry(t, data, "word/document.xml")
	assert.Contains(t, body, "周报 - 李四(1002) (2025-06-13)")
	assert.Contains(t, body, "本周工作内容")
	assert.Contains(t, body, "详细项目汇报")
	assert.Contains(t, body, "中台项目")
	assert.Contains(t, body, "进展: ")
	assert.Contains(t, body, "下周联调")
}
