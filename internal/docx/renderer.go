package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// 极简 OOXML 写出器：只生成周报导出需要的段落、标题、列表与加粗，
// 不依赖模板文件。

// run 一段带格式的文本
type run struct {
	text string
	bold bool
}

// paragraph 一个段落，style 为空时是正文
type paragraph struct {
	style  string
	runs   []run
	indent bool
}

// Document 内存中的文档，按顺序累积段落后一次性打包
type Document struct {
	paragraphs []paragraph
}

// NewDocument 创建空文档
func NewDocument() *Document {
	return &Document{}
}

// AddHeading 添加标题，level 0 为文档主标题，1-4 为各级小节
func (d *Document) AddHeading(text string, level int) {
	style := "Title"
	if level > 0 {
		style = fmt.Sprintf("Heading%d", level)
	}
	d.paragraphs = append(d.paragraphs, paragraph{style: style, runs: []run{{text: text}}})
}

// AddParagraph 添加正文段落
func (d *Document) AddParagraph(runs ...run) {
	d.paragraphs = append(d.paragraphs, paragraph{runs: runs})
}

// AddLabeled 添加 "标签: 内容" 形式的段落，标签加粗
func (d *Document) AddLabeled(label, text string) {
	d.AddParagraph(run{text: label, bold: true}, run{text: text})
}

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// AddMarkdown 把简单 Markdown 文本逐行写入文档
// 支持 #-#### 标题、- 与 * 列表、**加粗**、``` 代码块（缩进呈现）
func (d *Document) AddMarkdown(text string) {
	inCodeBlock := false
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			d.paragraphs = append(d.paragraphs, paragraph{runs: []run{{text: line}}, indent: true})
			continue
		}
		switch {
		case strings.HasPrefix(line, "#### "):
			d.AddHeading(line[5:], 4)
		case strings.HasPrefix(line, "### "):
			d.AddHeading(line[4:], 3)
		case strings.HasPrefix(line, "## "):
			d.AddHeading(line[3:], 2)
		case strings.HasPrefix(line, "# "):
			d.AddHeading(line[2:], 1)
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			d.paragraphs = append(d.paragraphs, paragraph{style: "ListBullet", runs: splitBoldRuns(line[2:])})
		default:
			d.paragraphs = append(d.paragraphs, paragraph{runs: splitBoldRuns(line)})
		}
	}
}

// splitBoldRuns 按 **..** 拆分出加粗片段
func splitBoldRuns(text string) []run {
	var runs []run
	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			runs = append(runs, run{text: text[last:m[0]]})
		}
		runs = append(runs, run{text: text[m[2]:m[3]], bold: true})
		last = m[1]
	}
	if last < len(text) {
		runs = append(runs, run{text: text[last:]})
	}
	return runs
}

// Bytes 打包为 .docx 文件内容
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         relsXML,
		"word/styles.xml":     stylesXML,
		"word/document.xml":   d.documentXML(),
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("创建压缩项失败: %w", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return nil, fmt.Errorf("写入压缩项失败: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("封包失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) documentXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range d.paragraphs {
		sb.WriteString("<w:p><w:pPr>")
		if p.style != "" {
			fmt.Fprintf(&sb, `<w:pStyle w:val="%s"/>`, p.style)
		}
		if p.indent {
			sb.WriteString(`<w:ind w:left="400"/>`)
		}
		sb.WriteString("</w:pPr>")
		for _, r := range p.runs {
			sb.WriteString("<w:r><w:rPr>")
			if r.bold {
				sb.WriteString("<w:b/>")
			}
			sb.WriteString("</w:rPr>")
			sb.WriteString(`<w:t xml:space="preserve">`)
			xml.EscapeText(&sb, []byte(r.text))
			sb.WriteString("</w:t></w:r>")
		}
		sb.WriteString("</w:p>")
	}
	sb.WriteString("</w:body></w:document>")
	return sb.String()
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const relsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// 默认字体统一为微软雅黑，保证中文显示
const stylesXML = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Microsoft YaHei" w:eastAsia="Microsoft YaHei" w:hAnsi="Microsoft YaHei"/>` +
	`<w:sz w:val="21"/>` +
	`</w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:rPr><w:b/><w:sz w:val="48"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:rPr><w:b/><w:sz w:val="30"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:pPr><w:ind w:left="360"/></w:pPr></w:style>` +
	`</w:styles>`
