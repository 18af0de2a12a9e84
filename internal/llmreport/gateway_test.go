package llmreport

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatClient 固定返回内容或错误的聊天客户端替身
type stubChatClient struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestRenderTemplate(t *testing.T) {
	t.Run("替换全部已知占位符", func(t *testing.T) {
		out := RenderTemplate("项目 {title}，周期 {range}", map[string]string{
			"title": "中台", "range": "本周",
		})
		assert.Equal(t, "项目 中台，周期 本周", out)
	})

	t.Run("未知占位符原样保留", func(t *testing.T) {
		out := RenderTemplate("保留 {unknown} 不动", map[string]string{"title": "x"})
		assert.Equal(t, "保留 {unknown} 不动", out)
	})

	t.Run("占位符值可包含花括号文本", func(t *testing.T) {
		out := RenderTemplate("{context}", map[string]string{"context": "内容 {raw}"})
		assert.Equal(t, "内容 {raw}", out)
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestGateway_InvokeText(t *testing.T) {
	t.Run("成功时返回模型内容并携带温度", func(t *testing.T) {
		stub := &stubChatClient{content: "报告正文"}
		g := NewGatewayWithClient(stub, "gpt-4o-mini")

		out := g.InvokeText(context.Background(), KindProject, PromptTemplate{System: "s", User: "u {x}"}, map[string]string{"x": "1"}, "失败: %v")

		assert.Equal(t, "报告正文", out)
		assert.InDelta(t, 0.7, stub.lastReq.Temperature, 1e-6)
		require.Len(t, stub.lastReq.Messages, 2)
		assert.Equal(t, "u 1", stub.lastReq.Messages[1].Content)
	})

	t.Run("调用失败返回降级文案", func(t *testing.T) {
		stub := &stubChatClient{err: errors.New("连接超时")}
		g := NewGatewayWithClient(stub, "gpt-4o-mini")

		out := g.InvokeText(context.Background(), KindProject, PromptTemplate{}, nil, "由于 API 错误，生成报告失败: %v")

		assert.Equal(t, "由于 API 错误，生成报告失败: 连接超时", out)
	})
}

func TestGateway_InvokeJSON(t *testing.T) {
	t.Run("解析裸 JSON", func(t *testing.T) {
		stub := &stubChatClient{content: `{"generalSummary":"总结","p1":{"content":"c","plan":"p"}}`}
		g := NewGatewayWithClient(stub, "gpt-4o-mini")

		data := g.InvokeJSON(context.Background(), KindPersonal, PromptTemplate{}, nil)

		assert.Equal(t, "总结", data["generalSummary"])
		entry, ok := data["p1"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "c", entry["content"])
	})

	t.Run("容忍 Markdown 代码块包裹", func(t *testing.T) {
		stub := &stubChatClient{content: "```json\n{\"generalSummary\":\"ok\"}\n```"}
		g := NewGatewayWithClient(stub, "gpt-4o-mini")

		data := g.InvokeJSON(context.Background(), KindPersonal, PromptTemplate{}, nil)

		assert.Equal(t, "ok", data["generalSummary"])
	})

	t.Run("解析失败折叠为错误对象", func(t *testing.T) {
		stub := &stubChatClient{content: "这不是 JSON"}
		g := NewGatewayWithClient(stub, "gpt-4o-mini")

		data := g.InvokeJSON(context.Background(), KindPersonal, PromptTemplate{}, nil)

		summary, ok := data["generalSummary"].(string)
		require.True(t, ok)
		assert.Contains(t, summary, "生成失败: ")
	})

	t.Run("传输失败折叠为错误对象", func(t *testing.T) {
		stub := &stubChatClient{err: errors.New("boom")}
		g := NewGatewayWithClient(stub, "gpt-4o-mini")

		data := g.InvokeJSON(context.Background(), KindPersonal, PromptTemplate{}, nil)

		assert.Contains(t, data["generalSummary"], "生成失败: boom")
	})
}
