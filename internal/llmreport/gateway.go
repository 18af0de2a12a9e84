package llmreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"deptsync/internal/config"
	"deptsync/internal/logger"
	"deptsync/internal/metrics"
)

// samplingTemperature 所有报告场景共用的采样温度
const samplingTemperature = 0.7

// ChatClient 聊天补全客户端最小接口，测试时注入替身
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Gateway 模型调用网关。调用失败不向上抛错，而是折叠为场景给定的降级文案，
// 保证报告接口永远有响应体
type Gateway struct {
	client ChatClient
	model  string
	log    *zap.Logger
}

// NewGateway 按配置构建网关。API Key 为空视为未配置，
// 调用方应在触网前检查 Configured
func NewGateway(cfg *config.OpenAIConfig) *Gateway {
	g := &Gateway{log: logger.Get()}
	if cfg.APIKey == "" {
		return g
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	g.model = cfg.Model
	if g.model == "" {
		g.model = openai.GPT4oMini
	}
	g.client = openai.NewClientWithConfig(clientCfg)
	return g
}

// NewGatewayWithClient 注入自定义客户端，测试用
func NewGatewayWithClient(client ChatClient, model string) *Gateway {
	return &Gateway{client: client, model: model, log: logger.Get()}
}

// Configured 是否已配置可用的模型
func (g *Gateway) Configured() bool {
	return g.client != nil
}

// InvokeText 文本模式调用。失败时返回以 degradedFormat 格式化的降级文案，
// 其中 %v 为底层错误
func (g *Gateway) InvokeText(ctx context.Context, kind string, tpl PromptTemplate, vars map[string]string, degradedFormat string) string {
	content, err := g.complete(ctx, kind, tpl, vars)
	if err != nil {
		g.log.Warn("模型调用失败，返回降级文案", zap.String("kind", kind), zap.Error(err))
		metrics.CountReportDegraded(kind, "llm_error")
		return fmt.Sprintf(degradedFormat, err)
	}
	return content
}

// InvokeJSON JSON 模式调用。传输错误与解析错误统一折叠为
// 只含 generalSummary 的错误对象
func (g *Gateway) InvokeJSON(ctx context.Context, kind string, tpl PromptTemplate, vars map[string]string) map[string]any {
	content, err := g.complete(ctx, kind, tpl, vars)
	if err != nil {
		g.log.Warn("模型调用失败，返回降级对象", zap.String("kind", kind), zap.Error(err))
		metrics.CountReportDegraded(kind, "llm_error")
		return map[string]any{"generalSummary": fmt.Sprintf("生成失败: %v", err)}
	}
	parsed, err := parseJSONOutput(content)
	if err != nil {
		g.log.Warn("模型 JSON 输出解析失败", zap.String("kind", kind), zap.Error(err))
		metrics.CountReportDegraded(kind, "parse_error")
		return map[string]any{"generalSummary": fmt.Sprintf("生成失败: %v", err)}
	}
	return parsed
}

func (g *Gateway) complete(ctx context.Context, kind string, tpl PromptTemplate, vars map[string]string) (string, error) {
	userPrompt := RenderTemplate(tpl.User, vars)
	if leftover := unresolvedPlaceholders(userPrompt); len(leftover) > 0 {
		g.log.Warn("提示词存在未解析的占位符",
			zap.String("kind", kind), zap.Strings("placeholders", leftover))
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: samplingTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tpl.System},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("模型返回空响应")
	}
	return resp.Choices[0].Message.Content, nil
}

// RenderTemplate 以 {name} 形式替换占位符，未提供的占位符原样保留
func RenderTemplate(tmpl string, vars map[string]string) string {
	out := tmpl
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`\{[a-z][a-z0-9_]*\}`)

func unresolvedPlaceholders(rendered string) []string {
	return placeholderPattern.FindAllString(rendered, -1)
}

// parseJSONOutput 解析模型的 JSON 输出，容忍 Markdown 代码块包裹
func parseJSONOutput(text string) (map[string]any, error) {
	cleaned := stripCodeFence(text)
	var result map[string]any
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("JSON 解析失败: %w", err)
	}
	return result, nil
}

// stripCodeFence 去掉 ```json ... ``` 或 ``` ... ``` 包裹
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
