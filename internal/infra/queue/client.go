package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"deptsync/internal/config"
	"deptsync/internal/metrics"
	"deptsync/internal/worker/tasks"
)

// Client 任务队列客户端接口
type Client interface {
	EnqueueGenerateReport(payload tasks.GenerateReportPayload) (string, error)
	Close() error
}

type asynqClient struct {
	client *asynq.Client
}

// NewClient 创建任务队列客户端
func NewClient(cfg config.RedisConfig) Client {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &asynqClient{client: client}
}

func (c *asynqClient) EnqueueGenerateReport(payload tasks.GenerateReportPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload failed: %w", err)
	}

	task := asynq.NewTask(tasks.TypeGenerateReport, data)

	// 模型调用可能较慢，超时放宽到 5 分钟
	info, err := c.client.Enqueue(task,
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
		asynq.Queue("reports"),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue task failed: %w", err)
	}
	metrics.ReportTasksEnqueued.Inc()
	return info.ID, nil
}

func (c *asynqClient) Close() error {
	return c.client.Close()
}
