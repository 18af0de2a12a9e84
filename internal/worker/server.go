package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"deptsync/internal/config"
	"deptsync/internal/event"
	"deptsync/internal/llmreport"
	"deptsync/internal/worker/handlers"
	"deptsync/internal/worker/tasks"
)

// Server 后台任务执行器
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewServer 创建任务执行器并注册全部处理器
func NewServer(cfg config.RedisConfig, reports *llmreport.Service, events *event.Service, logger *zap.Logger) *Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"reports": 3,
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("任务执行失败",
					zap.String("type", task.Type()),
					zap.Error(err),
				)
			}),
		},
	)

	mux := asynq.NewServeMux()
	reportHandler := handlers.NewReportHandler(reports, events, logger)
	mux.HandleFunc(tasks.TypeGenerateReport, reportHandler.HandleGenerateReport)

	return &Server{server: srv, mux: mux, logger: logger}
}

// Start 非阻塞启动
func (s *Server) Start() error {
	s.logger.Info("Worker 服务器启动中")
	return s.server.Start(s.mux)
}

// Shutdown 停止并等待在途任务
func (s *Server) Shutdown() {
	s.logger.Info("Worker 服务器停止中")
	s.server.Shutdown()
}
