package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"deptsync/api"
	"deptsync/internal/config"
	"deptsync/internal/event"
	"deptsync/internal/infra"
	"deptsync/internal/infra/queue"
	"deptsync/internal/inspiration"
	"deptsync/internal/logger"
	"deptsync/internal/project"
	"deptsync/internal/report"
	"deptsync/internal/storage"
	"deptsync/internal/task"
	"deptsync/internal/user"
	"deptsync/internal/worker"
)

func main() {
	// 统一加载 .env，便于集中管理 APP_* 环境变量
	loadEnvFile()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cfg, err := config.Load(env, "")
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.String("env", env),
		zap.String("mode", cfg.Server.Mode),
	)

	db, err := infra.InitDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer infra.CloseDatabase()

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
	} else {
		logger.Info("跳过自动迁移（配置已禁用）")
	}

	redisClient, err := infra.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	defer infra.CloseRedis()

	svcs := api.BuildServices(db, cfg)

	// 对象存储不可用时降级运行，仅文件接口不可用
	if store, err := storage.NewService(context.Background(), &cfg.Minio); err != nil {
		logger.Warn("初始化对象存储失败，文件接口已禁用", zap.Error(err))
	} else {
		svcs.Storage = store
	}

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()
	svcs.Queue = queueClient

	workerServer := worker.NewServer(cfg.Redis, svcs.LLMReports, svcs.Events, logger.Get())
	if err := workerServer.Start(); err != nil {
		logger.Fatal("Worker 服务器启动失败", zap.Error(err))
	}

	router := api.SetupRouter(cfg, svcs, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器启动", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
	}()

	gracefulShutdown(server, workerServer)
}

// loadEnvFile 依次尝试加载当前目录及上级目录的 .env 文件
func loadEnvFile() {
	if path := resolveEnvPath(); path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Printf("加载环境变量文件 %s 失败: %v\n", path, err)
		}
	}
}

// resolveEnvPath 从当前工作目录和可执行文件目录向上查找 .env
func resolveEnvPath() string {
	var candidates []string
	traverse := func(start string) {
		dir := filepath.Clean(start)
		for i := 0; i < 8; i++ {
			candidates = append(candidates, filepath.Join(dir, ".env"))
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if wd, err := os.Getwd(); err == nil {
		traverse(wd)
	}
	if exe, err := os.Executable(); err == nil {
		traverse(filepath.Dir(exe))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// runMigrations 执行数据库迁移
func runMigrations(db *gorm.DB) error {
	return infra.AutoMigrate(db,
		&user.User{},
		&project.Project{},
		&task.Task{},
		&event.TimelineEvent{},
		&report.WeeklyReport{},
		&report.WeeklyReportDetail{},
		&inspiration.Inspiration{},
	)
}

// gracefulShutdown 优雅关闭
func gracefulShutdown(server *http.Server, workerServer *worker.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}
	workerServer.Shutdown()

	logger.Info("服务器已安全关闭")
}
