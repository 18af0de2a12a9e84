package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authHandlers "deptsync/api/handlers/auth"
	eventHandlers "deptsync/api/handlers/events"
	fileHandlers "deptsync/api/handlers/files"
	inspirationHandlers "deptsync/api/handlers/inspirations"
	llmHandlers "deptsync/api/handlers/llm"
	projectHandlers "deptsync/api/handlers/projects"
	reportHandlers "deptsync/api/handlers/reports"
	taskHandlers "deptsync/api/handlers/tasks"
	userHandlers "deptsync/api/handlers/users"

	"deptsync/internal/auth"
	"deptsync/internal/config"
	"deptsync/internal/event"
	"deptsync/internal/infra/queue"
	"deptsync/internal/inspiration"
	"deptsync/internal/llmreport"
	"deptsync/internal/metrics"
	"deptsync/internal/project"
	"deptsync/internal/report"
	"deptsync/internal/storage"
	"deptsync/internal/task"
	"deptsync/internal/user"
)

// Services 路由依赖的全部业务服务
type Services struct {
	Users        *user.Service
	Projects     *project.Service
	Tasks        *task.Service
	Events       *event.Service
	Reports      *report.Service
	Inspirations *inspiration.Service
	LLMReports   *llmreport.Service
	Storage      *storage.Service
	Queue        queue.Client
}

// BuildServices 按配置组装业务服务
// storage 与 queue 由调用方单独注入，便于测试环境省略外部依赖
func BuildServices(db *gorm.DB, cfg *config.Config) *Services {
	promptStore := llmreport.NewPromptStore(cfg.Prompt.Path)
	gateway := llmreport.NewGateway(&cfg.AI.OpenAI)

	return &Services{
		Users:        user.NewService(db),
		Projects:     project.NewService(db),
		Tasks:        task.NewService(db),
		Events:       event.NewService(db),
		Reports:      report.NewService(db),
		Inspirations: inspiration.NewService(db),
		LLMReports:   llmreport.NewService(promptStore, gateway),
	}
}

// SetupRouter 组装全部中间件与路由
func SetupRouter(cfg *config.Config, svcs *Services, redisClient *redis.Client) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(CORS())
	router.Use(metrics.PrometheusMiddleware())

	// 公开端点
	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, redisClient)
	authRequired := auth.Middleware(jwtService)

	authHandler := authHandlers.NewAuthHandler(svcs.Users, jwtService)
	userHandler := userHandlers.NewUserHandler(svcs.Users)
	projectHandler := projectHandlers.NewProjectHandler(svcs.Projects)
	taskHandler := taskHandlers.NewTaskHandler(svcs.Tasks)
	eventHandler := eventHandlers.NewEventHandler(svcs.Events, svcs.Users)
	reportHandler := reportHandlers.NewReportHandler(svcs.Reports, svcs.Users)
	inspirationHandler := inspirationHandlers.NewInspirationHandler(svcs.Inspirations, svcs.Users)
	llmHandler := llmHandlers.NewLLMHandler(svcs.LLMReports, svcs.Users, svcs.Queue)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/logout", authRequired, authHandler.Logout)
		}

		usersGroup := api.Group("/users", authRequired)
		{
			usersGroup.GET("", userHandler.List)
			usersGroup.GET("/me", userHandler.Me)
			usersGroup.GET("/:id", userHandler.Get)
			usersGroup.PUT("/:id", userHandler.Update)
			usersGroup.POST("/:id/promote", userHandler.Promote)
		}

		projectsGroup := api.Group("/projects", authRequired)
		{
			projectsGroup.GET("", projectHandler.List)
			projectsGroup.POST("", projectHandler.Create)
			projectsGroup.GET("/:id", projectHandler.Get)
			projectsGroup.PUT("/:id", projectHandler.Update)
			projectsGroup.DELETE("/:id", projectHandler.Delete)
		}

		tasksGroup := api.Group("/tasks", authRequired)
		{
			tasksGroup.GET("", taskHandler.List)
			tasksGroup.POST("", taskHandler.Create)
			tasksGroup.GET("/:id", taskHandler.Get)
			tasksGroup.PUT("/:id", taskHandler.Update)
			tasksGroup.DELETE("/:id", taskHandler.Delete)
		}

		eventsGroup := api.Group("/events", authRequired)
		{
			eventsGroup.GET("", eventHandler.List)
			eventsGroup.POST("", eventHandler.Create)
			eventsGroup.PUT("/:id", eventHandler.Update)
			eventsGroup.DELETE("/:id", eventHandler.Delete)
			eventsGroup.GET("/:id/export", eventHandler.Export)
		}

		reportsGroup := api.Group("/reports", authRequired)
		{
			reportsGroup.GET("", reportHandler.List)
			reportsGroup.POST("", reportHandler.Create)
			reportsGroup.GET("/:id", reportHandler.Get)
			reportsGroup.DELETE("/:id", reportHandler.Delete)
			reportsGroup.GET("/:id/export", reportHandler.Export)
		}

		inspirationsGroup := api.Group("/inspirations", authRequired)
		{
			inspirationsGroup.GET("", inspirationHandler.List)
			inspirationsGroup.POST("", inspirationHandler.Create)
			inspirationsGroup.PUT("/:id", inspirationHandler.Update)
			inspirationsGroup.DELETE("/:id", inspirationHandler.Delete)
		}

		if svcs.Storage != nil {
			fileHandler := fileHandlers.NewFileHandler(svcs.Storage, svcs.Users)
			filesGroup := api.Group("/files")
			{
				filesGroup.POST("/upload", authRequired, fileHandler.Upload)
				// 内容代理保持公开，前端 <img> 直接引用
				filesGroup.GET("/content/*path", fileHandler.Content)
			}
		}

		llmGroup := api.Group("/llm", authRequired)
		{
			llmGroup.POST("/dept-monthly-report", llmHandler.DeptMonthlyReport)
			llmGroup.POST("/project-weekly-report", llmHandler.ProjectWeeklyReport)
			llmGroup.POST("/project-report", llmHandler.ProjectReport)
			llmGroup.POST("/personal-report", llmHandler.PersonalReport)
			llmGroup.POST("/generate-personal-report", llmHandler.PersonalReport)
			llmGroup.POST("/generate-report", llmHandler.GenerateReport)
			llmGroup.POST("/generate-report-async", llmHandler.GenerateReportAsync)
		}
	}

	return router
}

// HealthCheck 健康检查
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
