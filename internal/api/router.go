// internal/api/router.go
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personadesk/PersonaDesk/internal/config"
	"github.com/personadesk/PersonaDesk/internal/di"
	"github.com/personadesk/PersonaDesk/internal/services"
)

// SetupRouter 配置HTTP路由
func SetupRouter() (*gin.Engine, error) {
	// 获取依赖注入容器
	container := di.GetContainer()

	// 只从容器获取服务，不再创建新实例
	characterService, ok := container.Get("character").(*services.CharacterService)
	if !ok {
		return nil, fmt.Errorf("角色服务未正确初始化")
	}

	templateService, ok := container.Get("template").(*services.TemplateService)
	if !ok {
		return nil, fmt.Errorf("模板服务未正确初始化")
	}

	settingsService, ok := container.Get("settings").(*services.SettingsService)
	if !ok {
		return nil, fmt.Errorf("配置服务未正确初始化")
	}

	authService, ok := container.Get("auth").(*services.AuthService)
	if !ok {
		return nil, fmt.Errorf("认证服务未正确初始化")
	}

	uploadService, ok := container.Get("upload").(*services.UploadService)
	if !ok {
		return nil, fmt.Errorf("上传服务未正确初始化")
	}

	events, ok := container.Get("events").(*EventHub)
	if !ok {
		return nil, fmt.Errorf("事件中心未正确初始化")
	}

	handler := NewHandler(
		characterService,
		templateService,
		settingsService,
		authService,
		uploadService,
		events,
	)

	cfg := config.GetCurrentConfig()
	if cfg != nil && !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// 启用CORS与请求追踪
	r.Use(corsMiddleware())
	r.Use(RequestIDMiddleware())

	// WebSocket 事件推送
	r.GET("/ws/events", handler.EventsWebSocket)

	apiGroup := r.Group("/api")
	apiGroup.Use(RateLimitMiddleware(120, time.Minute))
	apiGroup.Use(AuthMiddleware())
	{
		apiGroup.GET("/health", handler.HealthCheck)

		// 认证
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", handler.Login)
			authGroup.POST("/logout", handler.Logout)
			authGroup.GET("/session", handler.GetSession)
		}

		// 角色管理
		charactersGroup := apiGroup.Group("/characters")
		{
			charactersGroup.GET("", handler.ListCharacters)
			charactersGroup.POST("", handler.CreateCharacter)
			charactersGroup.GET("/:id", handler.GetCharacter)
			charactersGroup.PUT("/:id", handler.UpdateCharacter)
			charactersGroup.DELETE("/:id", handler.DeleteCharacter)
			charactersGroup.POST("/:id/whitelist", handler.AddToWhitelist)
			charactersGroup.DELETE("/:id/whitelist/:phone", handler.RemoveFromWhitelist)
		}

		// 模板管理
		templatesGroup := apiGroup.Group("/templates")
		{
			templatesGroup.GET("", handler.ListTemplates)
			templatesGroup.POST("", handler.CreateTemplate)
			templatesGroup.GET("/:id", handler.GetTemplate)
			templatesGroup.PUT("/:id", handler.UpdateTemplate)
			templatesGroup.DELETE("/:id", handler.DeleteTemplate)
		}

		// 全局配置
		apiGroup.GET("/settings", handler.GetSettings)
		apiGroup.PUT("/settings", handler.UpdateSettings)

		// 文件上传
		apiGroup.POST("/upload", handler.UploadImage)
	}

	// 未知API路径返回404信封，其余路径重定向到首页
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			handler.Response.NotFound(c, "接口不存在")
			return
		}
		c.Redirect(http.StatusFound, "/")
	})

	return r, nil
}

// corsMiddleware 实现跨域资源共享
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
