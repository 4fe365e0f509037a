// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/personadesk/PersonaDesk/internal/api"
	"github.com/personadesk/PersonaDesk/internal/config"
	"github.com/personadesk/PersonaDesk/internal/di"
	"github.com/personadesk/PersonaDesk/internal/services"
	"github.com/personadesk/PersonaDesk/internal/storage"
	"github.com/personadesk/PersonaDesk/internal/utils"
)

// InitServices 按依赖顺序初始化所有服务并注册到容器
// 存储最先，事件中心其次，数据服务依赖两者
func InitServices() error {
	cfg := config.GetCurrentConfig()
	if cfg == nil {
		return fmt.Errorf("配置未加载")
	}

	if err := api.InitializeAuth(cfg); err != nil {
		return fmt.Errorf("初始化认证系统失败: %w", err)
	}

	container := di.GetContainer()

	// 1. 存储层
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("初始化存储失败: %w", err)
	}
	container.Register("store", store)

	// 2. 事件中心
	events := api.NewEventHub()
	container.Register("events", events)

	// 3. 数据服务
	characterService := services.NewCharacterService(store)
	characterService.OnChange = events.Broadcast
	container.Register("character", characterService)

	templateService := services.NewTemplateService(store)
	templateService.OnChange = events.Broadcast
	container.Register("template", templateService)

	settingsService := services.NewSettingsService(store)
	settingsService.OnChange = events.Broadcast
	container.Register("settings", settingsService)

	// 4. 认证与上传
	authService := services.NewAuthService(store, api.TokenConfig())
	container.Register("auth", authService)

	uploadService := services.NewUploadService()
	container.Register("upload", uploadService)

	return nil
}

// InitLogger 初始化全局日志，日志文件按天命名
func InitLogger(logDir string) error {
	logFile := filepath.Join(logDir, fmt.Sprintf("app_%s.log", time.Now().Format("2006-01-02")))
	if err := utils.InitLogger(logFile); err != nil {
		return fmt.Errorf("初始化日志系统失败: %w", err)
	}

	cfg := config.GetCurrentConfig()
	if cfg != nil && cfg.DebugMode {
		utils.GetLogger().SetLogLevel(utils.DEBUG)
	}

	return nil
}
