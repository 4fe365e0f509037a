// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personadesk/PersonaDesk/internal/api"
	"github.com/personadesk/PersonaDesk/internal/app"
	"github.com/personadesk/PersonaDesk/internal/config"
	"github.com/personadesk/PersonaDesk/internal/utils"
)

func main() {
	log.Println("启动 PersonaDesk 管理服务...")

	// 1. 加载基础配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	log.Printf("配置加载完成，端口: %s", cfg.Port)

	// 2. 初始化日志系统
	if err := app.InitLogger(cfg.LogDir); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer utils.GetLogger().Close()

	// 3. 初始化所有服务（按依赖顺序）
	if err := app.InitServices(); err != nil {
		log.Fatalf("初始化服务失败: %v", err)
	}
	log.Println("所有服务初始化完成")

	// 4. 设置路由（只获取服务，不创建）
	router, err := api.SetupRouter()
	if err != nil {
		log.Fatalf("设置路由失败: %v", err)
	}

	log.Printf("服务器启动在端口 %s", cfg.Port)
	log.Printf("访问地址: http://localhost:%s", cfg.Port)

	setupGracefulShutdown(router, cfg.Port)
}

// 优雅关闭函数
func setupGracefulShutdown(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v", err)
		}
	}()

	// 等待中断信号以进行优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器强制关闭: %v", err)
	}

	log.Println("服务器已退出")
}
