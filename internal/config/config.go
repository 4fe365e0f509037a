// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config 存储应用配置
type Config struct {
	Port       string
	DataDir    string
	LogDir     string
	DebugMode  bool
	AuthSecret string // 会话令牌签名密钥，为空时启动阶段会生成随机密钥
}

// 当前生效的配置，Load成功后更新
var currentConfig *Config

// GetCurrentConfig 返回最近一次加载的配置，未加载时返回nil
func GetCurrentConfig() *Config {
	return currentConfig
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	// 尝试加载.env文件（可选）
	godotenv.Load()

	config := &Config{
		Port:       getEnv("PORT", "8080"),
		DataDir:    getEnvPath("DATA_DIR", "data"),
		LogDir:     getEnvPath("LOG_DIR", "logs"),
		DebugMode:  getEnvBool("DEBUG_MODE", true),
		AuthSecret: getEnv("AUTH_SECRET_KEY", ""),
	}

	if config.AuthSecret == "" {
		// 只记录警告，不返回错误；启动时会退化为随机密钥
		log.Println("警告: 未设置 AUTH_SECRET_KEY，重启后已签发的会话将失效")
	}

	currentConfig = config
	return config, nil
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvPath 获取环境变量表示的路径，如果不存在则返回默认值
func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	// 确保目录存在
	if _, err := os.Stat(path); os.IsNotExist(err) {
		err = os.MkdirAll(path, 0755)
		if err != nil {
			fmt.Printf("警告: 创建目录失败 %s: %v\n", path, err)
		}
	}

	return path
}

// getEnvBool 获取布尔类型环境变量
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}
