// internal/api/auth_middleware.go
package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personadesk/PersonaDesk/internal/auth"
	"github.com/personadesk/PersonaDesk/internal/config"
)

var tokenConfig *auth.TokenConfig

// InitializeAuth initializes the authentication system with config
func InitializeAuth(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	var secret []byte
	var err error

	if cfg.AuthSecret != "" {
		secret = []byte(cfg.AuthSecret)
	} else if cfg.DebugMode {
		// Use a consistent key during development to avoid session loss on restart
		secret = []byte("dev_auth_key_for_testing_purposes_only_")
		log.Printf("警告: 开发模式下使用固定认证密钥，生产环境请通过环境变量设置 AUTH_SECRET_KEY")
	} else {
		secret, err = auth.GenerateSecureKey(32)
		if err != nil {
			return fmt.Errorf("failed to generate auth key: %w", err)
		}
	}

	// Normalize the secret to exactly 32 bytes
	if len(secret) < 32 {
		padded := make([]byte, 32)
		copy(padded, secret)
		secret = padded
	} else if len(secret) > 32 {
		secret = secret[:32]
	}

	tokenConfig = &auth.TokenConfig{
		Secret:     secret,
		Expiration: 24 * time.Hour,
	}

	return nil
}

// TokenConfig returns the active token configuration
func TokenConfig() *auth.TokenConfig {
	return tokenConfig
}

// AuthMiddleware requires a valid session token for protected API endpoints
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicEndpoint(c) {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if token == "" {
			unauthorized(c, "缺少会话令牌")
			return
		}

		parsedToken, err := auth.ParseToken(token, tokenConfig)
		if err != nil {
			unauthorized(c, "会话令牌无效或已过期")
			return
		}

		c.Set("user_id", parsedToken.UserID)
		c.Set("username", parsedToken.Username)
		c.Set("user_authenticated", true)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    ErrorUnauthorized,
			Message: message,
		},
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
	})
}

// isPublicEndpoint checks if the current endpoint should skip authentication
func isPublicEndpoint(c *gin.Context) bool {
	publicPaths := []string{
		"/api/auth/login",
		"/api/health",
		"/ws/events",
	}

	currentPath := c.Request.URL.Path
	for _, path := range publicPaths {
		if currentPath == path {
			return true
		}
	}

	return false
}
