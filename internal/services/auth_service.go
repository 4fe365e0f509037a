// internal/services/auth_service.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/personadesk/PersonaDesk/internal/auth"
	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
	"github.com/personadesk/PersonaDesk/internal/storage"
)

// 演示环境的唯一管理员账号
const (
	adminUsername = "Admin"
	adminPassword = "5173rongcloud"
)

// loginDelay 模拟登录验证的耗时
const loginDelay = 500 * time.Millisecond

// Session 当前登录会话
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService 处理登录、登出与会话恢复
type AuthService struct {
	store       *storage.Store
	tokenConfig *auth.TokenConfig

	mu      sync.RWMutex
	session *Session
}

// NewAuthService 创建认证服务并尝试恢复已保存的会话
// 持久化的会话数据损坏或令牌失效时静默丢弃，视为未登录
func NewAuthService(store *storage.Store, tokenConfig *auth.TokenConfig) *AuthService {
	s := &AuthService{store: store, tokenConfig: tokenConfig}
	s.restore()
	return s
}

func (s *AuthService) restore() {
	var user models.User
	if !s.store.Load(storage.KeyAuthUser, &user, func() bool {
		return user.ID != "" && user.Username != ""
	}) {
		s.discardSession()
		return
	}

	var token string
	if !s.store.Load(storage.KeyAuthToken, &token, func() bool {
		return token != ""
	}) {
		s.discardSession()
		return
	}

	if _, err := auth.ParseToken(token, s.tokenConfig); err != nil {
		s.discardSession()
		return
	}

	s.session = &Session{User: &user, Token: token}
}

// discardSession 清理持久化的会话残留
func (s *AuthService) discardSession() {
	s.store.Delete(storage.KeyAuthUser)
	s.store.Delete(storage.KeyAuthToken)
}

// Login 校验凭据并建立会话
// 凭据校验带模拟延迟，ctx取消时立即返回
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	select {
	case <-time.After(loginDelay):
	case <-ctx.Done():
		return nil, apperrors.NewProcessingError("登录已取消", ctx.Err())
	}

	if username != adminUsername || password != adminPassword {
		return nil, apperrors.NewUnauthorizedError("用户名或密码错误")
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.tokenConfig)
	if err != nil {
		return nil, apperrors.NewProcessingError("生成会话令牌失败", err)
	}

	session := &Session{User: user, Token: token}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(storage.KeyAuthUser, user); err != nil {
		return nil, apperrors.NewProcessingError("保存会话失败", err)
	}
	if err := s.store.Save(storage.KeyAuthToken, token); err != nil {
		s.store.Delete(storage.KeyAuthUser)
		return nil, apperrors.NewProcessingError("保存会话失败", err)
	}

	s.session = session
	return session, nil
}

// Logout 结束会话并清理持久化状态，未登录时也视为成功
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.discardSession()
}

// CurrentSession 返回当前会话，未登录时返回nil
func (s *AuthService) CurrentSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

// Verify 校验请求携带的令牌
func (s *AuthService) Verify(token string) (*auth.SessionToken, error) {
	parsed, err := auth.ParseToken(token, s.tokenConfig)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("会话令牌无效或已过期")
	}
	return parsed, nil
}
