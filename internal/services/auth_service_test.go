// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personadesk/PersonaDesk/internal/auth"
	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/storage"
)

func testTokenConfig() *auth.TokenConfig {
	return &auth.TokenConfig{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Expiration: time.Hour,
	}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	store := newTestStore(t)
	svc := NewAuthService(store, testTokenConfig())

	session, err := svc.Login(context.Background(), "Admin", "5173rongcloud")
	require.NoError(t, err)

	assert.Equal(t, "Admin", session.User.Username)
	assert.NotEmpty(t, session.User.ID)
	assert.NotEmpty(t, session.Token)
	assert.True(t, store.Exists(storage.KeyAuthUser))
	assert.True(t, store.Exists(storage.KeyAuthToken))
}

func TestAuthServiceLoginFailure(t *testing.T) {
	store := newTestStore(t)
	svc := NewAuthService(store, testTokenConfig())

	cases := [][2]string{
		{"Admin", "wrong"},
		{"admin", "5173rongcloud"}, // 用户名大小写敏感
		{"", ""},
	}

	for _, c := range cases {
		_, err := svc.Login(context.Background(), c[0], c[1])
		assert.True(t, apperrors.IsUnauthorizedError(err))
	}

	assert.Nil(t, svc.CurrentSession())
	assert.False(t, store.Exists(storage.KeyAuthUser))
}

func TestAuthServiceLoginCancelled(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testTokenConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := svc.Login(ctx, "Admin", "5173rongcloud")

	assert.Error(t, err)
	assert.Less(t, time.Since(start), loginDelay)
	assert.Nil(t, svc.CurrentSession())
}

func TestAuthServiceRestoreAcrossRestart(t *testing.T) {
	store := newTestStore(t)
	tokenConfig := testTokenConfig()

	first := NewAuthService(store, tokenConfig)
	session, err := first.Login(context.Background(), "Admin", "5173rongcloud")
	require.NoError(t, err)

	// 重新构建服务，模拟进程重启
	second := NewAuthService(store, tokenConfig)
	restored := second.CurrentSession()

	require.NotNil(t, restored)
	assert.Equal(t, session.User.ID, restored.User.ID)
	assert.Equal(t, session.Token, restored.Token)
}

func TestAuthServiceRestoreDiscardsCorruptState(t *testing.T) {
	store := newTestStore(t)

	// 只有token没有user，属于损坏状态
	require.NoError(t, store.Save(storage.KeyAuthToken, "not-a-jwt"))

	svc := NewAuthService(store, testTokenConfig())

	assert.Nil(t, svc.CurrentSession())
	assert.False(t, store.Exists(storage.KeyAuthToken))
}

func TestAuthServiceRestoreRejectsForgedToken(t *testing.T) {
	store := newTestStore(t)
	tokenConfig := testTokenConfig()

	first := NewAuthService(store, tokenConfig)
	_, err := first.Login(context.Background(), "Admin", "5173rongcloud")
	require.NoError(t, err)

	// 换签名密钥后旧令牌不再有效
	otherConfig := &auth.TokenConfig{
		Secret:     []byte("ffffffffffffffffffffffffffffffff"),
		Expiration: time.Hour,
	}
	second := NewAuthService(store, otherConfig)

	assert.Nil(t, second.CurrentSession())
}

func TestAuthServiceLogout(t *testing.T) {
	store := newTestStore(t)
	svc := NewAuthService(store, testTokenConfig())

	_, err := svc.Login(context.Background(), "Admin", "5173rongcloud")
	require.NoError(t, err)

	svc.Logout()

	assert.Nil(t, svc.CurrentSession())
	assert.False(t, store.Exists(storage.KeyAuthUser))
	assert.False(t, store.Exists(storage.KeyAuthToken))

	// 未登录时登出也视为成功
	svc.Logout()
}

func TestAuthServiceVerify(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testTokenConfig())

	session, err := svc.Login(context.Background(), "Admin", "5173rongcloud")
	require.NoError(t, err)

	parsed, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, parsed.UserID)

	_, err = svc.Verify("garbage")
	assert.True(t, apperrors.IsUnauthorizedError(err))
}
