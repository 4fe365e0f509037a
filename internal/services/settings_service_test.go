// internal/services/settings_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
)

func TestSettingsServiceSeedsDefaults(t *testing.T) {
	svc := NewSettingsService(newTestStore(t))

	settings := svc.Get()
	assert.Len(t, settings.DefaultAvatars, 6)
}

func TestSettingsServiceMergeUpdate(t *testing.T) {
	store := newTestStore(t)
	svc := NewSettingsService(store)

	avatars := []string{"https://example.com/a.png"}
	updated, err := svc.Update(&models.SettingsPatch{DefaultAvatars: &avatars})
	require.NoError(t, err)
	assert.Equal(t, avatars, updated.DefaultAvatars)

	// 空补丁不改变任何字段
	unchanged, err := svc.Update(&models.SettingsPatch{})
	require.NoError(t, err)
	assert.Equal(t, avatars, unchanged.DefaultAvatars)

	// 重启后读取到更新的值
	reloaded := NewSettingsService(store)
	assert.Equal(t, avatars, reloaded.Get().DefaultAvatars)
}

func TestSettingsServiceRejectsBlankAvatar(t *testing.T) {
	svc := NewSettingsService(newTestStore(t))

	avatars := []string{"https://example.com/a.png", "  "}
	_, err := svc.Update(&models.SettingsPatch{DefaultAvatars: &avatars})

	assert.True(t, apperrors.IsValidationError(err))
	assert.Len(t, svc.Get().DefaultAvatars, 6)
}

func TestSettingsServiceGetReturnsCopy(t *testing.T) {
	svc := NewSettingsService(newTestStore(t))

	settings := svc.Get()
	settings.DefaultAvatars[0] = "mutated"

	assert.NotEqual(t, "mutated", svc.Get().DefaultAvatars[0])
}

func TestSettingsServiceChangeNotification(t *testing.T) {
	svc := NewSettingsService(newTestStore(t))

	var got ChangeEvent
	svc.OnChange = func(e ChangeEvent) { got = e }

	avatars := []string{"https://example.com/a.png"}
	_, err := svc.Update(&models.SettingsPatch{DefaultAvatars: &avatars})
	require.NoError(t, err)

	assert.Equal(t, "settings", got.Entity)
	assert.Equal(t, "updated", got.Action)
}
