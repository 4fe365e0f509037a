// internal/services/settings_service.go
package services

import (
	"log"
	"strings"
	"sync"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
	"github.com/personadesk/PersonaDesk/internal/storage"
)

// SettingsService 管理全局通用配置
// 配置常驻内存，更新采用合并语义，未提供的字段保持原值
type SettingsService struct {
	store *storage.Store

	mu       sync.RWMutex
	settings *models.AppSettings

	// OnChange 变更通知回调，装配时注入，可为nil
	OnChange func(ChangeEvent)
}

// NewSettingsService 创建配置服务并加载持久化数据
func NewSettingsService(store *storage.Store) *SettingsService {
	s := &SettingsService{store: store}

	var loaded models.AppSettings
	ok := store.Load(storage.KeySettings, &loaded, func() bool {
		return loaded.DefaultAvatars != nil
	})

	if ok {
		s.settings = &loaded
	} else {
		s.settings = SeedSettings()
		if err := store.Save(storage.KeySettings, s.settings); err != nil {
			log.Printf("写入默认配置失败: %v", err)
		}
	}

	return s
}

// Get 返回当前配置的拷贝
func (s *SettingsService) Get() *models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.Clone()
}

// Update 合并更新配置并落盘
func (s *SettingsService) Update(patch *models.SettingsPatch) (*models.AppSettings, error) {
	if patch.DefaultAvatars != nil {
		for _, url := range *patch.DefaultAvatars {
			if strings.TrimSpace(url) == "" {
				return nil, apperrors.NewValidationError("默认头像地址不能为空")
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.settings.Clone()
	patch.Apply(updated)

	previous := s.settings
	s.settings = updated
	if err := s.store.Save(storage.KeySettings, updated); err != nil {
		s.settings = previous
		return nil, apperrors.NewProcessingError("保存配置失败", err)
	}

	if s.OnChange != nil {
		s.OnChange(ChangeEvent{Entity: "settings", Action: "updated"})
	}
	return updated.Clone(), nil
}
