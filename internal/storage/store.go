// internal/storage/store.go
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// 持久化键名，沿用管理端的历史数据布局
const (
	KeyCharacters = "demo_characters"
	KeyTemplates  = "demo_templates"
	KeySettings   = "demo_config"
	KeyVersion    = "demo_data_version"
	KeyAuthUser   = "auth_user"
	KeyAuthToken  = "auth_token"
)

// DataVersion 数据格式版本标记
// 与已保存的标记不一致时，三个数据键会被整体清空（演示用的重置行为）
const DataVersion = "1.0.0"

// dataKeys 版本不匹配时需要清空的键
var dataKeys = []string{KeyCharacters, KeyTemplates, KeySettings}

// Store 提供按键存取的JSON文件存储
// 每个键对应BaseDir下的一个JSON文件，写入通过临时文件重命名保证原子性
type Store struct {
	BaseDir string

	// 键级别锁 key -> *sync.RWMutex
	keyLocks sync.Map
}

// NewStore 创建存储并执行一次性的版本迁移检查
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}

	s := &Store{BaseDir: baseDir}
	s.migrate()

	return s, nil
}

// 获取键锁
func (s *Store) keyLock(key string) *sync.RWMutex {
	value, _ := s.keyLocks.LoadOrStore(key, &sync.RWMutex{})
	return value.(*sync.RWMutex)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.BaseDir, key+".json")
}

// Load 读取并解析指定键
// 键不存在、JSON解析失败或validate拒绝时返回false，调用方应使用默认值；
// 失败只记录日志，绝不向调用方抛出
func (s *Store) Load(key string, out interface{}, validate func() bool) bool {
	lock := s.keyLock(key)
	lock.RLock()
	defer lock.RUnlock()

	content, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("读取存储键失败 %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(content, out); err != nil {
		log.Printf("存储键 %s 的JSON解析失败，回退到默认值: %v", key, err)
		return false
	}

	if validate != nil && !validate() {
		log.Printf("存储键 %s 的数据形状校验未通过，回退到默认值", key)
		return false
	}

	return true
}

// Save 序列化并写入指定键
func (s *Store) Save(key string, value interface{}) error {
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化存储键失败 %s: %w", key, err)
	}

	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	return s.writeAtomic(key, content)
}

// 原子性文件写入：先写临时文件再重命名
func (s *Store) writeAtomic(key string, content []byte) error {
	fullPath := s.path(key)
	tempPath := fullPath + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return fmt.Errorf("保存临时文件失败: %w", err)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			log.Printf("清理临时文件失败 %s: %v", tempPath, removeErr)
		}
		return fmt.Errorf("保存文件失败: %w", err)
	}

	return nil
}

// Delete 删除指定键，键不存在视为成功
func (s *Store) Delete(key string) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除存储键失败 %s: %w", key, err)
	}

	return nil
}

// Exists 检查指定键是否存在
func (s *Store) Exists(key string) bool {
	lock := s.keyLock(key)
	lock.RLock()
	defer lock.RUnlock()

	_, err := os.Stat(s.path(key))
	return err == nil
}

// migrate 一次性版本迁移检查
// 标记与当前版本不一致时整体清空数据键并更新标记，之前的数据全部丢弃
func (s *Store) migrate() {
	var saved string
	if s.Load(KeyVersion, &saved, nil) && saved == DataVersion {
		return
	}

	for _, key := range dataKeys {
		if err := s.Delete(key); err != nil {
			log.Printf("版本迁移清理失败: %v", err)
		}
	}

	if err := s.Save(KeyVersion, DataVersion); err != nil {
		log.Printf("写入数据版本标记失败: %v", err)
	} else {
		log.Printf("数据已按版本 %s 清理", DataVersion)
	}
}
