// internal/services/character_service.go
package services

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
	"github.com/personadesk/PersonaDesk/internal/storage"
)

// 角色字段约束
const (
	MinCharacterAge  = 1
	MaxCharacterAge  = 200
	MaxDisplayImages = 6
	DefaultPageSize  = 10
)

// phonePattern 白名单手机号格式：可选国家码，主体10-15位数字
var phonePattern = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10,15}$`)

// IsValidPhone 检查手机号格式
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ChangeEvent 实体变更事件，通过应用层推送给在线的管理端
type ChangeEvent struct {
	Entity string `json:"entity"` // character / template / settings
	Action string `json:"action"` // created / updated / deleted
	ID     string `json:"id,omitempty"`
}

// CharacterQuery 角色列表的查询条件
type CharacterQuery struct {
	Search   string // 匹配botId与三语言昵称，大小写不敏感
	Page     int    // 1起始，非法值回退为1
	PageSize int    // 非法值回退为DefaultPageSize
}

// CharacterService 处理角色相关的业务逻辑
// 全量数据常驻内存，每次变更整体写回存储
type CharacterService struct {
	store *storage.Store

	mu         sync.RWMutex
	characters []*models.Character

	// OnChange 变更通知回调，装配时注入，可为nil
	OnChange func(ChangeEvent)
}

// NewCharacterService 创建角色服务并加载持久化数据
// 数据缺失或损坏时回退到演示种子数据并立即落盘
func NewCharacterService(store *storage.Store) *CharacterService {
	s := &CharacterService{store: store}

	var loaded []*models.Character
	ok := store.Load(storage.KeyCharacters, &loaded, func() bool {
		for _, c := range loaded {
			if c == nil || c.ID == "" {
				return false
			}
		}
		return true
	})

	if ok {
		for _, c := range loaded {
			c.Normalize()
		}
		s.characters = loaded
	} else {
		s.characters = SeedCharacters()
		if err := store.Save(storage.KeyCharacters, s.characters); err != nil {
			log.Printf("写入角色种子数据失败: %v", err)
		}
	}

	return s
}

func (s *CharacterService) notify(action, id string) {
	if s.OnChange != nil {
		s.OnChange(ChangeEvent{Entity: "character", Action: action, ID: id})
	}
}

// persist 将当前内存数据整体写回，调用方需持有写锁
func (s *CharacterService) persist() error {
	if err := s.store.Save(storage.KeyCharacters, s.characters); err != nil {
		return apperrors.NewProcessingError("保存角色数据失败", err)
	}
	return nil
}

// matchCharacter 检查角色是否命中搜索词
func matchCharacter(c *models.Character, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.BotID), strings.ToLower(term)) {
		return true
	}
	return c.Nickname.ContainsFold(term)
}

// List 按查询条件返回角色分页列表和过滤后的总数
func (s *CharacterService) List(query CharacterQuery) ([]*models.Character, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.TrimSpace(query.Search)
	filtered := make([]*models.Character, 0, len(s.characters))
	for _, c := range s.characters {
		if matchCharacter(c, term) {
			filtered = append(filtered, c)
		}
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	if start >= total {
		return []*models.Character{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	result := make([]*models.Character, 0, end-start)
	for _, c := range filtered[start:end] {
		result = append(result, c.Clone())
	}
	return result, total
}

// Get 按id获取角色
func (s *CharacterService) Get(id string) (*models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.characters {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, apperrors.NewNotFoundError("角色不存在: " + id)
}

// validateCharacter 校验角色的业务约束
func validateCharacter(c *models.Character) error {
	if c.Nickname.IsEmpty() {
		return apperrors.NewValidationError("昵称不能为空")
	}
	if c.Region.IsEmpty() {
		return apperrors.NewValidationError("地区不能为空")
	}
	if c.Profession.IsEmpty() {
		return apperrors.NewValidationError("职业不能为空")
	}
	if c.Introduction.IsEmpty() {
		return apperrors.NewValidationError("介绍不能为空")
	}
	if strings.TrimSpace(c.SystemPrompt) == "" {
		return apperrors.NewValidationError("系统提示词不能为空")
	}
	if !models.IsValidGender(c.Gender) {
		return apperrors.NewValidationError("性别取值不合法: " + string(c.Gender))
	}
	if !models.IsValidPermission(c.Permission) {
		return apperrors.NewValidationError("权限取值不合法: " + string(c.Permission))
	}
	if c.Age < MinCharacterAge || c.Age > MaxCharacterAge {
		return apperrors.NewValidationError(fmt.Sprintf("年龄必须在%d到%d之间", MinCharacterAge, MaxCharacterAge))
	}
	if len(c.DisplayImages) > MaxDisplayImages {
		return apperrors.NewValidationError(fmt.Sprintf("展示图片最多%d张", MaxDisplayImages))
	}
	seen := make(map[string]bool, len(c.Whitelist))
	for _, phone := range c.Whitelist {
		if !IsValidPhone(phone) {
			return apperrors.NewValidationError("白名单手机号格式不正确: " + phone)
		}
		if seen[phone] {
			return apperrors.NewValidationError("白名单手机号重复: " + phone)
		}
		seen[phone] = true
	}
	return nil
}

// Create 创建新角色
// id、botId与时间戳由服务端生成，调用方传入的同名字段被忽略
func (s *CharacterService) Create(input *models.Character) (*models.Character, error) {
	c := input.Clone()
	c.Normalize()

	if err := validateCharacter(c); err != nil {
		return nil, err
	}

	now := time.Now()
	c.ID = uuid.NewString()
	c.BotID = "bot_" + uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	s.characters = append(s.characters, c)
	if err := s.persist(); err != nil {
		s.characters = s.characters[:len(s.characters)-1]
		return nil, err
	}

	s.notify("created", c.ID)
	return c.Clone(), nil
}

// Update 按补丁部分更新角色
func (s *CharacterService) Update(id string, patch *models.CharacterPatch) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.characters {
		if c.ID != id {
			continue
		}

		updated := c.Clone()
		patch.Apply(updated)
		updated.Normalize()

		if err := validateCharacter(updated); err != nil {
			return nil, err
		}

		updated.UpdatedAt = time.Now()
		s.characters[i] = updated
		if err := s.persist(); err != nil {
			s.characters[i] = c
			return nil, err
		}

		s.notify("updated", id)
		return updated.Clone(), nil
	}

	return nil, apperrors.NewNotFoundError("角色不存在: " + id)
}

// Delete 删除角色
func (s *CharacterService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.characters {
		if c.ID != id {
			continue
		}

		removed := c
		s.characters = append(s.characters[:i], s.characters[i+1:]...)
		if err := s.persist(); err != nil {
			s.characters = append(s.characters[:i], append([]*models.Character{removed}, s.characters[i:]...)...)
			return err
		}

		s.notify("deleted", id)
		return nil
	}

	return apperrors.NewNotFoundError("角色不存在: " + id)
}

// AddToWhitelist 向角色白名单添加手机号
// 重复添加返回冲突错误，保持幂等的数据状态
func (s *CharacterService) AddToWhitelist(id, phone string) (*models.Character, error) {
	phone = strings.TrimSpace(phone)
	if !IsValidPhone(phone) {
		return nil, apperrors.NewValidationError("手机号格式不正确: " + phone)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.characters {
		if c.ID != id {
			continue
		}

		for _, existing := range c.Whitelist {
			if existing == phone {
				return nil, apperrors.NewConflictError("手机号已在白名单中: " + phone)
			}
		}

		updated := c.Clone()
		updated.Whitelist = append(updated.Whitelist, phone)
		updated.UpdatedAt = time.Now()

		s.characters[i] = updated
		if err := s.persist(); err != nil {
			s.characters[i] = c
			return nil, err
		}

		s.notify("updated", id)
		return updated.Clone(), nil
	}

	return nil, apperrors.NewNotFoundError("角色不存在: " + id)
}

// RemoveFromWhitelist 从角色白名单移除手机号
func (s *CharacterService) RemoveFromWhitelist(id, phone string) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.characters {
		if c.ID != id {
			continue
		}

		index := -1
		for j, existing := range c.Whitelist {
			if existing == phone {
				index = j
				break
			}
		}
		if index < 0 {
			return nil, apperrors.NewNotFoundError("手机号不在白名单中: " + phone)
		}

		updated := c.Clone()
		updated.Whitelist = append(updated.Whitelist[:index], updated.Whitelist[index+1:]...)
		updated.UpdatedAt = time.Now()

		s.characters[i] = updated
		if err := s.persist(); err != nil {
			s.characters[i] = c
			return nil, err
		}

		s.notify("updated", id)
		return updated.Clone(), nil
	}

	return nil, apperrors.NewNotFoundError("角色不存在: " + id)
}
