// internal/services/template_service.go
package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
	"github.com/personadesk/PersonaDesk/internal/storage"
)

// MaxTemplateContentLength 单个语言的模板内容上限
const MaxTemplateContentLength = 15000

// TemplateQuery 模板列表的查询条件
type TemplateQuery struct {
	Search   string // 匹配三语言名称、描述与分类，大小写不敏感
	Page     int
	PageSize int
}

// TemplateService 处理提示词模板的业务逻辑
type TemplateService struct {
	store *storage.Store

	mu        sync.RWMutex
	templates []*models.Template

	// OnChange 变更通知回调，装配时注入，可为nil
	OnChange func(ChangeEvent)
}

// NewTemplateService 创建模板服务并加载持久化数据
func NewTemplateService(store *storage.Store) *TemplateService {
	s := &TemplateService{store: store}

	var loaded []*models.Template
	ok := store.Load(storage.KeyTemplates, &loaded, func() bool {
		for _, t := range loaded {
			if t == nil || t.ID == "" {
				return false
			}
		}
		return true
	})

	if ok {
		s.templates = loaded
	} else {
		s.templates = SeedTemplates()
		if err := store.Save(storage.KeyTemplates, s.templates); err != nil {
			log.Printf("写入模板种子数据失败: %v", err)
		}
	}

	return s
}

func (s *TemplateService) notify(action, id string) {
	if s.OnChange != nil {
		s.OnChange(ChangeEvent{Entity: "template", Action: action, ID: id})
	}
}

func (s *TemplateService) persist() error {
	if err := s.store.Save(storage.KeyTemplates, s.templates); err != nil {
		return apperrors.NewProcessingError("保存模板数据失败", err)
	}
	return nil
}

// matchTemplate 检查模板是否命中搜索词
func matchTemplate(t *models.Template, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Category), strings.ToLower(term)) {
		return true
	}
	return t.Name.ContainsFold(term) || t.Description.ContainsFold(term)
}

// List 按查询条件返回模板分页列表和过滤后的总数
func (s *TemplateService) List(query TemplateQuery) ([]*models.Template, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.TrimSpace(query.Search)
	filtered := make([]*models.Template, 0, len(s.templates))
	for _, t := range s.templates {
		if matchTemplate(t, term) {
			filtered = append(filtered, t)
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
		return []*models.Template{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	result := make([]*models.Template, 0, end-start)
	for _, t := range filtered[start:end] {
		result = append(result, t.Clone())
	}
	return result, total
}

// Get 按id获取模板
func (s *TemplateService) Get(id string) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return nil, apperrors.NewNotFoundError("模板不存在: " + id)
}

// validateTemplate 校验模板的业务约束
func validateTemplate(t *models.Template) error {
	if t.Name.IsEmpty() {
		return apperrors.NewValidationError("模板名称不能为空")
	}
	if t.Content.IsEmpty() {
		return apperrors.NewValidationError("模板内容不能为空")
	}
	if !models.IsValidCategory(t.Category) {
		return apperrors.NewValidationError("模板分类不合法: " + t.Category)
	}
	for _, lang := range models.Languages {
		if len([]rune(t.Content.Get(lang))) > MaxTemplateContentLength {
			return apperrors.NewValidationError(
				fmt.Sprintf("模板内容超出长度上限%d字符", MaxTemplateContentLength))
		}
	}
	return nil
}

// Create 创建新模板
func (s *TemplateService) Create(input *models.Template) (*models.Template, error) {
	t := input.Clone()

	if err := validateTemplate(t); err != nil {
		return nil, err
	}

	now := time.Now()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates = append(s.templates, t)
	if err := s.persist(); err != nil {
		s.templates = s.templates[:len(s.templates)-1]
		return nil, err
	}

	s.notify("created", t.ID)
	return t.Clone(), nil
}

// Update 按补丁部分更新模板
func (s *TemplateService) Update(id string, patch *models.TemplatePatch) (*models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.templates {
		if t.ID != id {
			continue
		}

		updated := t.Clone()
		patch.Apply(updated)

		if err := validateTemplate(updated); err != nil {
			return nil, err
		}

		updated.UpdatedAt = time.Now()
		s.templates[i] = updated
		if err := s.persist(); err != nil {
			s.templates[i] = t
			return nil, err
		}

		s.notify("updated", id)
		return updated.Clone(), nil
	}

	return nil, apperrors.NewNotFoundError("模板不存在: " + id)
}

// Delete 删除模板
func (s *TemplateService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.templates {
		if t.ID != id {
			continue
		}

		removed := t
		s.templates = append(s.templates[:i], s.templates[i+1:]...)
		if err := s.persist(); err != nil {
			s.templates = append(s.templates[:i], append([]*models.Template{removed}, s.templates[i:]...)...)
			return err
		}

		s.notify("deleted", id)
		return nil
	}

	return apperrors.NewNotFoundError("模板不存在: " + id)
}
