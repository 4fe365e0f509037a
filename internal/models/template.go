// internal/models/template.go
package models

import "time"

// 模板分类
const (
	CategoryWelcome = "welcome"
	CategorySupport = "support"
	CategoryProduct = "product"
	CategoryFAQ     = "faq"
	CategoryOther   = "other"
)

// TemplateCategories 全部可选分类
var TemplateCategories = []string{
	CategoryWelcome,
	CategorySupport,
	CategoryProduct,
	CategoryFAQ,
	CategoryOther,
}

// IsValidCategory 检查模板分类是否合法
func IsValidCategory(category string) bool {
	for _, c := range TemplateCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Template 可复用的提示词模板
type Template struct {
	ID          string        `json:"id"`
	Name        MultiLangText `json:"name"`
	Description MultiLangText `json:"description"`
	Content     MultiLangText `json:"content"`
	Category    string        `json:"category"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Clone 返回模板的拷贝
func (t *Template) Clone() *Template {
	clone := *t
	return &clone
}

// TemplatePatch 部分更新模板时使用的补丁
type TemplatePatch struct {
	Name        *MultiLangText `json:"name,omitempty"`
	Description *MultiLangText `json:"description,omitempty"`
	Content     *MultiLangText `json:"content,omitempty"`
	Category    *string        `json:"category,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

// Apply 将补丁浅合并到模板上
func (p *TemplatePatch) Apply(t *Template) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
}
