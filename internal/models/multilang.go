// internal/models/multilang.go
package models

import "strings"

// Language 表单当前编辑的语言
type Language string

const (
	LangZH Language = "zh"
	LangEN Language = "en"
	LangAR Language = "ar"
)

// Languages 支持的全部语言，顺序固定
var Languages = []Language{LangZH, LangEN, LangAR}

// IsValidLanguage 检查语言代码是否受支持
func IsValidLanguage(lang Language) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// MultiLangText 多语言文本
// 三种语言的键始终存在，未填写的语言为空字符串
type MultiLangText struct {
	ZH string `json:"zh"`
	EN string `json:"en"`
	AR string `json:"ar"`
}

// NewMultiLangText 创建多语言文本
func NewMultiLangText(zh, en, ar string) MultiLangText {
	return MultiLangText{ZH: zh, EN: en, AR: ar}
}

// Get 获取指定语言的文本
func (t MultiLangText) Get(lang Language) string {
	switch lang {
	case LangEN:
		return t.EN
	case LangAR:
		return t.AR
	default:
		return t.ZH
	}
}

// Set 设置指定语言的文本，其余语言保持不变
func (t *MultiLangText) Set(lang Language, value string) {
	switch lang {
	case LangEN:
		t.EN = value
	case LangAR:
		t.AR = value
	default:
		t.ZH = value
	}
}

// IsEmpty 是否所有语言都未填写
func (t MultiLangText) IsEmpty() bool {
	return t.ZH == "" && t.EN == "" && t.AR == ""
}

// ContainsFold 任一语言包含指定子串（大小写不敏感）
func (t MultiLangText) ContainsFold(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.ZH), term) ||
		strings.Contains(strings.ToLower(t.EN), term) ||
		strings.Contains(strings.ToLower(t.AR), term)
}

// MultiLangTags 按语言划分的标签列表
type MultiLangTags struct {
	ZH []string `json:"zh"`
	EN []string `json:"en"`
	AR []string `json:"ar"`
}

// Get 获取指定语言的标签
func (t MultiLangTags) Get(lang Language) []string {
	switch lang {
	case LangEN:
		return t.EN
	case LangAR:
		return t.AR
	default:
		return t.ZH
	}
}

// Set 设置指定语言的标签
func (t *MultiLangTags) Set(lang Language, tags []string) {
	switch lang {
	case LangEN:
		t.EN = tags
	case LangAR:
		t.AR = tags
	default:
		t.ZH = tags
	}
}

// Normalize 确保每种语言的标签列表非nil，序列化后始终是数组
func (t *MultiLangTags) Normalize() {
	if t.ZH == nil {
		t.ZH = []string{}
	}
	if t.EN == nil {
		t.EN = []string{}
	}
	if t.AR == nil {
		t.AR = []string{}
	}
}

// Clone 深拷贝标签
func (t MultiLangTags) Clone() MultiLangTags {
	return MultiLangTags{
		ZH: append([]string{}, t.ZH...),
		EN: append([]string{}, t.EN...),
		AR: append([]string{}, t.AR...),
	}
}
