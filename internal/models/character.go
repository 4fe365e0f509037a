// internal/models/character.go
package models

import "time"

// Gender 角色性别
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValidGender 检查性别取值是否合法
func IsValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Permission 角色访问权限
type Permission string

const (
	PermissionPublic  Permission = "public"
	PermissionPrivate Permission = "private"
)

// IsValidPermission 检查权限取值是否合法
func IsValidPermission(p Permission) bool {
	return p == PermissionPublic || p == PermissionPrivate
}

// Character 表示一个AI聊天角色
// 持久化格式与管理端的历史数据布局保持一致（camelCase键）
type Character struct {
	ID            string        `json:"id"`
	BotID         string        `json:"botId"` // 全局唯一，创建后不可变更
	Avatar        string        `json:"avatar"`
	Gender        Gender        `json:"gender"`
	Age           int           `json:"age"`
	Permission    Permission    `json:"permission"`
	Nickname      MultiLangText `json:"nickname"`
	Region        MultiLangText `json:"region"`
	Profession    MultiLangText `json:"profession"`
	Introduction  MultiLangText `json:"introduction"`
	Tags          MultiLangTags `json:"tags"`
	Greeting      MultiLangText `json:"greeting"`
	DisplayImages []string      `json:"displayImages"`
	SystemPrompt  string        `json:"systemPrompt"`
	Whitelist     []string      `json:"whitelist"` // 白名单手机号，仅private权限有意义
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Clone 返回角色的深拷贝，避免调用方共享内部切片
func (c *Character) Clone() *Character {
	clone := *c
	clone.Tags = c.Tags.Clone()
	clone.DisplayImages = append([]string{}, c.DisplayImages...)
	clone.Whitelist = append([]string{}, c.Whitelist...)
	return &clone
}

// Normalize 补齐可能缺失的切片字段，保证三语言键完整
func (c *Character) Normalize() {
	c.Tags.Normalize()
	if c.DisplayImages == nil {
		c.DisplayImages = []string{}
	}
	if c.Whitelist == nil {
		c.Whitelist = []string{}
	}
}

// CharacterPatch 部分更新角色时使用的补丁
// nil字段表示不修改；ID、BotID与CreatedAt不可通过补丁变更
type CharacterPatch struct {
	Avatar        *string        `json:"avatar,omitempty"`
	Gender        *Gender        `json:"gender,omitempty"`
	Age           *int           `json:"age,omitempty"`
	Permission    *Permission    `json:"permission,omitempty"`
	Nickname      *MultiLangText `json:"nickname,omitempty"`
	Region        *MultiLangText `json:"region,omitempty"`
	Profession    *MultiLangText `json:"profession,omitempty"`
	Introduction  *MultiLangText `json:"introduction,omitempty"`
	Tags          *MultiLangTags `json:"tags,omitempty"`
	Greeting      *MultiLangText `json:"greeting,omitempty"`
	DisplayImages *[]string      `json:"displayImages,omitempty"`
	SystemPrompt  *string        `json:"systemPrompt,omitempty"`
	Whitelist     *[]string      `json:"whitelist,omitempty"`
}

// Apply 将补丁浅合并到角色上，不触碰身份与创建时间
func (p *CharacterPatch) Apply(c *Character) {
	if p.Avatar != nil {
		c.Avatar = *p.Avatar
	}
	if p.Gender != nil {
		c.Gender = *p.Gender
	}
	if p.Age != nil {
		c.Age = *p.Age
	}
	if p.Permission != nil {
		c.Permission = *p.Permission
	}
	if p.Nickname != nil {
		c.Nickname = *p.Nickname
	}
	if p.Region != nil {
		c.Region = *p.Region
	}
	if p.Profession != nil {
		c.Profession = *p.Profession
	}
	if p.Introduction != nil {
		c.Introduction = *p.Introduction
	}
	if p.Tags != nil {
		c.Tags = p.Tags.Clone()
	}
	if p.Greeting != nil {
		c.Greeting = *p.Greeting
	}
	if p.DisplayImages != nil {
		c.DisplayImages = append([]string{}, (*p.DisplayImages)...)
	}
	if p.SystemPrompt != nil {
		c.SystemPrompt = *p.SystemPrompt
	}
	if p.Whitelist != nil {
		c.Whitelist = append([]string{}, (*p.Whitelist)...)
	}
}
