// internal/models/draft.go
package models

// DraftFields 单语言表单面上可见的字段
// 编辑界面一次只展示一种语言，切换语言时由CharacterDraft负责回填
type DraftFields struct {
	Nickname     string   `json:"nickname"`
	Region       string   `json:"region"`
	Profession   string   `json:"profession"`
	Introduction string   `json:"introduction"`
	Greeting     string   `json:"greeting"`
	Tags         []string `json:"tags"`
}

// CharacterDraft 角色表单的工作副本
// 持有完整的多语言字段，按当前激活语言投影到单语言表单面；
// 切换语言前必须先把当前语言的编辑折回多语言对象，否则丢失未保存的修改
type CharacterDraft struct {
	Active       Language
	Nickname     MultiLangText
	Region       MultiLangText
	Profession   MultiLangText
	Introduction MultiLangText
	Greeting     MultiLangText
	Tags         MultiLangTags
}

// NewCharacterDraft 基于已有角色创建工作副本；character为nil时创建空副本
func NewCharacterDraft(character *Character, active Language) *CharacterDraft {
	if !IsValidLanguage(active) {
		active = LangZH
	}

	draft := &CharacterDraft{Active: active}
	if character != nil {
		draft.Nickname = character.Nickname
		draft.Region = character.Region
		draft.Profession = character.Profession
		draft.Introduction = character.Introduction
		draft.Greeting = character.Greeting
		draft.Tags = character.Tags.Clone()
	}
	draft.Tags.Normalize()

	return draft
}

// Project 把当前激活语言的字段投影到单语言表单面
func (d *CharacterDraft) Project() DraftFields {
	return DraftFields{
		Nickname:     d.Nickname.Get(d.Active),
		Region:       d.Region.Get(d.Active),
		Profession:   d.Profession.Get(d.Active),
		Introduction: d.Introduction.Get(d.Active),
		Greeting:     d.Greeting.Get(d.Active),
		Tags:         append([]string{}, d.Tags.Get(d.Active)...),
	}
}

// Apply 把表单面上的编辑折回当前激活语言，其余语言不受影响
func (d *CharacterDraft) Apply(fields DraftFields) {
	d.Nickname.Set(d.Active, fields.Nickname)
	d.Region.Set(d.Active, fields.Region)
	d.Profession.Set(d.Active, fields.Profession)
	d.Introduction.Set(d.Active, fields.Introduction)
	d.Greeting.Set(d.Active, fields.Greeting)
	if fields.Tags == nil {
		fields.Tags = []string{}
	}
	d.Tags.Set(d.Active, append([]string{}, fields.Tags...))
}

// SwitchLanguage 折回当前语言的编辑后切换到目标语言，返回新语言的投影
func (d *CharacterDraft) SwitchLanguage(fields DraftFields, lang Language) DraftFields {
	d.Apply(fields)
	if IsValidLanguage(lang) {
		d.Active = lang
	}
	return d.Project()
}
