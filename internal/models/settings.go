// internal/models/settings.go
package models

// AppSettings 全局通用配置
type AppSettings struct {
	DefaultAvatars []string `json:"defaultAvatars"`
}

// Clone 返回配置的拷贝
func (s *AppSettings) Clone() *AppSettings {
	return &AppSettings{
		DefaultAvatars: append([]string{}, s.DefaultAvatars...),
	}
}

// SettingsPatch 合并更新全局配置时使用的补丁
type SettingsPatch struct {
	DefaultAvatars *[]string `json:"defaultAvatars,omitempty"`
}

// Apply 将补丁合并到配置上
func (p *SettingsPatch) Apply(s *AppSettings) {
	if p.DefaultAvatars != nil {
		s.DefaultAvatars = append([]string{}, (*p.DefaultAvatars)...)
	}
}

// User 登录会话中的用户信息
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
