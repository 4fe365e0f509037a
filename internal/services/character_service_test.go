// internal/services/character_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
	"github.com/personadesk/PersonaDesk/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func validCharacterInput() *models.Character {
	return &models.Character{
		Gender:       models.GenderFemale,
		Age:          22,
		Permission:   models.PermissionPublic,
		Nickname:     models.NewMultiLangText("测试角色", "Test Character", "شخصية"),
		Region:       models.NewMultiLangText("杭州", "Hangzhou", "هانغتشو"),
		Profession:   models.NewMultiLangText("测试", "Tester", "مختبر"),
		Introduction: models.NewMultiLangText("介绍", "Intro", "مقدمة"),
		SystemPrompt: "You are a test character.",
	}
}

func TestCharacterServiceSeedsOnFirstRun(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))

	characters, total := svc.List(CharacterQuery{})
	assert.Equal(t, 3, total)
	require.Len(t, characters, 3)
	assert.Equal(t, "小雅助手", characters[0].Nickname.ZH)
	assert.Equal(t, models.PermissionPrivate, characters[1].Permission)
	assert.Len(t, characters[1].Whitelist, 3)
}

func TestCharacterServiceReloadsPersistedData(t *testing.T) {
	store := newTestStore(t)

	first := NewCharacterService(store)
	created, err := first.Create(validCharacterInput())
	require.NoError(t, err)

	// 重新构建服务，模拟进程重启
	second := NewCharacterService(store)
	loaded, err := second.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.BotID, loaded.BotID)
}

func TestCharacterServiceCreateStampsIdentity(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))

	created, err := svc.Create(validCharacterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.True(t, len(created.BotID) > 4 && created.BotID[:4] == "bot_")
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.NotNil(t, created.Whitelist)
	assert.NotNil(t, created.DisplayImages)
}

func TestCharacterServiceCreateValidation(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))

	cases := []struct {
		name   string
		mutate func(*models.Character)
	}{
		{"缺少昵称", func(c *models.Character) { c.Nickname = models.MultiLangText{} }},
		{"缺少系统提示词", func(c *models.Character) { c.SystemPrompt = "  " }},
		{"年龄过小", func(c *models.Character) { c.Age = 0 }},
		{"年龄过大", func(c *models.Character) { c.Age = 201 }},
		{"非法性别", func(c *models.Character) { c.Gender = "unknown" }},
		{"非法权限", func(c *models.Character) { c.Permission = "secret" }},
		{"白名单手机号非法", func(c *models.Character) { c.Whitelist = []string{"abc"} }},
		{"展示图片过多", func(c *models.Character) {
			c.DisplayImages = []string{"1", "2", "3", "4", "5", "6", "7"}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCharacterInput()
			tc.mutate(input)

			_, err := svc.Create(input)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}

	// 校验失败不应污染集合
	_, total := svc.List(CharacterQuery{})
	assert.Equal(t, 3, total)
}

func TestCharacterServiceUpdatePatchIsolation(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))
	characters, _ := svc.List(CharacterQuery{})
	target := characters[0]

	newAge := 99
	updated, err := svc.Update(target.ID, &models.CharacterPatch{Age: &newAge})
	require.NoError(t, err)

	assert.Equal(t, 99, updated.Age)
	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, target.BotID, updated.BotID)
	assert.Equal(t, target.Nickname, updated.Nickname)
	assert.True(t, updated.UpdatedAt.After(target.UpdatedAt))
	assert.Equal(t, target.CreatedAt, updated.CreatedAt)

	// 其他记录不受影响
	other, err := svc.Get(characters[1].ID)
	require.NoError(t, err)
	assert.Equal(t, characters[1].Age, other.Age)
}

func TestCharacterServiceUpdateMissingID(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))

	newAge := 30
	_, err := svc.Update("nope", &models.CharacterPatch{Age: &newAge})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCharacterServiceDeleteIsolation(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))
	characters, _ := svc.List(CharacterQuery{})

	require.NoError(t, svc.Delete(characters[1].ID))

	remaining, total := svc.List(CharacterQuery{})
	assert.Equal(t, 2, total)
	for _, c := range remaining {
		assert.NotEqual(t, characters[1].ID, c.ID)
	}

	assert.True(t, apperrors.IsNotFoundError(svc.Delete(characters[1].ID)))
}

func TestCharacterServiceSearchLily(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))

	results, total := svc.List(CharacterQuery{Search: "Lily"})
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "创意设计师Lily", results[0].Nickname.ZH)

	// 大小写不敏感，中文昵称同样命中
	_, total = svc.List(CharacterQuery{Search: "lily"})
	assert.Equal(t, 1, total)
	_, total = svc.List(CharacterQuery{Search: "小雅"})
	assert.Equal(t, 1, total)
	_, total = svc.List(CharacterQuery{Search: "bot_"})
	assert.Equal(t, 3, total)
	_, total = svc.List(CharacterQuery{Search: "不存在"})
	assert.Equal(t, 0, total)
}

func TestCharacterServicePagination(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))

	page1, total := svc.List(CharacterQuery{Page: 1, PageSize: 2})
	assert.Equal(t, 3, total)
	assert.Len(t, page1, 2)

	page2, _ := svc.List(CharacterQuery{Page: 2, PageSize: 2})
	assert.Len(t, page2, 1)

	beyond, _ := svc.List(CharacterQuery{Page: 5, PageSize: 2})
	assert.Empty(t, beyond)

	// 非法分页参数回退到默认值
	all, _ := svc.List(CharacterQuery{Page: -1, PageSize: 0})
	assert.Len(t, all, 3)
}

func TestCharacterServiceWhitelistAddIdempotent(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))
	characters, _ := svc.List(CharacterQuery{})
	target := characters[2] // Lily，空白名单

	updated, err := svc.AddToWhitelist(target.ID, "13000130000")
	require.NoError(t, err)
	assert.Equal(t, []string{"13000130000"}, updated.Whitelist)

	// 重复添加拒绝且不改变数据
	_, err = svc.AddToWhitelist(target.ID, "13000130000")
	assert.True(t, apperrors.IsConflictError(err))

	current, err := svc.Get(target.ID)
	require.NoError(t, err)
	assert.Len(t, current.Whitelist, 1)
}

func TestCharacterServiceRejectsDuplicateWhitelistEntries(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))

	// 创建时白名单去重
	input := validCharacterInput()
	input.Whitelist = []string{"13800138000", "13800138000"}
	_, err := svc.Create(input)
	assert.True(t, apperrors.IsValidationError(err))

	// 补丁更新同样不能带入重复号码
	characters, _ := svc.List(CharacterQuery{})
	target := characters[0]

	duplicated := []string{"13800138000", "13800138000"}
	_, err = svc.Update(target.ID, &models.CharacterPatch{Whitelist: &duplicated})
	assert.True(t, apperrors.IsValidationError(err))

	current, err := svc.Get(target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.Whitelist, current.Whitelist)
}

func TestCharacterServiceWhitelistValidation(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))
	characters, _ := svc.List(CharacterQuery{})

	_, err := svc.AddToWhitelist(characters[0].ID, "12ab")
	assert.True(t, apperrors.IsValidationError(err))

	// 带国家码的号码合法
	_, err = svc.AddToWhitelist(characters[0].ID, "+86 13000130000")
	assert.NoError(t, err)
}

func TestCharacterServiceWhitelistRemove(t *testing.T) {
	svc := NewCharacterService(newTestStore(t))
	characters, _ := svc.List(CharacterQuery{})
	target := characters[0]

	updated, err := svc.RemoveFromWhitelist(target.ID, "13800138000")
	require.NoError(t, err)
	assert.NotContains(t, updated.Whitelist, "13800138000")

	_, err = svc.RemoveFromWhitelist(target.ID, "13800138000")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"13800138000", "+86 13800138000", "+1-2025550123", "123456789012345"}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), phone)
	}

	invalid := []string{"", "123", "abc", "1380013800012345678", "+861 380"}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), phone)
	}
}
