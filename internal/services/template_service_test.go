// internal/services/template_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
)

func validTemplateInput() *models.Template {
	return &models.Template{
		Name:        models.NewMultiLangText("测试模板", "Test Template", "قالب"),
		Description: models.NewMultiLangText("描述", "Description", "وصف"),
		Content:     models.NewMultiLangText("内容", "Content", "محتوى"),
		Category:    models.CategoryOther,
		IsActive:    true,
	}
}

func TestTemplateServiceSeedsOnFirstRun(t *testing.T) {
	svc := NewTemplateService(newTestStore(t))

	templates, total := svc.List(TemplateQuery{})
	assert.Equal(t, 3, total)
	require.Len(t, templates, 3)

	// 产品模板默认停用
	assert.Equal(t, models.CategoryProduct, templates[2].Category)
	assert.False(t, templates[2].IsActive)
}

func TestTemplateServiceCreateAndReload(t *testing.T) {
	store := newTestStore(t)

	first := NewTemplateService(store)
	created, err := first.Create(validTemplateInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	second := NewTemplateService(store)
	loaded, err := second.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "测试模板", loaded.Name.ZH)
}

func TestTemplateServiceContentLengthLimit(t *testing.T) {
	svc := NewTemplateService(newTestStore(t))

	input := validTemplateInput()
	input.Content.EN = strings.Repeat("a", MaxTemplateContentLength+1)

	_, err := svc.Create(input)
	assert.True(t, apperrors.IsValidationError(err))

	// 正好到上限可以通过
	input.Content.EN = strings.Repeat("a", MaxTemplateContentLength)
	_, err = svc.Create(input)
	assert.NoError(t, err)
}

func TestTemplateServiceCategoryValidation(t *testing.T) {
	svc := NewTemplateService(newTestStore(t))

	input := validTemplateInput()
	input.Category = "marketing"

	_, err := svc.Create(input)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestTemplateServiceUpdatePatch(t *testing.T) {
	svc := NewTemplateService(newTestStore(t))
	templates, _ := svc.List(TemplateQuery{})
	target := templates[0]

	inactive := false
	updated, err := svc.Update(target.ID, &models.TemplatePatch{IsActive: &inactive})
	require.NoError(t, err)

	assert.False(t, updated.IsActive)
	assert.Equal(t, target.Name, updated.Name)
	assert.Equal(t, target.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(target.UpdatedAt))
}

func TestTemplateServiceDelete(t *testing.T) {
	svc := NewTemplateService(newTestStore(t))
	templates, _ := svc.List(TemplateQuery{})

	require.NoError(t, svc.Delete(templates[0].ID))

	_, total := svc.List(TemplateQuery{})
	assert.Equal(t, 2, total)

	assert.True(t, apperrors.IsNotFoundError(svc.Delete(templates[0].ID)))
	_, err := svc.Get(templates[0].ID)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTemplateServiceSearch(t *testing.T) {
	svc := NewTemplateService(newTestStore(t))

	// 命中名称与分类
	_, total := svc.List(TemplateQuery{Search: "welcome"})
	assert.Equal(t, 1, total)

	// 命中分类
	_, total = svc.List(TemplateQuery{Search: "support"})
	assert.Equal(t, 1, total)

	// 命中描述
	_, total = svc.List(TemplateQuery{Search: "新用户"})
	assert.Equal(t, 1, total)

	_, total = svc.List(TemplateQuery{Search: "不存在"})
	assert.Equal(t, 0, total)
}
