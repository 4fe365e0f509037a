// internal/models/multilang_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiLangTextContainsFold(t *testing.T) {
	text := NewMultiLangText("创意设计师Lily", "Creative Designer Lily", "ليلي")

	assert.True(t, text.ContainsFold("lily"))
	assert.True(t, text.ContainsFold("设计师"))
	assert.True(t, text.ContainsFold("ليلي"))
	assert.False(t, text.ContainsFold("tom"))
}

func TestMultiLangTextJSONKeys(t *testing.T) {
	data, err := json.Marshal(NewMultiLangText("中", "en", "ar"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"zh":"中","en":"en","ar":"ar"}`, string(data))
}

func TestMultiLangTagsNormalize(t *testing.T) {
	var tags MultiLangTags
	tags.Normalize()

	data, err := json.Marshal(tags)
	require.NoError(t, err)

	// 未填写的语言序列化为空数组而不是null
	assert.JSONEq(t, `{"zh":[],"en":[],"ar":[]}`, string(data))
}

func TestCharacterPatchDoesNotTouchIdentity(t *testing.T) {
	character := sampleCharacter()
	character.ID = "id-1"
	character.BotID = "bot_1"

	newAge := 42
	patch := CharacterPatch{Age: &newAge}
	patch.Apply(character)

	assert.Equal(t, "id-1", character.ID)
	assert.Equal(t, "bot_1", character.BotID)
	assert.Equal(t, 42, character.Age)
}

func TestCharacterCloneIsolatesSlices(t *testing.T) {
	character := sampleCharacter()
	character.Whitelist = []string{"13800138000"}

	clone := character.Clone()
	clone.Whitelist[0] = "changed"
	clone.Tags.ZH[0] = "changed"

	assert.Equal(t, "13800138000", character.Whitelist[0])
	assert.Equal(t, "友善", character.Tags.ZH[0])
}
