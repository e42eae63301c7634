package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remixgames/backend/internal/models"
)

func TestAssembleContent_AllFields(t *testing.T) {
	content := AssembleContent(models.ModerationInput{
		Title:       "Каркассон + Пандемия",
		Description: "Ремикс на выживание",
		Rules:       "Каждый ход тянем тайл и лечим город.",
	})

	assert.Contains(t, content, "TITLE: Каркассон + Пандемия")
	assert.Contains(t, content, "DESCRIPTION: Ремикс на выживание")
	assert.Contains(t, content, "RULES: Каждый ход тянем тайл и лечим город.")
	assert.NotContains(t, content, "COMMENT:")
}

func TestAssembleContent_CommentOnly(t *testing.T) {
	content := AssembleContent(models.ModerationInput{Comment: "отличный ремикс!"})

	assert.Equal(t, "COMMENT: отличный ремикс!", strings.TrimSpace(content))
	assert.NotContains(t, content, "TITLE:")
	assert.NotContains(t, content, "RULES:")
}

func TestBuildModerationPrompt_ContainsOutputContract(t *testing.T) {
	prompt := BuildModerationPrompt("TITLE: test", models.ContentTypeRemix)

	// Парсер завязан на эти префиксы, промпт обязан их требовать.
	for _, field := range []string{
		"CONTENT_SCORE:",
		"DECISION:",
		"SPAM_RISK:",
		"QUALITY_SCORE:",
		"AI_DETECTED:",
		"ANTHROPIC_FLAG:",
		"REASONING:",
		"RECOMMENDED_ACTION:",
	} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "TITLE: test")
}

func TestBuildImagePrompt_RequestsJSONFields(t *testing.T) {
	prompt := BuildImagePrompt([]string{"https://example.com/1.jpg", "https://example.com/2.jpg"})

	for _, field := range []string{"hasSpam", "detectedText", "urls", "businessLogos", "gameSetupVisible", "recommendedAction"} {
		assert.Contains(t, prompt, field)
	}
}
