package ai

import (
	"fmt"
	"strings"

	"github.com/remixgames/backend/internal/models"
)

// Параметры запросов модерации: низкая температура и ограниченный бюджет
// токенов, чтобы ответ оставался коротким и детерминированным.
const (
	moderationTemperature = 0.1
	ModerationMaxTokens   = 1000
	ImageMaxTokens        = 500
)

// AssembleContent собирает поля отправки в один текстовый блок с метками
// секций. Отсутствующие поля просто опускаются, без валидации.
func AssembleContent(input models.ModerationInput) string {
	var b strings.Builder

	if input.Title != "" {
		b.WriteString("TITLE: " + input.Title + "\n\n")
	}
	if input.Description != "" {
		b.WriteString("DESCRIPTION: " + input.Description + "\n\n")
	}
	if input.Rules != "" {
		b.WriteString("RULES: " + input.Rules + "\n\n")
	}
	if input.Comment != "" {
		b.WriteString("COMMENT: " + input.Comment + "\n\n")
	}

	return b.String()
}

// BuildModerationPrompt формирует полный промпт: рубрика оценки, блок
// контента и обязательный контракт формата ответа. Кроме подстановки
// contentType здесь нет никакой логики — это чистый шаблон.
func BuildModerationPrompt(content, contentType string) string {
	return fmt.Sprintf(`You are a content moderator for a board game community site where users share "remix" recipes that combine mechanics from existing board games.

Evaluate the following %s submission.

=== CONTENT ===
%s=== END CONTENT ===

QUALITY INDICATORS (raise the score):
- Clear, playable rules that reference the base games' actual mechanics
- Original combination idea, not a copy of an existing game
- Specific setup, player counts, win conditions
- Genuine enthusiasm for board games

SPAM RED FLAGS (raise spam risk):
- External links, store promotions, discount codes, contact details
- Repeated or templated text, keyword stuffing
- Content unrelated to board games
- Solicitation of any kind

AI-GENERATED CONTENT:
- Flag content that reads as mass-generated filler (generic, no concrete game specifics)
- A flagged submission is NOT automatically rejected, it must be reviewed by a human

Respond EXACTLY in the following format, one field per line:
CONTENT_SCORE: <integer 0-100>
DECISION: <APPROVE|REVIEW|REJECT>
SPAM_RISK: <LOW|MEDIUM|HIGH>
QUALITY_SCORE: <integer 0-10>
AI_DETECTED: <true|false>
ANTHROPIC_FLAG: <true|false>
REASONING:
- <short reason>
- <short reason>
RECOMMENDED_ACTION: <one line>`, contentType, content)
}

// BuildImagePrompt формирует промпт визуальной проверки изображений.
// Ответ запрашивается строго как JSON объект.
func BuildImagePrompt(imageURLs []string) string {
	return fmt.Sprintf(`You are inspecting %d image(s) attached to a board game remix submission for visual spam.

Look for: embedded text with promotions or URLs, business logos or watermarks, and whether an actual board game setup is visible.

Respond with a single JSON object and nothing else:
{"hasSpam": <bool>, "detectedText": "<text found in images or empty>", "urls": <bool>, "businessLogos": <bool>, "gameSetupVisible": <bool>, "recommendedAction": "<one line>"}`, len(imageURLs))
}
