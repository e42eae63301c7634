package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remixgames/backend/internal/models"
)

func TestParseModerationResponse_FullResponse(t *testing.T) {
	raw := `CONTENT_SCORE: 85
DECISION: APPROVE
SPAM_RISK: LOW
QUALITY_SCORE: 8
AI_DETECTED: false
ANTHROPIC_FLAG: false
REASONING:
- Чёткие правила с отсылками к механикам базовых игр
- Оригинальная идея комбинации
RECOMMENDED_ACTION: Publish as is`

	result := ParseModerationResponse(raw)

	assert.Equal(t, 85, result.ContentScore)
	assert.Equal(t, models.DecisionApprove, result.Decision)
	assert.Equal(t, models.SpamRiskLow, result.SpamRisk)
	assert.Equal(t, 8, result.QualityScore)
	assert.False(t, result.AIDetected)
	assert.False(t, result.AnthropicFlag)
	assert.Len(t, result.Reasoning, 2)
	assert.Equal(t, "Publish as is", result.RecommendedAction)
}

func TestParseModerationResponse_GarbageInput(t *testing.T) {
	// Любой мусор обязан дать структурно валидный результат с дефолтами.
	for _, raw := range []string{
		"",
		"модель ушла думать о вечном",
		"CONTENT_SCORE: very good\nSPAM_RISK: чуть-чуть",
		"{\"хаос\": true}",
	} {
		result := ParseModerationResponse(raw)

		assert.GreaterOrEqual(t, result.ContentScore, 0)
		assert.LessOrEqual(t, result.ContentScore, 100)
		assert.GreaterOrEqual(t, result.QualityScore, 0)
		assert.LessOrEqual(t, result.QualityScore, 10)
		assert.Equal(t, models.DecisionReview, result.Decision)
		assert.Equal(t, models.SpamRiskMedium, result.SpamRisk)
	}
}

func TestParseModerationResponse_ClampsOutOfRange(t *testing.T) {
	raw := "CONTENT_SCORE: 150\nQUALITY_SCORE: -3"
	result := ParseModerationResponse(raw)

	assert.Equal(t, 100, result.ContentScore)
	assert.Equal(t, 0, result.QualityScore)
}

func TestParseModerationResponse_MissingNumericDefaults(t *testing.T) {
	raw := "DECISION: APPROVE\nSPAM_RISK: LOW"
	result := ParseModerationResponse(raw)

	assert.Equal(t, defaultContentScore, result.ContentScore)
	assert.Equal(t, defaultQualityScore, result.QualityScore)
}

func TestParseModerationResponse_UnknownEnumFallsBack(t *testing.T) {
	raw := "DECISION: MAYBE\nSPAM_RISK: EXTREME"
	result := ParseModerationResponse(raw)

	assert.Equal(t, models.DecisionReview, result.Decision)
	assert.Equal(t, models.SpamRiskMedium, result.SpamRisk)
}

func TestParseModerationResponse_ReasoningStopsAtRecommendedAction(t *testing.T) {
	raw := `REASONING:
- первая причина
- вторая причина
RECOMMENDED_ACTION: Отправить на ручную проверку
- это уже не причина`

	result := ParseModerationResponse(raw)

	assert.Equal(t, []string{"первая причина", "вторая причина"}, result.Reasoning)
	assert.Equal(t, "Отправить на ручную проверку", result.RecommendedAction)
}

func TestParseImageResponse_StrictJSON(t *testing.T) {
	raw := `Вот результат анализа:
{"hasSpam": true, "detectedText": "SALE 50% OFF", "urls": true, "businessLogos": false, "gameSetupVisible": true, "recommendedAction": "Reject - promo text in image"}`

	result := ParseImageResponse(raw, []string{"https://example.com/a.jpg"})

	assert.True(t, result.HasSpam)
	assert.Equal(t, "SALE 50% OFF", result.DetectedText)
	assert.True(t, result.URLs)
	assert.False(t, result.BusinessLogos)
	assert.True(t, result.GameSetupVisible)
	assert.Equal(t, "Reject - promo text in image", result.RecommendedAction)
}

func TestParseImageResponse_KeywordFallback(t *testing.T) {
	raw := "The images contain promotional content and a large business logo."

	result := ParseImageResponse(raw, nil)

	assert.True(t, result.HasSpam)
	assert.True(t, result.BusinessLogos)
	assert.Contains(t, result.RecommendedAction, "Manual review")
}

func TestParseImageResponse_CleanKeywordFallback(t *testing.T) {
	raw := "Nothing suspicious here."

	result := ParseImageResponse(raw, nil)

	assert.False(t, result.HasSpam)
	assert.Equal(t, "No action required", result.RecommendedAction)
}
