package ai

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/remixgames/backend/internal/models"
)

// Дефолты полей при отсутствующем или нечитаемом значении.
// Parser никогда не возвращает ошибку: ответ модели — свободный текст,
// и любой мусор должен деградировать в структурно валидный результат.
const (
	defaultContentScore = 50
	defaultQualityScore = 5
)

var numberRegex = regexp.MustCompile(`-?\d+`)

// ParseModerationResponse разбирает полусвободный текстовый ответ модели
// построчно по известным префиксам полей.
func ParseModerationResponse(raw string) *models.ModerationResult {
	result := &models.ModerationResult{
		ContentScore: defaultContentScore,
		Decision:     models.DecisionReview,
		SpamRisk:     models.SpamRiskMedium,
		QualityScore: defaultQualityScore,
		Reasoning:    []string{},
	}

	inReasoning := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, "CONTENT_SCORE:"):
			inReasoning = false
			result.ContentScore = parseClampedInt(line[len("CONTENT_SCORE:"):], 0, 100, defaultContentScore)

		case strings.HasPrefix(upper, "DECISION:"):
			inReasoning = false
			result.Decision = parseDecision(line[len("DECISION:"):])

		case strings.HasPrefix(upper, "SPAM_RISK:"):
			inReasoning = false
			result.SpamRisk = parseSpamRisk(line[len("SPAM_RISK:"):])

		case strings.HasPrefix(upper, "QUALITY_SCORE:"):
			inReasoning = false
			result.QualityScore = parseClampedInt(line[len("QUALITY_SCORE:"):], 0, 10, defaultQualityScore)

		case strings.HasPrefix(upper, "AI_DETECTED:"):
			inReasoning = false
			result.AIDetected = parseBool(line[len("AI_DETECTED:"):])

		case strings.HasPrefix(upper, "ANTHROPIC_FLAG:"):
			inReasoning = false
			result.AnthropicFlag = parseBool(line[len("ANTHROPIC_FLAG:"):])

		case strings.HasPrefix(upper, "REASONING:"):
			inReasoning = true

		case strings.HasPrefix(upper, "RECOMMENDED_ACTION:"):
			inReasoning = false
			result.RecommendedAction = strings.TrimSpace(line[len("RECOMMENDED_ACTION:"):])

		case inReasoning && strings.HasPrefix(line, "-"):
			reason := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if reason != "" {
				result.Reasoning = append(result.Reasoning, reason)
			}
		}
	}

	return result
}

// ParseImageResponse разбирает ответ визуальной проверки: сперва строгий
// JSON, при неудаче — поиск по ключевым словам.
func ParseImageResponse(raw string, analyzedURLs []string) *models.ImageModerationResult {
	result := &models.ImageModerationResult{
		AnalyzedURLs: analyzedURLs,
	}

	if parsed, ok := parseJSONFromText(raw); ok {
		result.HasSpam = boolField(parsed, "hasSpam")
		result.URLs = boolField(parsed, "urls")
		result.BusinessLogos = boolField(parsed, "businessLogos")
		result.GameSetupVisible = boolField(parsed, "gameSetupVisible")
		if text, ok := parsed["detectedText"].(string); ok {
			result.DetectedText = text
		}
		if action, ok := parsed["recommendedAction"].(string); ok {
			result.RecommendedAction = action
		}
		if result.RecommendedAction == "" {
			result.RecommendedAction = "No action required"
		}
		return result
	}

	// JSON не извлечён — приближаем булевы поля по ключевым словам.
	lower := strings.ToLower(raw)
	result.HasSpam = strings.Contains(lower, "hasspam: true") ||
		strings.Contains(lower, `"hasspam": true`) ||
		strings.Contains(lower, "spam detected") ||
		strings.Contains(lower, "promotional content")
	result.BusinessLogos = strings.Contains(lower, "logo") || strings.Contains(lower, "business")
	result.URLs = strings.Contains(lower, "url") || strings.Contains(lower, "http")
	result.GameSetupVisible = strings.Contains(lower, "game setup") || strings.Contains(lower, "board visible")

	if result.HasSpam {
		result.RecommendedAction = "Manual review recommended - possible visual spam"
	} else {
		result.RecommendedAction = "No action required"
	}

	return result
}

// parseClampedInt извлекает первое целое число из строки и зажимает его
// в допустимый диапазон; при неудаче возвращает дефолт.
func parseClampedInt(s string, min, max, fallback int) int {
	match := numberRegex.FindString(s)
	if match == "" {
		return fallback
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return fallback
	}

	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// parseDecision распознаёт решение модели; нераспознанный токен
// деградирует в REVIEW.
func parseDecision(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case models.DecisionApprove:
		return models.DecisionApprove
	case models.DecisionReject:
		return models.DecisionReject
	case models.DecisionReview:
		return models.DecisionReview
	default:
		return models.DecisionReview
	}
}

// parseSpamRisk распознаёт уровень риска; нераспознанный токен
// деградирует в MEDIUM.
func parseSpamRisk(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case models.SpamRiskLow:
		return models.SpamRiskLow
	case models.SpamRiskHigh:
		return models.SpamRiskHigh
	case models.SpamRiskMedium:
		return models.SpamRiskMedium
	default:
		return models.SpamRiskMedium
	}
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func boolField(m map[string]interface{}, key string) bool {
	v, ok := m[key].(bool)
	return ok && v
}
