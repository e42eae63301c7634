package ai

import (
	"github.com/remixgames/backend/internal/models"
)

// DecisionPolicy вычисляет итоговое решение по порогам. Решение, которое
// модель назвала сама, носит совещательный характер и всегда
// перезаписывается политикой.
type DecisionPolicy struct {
	ApproveScore int
	ReviewScore  int
}

// NewDecisionPolicy создаёт политику с заданными порогами.
func NewDecisionPolicy(approveScore, reviewScore int) DecisionPolicy {
	return DecisionPolicy{
		ApproveScore: approveScore,
		ReviewScore:  reviewScore,
	}
}

// policyRule — одно именованное правило перекрытия. Правила проверяются
// строго сверху вниз, первое совпавшее определяет решение.
type policyRule struct {
	Name     string
	Matches  func(score int, spamRisk string, anthropicFlag bool) bool
	Decision string
}

// rules возвращает упорядоченный список правил. Порядок существенен:
// высокий спам-риск не перебивается никаким баллом, а флаг
// AI-детекции требует ручной проверки даже при идеальной оценке.
func (p DecisionPolicy) rules() []policyRule {
	return []policyRule{
		{
			Name: "high_spam_risk",
			Matches: func(_ int, spamRisk string, _ bool) bool {
				return spamRisk == models.SpamRiskHigh
			},
			Decision: models.DecisionReject,
		},
		{
			Name: "anthropic_flag",
			Matches: func(_ int, _ string, anthropicFlag bool) bool {
				return anthropicFlag
			},
			Decision: models.DecisionReview,
		},
		{
			Name: "score_approve",
			Matches: func(score int, _ string, _ bool) bool {
				return score >= p.ApproveScore
			},
			Decision: models.DecisionApprove,
		},
		{
			Name: "score_review",
			Matches: func(score int, _ string, _ bool) bool {
				return score >= p.ReviewScore
			},
			Decision: models.DecisionReview,
		},
	}
}

// Decide возвращает итоговое решение и имя сработавшего правила.
func (p DecisionPolicy) Decide(score int, spamRisk string, anthropicFlag bool) (string, string) {
	for _, rule := range p.rules() {
		if rule.Matches(score, spamRisk, anthropicFlag) {
			return rule.Decision, rule.Name
		}
	}
	return models.DecisionReject, "score_reject"
}

// Apply проставляет в результат решение политики поверх решения модели.
func (p DecisionPolicy) Apply(result *models.ModerationResult) {
	decision, _ := p.Decide(result.ContentScore, result.SpamRisk, result.AnthropicFlag)
	result.Decision = decision
}
