package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remixgames/backend/internal/models"
)

func newTestPolicy() DecisionPolicy {
	return NewDecisionPolicy(80, 60)
}

func TestDecisionPolicy_HighSpamBeatsHighScore(t *testing.T) {
	decision, rule := newTestPolicy().Decide(95, models.SpamRiskHigh, false)

	assert.Equal(t, models.DecisionReject, decision)
	assert.Equal(t, "high_spam_risk", rule)
}

func TestDecisionPolicy_AnthropicFlagBeatsScore(t *testing.T) {
	decision, rule := newTestPolicy().Decide(95, models.SpamRiskLow, true)

	assert.Equal(t, models.DecisionReview, decision)
	assert.Equal(t, "anthropic_flag", rule)
}

func TestDecisionPolicy_ScoreBoundaries(t *testing.T) {
	cases := []struct {
		score    int
		decision string
		rule     string
	}{
		{100, models.DecisionApprove, "score_approve"},
		{80, models.DecisionApprove, "score_approve"},
		{79, models.DecisionReview, "score_review"},
		{60, models.DecisionReview, "score_review"},
		{59, models.DecisionReject, "score_reject"},
		{0, models.DecisionReject, "score_reject"},
	}

	policy := newTestPolicy()
	for _, tc := range cases {
		decision, rule := policy.Decide(tc.score, models.SpamRiskLow, false)
		assert.Equal(t, tc.decision, decision, "score=%d", tc.score)
		assert.Equal(t, tc.rule, rule, "score=%d", tc.score)
	}
}

func TestDecisionPolicy_CustomThresholds(t *testing.T) {
	policy := NewDecisionPolicy(90, 70)

	decision, _ := policy.Decide(85, models.SpamRiskLow, false)
	assert.Equal(t, models.DecisionReview, decision)

	decision, _ = policy.Decide(65, models.SpamRiskLow, false)
	assert.Equal(t, models.DecisionReject, decision)
}

func TestDecisionPolicy_ApplyOverwritesDecision(t *testing.T) {
	result := &models.ModerationResult{
		ContentScore: 85,
		Decision:     models.DecisionReject, // модель ошиблась, политика главнее
		SpamRisk:     models.SpamRiskLow,
	}

	newTestPolicy().Apply(result)

	assert.Equal(t, models.DecisionApprove, result.Decision)
}
