package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicGuard_Classify(t *testing.T) {
	g := NewTopicGuard(nil, nil)

	tests := []struct {
		name    string
		message string
		inScope bool
		rule    GuardRule
	}{
		{name: "property purchase", message: "I want to buy an apartment in Palm Jumeirah", inScope: true, rule: RuleAllowed},
		{name: "car question", message: "What's the best Lamborghini model?", inScope: false, rule: RuleDenied},
		{name: "greeting", message: "hi", inScope: true, rule: RuleShortMessage},
		{name: "short small talk", message: "thanks a lot", inScope: true, rule: RuleShortMessage},
		{name: "short with contraction", message: "What's the time?", inScope: true, rule: RuleShortMessage},
		{name: "short with leading contraction", message: "I'm back again", inScope: true, rule: RuleShortMessage},
		{name: "short but denied", message: "play some music", inScope: false, rule: RuleDenied},
		{name: "plural allow term", message: "Are there any villas near the marina?", inScope: true, rule: RuleAllowed},
		{name: "phrase allow term", message: "Show me something in Business Bay please", inScope: true, rule: RuleAllowed},
		{name: "both lists match", message: "Can I buy a villa with bitcoin?", inScope: true, rule: RuleAllowed},
		{name: "sports", message: "Who won the football game yesterday?", inScope: false, rule: RuleDenied},
		{name: "food", message: "Recommend a good pizza place for tonight", inScope: false, rule: RuleDenied},
		{name: "unmatched long message", message: "Tell me a joke about cats please", inScope: false, rule: RuleNoMatch},
		{name: "arabic property word", message: "أريد شقة في دبي", inScope: true, rule: RuleAllowed},
		{name: "tamil property word", message: "எனக்கு ஒரு வீடு வேண்டும் டுபாயில்", inScope: true, rule: RuleAllowed},
		{name: "empty", message: "", inScope: true, rule: RuleShortMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := g.Classify(tt.message)
			assert.Equal(t, tt.inScope, v.InScope)
			assert.Equal(t, tt.rule, v.Rule)
			assert.Equal(t, tt.inScope, g.InScope(tt.message))
		})
	}
}

func TestTopicGuard_WholeWordMatching(t *testing.T) {
	g := NewTopicGuard([]string{"rent"}, []string{"car"})

	// "carpet" and "parents" must not hit "car" or "rent".
	v := g.Classify("new carpet for my parents living room")
	assert.Equal(t, RuleNoMatch, v.Rule)
	assert.Empty(t, v.Allow)
	assert.Empty(t, v.Deny)

	v = g.Classify("cars")
	assert.Equal(t, "car", v.Deny)
}

func TestTopicGuard_ReportsMatchedTerms(t *testing.T) {
	g := NewTopicGuard(nil, nil)

	v := g.Classify("Can I buy a villa with bitcoin?")
	assert.NotEmpty(t, v.Allow)
	assert.Equal(t, "bitcoin", v.Deny)
}

func TestGuardTerms(t *testing.T) {
	assert.GreaterOrEqual(t, len(AllowTerms), 100)
	assert.GreaterOrEqual(t, len(DenyTerms), 80)

	allow := make(map[string]bool, len(AllowTerms))
	for _, term := range AllowTerms {
		allow[term] = true
	}
	for _, term := range DenyTerms {
		assert.False(t, allow[term], "term %q is in both lists", term)
	}
}
