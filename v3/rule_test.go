package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchingRuleRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rule MatchingRule
	}{
		{"equality", EqualityRule()},
		{"regex", RegexRule(`\d+`)},
		{"type", TypeRule()},
		{"min type", MinTypeRule(2)},
		{"max type", MaxTypeRule(5)},
		{"min max type", MinMaxTypeRule(2, 5)},
		{"timestamp", TimestampRule("yyyy-MM-dd'T'HH:mm:ss")},
		{"date", DateRule("yyyy-MM-dd")},
		{"time", TimeRule("HH:mm:ss")},
		{"include", IncludeRule("needle")},
		{"number", NumberRule()},
		{"integer", IntegerRule()},
		{"decimal", DecimalRule()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, ok := RuleFromJSON(map[string]interface{}(tt.rule.ToJSON()))
			assert.True(t, ok)
			assert.Equal(t, tt.rule, decoded)
		})
	}
}

func TestRuleFromJSONLegacyShorthand(t *testing.T) {
	r, ok := RuleFromJSON(map[string]interface{}{"regex": `\d+`})
	assert.True(t, ok)
	assert.Equal(t, RegexRule(`\d+`), r)

	r, ok = RuleFromJSON(map[string]interface{}{"min": 3})
	assert.True(t, ok)
	assert.Equal(t, MinTypeRule(3), r)

	r, ok = RuleFromJSON(map[string]interface{}{"max": 3})
	assert.True(t, ok)
	assert.Equal(t, MaxTypeRule(3), r)
}

func TestRuleFromJSONMaxShorthandIsMinType(t *testing.T) {
	// Open question #2: "match": "max" decodes to a MinType rule.
	r, ok := RuleFromJSON(map[string]interface{}{"match": "max", "max": 7})
	assert.True(t, ok)
	assert.Equal(t, MinTypeRule(7), r)
}

func TestRuleFromJSONInvalid(t *testing.T) {
	_, ok := RuleFromJSON("not an object")
	assert.False(t, ok)

	_, ok = RuleFromJSON(map[string]interface{}{"match": "regex"})
	assert.False(t, ok)

	_, ok = RuleFromJSON(map[string]interface{}{"match": "nonsense"})
	assert.False(t, ok)

	_, ok = RuleFromJSON(map[string]interface{}{})
	assert.False(t, ok)
}

func TestJsonToNumQuirks(t *testing.T) {
	n, ok := jsonToNum(-1)
	assert.False(t, ok)
	assert.Equal(t, 0, n)

	// Open question #1: a negative float truncates to 0 and is accepted,
	// unlike a negative integer.
	n, ok = jsonToNum(-1.5)
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	n, ok = jsonToNum(3.9)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = jsonToNum("4")
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = jsonToNum("-4")
	assert.False(t, ok)

	_, ok = jsonToNum(nil)
	assert.False(t, ok)
}
