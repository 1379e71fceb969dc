package v3

import "strings"

// RuleLogic controls how the rules in a RuleList combine when more than
// one applies to the same path: AND requires every rule to pass, OR
// requires at least one.
type RuleLogic int

const (
	And RuleLogic = iota
	Or
)

func (l RuleLogic) String() string {
	if l == Or {
		return "OR"
	}
	return "AND"
}

func ruleLogicFromString(s string) RuleLogic {
	if strings.EqualFold(s, "OR") {
		return Or
	}
	return And
}

// RuleList is the ordered set of matching rules that apply at one path
// expression, plus the logic combining them.
type RuleList struct {
	Rules []MatchingRule
	Logic RuleLogic
}

// NewRuleList returns an empty rule list combined with the given logic.
func NewRuleList(logic RuleLogic) *RuleList {
	return &RuleList{Logic: logic}
}

// Add appends a rule to the list.
func (rl *RuleList) Add(r MatchingRule) {
	rl.Rules = append(rl.Rules, r)
}

// clone returns a deep copy: MatchingRule is a plain value type, so
// copying the slice header's backing array is enough to isolate the
// copy from future Add calls on the original.
func (rl *RuleList) clone() *RuleList {
	out := &RuleList{Logic: rl.Logic}
	if rl.Rules != nil {
		out.Rules = append([]MatchingRule(nil), rl.Rules...)
	}
	return out
}

func (rl *RuleList) toV3JSON() map[string]interface{} {
	matchers := make([]ruleValue, len(rl.Rules))
	for i, r := range rl.Rules {
		matchers[i] = r.ToJSON()
	}
	return map[string]interface{}{
		"combine":  rl.Logic.String(),
		"matchers": matchers,
	}
}

// toV2JSON renders the V2 form: just the first rule's object, since V2 has
// no representation for more than one rule or for OR logic at a path.
func (rl *RuleList) toV2JSON() interface{} {
	if len(rl.Rules) == 0 {
		return map[string]interface{}{}
	}
	return rl.Rules[0].ToJSON()
}
