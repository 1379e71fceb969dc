package v3

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pact-foundation/pact-go/internal/plog"
)

// Category is the set of rule lists for one matching-rule category
// ("body", "header", "query", "path", "status"), keyed by path
// expression.
type Category struct {
	Name  string
	rules map[string]*RuleList
}

func newCategory(name string) *Category {
	return &Category{Name: name, rules: map[string]*RuleList{}}
}

// IsEmpty reports whether the category has no rules at all.
func (c *Category) IsEmpty() bool {
	return len(c.rules) == 0
}

// AddRule attaches a rule to the path expression's rule list, creating the
// list (with the given logic) if this is the first rule at that path.
func (c *Category) AddRule(pathExpr string, rule MatchingRule, logic RuleLogic) {
	rl, ok := c.rules[pathExpr]
	if !ok {
		rl = NewRuleList(logic)
		c.rules[pathExpr] = rl
	}
	rl.Add(rule)
}

// ruleFromJSON decodes one rule object and attaches it, logging and
// dropping it instead of failing the load if it can't be understood.
func (c *Category) ruleFromJSON(pathExpr string, raw interface{}, logic RuleLogic) {
	r, ok := RuleFromJSON(raw)
	if !ok {
		plog.Warnf("dropping unrecognised matching rule for category %q path %q: %v", c.Name, pathExpr, raw)
		return
	}
	c.AddRule(pathExpr, r, logic)
}

// RulesFor returns the rule list at an exact path expression, if any.
func (c *Category) RulesFor(pathExpr string) (*RuleList, bool) {
	rl, ok := c.rules[pathExpr]
	return rl, ok
}

// PathExpressions returns the category's path expressions in a stable,
// sorted order - convenient for deterministic tests and diffs, since the
// underlying store is a map.
func (c *Category) PathExpressions() []string {
	keys := make([]string, 0, len(c.rules))
	for k := range c.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Filter returns a new Category containing only the path expressions for
// which pred returns true.
func (c *Category) Filter(pred func(pathExpr string, rl *RuleList) bool) *Category {
	out := newCategory(c.Name)
	for k, v := range c.rules {
		if pred(k, v) {
			out.rules[k] = v
		}
	}
	return out
}

// clone returns a deep copy of the category, isolating it from future
// AddRule calls on the original.
func (c *Category) clone() *Category {
	out := newCategory(c.Name)
	for k, v := range c.rules {
		out.rules[k] = v.clone()
	}
	return out
}

func (c *Category) toV3JSON() map[string]interface{} {
	out := make(map[string]interface{}, len(c.rules))
	for k, v := range c.rules {
		out[k] = v.toV3JSON()
	}
	return out
}

// toV2JSON renders the category's rules as flat "$.category.path" keys.
// The "body" category is special-cased: its path expressions are already
// "$"-rooted, so the category name is spliced in right after the root
// instead of appended as a path segment - an exact "$" key collapses to
// "$.body" with no further suffix (Open question #3).
func (c *Category) toV2JSON() map[string]interface{} {
	out := make(map[string]interface{}, len(c.rules))
	for k, v := range c.rules {
		var key string
		if c.Name == "body" {
			key = strings.Replace(k, "$", "$.body", 1)
		} else {
			key = fmt.Sprintf("$.%s.%s", c.Name, k)
		}
		out[key] = v.toV2JSON()
	}
	return out
}
