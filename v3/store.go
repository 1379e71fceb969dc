package v3

import "strings"

// SpecVersion selects which wire form (Matching Rules store) reads/writes.
type SpecVersion int

const (
	V2 SpecVersion = iota
	V3
)

// MatchingRules is the full set of matching rules attached to an
// interaction, one Category per category name.
type MatchingRules struct {
	categories map[string]*Category
}

// NewMatchingRules returns an empty store.
func NewMatchingRules() *MatchingRules {
	return &MatchingRules{categories: map[string]*Category{}}
}

// AddCategory returns the named category, creating it empty if it doesn't
// exist yet.
func (m *MatchingRules) AddCategory(name string) *Category {
	if c, ok := m.categories[name]; ok {
		return c
	}
	c := newCategory(name)
	m.categories[name] = c
	return c
}

// Categories returns the names of every non-empty category.
func (m *MatchingRules) Categories() []string {
	names := make([]string, 0, len(m.categories))
	for name, c := range m.categories {
		if !c.IsEmpty() {
			names = append(names, name)
		}
	}
	return names
}

// IsEmpty reports whether every category is empty.
func (m *MatchingRules) IsEmpty() bool {
	for _, c := range m.categories {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// RulesForCategory returns the named category, if it has been added.
func (m *MatchingRules) RulesForCategory(name string) (*Category, bool) {
	c, ok := m.categories[name]
	return c, ok
}

// clone returns a deep copy of the store, isolating it from future
// AddCategory/AddRule calls on the original.
func (m *MatchingRules) clone() *MatchingRules {
	out := NewMatchingRules()
	for name, c := range m.categories {
		out.categories[name] = c.clone()
	}
	return out
}

// resolveMatchers finds the rules in a category that apply to a concrete
// path. For "body" that's every rule whose path expression weighs > 0
// against the path; for "header"/"query" it's an exact, single-segment
// name match; every other category (e.g. "path", "status") applies
// unconditionally, since those categories only ever hold one rule list.
func (m *MatchingRules) resolveMatchers(category string, path []string) (*Category, bool) {
	c, ok := m.categories[category]
	if !ok {
		return nil, false
	}
	switch category {
	case "body":
		return c.Filter(func(expr string, _ *RuleList) bool {
			return CalcPathWeight(expr, path) > 0
		}), true
	case "header", "query":
		return c.Filter(func(expr string, _ *RuleList) bool {
			return len(path) == 1 && path[0] == expr
		}), true
	default:
		return c, true
	}
}

// resolveWildcardMatchers is like resolveMatchers but additionally
// requires the path expression's length to exactly match the concrete
// path's length - used to decide whether a wildcard applies at this exact
// depth rather than to some deeper descendant.
func (m *MatchingRules) resolveWildcardMatchers(category string, path []string) (*Category, bool) {
	c, ok := m.categories[category]
	if !ok {
		return nil, false
	}
	switch category {
	case "body":
		return c.Filter(func(expr string, _ *RuleList) bool {
			return CalcPathWeight(expr, path) > 0 && PathLength(expr) == len(path)
		}), true
	case "header", "query":
		return c.Filter(func(expr string, _ *RuleList) bool {
			return len(path) == 1 && path[0] == expr
		}), true
	default:
		return c, true
	}
}

// MatcherIsDefined reports whether any rule in the category applies to path.
func (m *MatchingRules) MatcherIsDefined(category string, path []string) bool {
	c, ok := m.resolveMatchers(category, path)
	return ok && !c.IsEmpty()
}

// WildcardMatcherIsDefined reports whether any rule applying at this exact
// path was declared against a wildcard path expression (ending in ".*").
func (m *MatchingRules) WildcardMatcherIsDefined(category string, path []string) bool {
	c, ok := m.resolveWildcardMatchers(category, path)
	if !ok {
		return false
	}
	wildcards := c.Filter(func(expr string, _ *RuleList) bool {
		return strings.HasSuffix(expr, ".*")
	})
	return !wildcards.IsEmpty()
}

// ToV3JSON renders the whole store in the nested V3 shape:
// {category: {path: {combine, matchers: [...]}}}. A "path" category whose
// only rule list sits at "" omits the sub-path level:
// {"path": {combine, matchers: [...]}}, the shape addRulesV3 reads.
func (m *MatchingRules) ToV3JSON() map[string]interface{} {
	out := make(map[string]interface{}, len(m.categories))
	for name, c := range m.categories {
		if name == "path" {
			if rl, ok := c.rules[""]; ok && len(c.rules) == 1 {
				out[name] = rl.toV3JSON()
				continue
			}
		}
		out[name] = c.toV3JSON()
	}
	return out
}

// ToV2JSON renders the whole store in the flat V2 shape: {"$.path": {rule}}.
func (m *MatchingRules) ToV2JSON() map[string]interface{} {
	out := map[string]interface{}{}
	for _, c := range m.categories {
		for k, v := range c.toV2JSON() {
			out[k] = v
		}
	}
	return out
}

// ToJSON renders the store in the requested spec version's shape.
func (m *MatchingRules) ToJSON(spec SpecVersion) map[string]interface{} {
	if spec == V3 {
		return m.ToV3JSON()
	}
	return m.ToV2JSON()
}

// LoadMatchingRules decodes a document's "matchingRules" field, picking
// V2 or V3 decoding by inspecting any one top-level key: every V2 key is
// "$"-rooted and no V3 category name is, so which key is checked first
// doesn't matter even though Go map iteration order is randomized.
func LoadMatchingRules(raw interface{}) *MatchingRules {
	rules := NewMatchingRules()
	m, ok := raw.(map[string]interface{})
	if !ok || len(m) == 0 {
		return rules
	}
	var sample string
	for k := range m {
		sample = k
		break
	}
	if strings.HasPrefix(sample, "$") {
		rules.loadFromV2Map(m)
	} else {
		rules.loadFromV3Map(m)
	}
	return rules
}

func (m *MatchingRules) addV2Rule(categoryName, subPath string, raw interface{}) {
	cat := m.AddCategory(categoryName)
	cat.ruleFromJSON(subPath, raw, And)
}

func (m *MatchingRules) loadFromV2Map(doc map[string]interface{}) {
	for key, v := range doc {
		switch {
		case key == "$.body":
			m.addV2Rule("body", "$", v)
		case strings.HasPrefix(key, "$.body"):
			m.addV2Rule("body", "$"+key[len("$.body"):], v)
		case strings.HasPrefix(key, "$.headers"):
			parts := strings.Split(key, ".")
			sub := ""
			if len(parts) > 2 {
				sub = parts[2]
			}
			m.addV2Rule("header", sub, v)
		default:
			parts := strings.Split(key, ".")
			category := ""
			if len(parts) > 1 {
				category = parts[1]
			}
			sub := ""
			if len(parts) > 2 {
				sub = parts[2]
			}
			m.addV2Rule(category, sub, v)
		}
	}
}

func combineLogic(v interface{}) RuleLogic {
	if v == nil {
		return And
	}
	return ruleLogicFromString(jsonToString(v))
}

func addMatchersArray(cat *Category, subPath string, raw interface{}, logic RuleLogic) {
	switch arr := raw.(type) {
	case []interface{}:
		for _, r := range arr {
			cat.ruleFromJSON(subPath, r, logic)
		}
	case []ruleValue:
		for _, r := range arr {
			cat.ruleFromJSON(subPath, r, logic)
		}
	}
}

func (m *MatchingRules) loadFromV3Map(doc map[string]interface{}) {
	for name, rules := range doc {
		m.addRulesV3(name, rules)
	}
}

func (m *MatchingRules) addRulesV3(categoryName string, rulesRaw interface{}) {
	cat := m.AddCategory(categoryName)
	obj, ok := rulesRaw.(map[string]interface{})
	if !ok {
		return
	}
	if categoryName == "path" {
		logic := combineLogic(obj["combine"])
		addMatchersArray(cat, "", obj["matchers"], logic)
		return
	}
	for subPath, v := range obj {
		vObj, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		logic := combineLogic(vObj["combine"])
		addMatchersArray(cat, subPath, vObj["matchers"], logic)
	}
}
