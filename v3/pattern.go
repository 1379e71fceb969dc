package v3

import (
	"fmt"
	"regexp"
)

// Matcher is any JsonPattern leaf that contributes a matching rule instead
// of a literal value. Every matcher leaf - regardless of which rule kind
// it produces - implements the same GetValue/Rule shape, so ToExample and
// the rule-recording step only need "is this a Matcher". To descend into
// a leaf's content, ExtractMatchingRules does switch on the concrete leaf
// type (like, eachArrayLike, StructMatcher).
type Matcher interface {
	isMatcher()
	GetValue() interface{}
	Rule() MatchingRule
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// objKeyForPath renders a map key as a path expression suffix: a bare
// ".field" when it's a valid identifier, or a quoted "['field']" when it
// isn't (contains a space, a dash, starts with a digit, ...).
func objKeyForPath(key string) string {
	if identRe.MatchString(key) {
		return "." + key
	}
	return "['" + key + "']"
}

// term is a Regex-backed leaf: match the path against a regular
// expression, substitute example for illustration.
type term struct {
	example interface{}
	regex   string
}

func (term) isMatcher()              {}
func (t term) GetValue() interface{} { return t.example }
func (t term) Rule() MatchingRule     { return RegexRule(t.regex) }

// like is a Type-backed leaf: the value's shape matters, not its content.
// It recurses into its content at the *same* path, since "something like
// this object" still constrains the object's own fields.
type like struct {
	content interface{}
}

func (like) isMatcher()              {}
func (l like) GetValue() interface{} { return ToExample(l.content) }
func (l like) Rule() MatchingRule     { return TypeRule() }

// eachArrayLike is a MinType/MaxType/MinMaxType-backed leaf: an array
// whose every element should look like content, with at least min and/or
// at most max elements.
type eachArrayLike struct {
	content  interface{}
	min, max int
	hasMin   bool
	hasMax   bool
}

func (eachArrayLike) isMatcher() {}

func (e eachArrayLike) GetValue() interface{} {
	n := e.min
	if !e.hasMin {
		n = e.max
	}
	if n < 1 {
		n = 1
	}
	example := ToExample(e.content)
	arr := make([]interface{}, n)
	for i := range arr {
		arr[i] = example
	}
	return arr
}

func (e eachArrayLike) Rule() MatchingRule {
	switch {
	case e.hasMin && e.hasMax:
		return MinMaxTypeRule(e.min, e.max)
	case e.hasMax:
		return MaxTypeRule(e.max)
	default:
		return MinTypeRule(e.min)
	}
}

// literalMatcher decorates a concrete example value with an arbitrary
// matching rule, for taxonomy members that don't need their own recursive
// shape (Equality, Include, Number, Integer, Decimal, and Timestamp/Date/
// Time where the caller supplies a literal example rather than a
// generated one).
type literalMatcher struct {
	value interface{}
	rule  MatchingRule
}

func (literalMatcher) isMatcher()              {}
func (l literalMatcher) GetValue() interface{} { return l.value }
func (l literalMatcher) Rule() MatchingRule     { return l.rule }

// ToExample walks a JsonPattern and returns the plain JSON example value
// it describes, discarding matching rules (a Matcher leaf contributes its
// GetValue(), recursively resolved the same way).
func ToExample(pattern interface{}) interface{} {
	switch v := pattern.(type) {
	case Matcher:
		return ToExample(v.GetValue())
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = ToExample(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = ToExample(val)
		}
		return out
	default:
		return v
	}
}

// ExtractMatchingRules walks a JsonPattern and records every Matcher
// leaf's rule into cat at the path expression it occurs at, built up from
// prefix as the walk descends through object fields and array indices.
func ExtractMatchingRules(pattern interface{}, prefix string, cat *Category) {
	switch v := pattern.(type) {
	case Matcher:
		cat.AddRule(prefix, v.Rule(), And)
		switch m := v.(type) {
		case like:
			ExtractMatchingRules(m.content, prefix, cat)
		case eachArrayLike:
			ExtractMatchingRules(m.content, prefix+"[*]", cat)
		case StructMatcher:
			for k, val := range m {
				ExtractMatchingRules(val, prefix+objKeyForPath(k), cat)
			}
		}
	case map[string]interface{}:
		for k, val := range v {
			ExtractMatchingRules(val, prefix+objKeyForPath(k), cat)
		}
	case []interface{}:
		for i, val := range v {
			ExtractMatchingRules(val, fmt.Sprintf("%s[%d]", prefix, i), cat)
		}
	default:
		// A plain literal contributes no rule.
	}
}
