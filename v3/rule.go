package v3

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ruleValue is the wire shape of a single matching rule object, e.g.
// {"match": "regex", "regex": "\\d+"}. Kept as a bare map, the same
// vocabulary the teacher's tests use, rather than wrapping it in another
// named type - it only ever exists transiently during JSON encode/decode.
type ruleValue map[string]interface{}

// RuleKind is the closed set of matching rule variants.
type RuleKind int

const (
	RuleEquality RuleKind = iota
	RuleRegex
	RuleType
	RuleMinType
	RuleMaxType
	RuleMinMaxType
	RuleTimestamp
	RuleDate
	RuleTime
	RuleInclude
	RuleNumber
	RuleInteger
	RuleDecimal
)

// MatchingRule is one entry in a RuleList. It's a single struct with a
// kind tag and the handful of optional payload fields the variants need,
// rather than thirteen separate types - this keeps decode, encode, and
// equality comparison in one place, the way the Rust enum's associated
// data does in a single match expression.
type MatchingRule struct {
	kind   RuleKind
	regex  string // Regex
	value  string // Include
	format string // Timestamp, Date, Time
	min    int    // MinType, MinMaxType
	max    int    // MaxType, MinMaxType
}

func (r MatchingRule) Kind() RuleKind { return r.kind }
func (r MatchingRule) Regex() string  { return r.regex }
func (r MatchingRule) Value() string  { return r.value }
func (r MatchingRule) Format() string { return r.format }
func (r MatchingRule) Min() int       { return r.min }
func (r MatchingRule) Max() int       { return r.max }

func EqualityRule() MatchingRule               { return MatchingRule{kind: RuleEquality} }
func RegexRule(pattern string) MatchingRule    { return MatchingRule{kind: RuleRegex, regex: pattern} }
func TypeRule() MatchingRule                   { return MatchingRule{kind: RuleType} }
func MinTypeRule(min int) MatchingRule         { return MatchingRule{kind: RuleMinType, min: min} }
func MaxTypeRule(max int) MatchingRule         { return MatchingRule{kind: RuleMaxType, max: max} }
func MinMaxTypeRule(min, max int) MatchingRule {
	return MatchingRule{kind: RuleMinMaxType, min: min, max: max}
}
func TimestampRule(format string) MatchingRule { return MatchingRule{kind: RuleTimestamp, format: format} }
func DateRule(format string) MatchingRule      { return MatchingRule{kind: RuleDate, format: format} }
func TimeRule(format string) MatchingRule      { return MatchingRule{kind: RuleTime, format: format} }
func IncludeRule(value string) MatchingRule    { return MatchingRule{kind: RuleInclude, value: value} }
func NumberRule() MatchingRule                 { return MatchingRule{kind: RuleNumber} }
func IntegerRule() MatchingRule                { return MatchingRule{kind: RuleInteger} }
func DecimalRule() MatchingRule                { return MatchingRule{kind: RuleDecimal} }

// ToJSON renders the canonical wire form of a rule.
func (r MatchingRule) ToJSON() ruleValue {
	switch r.kind {
	case RuleEquality:
		return ruleValue{"match": "equality"}
	case RuleRegex:
		return ruleValue{"match": "regex", "regex": r.regex}
	case RuleType:
		return ruleValue{"match": "type"}
	case RuleMinType:
		return ruleValue{"match": "type", "min": r.min}
	case RuleMaxType:
		return ruleValue{"match": "type", "max": r.max}
	case RuleMinMaxType:
		return ruleValue{"match": "type", "min": r.min, "max": r.max}
	case RuleTimestamp:
		return ruleValue{"match": "timestamp", "timestamp": r.format}
	case RuleDate:
		return ruleValue{"match": "date", "date": r.format}
	case RuleTime:
		return ruleValue{"match": "time", "time": r.format}
	case RuleInclude:
		return ruleValue{"match": "include", "value": r.value}
	case RuleNumber:
		return ruleValue{"match": "number"}
	case RuleInteger:
		return ruleValue{"match": "integer"}
	case RuleDecimal:
		return ruleValue{"match": "decimal"}
	default:
		return ruleValue{}
	}
}

// RuleFromJSON decodes one rule object. It never errors: a rule it can't
// make sense of comes back as (_, false) so the tolerant loader (category.go)
// can log and drop it rather than fail the whole document.
func RuleFromJSON(raw interface{}) (MatchingRule, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		rv, isRuleValue := raw.(ruleValue)
		if !isRuleValue {
			return MatchingRule{}, false
		}
		m = rv
	}
	if matchVal, present := m["match"]; present {
		switch jsonToString(matchVal) {
		case "regex":
			if s, ok := m["regex"]; ok {
				return RegexRule(jsonToString(s)), true
			}
			return MatchingRule{}, false
		case "equality":
			return EqualityRule(), true
		case "include":
			if s, ok := m["value"]; ok {
				return IncludeRule(jsonToString(s)), true
			}
			return MatchingRule{}, false
		case "type":
			min, hasMin := jsonToNum(m["min"])
			max, hasMax := jsonToNum(m["max"])
			switch {
			case hasMin && hasMax:
				return MinMaxTypeRule(min, max), true
			case hasMin:
				return MinTypeRule(min), true
			case hasMax:
				return MaxTypeRule(max), true
			default:
				return TypeRule(), true
			}
		case "number":
			return NumberRule(), true
		case "integer":
			return IntegerRule(), true
		case "decimal", "real":
			return DecimalRule(), true
		case "min":
			if min, ok := jsonToNum(m["min"]); ok {
				return MinTypeRule(min), true
			}
			return MatchingRule{}, false
		case "max":
			// Open question #2: the {"match": "max"} form decodes to a MinType
			// rule, not MaxType - preserved verbatim, see DESIGN.md. The legacy
			// shorthand below (a bare "max" key, no "match") gives MaxType.
			if max, ok := jsonToNum(m["max"]); ok {
				return MinTypeRule(max), true
			}
			return MatchingRule{}, false
		case "timestamp":
			if s, ok := m["timestamp"]; ok {
				return TimestampRule(jsonToString(s)), true
			}
			return MatchingRule{}, false
		case "date":
			if s, ok := m["date"]; ok {
				return DateRule(jsonToString(s)), true
			}
			return MatchingRule{}, false
		case "time":
			if s, ok := m["time"]; ok {
				return TimeRule(jsonToString(s)), true
			}
			return MatchingRule{}, false
		default:
			return MatchingRule{}, false
		}
	}
	// Legacy V2 shorthand: no "match" field, just one of these keys present.
	if s, ok := m["regex"]; ok {
		return RegexRule(jsonToString(s)), true
	}
	if min, ok := jsonToNum(m["min"]); ok {
		return MinTypeRule(min), true
	}
	if max, ok := jsonToNum(m["max"]); ok {
		return MaxTypeRule(max), true
	}
	if s, ok := m["timestamp"]; ok {
		return TimestampRule(jsonToString(s)), true
	}
	if s, ok := m["time"]; ok {
		return TimeRule(jsonToString(s)), true
	}
	if s, ok := m["date"]; ok {
		return DateRule(jsonToString(s)), true
	}
	return MatchingRule{}, false
}

// jsonToNum coerces a decoded JSON value to a non-negative bound. It
// accepts json.Number (from a document decoded with UseNumber), native Go
// numeric types (for rules built directly in Go code), and numeric
// strings. Open question #1: a float source truncates and a negative
// float saturates to 0 rather than being rejected, while a negative
// integer is rejected outright - this asymmetry matches the original
// Rust json_to_num (Json::F64(f) => Some(f as usize) saturates; a plain
// negative i64 fails its "> 0" guard). Preserved verbatim, see DESIGN.md.
func jsonToNum(v interface{}) (int, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		if t > 0 {
			return t, true
		}
		return 0, false
	case int64:
		if t > 0 {
			return int(t), true
		}
		return 0, false
	case uint:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		if t < 0 {
			return 0, true
		}
		return int(t), true
	case json.Number:
		s := t.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := t.Float64()
			if err != nil {
				return 0, false
			}
			if f < 0 {
				return 0, true
			}
			return int(f), true
		}
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		if i <= 0 {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(t)
		if err != nil || i < 0 {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// jsonToString renders an arbitrary decoded JSON value as a string, the
// way a rule's "regex"/"value"/"timestamp" payload is always read as text
// even when the source document happened to encode it as a bare number.
func jsonToString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case nil:
		return "null"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
