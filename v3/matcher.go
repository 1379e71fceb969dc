package v3

// Matcher types supported by JVM:
//
// method	                    description
// string, stringValue				Match a string value (using string equality)
// number, numberValue				Match a number value (using Number.equals)*
// booleanValue								Match a boolean value (using equality)
// stringType									Will match all Strings
// numberType									Will match all numbers*
// integerType								Will match all numbers that are integers (both ints and longs)*
// decimalType								Will match all real numbers (floating point and decimal)*
// booleanType								Will match all boolean values (true and false)
// stringMatcher							Will match strings using the provided regular expression
// timestamp									Will match string containing timestamps. If a timestamp format is not given, will match an ISO timestamp format
// date												Will match string containing dates. If a date format is not given, will match an ISO date format
// time												Will match string containing times. If a time format is not given, will match an ISO time format
// ipAddress									Will match string containing IP4 formatted address.
// id													Will match all numbers by type
// hexValue										Will match all hexadecimal encoded strings
// uuid												Will match strings containing UUIDs
import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/pact-foundation/pact-go/internal/plog"
)

// Term Matcher regexes
const (
	hexadecimal = `[0-9a-fA-F]+`
	ipAddress   = `(\d{1,3}\.)+\d{1,3}`
	ipv6Address = `(\A([0-9a-f]{1,4}:){1,1}(:[0-9a-f]{1,4}){1,6}\Z)|(\A([0-9a-f]{1,4}:){1,2}(:[0-9a-f]{1,4}){1,5}\Z)|(\A([0-9a-f]{1,4}:){1,3}(:[0-9a-f]{1,4}){1,4}\Z)|(\A([0-9a-f]{1,4}:){1,4}(:[0-9a-f]{1,4}){1,3}\Z)|(\A([0-9a-f]{1,4}:){1,5}(:[0-9a-f]{1,4}){1,2}\Z)|(\A([0-9a-f]{1,4}:){1,6}(:[0-9a-f]{1,4}){1,1}\Z)|(\A(([0-9a-f]{1,4}:){1,7}|:):\Z)|(\A:(:[0-9a-f]{1,4}){1,7}\Z)|(\A((([0-9a-f]{1,4}:){6})(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3})\Z)|(\A(([0-9a-f]{1,4}:){5}[0-9a-f]{1,4}:(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3})\Z)|(\A([0-9a-f]{1,4}:){5}:[0-9a-f]{1,4}:(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3}\Z)|(\A([0-9a-f]{1,4}:){1,1}(:[0-9a-f]{1,4}){1,4}:(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3}\Z)|(\A([0-9a-f]{1,4}:){1,2}(:[0-9a-f]{1,4}){1,3}:(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3}\Z)|(\A([0-9a-f]{1,4}:){1,3}(:[0-9a-f]{1,4}){1,2}:(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3}\Z)|(\A([0-9a-f]{1,4}:){1,4}(:[0-9a-f]{1,4}){1,1}:(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3}\Z)|(\A(([0-9a-f]{1,4}:){1,5}|:):(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3}\Z)|(\A:(:[0-9a-f]{1,4}){1,5}:(25[0-5]|2[0-4]\d|[0-1]?\d?\d)(\.(25[0-5]|2[0-4]\d|[0-1]?\d?\d)){3}\Z)`
	uuidPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`
	timestampRe = `^([\+-]?\d{4}(?!\d{2}\b))((-?)((0[1-9]|1[0-2])(\3([12]\d|0[1-9]|3[01]))?|W([0-4]\d|5[0-2])(-?[1-7])?|(00[1-9]|0[1-9]\d|[12]\d{2}|3([0-5]\d|6[1-6])))([T\s]((([01]\d|2[0-3])((:?)[0-5]\d)?|24\:?00)([\.,]\d+(?!:))?)?(\17[0-5]\d([\.,]\d+)?)?([zZ]|([\+-])([01]\d|2[0-3]):?([0-5]\d)?)?)?)?$`
	dateRe      = `^([\+-]?\d{4}(?!\d{2}\b))((-?)((0[1-9]|1[0-2])(\3([12]\d|0[1-9]|3[01]))?|W([0-4]\d|5[0-2])(-?[1-7])?|(00[1-9]|0[1-9]\d|[12]\d{2}|3([0-5]\d|6[1-6])))?)`
	timeRe      = `^(T\d\d:\d\d(:\d\d)?(\.\d+)?(([+-]\d\d:\d\d)|Z)?)?$`
)

var timeExample = time.Date(2000, 2, 1, 12, 30, 0, 0, time.UTC)

// EachLike specifies that a given element in a JSON body can be repeated
// "min" times. Number needs to be 1 or greater.
func EachLike(content interface{}, min int) Matcher {
	return eachArrayLike{content: content, min: min, hasMin: true}
}

// ArrayMinLike is the spec-accurate name for EachLike.
var ArrayMinLike = EachLike

// ArrayMaxLike matches nested arrays in request bodies. Ensure that each
// item in the list matches the provided example and the list is no
// greater than the provided max.
func ArrayMaxLike(content interface{}, max int) Matcher {
	return eachArrayLike{content: content, max: max, hasMax: true}
}

// Like specifies that the given content type should be matched based on
// type (int, string etc.) instead of a verbatim match.
func Like(content interface{}) Matcher {
	return like{content: content}
}

// Term specifies that the matching should generate a value and also match
// using a regular expression.
func Term(generate string, matcher string) Matcher {
	return term{example: generate, regex: matcher}
}

// Regex is a more appropriately named alias for the "Term" matcher.
var Regex = Term

// HexValue defines a matcher that accepts hexadecimal values.
func HexValue() Matcher {
	return Regex("3F", hexadecimal)
}

// Identifier defines a matcher that accepts integer values, matched by
// type rather than the dedicated Integer rule kind - see Integer for the
// latter.
func Identifier() Matcher {
	return Like(42)
}

// Integer produces the taxonomy's dedicated Integer matching rule (every
// number that is a whole number, not just "something the same type as 42").
// Unlike the teacher's original "var Integer = Identifier" alias, this
// exercises RuleInteger directly - see DESIGN.md component G.
func Integer(example interface{}) Matcher {
	return literalMatcher{value: example, rule: IntegerRule()}
}

// IPAddress defines a matcher that accepts valid IPv4 addresses.
func IPAddress() Matcher {
	return Regex("127.0.0.1", ipAddress)
}

// IPv4Address matches valid IPv4 addresses.
var IPv4Address = IPAddress

// IPv6Address defines a matcher that accepts IP addresses.
func IPv6Address() Matcher {
	return Regex("::ffff:192.0.2.128", ipv6Address)
}

// Decimal defines a matcher that accepts any decimal value, matched by
// type. See DecimalValue for the dedicated Decimal rule kind.
func Decimal() Matcher {
	return Like(42.0)
}

// DecimalValue produces the taxonomy's dedicated Decimal matching rule for
// a specific example value.
func DecimalValue(example float64) Matcher {
	return literalMatcher{value: example, rule: DecimalRule()}
}

// Number produces the taxonomy's dedicated Number matching rule (any
// numeric value, integer or decimal) for a specific example value.
func Number(example interface{}) Matcher {
	return literalMatcher{value: example, rule: NumberRule()}
}

// Equality produces the taxonomy's Equality rule: the value must match the
// example verbatim. Useful when a field sits inside a pattern that would
// otherwise inherit a looser rule from an enclosing Like/EachLike.
func Equality(example interface{}) Matcher {
	return literalMatcher{value: example, rule: EqualityRule()}
}

// Include produces the taxonomy's Include rule: the value must contain
// substr as a substring.
func Include(example interface{}, substr string) Matcher {
	return literalMatcher{value: example, rule: IncludeRule(substr)}
}

// Timestamp matches a pattern corresponding to the ISO_DATETIME_FORMAT,
// which is "yyyy-MM-dd'T'HH:mm:ss". The fixed timeExample
// (2000-02-01T12:30:00Z) is used as the example.
func Timestamp() Matcher {
	return Regex(timeExample.Format(time.RFC3339), timestampRe)
}

// TimestampFormat produces the taxonomy's dedicated Timestamp matching
// rule, carrying the format string a comparator should use (rather than
// Timestamp's fixed ISO regex).
func TimestampFormat(example interface{}, format string) Matcher {
	return literalMatcher{value: example, rule: TimestampRule(format)}
}

// Date matches a pattern corresponding to the ISO_DATE_FORMAT, which is
// "yyyy-MM-dd". The fixed timeExample's date (2000-02-01) is used as the
// example.
func Date() Matcher {
	return Regex(timeExample.Format("2006-01-02"), dateRe)
}

// DateFormat produces the taxonomy's dedicated Date matching rule.
func DateFormat(example interface{}, format string) Matcher {
	return literalMatcher{value: example, rule: DateRule(format)}
}

// Time matches a pattern corresponding to "'T'HH:mm:ss". The fixed
// timeExample's time (T12:30:00) is used as the example.
func Time() Matcher {
	return Regex(timeExample.Format("T15:04:05"), timeRe)
}

// TimeFormat produces the taxonomy's dedicated Time matching rule.
func TimeFormat(example interface{}, format string) Matcher {
	return literalMatcher{value: example, rule: TimeRule(format)}
}

// UUID defines a matcher that accepts UUIDs. Produces a v4 UUID as the example.
func UUID() Matcher {
	return Regex("fc763eba-0905-41c5-a27f-3934ab26786c", uuidPattern)
}

// S is the string primitive wrapper (alias) for the Matcher type; it
// allows plain strings to be matched by type.
type S string

func (s S) isMatcher()              {}
func (s S) GetValue() interface{}   { return string(s) }
func (s S) Rule() MatchingRule       { return TypeRule() }

// String is the longer named form of the string primitive wrapper.
type String = S

// StructMatcher matches a complex object structure, which may itself
// contain nested Matchers.
type StructMatcher map[string]interface{}

func (m StructMatcher) isMatcher()            {}
func (m StructMatcher) GetValue() interface{} { return ToExample(map[string]interface{}(m)) }
func (m StructMatcher) Rule() MatchingRule    { return TypeRule() }

// MapMatcher allows a map[string]string-like object to also contain
// complex matchers.
type MapMatcher map[string]Matcher

// objectToString takes an object and converts it to a JSON representation.
func objectToString(obj interface{}) string {
	switch content := obj.(type) {
	case string:
		return content
	default:
		jsonString, err := json.Marshal(obj)
		if err != nil {
			plog.Debugf("objectToString: error unmarshaling object into string: %s", err.Error())
			return ""
		}
		return string(jsonString)
	}
}

// Match recursively traverses the provided type and outputs a matcher for
// it that is compatible with the Pact dsl. By default, it requires slices
// to have a minimum of 1 element. For concrete types, it uses Like to
// assert that types match. Optionally, you may override these defaults by
// supplying custom pact tags on your structs.
//
// Supported Tag Formats
// Minimum Slice Size: `pact:"min=2"`
// String RegEx:       `pact:"example=2000-01-01,regex=^\\d{4}-\\d{2}-\\d{2}$"`
func Match(src interface{}) Matcher {
	return match(reflect.TypeOf(src), getDefaults())
}

// match recursively traverses the provided type and outputs a matcher
// that is compatible with the Pact dsl.
func match(srcType reflect.Type, params params) Matcher {
	switch kind := srcType.Kind(); kind {
	case reflect.Ptr:
		return match(srcType.Elem(), params)
	case reflect.Slice, reflect.Array:
		return EachLike(match(srcType.Elem(), getDefaults()), params.slice.min)
	case reflect.Struct:
		result := StructMatcher{}

		for i := 0; i < srcType.NumField(); i++ {
			field := srcType.Field(i)
			result[field.Tag.Get("json")] = match(field.Type, pluckParams(field.Type, field.Tag.Get("pact")))
		}
		return result
	case reflect.String:
		if params.str.regEx != "" {
			return Term(params.str.example, params.str.regEx)
		}
		if params.str.example != "" {
			return Like(params.str.example)
		}

		return Like("string")
	case reflect.Bool:
		if params.boolean.defined {
			return Like(params.boolean.value)
		}
		return Like(true)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if params.number.integer != 0 {
			return Like(params.number.integer)
		}
		return Like(1)
	case reflect.Float32, reflect.Float64:
		if params.number.float != 0 {
			return Like(params.number.float)
		}
		return Like(1.1)
	default:
		panic(fmt.Sprintf("match: unhandled type: %v", srcType))
	}
}

// params are plucked from 'pact' struct tags as match() traverses struct
// fields. They are passed back into match() along with their associated
// type to serve as parameters for the dsl functions.
type params struct {
	slice   sliceParams
	str     stringParams
	number  numberParams
	boolean boolParams
}

type numberParams struct {
	integer int
	float   float32
}
type boolParams struct {
	value   bool
	defined bool
}

type sliceParams struct {
	min int
}

type stringParams struct {
	example string
	regEx   string
}

// getDefaults returns the default params.
func getDefaults() params {
	return params{
		slice: sliceParams{
			min: 1,
		},
	}
}

// pluckParams converts a 'pact' tag into a params struct.
// Supported Tag Formats
// Minimum Slice Size: `pact:"min=2"`
// String RegEx:       `pact:"example=2000-01-01,regex=^\\d{4}-\\d{2}-\\d{2}$"`
func pluckParams(srcType reflect.Type, pactTag string) params {
	params := getDefaults()
	if pactTag == "" {
		return params
	}

	switch kind := srcType.Kind(); kind {
	case reflect.Bool:
		if _, err := fmt.Sscanf(pactTag, "example=%t", &params.boolean.value); err != nil {
			triggerInvalidPactTagPanic(pactTag, err)
		}
		params.boolean.defined = true
	case reflect.Float32, reflect.Float64:
		if _, err := fmt.Sscanf(pactTag, "example=%g", &params.number.float); err != nil {
			triggerInvalidPactTagPanic(pactTag, err)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if _, err := fmt.Sscanf(pactTag, "example=%d", &params.number.integer); err != nil {
			triggerInvalidPactTagPanic(pactTag, err)
		}
	case reflect.Slice:
		if _, err := fmt.Sscanf(pactTag, "min=%d", &params.slice.min); err != nil {
			triggerInvalidPactTagPanic(pactTag, err)
		}
	case reflect.String:
		fullRegex, _ := regexp.Compile(`regex=(.*)$`)
		exampleRegex, _ := regexp.Compile(`^example=(.*)`)

		if fullRegex.Match([]byte(pactTag)) {
			components := strings.Split(pactTag, ",regex=")

			if len(components[1]) == 0 {
				triggerInvalidPactTagPanic(pactTag, fmt.Errorf("invalid format: regex must not be empty"))
			}

			if _, err := fmt.Sscanf(components[0], "example=%s", &params.str.example); err != nil {
				triggerInvalidPactTagPanic(pactTag, err)
			}
			params.str.regEx = components[1]

		} else if exampleRegex.Match([]byte(pactTag)) {
			components := strings.Split(pactTag, "example=")

			if len(components) != 2 || strings.TrimSpace(components[1]) == "" {
				triggerInvalidPactTagPanic(pactTag, fmt.Errorf("invalid format: example must not be empty"))
			}

			params.str.example = components[1]
		}
	}

	return params
}

func triggerInvalidPactTagPanic(tag string, err error) {
	panic(fmt.Sprintf("match: encountered invalid pact tag %q . . . parsing failed with error: %v", tag, err))
}
